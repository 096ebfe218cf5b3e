package reporting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/harvest-tracker/internal/config"
	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

type fakeSheets struct {
	ranges []string
	rows   map[string][][]interface{}
	err    error
}

func (f *fakeSheets) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = make(map[string][][]interface{})
	}
	f.ranges = append(f.ranges, sheetRange)
	f.rows[sheetRange] = append(f.rows[sheetRange], rows...)
	return nil
}

type fakeSnapshots struct {
	saved []models.SeasonReport
}

func (f *fakeSnapshots) SaveSeasonReport(_ context.Context, report models.SeasonReport) error {
	f.saved = append(f.saved, report)
	return nil
}

func (f *fakeSnapshots) LatestSeasonReport(_ context.Context, ownerID, seasonID int64) (*models.SeasonReport, error) {
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].OwnerID == ownerID && f.saved[i].SeasonID == seasonID {
			r := f.saved[i]
			return &r, nil
		}
	}
	return nil, errors.New("none")
}

func summaryBackend(t *testing.T, failPath string, recalcs *int32) *harvestapi.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == failPath {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Profit/loss calculation not found"}`))
			return
		}
		switch r.URL.Path {
		case "/api/harvest-seasons/3":
			_, _ = w.Write([]byte(`{"id":3,"user_id":2,"business_name":"Kansas wheat run","pay_cycle":"weekly","interest_rate":6}`))
		case "/api/summary/harvest-season/3/profit-loss":
			_, _ = w.Write([]byte(`{"total_revenue":10000,"total_expenses":6000,"gross_profit":4000,"net_profit":3500,"profit_margin":35,"acres_billed":400,"harvest_duration_days":21}`))
		case "/api/summary/harvest-season/3/cost-breakdown":
			_, _ = w.Write([]byte(`{"fuel_cost":2500,"employee_cost":3500,"total_cost":6000}`))
		case "/api/summary/harvest-season/3/revenue-breakdown":
			_, _ = w.Write([]byte(`{"total_revenue":10000,"revenue_by_crop":{"small_grain":7000,"corn":3000}}`))
		case "/api/summary/harvest-season/3/equipment-analysis":
			_, _ = w.Write([]byte(`{"equipment_cost_breakdown":{"JD S780":1800},"cost_per_acre_by_equipment":{"JD S780":4.5}}`))
		case "/api/summary/harvest-season/3/recalculate":
			atomic.AddInt32(recalcs, 1)
			_, _ = w.Write([]byte(`{"message":"Summary recalculated"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return harvestapi.NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil).WithToken("tok")
}

func TestSeasonReportJoinsProjections(t *testing.T) {
	var recalcs int32
	svc := NewService(nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }

	report, err := svc.SeasonReport(context.Background(), summaryBackend(t, "", &recalcs), 3)
	require.NoError(t, err)
	assert.Equal(t, "Kansas wheat run", report.SeasonName)
	assert.Equal(t, int64(2), report.OwnerID)
	assert.InDelta(t, 3500, report.ProfitLoss.NetProfit, 1e-9)
	assert.InDelta(t, 6000, report.CostBreakdown.TotalCost, 1e-9)
	assert.InDelta(t, 7000, report.RevenueBreakdown.RevenueByCrop["small_grain"], 1e-9)
	assert.InDelta(t, 4.5, report.EquipmentAnalysis.CostPerAcreByEquipment["JD S780"], 1e-9)
	assert.Equal(t, 2024, report.GeneratedAt.Year())
}

func TestSeasonReportAllOrNothing(t *testing.T) {
	var recalcs int32
	report, err := NewService(nil, nil, nil).SeasonReport(context.Background(), summaryBackend(t, "/api/summary/harvest-season/3/profit-loss", &recalcs), 3)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, harvestapi.ErrNotFound)
	assert.Equal(t, "Profit/loss calculation not found", harvestapi.Message(err, "Failed to load summary"))
}

func TestRecalculateTriggersThenFetches(t *testing.T) {
	var recalcs int32
	report, err := NewService(nil, nil, nil).Recalculate(context.Background(), summaryBackend(t, "", &recalcs), 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&recalcs))
	assert.Equal(t, int64(3), report.SeasonID)

	_, err = NewService(nil, nil, nil).Recalculate(context.Background(), summaryBackend(t, "/api/summary/harvest-season/3/recalculate", &recalcs), 3)
	require.Error(t, err)
	assert.Equal(t, "Profit/loss calculation not found", harvestapi.Message(err, "Failed to recalculate summary"))
}

func sampleReport() models.SeasonReport {
	return models.SeasonReport{
		SeasonID:   3,
		OwnerID:    2,
		SeasonName: "Kansas wheat run",
		ProfitLoss: models.SeasonProfitLoss{TotalRevenue: 10000, TotalExpenses: 6000, NetProfit: 3500, ProfitMargin: 35, AcresBilled: 400, HarvestDurationDays: 21},
		CostBreakdown: models.CostBreakdown{
			FuelCost: 2500, EmployeeCost: 3500, TotalCost: 6000,
		},
		RevenueBreakdown: models.RevenueBreakdown{
			TotalRevenue:  10000,
			RevenueByCrop: map[string]float64{"small_grain": 7000, "corn": 3000},
		},
		GeneratedAt: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExportWritesRows(t *testing.T) {
	sheets := &fakeSheets{}
	svc := NewService(sheets, nil, nil)
	require.True(t, svc.ExportEnabled())

	require.NoError(t, svc.Export(context.Background(), sampleReport()))
	assert.Equal(t, []string{seasonsRange, costLinesRange, cropLinesRange}, sheets.ranges)

	summary := sheets.rows[seasonsRange]
	require.Len(t, summary, 1)
	assert.Equal(t, "2024-07-01", summary[0][0])
	assert.Equal(t, "Kansas wheat run", summary[0][2])

	assert.Len(t, sheets.rows[costLinesRange], 8)
	crops := sheets.rows[cropLinesRange]
	require.Len(t, crops, 2)
	assert.Equal(t, "Corn", crops[0][2])
	assert.Equal(t, "Small Grain", crops[1][2])
}

func TestExportDisabledAndFailing(t *testing.T) {
	err := NewService(nil, nil, nil).Export(context.Background(), sampleReport())
	assert.ErrorIs(t, err, ErrExportDisabled)

	failing := &fakeSheets{err: errors.New("quota exceeded")}
	err = NewService(failing, nil, nil).Export(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export season summary")
}

func TestSnapshots(t *testing.T) {
	snaps := &fakeSnapshots{}
	svc := NewService(nil, snaps, nil)

	assert.Nil(t, svc.LatestSnapshot(context.Background(), 2, 3))
	require.NoError(t, svc.Snapshot(context.Background(), sampleReport()))
	latest := svc.LatestSnapshot(context.Background(), 2, 3)
	require.NotNil(t, latest)
	assert.Equal(t, "Kansas wheat run", latest.SeasonName)
	assert.Nil(t, svc.LatestSnapshot(context.Background(), 5, 3), "other owners never see the snapshot")

	disabled := NewService(nil, nil, nil)
	require.NoError(t, disabled.Snapshot(context.Background(), sampleReport()))
	assert.Nil(t, disabled.LatestSnapshot(context.Background(), 2, 3))
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(sampleReport())
	assert.Contains(t, out, "Kansas wheat run (2024-07-01)")
	assert.Contains(t, out, "Net: $3500.00 (35.0% margin)")
	assert.Contains(t, out, "Fuel $2500.00;")
	assert.NotContains(t, out, "Housing")
	assert.Contains(t, out, "Revenue by crop: Corn $3000.00; Small Grain $7000.00")

	empty := FormatReport(models.SeasonReport{SeasonID: 9})
	assert.Contains(t, empty, "Season 9")
	assert.Contains(t, empty, "Revenue by crop: none recorded")
}
