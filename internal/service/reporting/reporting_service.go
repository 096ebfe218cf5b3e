package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	repo "github.com/mamadbah2/harvest-tracker/internal/repository/sheets"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

const (
	dateLayout     = "2006-01-02"
	seasonsRange   = "Seasons!A:L"
	costLinesRange = "Costs!A:D"
	cropLinesRange = "Crops!A:D"
	unnamedSeason  = "Season"
)

// ErrExportDisabled is returned by Export when no spreadsheet is configured.
var ErrExportDisabled = errors.New("report export is not configured")

// SnapshotStore persists computed reports.
type SnapshotStore interface {
	SaveSeasonReport(ctx context.Context, report models.SeasonReport) error
	LatestSeasonReport(ctx context.Context, ownerID, seasonID int64) (*models.SeasonReport, error)
}

// Service builds season reports from the backend's summary projections.
type Service struct {
	sheets    repo.Repository
	snapshots SnapshotStore
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. Either store may be nil.
func NewService(sheets repo.Repository, snapshots SnapshotStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sheets: sheets, snapshots: snapshots, now: time.Now, logger: logger}
}

// ExportEnabled reports whether Export has a target.
func (s *Service) ExportEnabled() bool { return s.sheets != nil }

// SeasonReport fetches the season and its four summary projections
// concurrently. Partial results are discarded.
func (s *Service) SeasonReport(ctx context.Context, client *harvestapi.Client, seasonID int64) (*models.SeasonReport, error) {
	report := models.SeasonReport{SeasonID: seasonID}

	var season *models.HarvestSeason
	var profitLoss *models.SeasonProfitLoss
	var costs *models.CostBreakdown
	var revenue *models.RevenueBreakdown
	var equipment *models.EquipmentAnalysis

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		season, err = client.HarvestSeasons().Get(gctx, seasonID)
		return err
	})
	g.Go(func() (err error) {
		profitLoss, err = client.Summary().ProfitLoss(gctx, seasonID)
		return err
	})
	g.Go(func() (err error) {
		costs, err = client.Summary().CostBreakdown(gctx, seasonID)
		return err
	})
	g.Go(func() (err error) {
		revenue, err = client.Summary().RevenueBreakdown(gctx, seasonID)
		return err
	})
	g.Go(func() (err error) {
		equipment, err = client.Summary().EquipmentAnalysis(gctx, seasonID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("season %d report: %w", seasonID, err)
	}

	report.SeasonName = season.BusinessName
	report.OwnerID = season.UserID
	report.ProfitLoss = *profitLoss
	report.CostBreakdown = *costs
	report.RevenueBreakdown = *revenue
	report.EquipmentAnalysis = *equipment
	report.GeneratedAt = s.now().UTC()
	return &report, nil
}

// Recalculate triggers a backend recomputation and fetches the result once.
func (s *Service) Recalculate(ctx context.Context, client *harvestapi.Client, seasonID int64) (*models.SeasonReport, error) {
	if err := client.Summary().Recalculate(ctx, seasonID); err != nil {
		return nil, err
	}
	s.logger.Info("season summary recalculated", zap.Int64("season_id", seasonID))
	return s.SeasonReport(ctx, client, seasonID)
}

// Export appends the report to the configured spreadsheet: one summary row,
// one row per cost centre and one per crop.
func (s *Service) Export(ctx context.Context, report models.SeasonReport) error {
	if s.sheets == nil {
		return ErrExportDisabled
	}

	day := report.GeneratedAt.Format(dateLayout)
	name := seasonName(report)
	pl := report.ProfitLoss

	summaryRow := []interface{}{
		day, report.SeasonID, name,
		pl.TotalRevenue, pl.TotalExpenses, pl.GrossProfit, pl.NetProfit, pl.ProfitMargin,
		pl.CostPerAcre, pl.RevenuePerAcre, pl.ProfitPerAcre, pl.AcresBilled,
	}
	if err := s.sheets.AppendRows(ctx, seasonsRange, [][]interface{}{summaryRow}); err != nil {
		return fmt.Errorf("export season summary: %w", err)
	}

	lines := report.CostBreakdown.Lines()
	costRows := make([][]interface{}, 0, len(lines))
	for _, line := range lines {
		costRows = append(costRows, []interface{}{day, name, line.Label, line.Value})
	}
	if err := s.sheets.AppendRows(ctx, costLinesRange, costRows); err != nil {
		return fmt.Errorf("export cost breakdown: %w", err)
	}

	crops := sortedKeys(report.RevenueBreakdown.RevenueByCrop)
	cropRows := make([][]interface{}, 0, len(crops))
	for _, crop := range crops {
		label := models.LabelFor(models.CropTypes, crop)
		cropRows = append(cropRows, []interface{}{day, name, label, report.RevenueBreakdown.RevenueByCrop[crop]})
	}
	if err := s.sheets.AppendRows(ctx, cropLinesRange, cropRows); err != nil {
		return fmt.Errorf("export revenue breakdown: %w", err)
	}

	s.logger.Info("season report exported", zap.Int64("season_id", report.SeasonID))
	return nil
}

// Snapshot stores the report when a snapshot store is configured.
func (s *Service) Snapshot(ctx context.Context, report models.SeasonReport) error {
	if s.snapshots == nil {
		return nil
	}
	if err := s.snapshots.SaveSeasonReport(ctx, report); err != nil {
		return fmt.Errorf("snapshot season %d: %w", report.SeasonID, err)
	}
	return nil
}

// LatestSnapshot returns the last stored report of a season owned by ownerID,
// or nil when snapshots are disabled or none exists.
func (s *Service) LatestSnapshot(ctx context.Context, ownerID, seasonID int64) *models.SeasonReport {
	if s.snapshots == nil {
		return nil
	}
	report, err := s.snapshots.LatestSeasonReport(ctx, ownerID, seasonID)
	if err != nil {
		s.logger.Debug("no season snapshot", zap.Int64("season_id", seasonID), zap.Error(err))
		return nil
	}
	return report
}

// FormatReport renders a plain-text digest of a report.
func FormatReport(report models.SeasonReport) string {
	pl := report.ProfitLoss
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", seasonName(report), report.GeneratedAt.Format(dateLayout))
	fmt.Fprintf(&b, "Revenue: $%.2f | Expenses: $%.2f | Net: $%.2f (%.1f%% margin)\n",
		pl.TotalRevenue, pl.TotalExpenses, pl.NetProfit, pl.ProfitMargin)
	fmt.Fprintf(&b, "Acres billed: %.0f over %.0f days | Cost/acre $%.2f | Revenue/acre $%.2f | Profit/acre $%.2f\n",
		pl.AcresBilled, pl.HarvestDurationDays, pl.CostPerAcre, pl.RevenuePerAcre, pl.ProfitPerAcre)

	b.WriteString("Costs:")
	for _, line := range report.CostBreakdown.Lines() {
		if line.Value == 0 {
			continue
		}
		fmt.Fprintf(&b, " %s $%.2f;", line.Label, line.Value)
	}
	fmt.Fprintf(&b, " total $%.2f\n", report.CostBreakdown.TotalCost)

	crops := sortedKeys(report.RevenueBreakdown.RevenueByCrop)
	if len(crops) == 0 {
		b.WriteString("Revenue by crop: none recorded")
		return b.String()
	}
	b.WriteString("Revenue by crop:")
	for _, crop := range crops {
		fmt.Fprintf(&b, " %s $%.2f;", models.LabelFor(models.CropTypes, crop), report.RevenueBreakdown.RevenueByCrop[crop])
	}
	return strings.TrimSuffix(b.String(), ";")
}

func seasonName(report models.SeasonReport) string {
	if report.SeasonName == "" {
		return fmt.Sprintf("%s %d", unnamedSeason, report.SeasonID)
	}
	return report.SeasonName
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
