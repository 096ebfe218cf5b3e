package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/internal/service/reporting"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

// SummaryHandler renders a harvest season's profit/loss report.
type SummaryHandler struct {
	*Base
	reports *reporting.Service
}

// NewSummaryHandler constructs the summary handler.
func NewSummaryHandler(base *Base, reports *reporting.Service) *SummaryHandler {
	return &SummaryHandler{Base: base, reports: reports}
}

// EquipmentLine is one machine of the equipment analysis.
type EquipmentLine struct {
	Name    string
	Cost    float64
	PerAcre float64
}

// SummaryView is the template model of the summary page.
type SummaryView struct {
	Report    models.SeasonReport
	Costs     []models.Amount
	Crops     []models.Amount
	Equipment []EquipmentLine
	Digest    string
}

func newSummaryView(r models.SeasonReport) SummaryView {
	v := SummaryView{Report: r, Costs: r.CostBreakdown.Lines(), Digest: reporting.FormatReport(r)}
	for _, crop := range keys(r.RevenueBreakdown.RevenueByCrop) {
		v.Crops = append(v.Crops, models.Amount{
			Label: models.LabelFor(models.CropTypes, crop),
			Value: r.RevenueBreakdown.RevenueByCrop[crop],
		})
	}
	for _, name := range keys(r.EquipmentAnalysis.EquipmentCostBreakdown) {
		v.Equipment = append(v.Equipment, EquipmentLine{
			Name:    name,
			Cost:    r.EquipmentAnalysis.EquipmentCostBreakdown[name],
			PerAcre: r.EquipmentAnalysis.CostPerAcreByEquipment[name],
		})
	}
	return v
}

func keys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Show fetches the four summary projections. Nothing is shown unless all of
// them arrive.
func (h *SummaryHandler) Show(c *gin.Context) {
	id, ok := paramID(c, SeasonParam)
	if !ok {
		h.renderError(c, http.StatusNotFound, "Unknown harvest season")
		return
	}
	report, err := h.reports.SeasonReport(c.Request.Context(), h.client(c), id)
	h.respond(c, id, report, err, "Failed to load season summary", "")
}

// Recalculate asks the backend to recompute, then re-fetches once.
func (h *SummaryHandler) Recalculate(c *gin.Context) {
	id, ok := paramID(c, SeasonParam)
	if !ok {
		h.renderError(c, http.StatusNotFound, "Unknown harvest season")
		return
	}
	ctx := c.Request.Context()
	report, err := h.reports.Recalculate(ctx, h.client(c), id)
	if err == nil {
		if serr := h.reports.Snapshot(ctx, *report); serr != nil {
			h.logger.Warn("failed to snapshot season report", zap.Int64("season_id", id), zap.Error(serr))
		}
	}
	h.respond(c, id, report, err, "Failed to recalculate season summary", "Summary recalculated")
}

// Export appends the current report to the configured spreadsheet.
func (h *SummaryHandler) Export(c *gin.Context) {
	id, ok := paramID(c, SeasonParam)
	if !ok {
		h.renderError(c, http.StatusNotFound, "Unknown harvest season")
		return
	}
	ctx := c.Request.Context()
	report, err := h.reports.SeasonReport(ctx, h.client(c), id)
	if err != nil {
		h.respond(c, id, nil, err, "Failed to load season summary", "")
		return
	}

	if err := h.reports.Export(ctx, *report); err != nil {
		status := http.StatusBadGateway
		banner := "Failed to export report"
		if errors.Is(err, reporting.ErrExportDisabled) {
			status = http.StatusServiceUnavailable
			banner = "Report export is not configured"
		} else {
			h.logger.Error("report export failed", zap.Int64("season_id", id), zap.Error(err))
		}
		h.render(c, status, "summary.html", "Season summary", h.data(c, id, report, banner, ""))
		return
	}
	h.respond(c, id, report, nil, "", "Report exported")
}

func (h *SummaryHandler) respond(c *gin.Context, id int64, report *models.SeasonReport, err error, fallback, notice string) {
	if err != nil {
		if h.endSession(c, err) {
			return
		}
		h.render(c, statusFor(err), "summary.html", "Season summary",
			h.data(c, id, nil, harvestapi.Message(err, fallback), ""))
		return
	}
	h.render(c, http.StatusOK, "summary.html", "Season summary", h.data(c, id, report, "", notice))
}

func (h *SummaryHandler) data(c *gin.Context, id int64, report *models.SeasonReport, banner, notice string) gin.H {
	data := gin.H{
		"SeasonID":      id,
		"Banner":        banner,
		"Notice":        notice,
		"ExportEnabled": h.reports.ExportEnabled(),
	}
	if report == nil {
		return data
	}
	data["Summary"] = newSummaryView(*report)
	if latest := h.reports.LatestSnapshot(c.Request.Context(), report.OwnerID, id); latest != nil {
		data["Snapshot"] = latest
	}
	return data
}
