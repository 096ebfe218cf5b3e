package harvestapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
)

// SummaryService covers /api/summary, the backend's computed season views.
type SummaryService struct {
	c *Client
}

func summaryPath(seasonID int64, view string) string {
	return idPath("/api/summary/harvest-season/", seasonID) + "/" + view
}

// ProfitLoss returns the latest profit/loss calculation of a season. A season
// that was never calculated reports ErrNotFound.
func (s *SummaryService) ProfitLoss(ctx context.Context, seasonID int64) (*models.SeasonProfitLoss, error) {
	out := new(models.SeasonProfitLoss)
	if err := s.c.get(ctx, summaryPath(seasonID, "profit-loss"), nil, out); err != nil {
		return nil, fmt.Errorf("profit/loss for season %d: %w", seasonID, err)
	}
	return out, nil
}

// CostBreakdown returns the season's expenses by cost centre.
func (s *SummaryService) CostBreakdown(ctx context.Context, seasonID int64) (*models.CostBreakdown, error) {
	out := new(models.CostBreakdown)
	if err := s.c.get(ctx, summaryPath(seasonID, "cost-breakdown"), nil, out); err != nil {
		return nil, fmt.Errorf("cost breakdown for season %d: %w", seasonID, err)
	}
	return out, nil
}

// RevenueBreakdown returns the season's revenue by crop.
func (s *SummaryService) RevenueBreakdown(ctx context.Context, seasonID int64) (*models.RevenueBreakdown, error) {
	out := new(models.RevenueBreakdown)
	if err := s.c.get(ctx, summaryPath(seasonID, "revenue-breakdown"), nil, out); err != nil {
		return nil, fmt.Errorf("revenue breakdown for season %d: %w", seasonID, err)
	}
	return out, nil
}

// EquipmentAnalysis returns per-machine cost figures.
func (s *SummaryService) EquipmentAnalysis(ctx context.Context, seasonID int64) (*models.EquipmentAnalysis, error) {
	out := new(models.EquipmentAnalysis)
	if err := s.c.get(ctx, summaryPath(seasonID, "equipment-analysis"), nil, out); err != nil {
		return nil, fmt.Errorf("equipment analysis for season %d: %w", seasonID, err)
	}
	return out, nil
}

// Recalculate triggers a fresh summary computation. Callers re-fetch once
// afterwards; there is no completion notification.
func (s *SummaryService) Recalculate(ctx context.Context, seasonID int64) error {
	if err := s.c.send(ctx, http.MethodPost, summaryPath(seasonID, "recalculate"), nil, nil); err != nil {
		return fmt.Errorf("recalculate season %d: %w", seasonID, err)
	}
	return nil
}

// AnalyticsService covers /api/analytics.
type AnalyticsService struct {
	c *Client
}

// Dashboard returns profit/loss, expense breakdown, peer comparisons and
// insights for the range.
func (s *AnalyticsService) Dashboard(ctx context.Context, r DateRange) (*models.AnalyticsResponse, error) {
	out := new(models.AnalyticsResponse)
	if err := s.c.get(ctx, "/api/analytics/dashboard", r.Query(), out); err != nil {
		return nil, fmt.Errorf("dashboard analytics: %w", err)
	}
	return out, nil
}
