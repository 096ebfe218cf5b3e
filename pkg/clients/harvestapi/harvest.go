package harvestapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
)

const (
	seasonsPath   = "/api/harvest-seasons/"
	equipmentPath = "/api/equipment/"
	revenuePath   = "/api/harvest-revenue/"
)

// HarvestSeasonService covers /api/harvest-seasons.
type HarvestSeasonService struct {
	c *Client
}

// List returns every season of the caller.
func (s *HarvestSeasonService) List(ctx context.Context) ([]models.HarvestSeason, error) {
	var seasons []models.HarvestSeason
	if err := s.c.get(ctx, seasonsPath, nil, &seasons); err != nil {
		return nil, fmt.Errorf("list harvest seasons: %w", err)
	}
	return seasons, nil
}

// Get returns one season.
func (s *HarvestSeasonService) Get(ctx context.Context, id int64) (*models.HarvestSeason, error) {
	season := new(models.HarvestSeason)
	if err := s.c.get(ctx, idPath(seasonsPath, id), nil, season); err != nil {
		return nil, fmt.Errorf("get harvest season %d: %w", id, err)
	}
	return season, nil
}

// Create opens a new season.
func (s *HarvestSeasonService) Create(ctx context.Context, in models.HarvestSeasonInput) (*models.HarvestSeason, error) {
	season := new(models.HarvestSeason)
	if err := s.c.send(ctx, http.MethodPost, seasonsPath, in, season); err != nil {
		return nil, fmt.Errorf("create harvest season: %w", err)
	}
	return season, nil
}

// Update replaces the provided fields of a season.
func (s *HarvestSeasonService) Update(ctx context.Context, id int64, in models.HarvestSeasonInput) (*models.HarvestSeason, error) {
	season := new(models.HarvestSeason)
	if err := s.c.send(ctx, http.MethodPut, idPath(seasonsPath, id), in, season); err != nil {
		return nil, fmt.Errorf("update harvest season %d: %w", id, err)
	}
	return season, nil
}

// Delete removes a season together with its equipment and revenue.
func (s *HarvestSeasonService) Delete(ctx context.Context, id int64) error {
	if err := s.c.send(ctx, http.MethodDelete, idPath(seasonsPath, id), nil, nil); err != nil {
		return fmt.Errorf("delete harvest season %d: %w", id, err)
	}
	return nil
}

// CalculateProfitLoss asks the backend to recompute the season's profit/loss.
// Nothing is returned; re-fetch the summary to observe the result.
func (s *HarvestSeasonService) CalculateProfitLoss(ctx context.Context, id int64) error {
	if err := s.c.send(ctx, http.MethodPost, idPath(seasonsPath, id)+"/calculate", nil, nil); err != nil {
		return fmt.Errorf("calculate profit/loss for season %d: %w", id, err)
	}
	return nil
}

// EquipmentService covers /api/equipment.
type EquipmentService struct {
	c *Client
}

// ListBySeason returns the equipment attached to a season.
func (s *EquipmentService) ListBySeason(ctx context.Context, seasonID int64) ([]models.Equipment, error) {
	var items []models.Equipment
	if err := s.c.get(ctx, idPath(equipmentPath+"harvest-season/", seasonID), nil, &items); err != nil {
		return nil, fmt.Errorf("list equipment for season %d: %w", seasonID, err)
	}
	return items, nil
}

// Get returns one piece of equipment.
func (s *EquipmentService) Get(ctx context.Context, id int64) (*models.Equipment, error) {
	item := new(models.Equipment)
	if err := s.c.get(ctx, idPath(equipmentPath, id), nil, item); err != nil {
		return nil, fmt.Errorf("get equipment %d: %w", id, err)
	}
	return item, nil
}

// Create attaches new equipment to in.HarvestSeasonID.
func (s *EquipmentService) Create(ctx context.Context, in models.EquipmentInput) (*models.Equipment, error) {
	item := new(models.Equipment)
	if err := s.c.send(ctx, http.MethodPost, equipmentPath, in, item); err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	return item, nil
}

// Update replaces the provided fields of a piece of equipment.
func (s *EquipmentService) Update(ctx context.Context, id int64, in models.EquipmentInput) (*models.Equipment, error) {
	in.HarvestSeasonID = 0
	item := new(models.Equipment)
	if err := s.c.send(ctx, http.MethodPut, idPath(equipmentPath, id), in, item); err != nil {
		return nil, fmt.Errorf("update equipment %d: %w", id, err)
	}
	return item, nil
}

// Delete removes a piece of equipment.
func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	if err := s.c.send(ctx, http.MethodDelete, idPath(equipmentPath, id), nil, nil); err != nil {
		return fmt.Errorf("delete equipment %d: %w", id, err)
	}
	return nil
}

// CalculateCosts triggers the lease, interest and depreciation computation
// for a piece of equipment.
func (s *EquipmentService) CalculateCosts(ctx context.Context, id int64) error {
	if err := s.c.send(ctx, http.MethodPost, idPath(equipmentPath, id)+"/calculate-costs", nil, nil); err != nil {
		return fmt.Errorf("calculate costs for equipment %d: %w", id, err)
	}
	return nil
}

// RevenueService covers /api/harvest-revenue.
type RevenueService struct {
	c *Client
}

// ListBySeason returns the revenue lines of a season.
func (s *RevenueService) ListBySeason(ctx context.Context, seasonID int64) ([]models.RevenueEntry, error) {
	var entries []models.RevenueEntry
	if err := s.c.get(ctx, idPath(revenuePath+"harvest-season/", seasonID), nil, &entries); err != nil {
		return nil, fmt.Errorf("list revenue for season %d: %w", seasonID, err)
	}
	return entries, nil
}

// Get returns one revenue line.
func (s *RevenueService) Get(ctx context.Context, id int64) (*models.RevenueEntry, error) {
	entry := new(models.RevenueEntry)
	if err := s.c.get(ctx, idPath(revenuePath, id), nil, entry); err != nil {
		return nil, fmt.Errorf("get revenue %d: %w", id, err)
	}
	return entry, nil
}

// Create records a revenue line against in.HarvestSeasonID.
func (s *RevenueService) Create(ctx context.Context, in models.RevenueInput) (*models.RevenueEntry, error) {
	entry := new(models.RevenueEntry)
	if err := s.c.send(ctx, http.MethodPost, revenuePath, in, entry); err != nil {
		return nil, fmt.Errorf("create revenue: %w", err)
	}
	return entry, nil
}

// Update replaces the provided fields of a revenue line.
func (s *RevenueService) Update(ctx context.Context, id int64, in models.RevenueInput) (*models.RevenueEntry, error) {
	in.HarvestSeasonID = 0
	entry := new(models.RevenueEntry)
	if err := s.c.send(ctx, http.MethodPut, idPath(revenuePath, id), in, entry); err != nil {
		return nil, fmt.Errorf("update revenue %d: %w", id, err)
	}
	return entry, nil
}

// Delete removes a revenue line.
func (s *RevenueService) Delete(ctx context.Context, id int64) error {
	if err := s.c.send(ctx, http.MethodDelete, idPath(revenuePath, id), nil, nil); err != nil {
		return fmt.Errorf("delete revenue %d: %w", id, err)
	}
	return nil
}
