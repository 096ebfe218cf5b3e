package harvestapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
)

const (
	incomePath   = "/api/income/"
	expensesPath = "/api/expenses/"
)

// IncomeService covers /api/income.
type IncomeService struct {
	c *Client
}

// List returns the caller's income entries.
func (s *IncomeService) List(ctx context.Context, filter ListFilter) ([]models.IncomeEntry, error) {
	var entries []models.IncomeEntry
	q := filter.Query()
	delete(q, "category")
	if err := s.c.get(ctx, incomePath, q, &entries); err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	return entries, nil
}

// Get returns one income entry.
func (s *IncomeService) Get(ctx context.Context, id int64) (*models.IncomeEntry, error) {
	entry := new(models.IncomeEntry)
	if err := s.c.get(ctx, idPath(incomePath, id), nil, entry); err != nil {
		return nil, fmt.Errorf("get income %d: %w", id, err)
	}
	return entry, nil
}

// Create records a new income entry.
func (s *IncomeService) Create(ctx context.Context, in models.IncomeInput) (*models.IncomeEntry, error) {
	entry := new(models.IncomeEntry)
	if err := s.c.send(ctx, http.MethodPost, incomePath, in, entry); err != nil {
		return nil, fmt.Errorf("create income: %w", err)
	}
	return entry, nil
}

// Update replaces the provided fields of an income entry.
func (s *IncomeService) Update(ctx context.Context, id int64, in models.IncomeInput) (*models.IncomeEntry, error) {
	entry := new(models.IncomeEntry)
	if err := s.c.send(ctx, http.MethodPut, idPath(incomePath, id), in, entry); err != nil {
		return nil, fmt.Errorf("update income %d: %w", id, err)
	}
	return entry, nil
}

// Delete removes an income entry. Deleting a missing id reports ErrNotFound.
func (s *IncomeService) Delete(ctx context.Context, id int64) error {
	if err := s.c.send(ctx, http.MethodDelete, idPath(incomePath, id), nil, nil); err != nil {
		return fmt.Errorf("delete income %d: %w", id, err)
	}
	return nil
}

// ExpenseService covers /api/expenses.
type ExpenseService struct {
	c *Client
}

// List returns the caller's expense entries.
func (s *ExpenseService) List(ctx context.Context, filter ListFilter) ([]models.ExpenseEntry, error) {
	var entries []models.ExpenseEntry
	if err := s.c.get(ctx, expensesPath, filter.Query(), &entries); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return entries, nil
}

// Get returns one expense entry.
func (s *ExpenseService) Get(ctx context.Context, id int64) (*models.ExpenseEntry, error) {
	entry := new(models.ExpenseEntry)
	if err := s.c.get(ctx, idPath(expensesPath, id), nil, entry); err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, err)
	}
	return entry, nil
}

// Create records a new expense entry.
func (s *ExpenseService) Create(ctx context.Context, in models.ExpenseInput) (*models.ExpenseEntry, error) {
	entry := new(models.ExpenseEntry)
	if err := s.c.send(ctx, http.MethodPost, expensesPath, in, entry); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return entry, nil
}

// Update replaces the provided fields of an expense entry.
func (s *ExpenseService) Update(ctx context.Context, id int64, in models.ExpenseInput) (*models.ExpenseEntry, error) {
	entry := new(models.ExpenseEntry)
	if err := s.c.send(ctx, http.MethodPut, idPath(expensesPath, id), in, entry); err != nil {
		return nil, fmt.Errorf("update expense %d: %w", id, err)
	}
	return entry, nil
}

// Delete removes an expense entry. Deleting a missing id reports ErrNotFound.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.c.send(ctx, http.MethodDelete, idPath(expensesPath, id), nil, nil); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}
