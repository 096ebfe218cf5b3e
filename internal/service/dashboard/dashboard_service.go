// Package dashboard joins analytics with the raw income and expense lists.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/harvest-tracker/internal/aggregate"
	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

const (
	defaultWindow = 30 * 24 * time.Hour
	recentLimit   = 5
	unnamedClient = "Unnamed client"
)

// View is everything the dashboard renders. It is only built when every
// fetch succeeded.
type View struct {
	Range          harvestapi.DateRange
	Analytics      models.AnalyticsResponse
	Income         aggregate.Summary
	Expenses       aggregate.Summary
	ExpenseShares  []aggregate.Share
	RecentIncome   []models.IncomeEntry
	RecentExpenses []models.ExpenseEntry
}

// Service loads the dashboard.
type Service struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a dashboard service.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{now: time.Now, logger: logger}
}

// Load issues the analytics, income and expense fetches concurrently. Any
// failure cancels the others and nothing is returned.
func (s *Service) Load(ctx context.Context, client *harvestapi.Client, r harvestapi.DateRange) (*View, error) {
	r = s.normalize(r)
	filter := harvestapi.ListFilter{StartDate: r.Start, EndDate: r.End}

	var (
		analytics *models.AnalyticsResponse
		income    []models.IncomeEntry
		expenses  []models.ExpenseEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analytics, err = client.Analytics().Dashboard(gctx, r)
		return err
	})
	g.Go(func() error {
		var err error
		income, err = client.Income().List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = client.Expenses().List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard load failed", zap.Error(err))
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	view := &View{
		Range:          r,
		Analytics:      *analytics,
		Income:         aggregate.Summarize(IncomeItems(income)),
		Expenses:       aggregate.Summarize(ExpenseItems(expenses)),
		RecentIncome:   recentIncome(income),
		RecentExpenses: recentExpenses(expenses),
	}
	view.ExpenseShares = expenseShares(analytics.ExpenseBreakdown, view.Expenses.Groups)
	return view, nil
}

func (s *Service) normalize(r harvestapi.DateRange) harvestapi.DateRange {
	if r.End.IsZero() {
		r.End = s.now()
	}
	if r.Start.IsZero() || r.Start.After(r.End) {
		r.Start = r.End.Add(-defaultWindow)
	}
	return r
}

// IncomeItems groups income by client.
func IncomeItems(entries []models.IncomeEntry) []aggregate.Item {
	return aggregate.Items(entries,
		func(e models.IncomeEntry) string {
			if e.ClientName == nil || *e.ClientName == "" {
				return unnamedClient
			}
			return *e.ClientName
		},
		func(e models.IncomeEntry) float64 { return e.TotalEarned })
}

// ExpenseItems groups expenses by category label.
func ExpenseItems(entries []models.ExpenseEntry) []aggregate.Item {
	return aggregate.Items(entries,
		func(e models.ExpenseEntry) string {
			return models.LabelFor(models.ExpenseCategories, string(e.Category))
		},
		func(e models.ExpenseEntry) float64 { return e.Amount })
}

// expenseShares prefers the backend breakdown and falls back to the shares of
// the fetched expenses.
func expenseShares(backend []models.CategoryBreakdown, groups aggregate.Groups) []aggregate.Share {
	if len(backend) == 0 {
		return aggregate.Shares(groups)
	}
	shares := make([]aggregate.Share, 0, len(backend))
	for _, b := range backend {
		shares = append(shares, aggregate.Share{
			Category:   models.LabelFor(models.ExpenseCategories, b.Category),
			Amount:     decimal.NewFromFloat(b.Amount),
			Percentage: decimal.NewFromFloat(b.Percentage),
		})
	}
	return shares
}

func recentIncome(entries []models.IncomeEntry) []models.IncomeEntry {
	out := append([]models.IncomeEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].HarvestDate.After(out[j].HarvestDate.Time) })
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

func recentExpenses(entries []models.ExpenseEntry) []models.ExpenseEntry {
	out := append([]models.ExpenseEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpenseDate.After(out[j].ExpenseDate.Time) })
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}
