// Package aggregate computes display statistics over already-loaded ledger
// entries: totals, averages, per-category totals and the leading category.
//
// All functions are pure. Amounts are summed as decimals so that the sum of
// the per-category totals is exactly the overall total.
package aggregate

import (
	"github.com/shopspring/decimal"
)

// Item is the minimal view of an entry the aggregates need.
type Item struct {
	Category string
	Amount   decimal.Decimal
}

// Items adapts any entry slice into Items.
func Items[T any](entries []T, category func(T) string, amount func(T) float64) []Item {
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{Category: category(e), Amount: decimal.NewFromFloat(amount(e))})
	}
	return items
}

// Total sums the amounts. An empty input yields zero.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// Average is Total divided by the number of items, or zero for no items.
func Average(items []Item) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	return Total(items).Div(decimal.NewFromInt(int64(len(items))))
}

// Groups holds per-category totals. Keys are unique and kept in order of first
// occurrence in the input.
type Groups struct {
	Keys   []string
	Totals map[string]decimal.Decimal
}

// Len returns the number of distinct categories.
func (g Groups) Len() int {
	return len(g.Keys)
}

// Get returns the total for category, zero when absent.
func (g Groups) Get(category string) decimal.Decimal {
	if v, ok := g.Totals[category]; ok {
		return v
	}
	return decimal.Zero
}

// Sum adds up every group total.
func (g Groups) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, k := range g.Keys {
		sum = sum.Add(g.Totals[k])
	}
	return sum
}

// GroupTotals sums amounts per distinct category.
func GroupTotals(items []Item) Groups {
	g := Groups{Totals: make(map[string]decimal.Decimal)}
	for _, it := range items {
		current, seen := g.Totals[it.Category]
		if !seen {
			g.Keys = append(g.Keys, it.Category)
			current = decimal.Zero
		}
		g.Totals[it.Category] = current.Add(it.Amount)
	}
	return g
}

// TopCategory returns the category with the largest total. Ties go to the
// category encountered first. ok is false for empty input.
func TopCategory(items []Item) (category string, ok bool) {
	return top(GroupTotals(items))
}

func top(g Groups) (string, bool) {
	if g.Len() == 0 {
		return "", false
	}
	best := g.Keys[0]
	for _, k := range g.Keys[1:] {
		if g.Totals[k].GreaterThan(g.Totals[best]) {
			best = k
		}
	}
	return best, true
}

// Summary bundles every aggregate of one input.
type Summary struct {
	Count   int
	Total   decimal.Decimal
	Average decimal.Decimal
	Groups  Groups
	Top     string
	HasTop  bool
}

// Summarize computes all aggregates with a single grouping pass.
func Summarize(items []Item) Summary {
	g := GroupTotals(items)
	total := g.Sum()
	avg := decimal.Zero
	if len(items) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(items))))
	}
	topKey, ok := top(g)
	return Summary{
		Count:   len(items),
		Total:   total,
		Average: avg,
		Groups:  g,
		Top:     topKey,
		HasTop:  ok,
	}
}

// Share is a category's portion of the overall total.
type Share struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// Shares turns group totals into percentages of their sum, in group order.
// Every percentage is zero when the sum is zero.
func Shares(g Groups) []Share {
	total := g.Sum()
	hundred := decimal.NewFromInt(100)
	shares := make([]Share, 0, g.Len())
	for _, k := range g.Keys {
		amount := g.Totals[k]
		pct := decimal.Zero
		if !total.IsZero() {
			pct = amount.Mul(hundred).Div(total)
		}
		shares = append(shares, Share{Category: k, Amount: amount, Percentage: pct})
	}
	return shares
}
