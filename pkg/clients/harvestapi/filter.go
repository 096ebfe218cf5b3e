package harvestapi

import (
	"strconv"
	"time"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
)

// ListFilter narrows list calls. Zero fields are not sent; the backend
// defaults to skip=0, limit=100.
type ListFilter struct {
	Skip      int
	Limit     int
	StartDate time.Time
	EndDate   time.Time
	// Category applies to expenses only.
	Category string
}

// Query renders the filter as query parameters.
func (f ListFilter) Query() map[string]string {
	q := make(map[string]string)
	if f.Skip > 0 {
		q["skip"] = strconv.Itoa(f.Skip)
	}
	if f.Limit > 0 {
		q["limit"] = strconv.Itoa(f.Limit)
	}
	DateRange{Start: f.StartDate, End: f.EndDate}.apply(q)
	if f.Category != "" {
		q["category"] = f.Category
	}
	return q
}

// DateRange bounds dashboard analytics. Zero bounds let the backend default
// to the last 30 days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Query renders the range as query parameters.
func (r DateRange) Query() map[string]string {
	q := make(map[string]string)
	r.apply(q)
	return q
}

func (r DateRange) apply(q map[string]string) {
	if !r.Start.IsZero() {
		q["start_date"] = r.Start.Format(models.DayLayout)
	}
	if !r.End.IsZero() {
		q["end_date"] = r.End.Format(models.DayLayout)
	}
}
