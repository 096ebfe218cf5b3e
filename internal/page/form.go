package page

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
)

// FormError lists every field that failed to parse. Nothing is sent to the
// backend when a form carries errors.
type FormError struct {
	Problems []string
}

func (e *FormError) Error() string {
	return strings.Join(e.Problems, ", ")
}

// Form reads typed values out of submitted form data and collects problems
// as it goes. Values are trimmed.
type Form struct {
	values url.Values
	errs   []string
}

// NewForm wraps submitted values.
func NewForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{values: values}
}

// FormFrom builds a form from prefill values, skipping empty ones.
func FormFrom(values map[string]string) *Form {
	f := NewForm(nil)
	for k, v := range values {
		if v != "" {
			f.values.Set(k, v)
		}
	}
	return f
}

// Value returns the trimmed raw value of name.
func (f *Form) Value(name string) string {
	return strings.TrimSpace(f.values.Get(name))
}

// Set replaces the raw value of name.
func (f *Form) Set(name, value string) {
	f.values.Set(name, value)
}

func (f *Form) fail(msg string) {
	f.errs = append(f.errs, msg)
}

// String returns a required text value.
func (f *Form) String(name, label string) string {
	v := f.Value(name)
	if v == "" {
		f.fail(label + " is required")
	}
	return v
}

// OptionalString returns nil for an empty value.
func (f *Form) OptionalString(name string) *string {
	v := f.Value(name)
	if v == "" {
		return nil
	}
	return &v
}

// Float returns a required number.
func (f *Form) Float(name, label string) float64 {
	v := f.Value(name)
	if v == "" {
		f.fail(label + " is required")
		return 0
	}
	n, ok := parseFloat(v)
	if !ok {
		f.fail(label + " must be a number")
	}
	return n
}

// OptionalFloat returns nil for an empty value. Zero is a value, not absence.
func (f *Form) OptionalFloat(name, label string) *float64 {
	v := f.Value(name)
	if v == "" {
		return nil
	}
	n, ok := parseFloat(v)
	if !ok {
		f.fail(label + " must be a number")
		return nil
	}
	return &n
}

func parseFloat(v string) (float64, bool) {
	v = strings.ReplaceAll(strings.TrimPrefix(v, "$"), ",", "")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Bool reads a checkbox.
func (f *Form) Bool(name string) bool {
	switch strings.ToLower(f.Value(name)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Date returns a required YYYY-MM-DD date.
func (f *Form) Date(name, label string) models.Timestamp {
	v := f.Value(name)
	if v == "" {
		f.fail(label + " is required")
		return models.Timestamp{}
	}
	t, err := time.Parse(models.DayLayout, v)
	if err != nil {
		f.fail(label + " must be a date")
		return models.Timestamp{}
	}
	return models.NewTimestamp(t)
}

// OptionalDate returns nil for an empty value.
func (f *Form) OptionalDate(name, label string) *models.Timestamp {
	if f.Value(name) == "" {
		return nil
	}
	ts := f.Date(name, label)
	if ts.IsZero() {
		return nil
	}
	return &ts
}

// Day returns an optional calendar date.
func (f *Form) Day(name, label string) *models.Day {
	ts := f.OptionalDate(name, label)
	if ts == nil {
		return nil
	}
	return &models.Day{Time: ts.Time}
}

// Enum returns a required value that must be one of options.
func (f *Form) Enum(name, label string, options []models.Option) string {
	v := f.Value(name)
	if v == "" {
		f.fail(label + " is required")
		return ""
	}
	if !models.ValidOption(options, v) {
		f.fail(label + " is not a valid choice")
		return ""
	}
	return v
}

// Err returns a *FormError when any read failed.
func (f *Form) Err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return &FormError{Problems: append([]string(nil), f.errs...)}
}

// Check records msg as a problem unless ok.
func (f *Form) Check(ok bool, msg string) {
	if !ok {
		f.fail(msg)
	}
}
