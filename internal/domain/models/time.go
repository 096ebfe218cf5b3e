package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DayLayout is the calendar date layout used in forms and on the wire.
	DayLayout = "2006-01-02"
	// naiveLayout is how the backend serializes datetimes without a zone.
	naiveLayout = "2006-01-02T15:04:05.999999"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	naiveLayout,
	"2006-01-02 15:04:05.999999",
	DayLayout,
}

// ParseTimestamp accepts RFC 3339, the backend's naive ISO-8601 form, or a bare date.
// Values without a zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// Timestamp is a point in time that tolerates the backend's timestamp formats.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON writes RFC 3339 in UTC, or null for the zero value.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// DayString formats the calendar date part, or "" when unset.
func (t Timestamp) DayString() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DayLayout)
}

// Day is a calendar date serialized as YYYY-MM-DD.
type Day struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DayLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Day) UnmarshalJSON(data []byte) error {
	var ts Timestamp
	if err := ts.UnmarshalJSON(data); err != nil {
		return err
	}
	d.Time = ts.Time
	return nil
}

// String returns the YYYY-MM-DD form, or "" when unset.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DayLayout)
}
