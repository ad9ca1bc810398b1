// Package datetime provides a minute-precision DateTime without a time zone.
// Several input layouts are accepted; output always uses DD-MM-YYYY HH:mm.
package datetime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layout is the single output layout, also the only layout used in the data file.
const Layout = "02-01-2006 15:04"

// Format pairs a Go layout with the pattern shown to users.
type Format struct {
	Layout  string
	Pattern string
}

// InputFormats lists accepted input layouts in the order they are tried.
var InputFormats = []Format{
	{Layout: Layout, Pattern: "DD-MM-YYYY HH:mm"},
	{Layout: "2006-01-02 15:04", Pattern: "YYYY-MM-DD HH:mm"},
	{Layout: "02-Jan-2006 15:04", Pattern: "DD-Mon-YYYY HH:mm"},
}

// DateTime represents a calendar date and wall-clock time, truncated to the minute.
type DateTime struct {
	time.Time
}

// New creates a DateTime from its components.
func New(year int, month time.Month, day, hour, minute int) DateTime {
	return DateTime{time.Date(year, month, day, hour, minute, 0, 0, time.UTC)}
}

// Parse tries every InputFormats layout in order and returns the first match.
func Parse(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, f := range InputFormats {
		if !fullWidth(s, f.Layout) {
			continue
		}
		if t, err := time.Parse(f.Layout, s); err == nil {
			return DateTime{t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("unsupported date-time %q: expected %s", s, patterns())
}

// ParseStored parses s using only Layout, the format written to disk.
func ParseStored(s string) (DateTime, error) {
	t, err := time.Parse(Layout, s)
	if err != nil || !fullWidth(s, Layout) {
		return DateTime{}, fmt.Errorf("invalid stored date-time %q: expected DD-MM-YYYY HH:mm", s)
	}
	return DateTime{t}, nil
}

// String returns the date-time as DD-MM-YYYY HH:mm.
func (d DateTime) String() string {
	return d.Format(Layout)
}

// Equal reports whether both values denote the same minute.
func (d DateTime) Equal(other DateTime) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseStored(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// fullWidth reports whether s has as many bytes as layout. time.Parse takes
// "9:00" for a "15:04" layout; every field here must be zero-padded.
func fullWidth(s, layout string) bool {
	return len(s) == len(layout)
}

func patterns() string {
	names := make([]string, len(InputFormats))
	for i, f := range InputFormats {
		names[i] = f.Pattern
	}
	return strings.Join(names, ", ")
}
