package model

import (
	"bytes"
	"encoding/json"
	"sync/atomic"
	"time"
)

var location atomic.Pointer[time.Location]

// SetLocation sets the zone zone-less upstream date-times are read in. It
// must match the zone labels and statuses are computed in; nil means
// time.Local.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	location.Store(loc)
}

// Location returns the zone set by SetLocation.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	return time.Local
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

const dateOnlyLayout = "2006-01-02"

// DateTime is a lenient upstream timestamp. Values that cannot be parsed are
// not rejected: Raw keeps the original text and Time stays zero, so a bad
// date shows up as a blank label instead of failing the whole list.
type DateTime struct {
	time.Time
	Raw string
	// DateOnly marks values that carried no clock, such as birth dates.
	DateOnly bool
}

// ParseDateTime parses s with the layouts the upstream API is known to emit.
// Date-only values are read as UTC midnight; zone-less date-times in Location().
func ParseDateTime(s string) DateTime {
	return ParseDateTimeIn(s, Location())
}

// ParseDateTimeIn is ParseDateTime with an explicit zone for zone-less values.
func ParseDateTimeIn(s string, loc *time.Location) DateTime {
	d := DateTime{Raw: s}
	if s == "" {
		return d
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		d.Time = t
		d.DateOnly = true
		return d
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			d.Time = t
			return d
		}
	}
	return d
}

// NewDateTime wraps an already-parsed time.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t, Raw: t.Format(time.RFC3339)}
}

// Valid reports whether the value parsed into a real instant.
func (d DateTime) Valid() bool {
	return !d.Time.IsZero()
}

// UnmarshalJSON implements json.Unmarshaler. Only non-string, non-null input
// is an error; any string is accepted.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = DateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = ParseDateTime(s)
	return nil
}

// MarshalJSON echoes the upstream text so clients see exactly what the API sent.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.Raw == "" {
		if d.Valid() {
			return json.Marshal(d.Time.Format(time.RFC3339))
		}
		return []byte("null"), nil
	}
	return json.Marshal(d.Raw)
}
