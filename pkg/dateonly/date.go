// Package dateonly provides a calendar date without time of day that can be
// stored through database/sql and serialised as yyyy-MM-dd.
package dateonly

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Date wraps civil.Date with sql and text marshalling.
type Date struct {
	civil.Date
}

// New returns the date for year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

// Of returns the date portion of t in t's location.
func Of(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

// Parse parses a yyyy-MM-dd string.
func Parse(s string) (Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("dateonly: parse %q: %w", s, err)
	}
	return Date{d}, nil
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Date == civil.Date{}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return d.Date.In(time.UTC)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Of(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("dateonly: cannot scan %T", src)
	}
}

func (d *Date) scanString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}
	if len(s) > 10 {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			*d = Of(t)
			return nil
		}
		s = s[:10]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return d.Date.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(data []byte) error {
	return d.scanString(string(data))
}

// GormDataType reports the column type for gorm migrations.
func (Date) GormDataType() string {
	return "date"
}
