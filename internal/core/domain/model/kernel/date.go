package kernel

import (
	"time"

	"intimacoes/internal/pkg/errs"
)

const dateLayout = time.DateOnly

// Date is a calendar date without time of day or zone. Batches use it for the estimated
// return date, which only matters at day granularity.
//
// The zero value is the zero date (0001-01-01) and is reported by IsZero.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a date, normalizing out-of-range components the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses the YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return DateOf(t), nil
}

// Year returns the year component.
func (d Date) Year() int { return d.year }

// Month returns the month component.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of month.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{} || d == Date{year: 1, month: time.January, day: 1}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	if d == (Date{}) {
		return time.Time{}
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
