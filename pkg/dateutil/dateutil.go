// Package dateutil provides calendar-month arithmetic on ISO dates.
//
// All dates are normalized to 12:00 UTC so that conversions through local
// time zones never move a value onto a neighbouring day.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// ISOLayout is the wire format for dates in scenario files and results.
	ISOLayout = "2006-01-02"
	// MonthLayout is the format of month keys.
	MonthLayout = "2006-01"

	fixedHour = 12
)

// Date is a calendar day anchored at noon UTC.
type Date struct {
	time.Time
}

// New returns the Date for the given calendar day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, fixedHour, 0, 0, 0, time.UTC)}
}

// FromTime drops the time-of-day and zone of t.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// ParseISO parses a YYYY-MM-DD string.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse(ISOLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParseISO is ParseISO for literals in tests and tables.
func MustParseISO(s string) Date {
	d, err := ParseISO(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(ISOLayout)
}

// MarshalText implements encoding.TextMarshaler (used by JSON and YAML).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	s := strings.Trim(string(text), `"`)
	if s == "" {
		*d = Date{}
		return nil
	}
	// Accept full timestamps too; only the calendar day is kept.
	if len(s) > len(ISOLayout) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			*d = FromTime(t)
			return nil
		}
	}
	parsed, err := ParseISO(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON emits the date as a quoted ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted ISO string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	return d.UnmarshalText(data)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, fixedHour, 0, 0, 0, time.UTC).Day()
}

// AddMonths moves d by n calendar months, clamping the day to the end of
// the target month when it is shorter (Jan 31 + 1 month = Feb 28 or 29).
func AddMonths(d Date, n int) Date {
	total := int(d.Month()) - 1 + n
	year := d.Year() + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	m := time.Month(month + 1)
	day := d.Day()
	if last := DaysIn(year, m); day > last {
		day = last
	}
	return New(year, m, day)
}

// DiffMonths returns the signed number of calendar months from b to a.
// Days are ignored, so two dates in the same month differ by zero.
func DiffMonths(a, b Date) int {
	return (a.Year()-b.Year())*12 + int(a.Month()) - int(b.Month())
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d Date) Date {
	return New(d.Year(), d.Month(), 1)
}

// MonthKey returns the YYYY-MM key for d.
func MonthKey(d Date) string {
	return d.Format(MonthLayout)
}

// GenerateMonthRange lists month keys from start to end, both inclusive.
// It returns nil when end precedes start.
func GenerateMonthRange(start, end Date) []string {
	n := DiffMonths(end, start)
	if n < 0 {
		return nil
	}
	keys := make([]string, 0, n+1)
	first := StartOfMonth(start)
	for i := 0; i <= n; i++ {
		keys = append(keys, MonthKey(AddMonths(first, i)))
	}
	return keys
}

// IsDateInPeriod reports whether date lies in [start, end]. A nil end leaves
// the period open.
func IsDateInPeriod(date, start Date, end *Date) bool {
	if date.Before(start) {
		return false
	}
	if end != nil && date.After(*end) {
		return false
	}
	return true
}

// IsMonthInPeriod is the month-granular form of IsDateInPeriod: a period that
// touches any day of date's month counts as active for that month.
func IsMonthInPeriod(date, start Date, end *Date) bool {
	if DiffMonths(date, start) < 0 {
		return false
	}
	if end != nil && DiffMonths(date, *end) > 0 {
		return false
	}
	return true
}
