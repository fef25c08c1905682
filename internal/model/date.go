package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the on-disk and command line form of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
// The zero value is not a valid date; use IsZero to detect it.
type Date struct {
	t time.Time
}

// NewDate returns the date for year, month and day. Out of range values are
// normalized the same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// Year returns the year of d.
func (d Date) Year() int { return d.t.Year() }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of the month of d.
func (d Date) Day() int { return d.t.Day() }

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns d shifted by n months, normalized like time.AddDate.
func (d Date) AddMonths(n int) Date {
	return Date{t: d.t.AddDate(0, n, 0)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }

// String returns d formatted as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// MarshalJSON encodes d as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekBounds returns the Monday and Sunday of the week containing d.
// Weeks always start on Monday.
func WeekBounds(d Date) (Date, Date) {
	diff := (int(d.Weekday()) - int(time.Monday) + 7) % 7
	start := d.AddDays(-diff)
	return start, start.AddDays(6)
}

// MonthBounds returns the first and last day of the month containing d.
func MonthBounds(d Date) (Date, Date) {
	start := NewDate(d.Year(), d.Month(), 1)
	return start, start.AddMonths(1).AddDays(-1)
}

// DateRange restricts a query to dates between From and To inclusive.
// A nil endpoint leaves that side unbounded.
type DateRange struct {
	From *Date
	To   *Date
}

// Between returns a range bounded on both sides.
func Between(from, to Date) DateRange {
	return DateRange{From: &from, To: &to}
}

// Contains reports whether d falls inside r.
func (r DateRange) Contains(d Date) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}
