package todotxt

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day or zone component.
// The zero value means "no date"; task date fields use that to encode
// absence so tasks stay plain comparable values.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate returns the given calendar date.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a date in todo.txt form (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}

	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare orders two dates chronologically. An absent date sorts before
// any present one.
func (d Date) Compare(other Date) int {
	switch {
	case d == other:
		return 0
	case d.IsZero():
		return -1
	case other.IsZero():
		return 1
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(d.Month, other.Month)
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	t := d.time().AddDate(0, 0, n)

	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// DaysUntil returns the signed number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.time().Sub(d.time()).Hours() / 24)
}

func (d Date) time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month, accounting
// for leap years.
func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	t := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)

	return t.Day()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
