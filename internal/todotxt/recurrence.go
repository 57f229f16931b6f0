package todotxt

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the calendar unit of a recurrence interval.
type Unit byte

// Recurrence interval units.
const (
	UnitDay   Unit = 'd'
	UnitWeek  Unit = 'w'
	UnitMonth Unit = 'm'
	UnitYear  Unit = 'y'
)

// Recurrence describes a task's rec: descriptor. Strict recurrences
// (written with a leading "+") advance from the due date of the finished
// instance; relative ones advance from its completion date.
type Recurrence struct {
	Count  int
	Unit   Unit
	Strict bool
}

// ParseRecurrence parses a rec: tag value such as "1d", "2w" or "+3m".
func ParseRecurrence(s string) (Recurrence, error) {
	var rec Recurrence

	spec := s
	if rest, ok := strings.CutPrefix(spec, "+"); ok {
		rec.Strict = true
		spec = rest
	}

	if len(spec) < 2 {
		return Recurrence{}, fmt.Errorf("%w: %q", ErrBadRecurrence, s)
	}

	unit := Unit(spec[len(spec)-1])
	switch unit {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		rec.Unit = unit
	default:
		return Recurrence{}, fmt.Errorf("%w: %q", ErrBadRecurrence, s)
	}

	count, err := strconv.Atoi(spec[:len(spec)-1])
	if err != nil || count < 0 {
		return Recurrence{}, fmt.Errorf("%w: %q", ErrBadRecurrence, s)
	}

	rec.Count = count

	return rec, nil
}

// String formats the recurrence as a rec: tag value.
func (r Recurrence) String() string {
	prefix := ""
	if r.Strict {
		prefix = "+"
	}

	return fmt.Sprintf("%s%d%c", prefix, r.Count, byte(r.Unit))
}

// Apply returns the date one recurrence interval after d.
//
// Month and year steps normalize the month index modulo 12 and carry
// years; a day-of-month that does not exist in the resulting month is
// clamped to that month's last valid day (Jan 30 + 1m = Feb 28).
func (r Recurrence) Apply(d Date) Date {
	switch r.Unit {
	case UnitDay:
		return d.AddDays(r.Count)
	case UnitWeek:
		return d.AddDays(7 * r.Count)
	case UnitMonth:
		month0 := d.Month - 1 + r.Count

		return clampDay(d.Year+month0/12, month0%12+1, d.Day)
	case UnitYear:
		return clampDay(d.Year+r.Count, d.Month, d.Day)
	default:
		return d
	}
}

func clampDay(year, month, day int) Date {
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return Date{Year: year, Month: month, Day: day}
}
