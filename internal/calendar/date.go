package calendar

import (
	"fmt"
	"math"
	"time"
)

// Date is a single calendar day in the host's local calendar.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate normalizes y/m/d the way time.Date does (Jan 32 becomes Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns local midnight of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// noon is used for arithmetic so DST transitions never shift the day.
func (d Date) noon() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// FirstOfMonth returns day 1 of the month n months away from d.
func (d Date) FirstOfMonth(n int) Date {
	return NewDate(d.Year, d.Month+time.Month(n), 1)
}

// Weekday returns the day of the week (Sunday = 0).
func (d Date) Weekday() time.Weekday {
	return d.noon().Weekday()
}

func (d Date) Equal(o Date) bool { return d == o }

func (d Date) Before(o Date) bool { return d.compare(o) < 0 }

func (d Date) After(o Date) bool { return d.compare(o) > 0 }

func (d Date) IsZero() bool { return d == Date{} }

// SameMonth reports whether d and o fall in the same month of the same year.
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

func (d Date) compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return int(d.Month) - int(o.Month)
	default:
		return d.Day - o.Day
	}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthLabel formats the month of d as "2006 January".
func (d Date) MonthLabel() string {
	return d.noon().Format("2006 January")
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// StartOfWeek returns the first day of the week containing d.
func StartOfWeek(d Date, weekStartsOn time.Weekday) Date {
	back := (int(d.Weekday()) - int(weekStartsOn) + 7) % 7
	return d.AddDays(-back)
}

// EndOfWeek returns the last day of the week containing d.
func EndOfWeek(d Date, weekStartsOn time.Weekday) Date {
	return StartOfWeek(d, weekStartsOn).AddDays(6)
}

// DaysBetween returns every day from start through end inclusive. It returns
// nil when end is before start.
func DaysBetween(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}
	n := daysFrom(start, end) + 1
	out := make([]Date, n)
	for i := range out {
		out[i] = start.AddDays(i)
	}
	return out
}

// daysFrom returns the signed number of days from a to b.
func daysFrom(a, b Date) int {
	return int(math.Round(b.noon().Sub(a.noon()).Hours() / 24))
}

// Clock supplies the current day.
type Clock interface {
	Today() Date
}

// SystemClock reads the host's local time.
type SystemClock struct{}

func (SystemClock) Today() Date { return DateOf(time.Now()) }

// FixedClock always reports the same day.
type FixedClock Date

func (c FixedClock) Today() Date { return Date(c) }
