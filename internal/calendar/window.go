package calendar

import "time"

// Direction selects which edge of a Window to grow.
type Direction int

const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

const (
	// DaysPerPage is the width of one week-strip page.
	DaysPerPage = 7
	// ExtendDays is how many days a single extension adds.
	ExtendDays = 14

	initialSpanDays = 14
)

// Window is the materialized, gapless range of days available for week
// paging. It only ever grows.
type Window struct {
	dates []Date
}

// NewWindow covers whole weeks from two weeks before today through two weeks
// after it.
func NewWindow(today Date, weekStartsOn time.Weekday) Window {
	start := StartOfWeek(today.AddDays(-initialSpanDays), weekStartsOn)
	end := EndOfWeek(today.AddDays(initialSpanDays), weekStartsOn)
	return Window{dates: DaysBetween(start, end)}
}

func (w Window) Len() int { return len(w.dates) }

// At returns the date at index i. It panics when i is out of range.
func (w Window) At(i int) Date { return w.dates[i] }

func (w Window) First() Date { return w.dates[0] }

func (w Window) Last() Date { return w.dates[len(w.dates)-1] }

// Dates returns a copy of the window's days.
func (w Window) Dates() []Date {
	out := make([]Date, len(w.dates))
	copy(out, w.dates)
	return out
}

// Slice returns a copy of dates [from, from+n), clipped to the window.
func (w Window) Slice(from, n int) []Date {
	if from < 0 {
		from = 0
	}
	to := from + n
	if to > len(w.dates) {
		to = len(w.dates)
	}
	if from >= to {
		return nil
	}
	out := make([]Date, to-from)
	copy(out, w.dates[from:to])
	return out
}

// IndexOf returns the index of d, or false when d is outside the window.
func (w Window) IndexOf(d Date) (int, bool) {
	if len(w.dates) == 0 || d.Before(w.First()) || d.After(w.Last()) {
		return 0, false
	}
	return daysFrom(w.First(), d), true
}

// Extend grows the window by ExtendDays on the given edge and returns the
// number of days added.
func (w *Window) Extend(dir Direction) int {
	if dir == Forward {
		last := w.Last()
		w.dates = append(w.dates, DaysBetween(last.AddDays(1), last.AddDays(ExtendDays))...)
		return ExtendDays
	}
	first := w.First()
	head := DaysBetween(first.AddDays(-ExtendDays), first.AddDays(-1))
	w.dates = append(head, w.dates...)
	return ExtendDays
}
