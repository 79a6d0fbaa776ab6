package calendar

import "time"

// DayCell is one position in a 7-column month grid. Active cells belong to
// the displayed month; inactive cells pad the grid with days of the adjacent
// months.
type DayCell struct {
	Date   Date
	Number int
	Active bool
}

// MonthGrid lays out the month containing anchor as whole weeks. Leading
// cells carry the trailing days of the previous month, trailing cells the
// first days of the next one. The result length is always a multiple of 7.
func MonthGrid(anchor Date, weekStartsOn time.Weekday) []DayCell {
	first := anchor.FirstOfMonth(0)
	daysInMonth := DaysIn(first.Year, first.Month)
	firstWeekday := (int(first.Weekday()) - int(weekStartsOn) + 7) % 7

	prev := first.FirstOfMonth(-1)
	daysInPrevMonth := DaysIn(prev.Year, prev.Month)

	remaining := (7 - (firstWeekday+daysInMonth)%7) % 7
	cells := make([]DayCell, 0, firstWeekday+daysInMonth+remaining)

	for i := 0; i < firstWeekday; i++ {
		n := daysInPrevMonth - firstWeekday + i + 1
		cells = append(cells, DayCell{
			Date:   Date{Year: prev.Year, Month: prev.Month, Day: n},
			Number: n,
		})
	}
	for n := 1; n <= daysInMonth; n++ {
		cells = append(cells, DayCell{
			Date:   Date{Year: first.Year, Month: first.Month, Day: n},
			Number: n,
			Active: true,
		})
	}
	next := first.FirstOfMonth(1)
	for n := 1; n <= remaining; n++ {
		cells = append(cells, DayCell{
			Date:   Date{Year: next.Year, Month: next.Month, Day: n},
			Number: n,
		})
	}
	return cells
}

// WeekCells wraps dates as selectable cells for the week strip.
func WeekCells(dates []Date) []DayCell {
	cells := make([]DayCell, len(dates))
	for i, d := range dates {
		cells[i] = DayCell{Date: d, Number: d.Day, Active: true}
	}
	return cells
}
