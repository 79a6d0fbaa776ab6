package ui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/stride/internal/calendar"
)

// Screen geometry. Every tab renders the tab bar on tabBarRow; the calendar
// surfaces place their label, weekday header and grid rows below it.
const (
	tabBarRow  = 0
	labelRow   = 2
	weekdayRow = 3
	gridTop    = 4

	// gridLeft is the left margin of the calendar grid in columns.
	gridLeft = 2

	// cellWidth is the width of one day cell: a right-aligned day number,
	// a workout mark and a gap.
	cellWidth = 5
	gridWidth = cellWidth * 7

	maxWeekRows = 6
)

// Timing constants.
const (
	// ClockInterval is how often the clock is checked for day rollover.
	ClockInterval = time.Minute

	// FrameRate is the animation frame rate.
	FrameRate = 60
)

// visibleRows maps a calendar height onto the number of week rows to draw:
// one row when closed, maxRows when fully open.
func visibleRows(height, closed, open float64, maxRows int) int {
	if maxRows <= 1 || open <= closed {
		return 1
	}
	p := (height - closed) / (open - closed)
	p = math.Min(math.Max(p, 0), 1)
	return 1 + int(math.Round(p*float64(maxRows-1)))
}

// weeks splits cells into rows of seven.
func weeks(cells []calendar.DayCell) [][]calendar.DayCell {
	rows := make([][]calendar.DayCell, 0, len(cells)/7)
	for i := 0; i+7 <= len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

// cellAt hit-tests a screen position against rows drawn from gridTop.
func cellAt(rows [][]calendar.DayCell, x, y int) (calendar.DayCell, bool) {
	r := y - gridTop
	if r < 0 || r >= len(rows) || x < gridLeft {
		return calendar.DayCell{}, false
	}
	c := (x - gridLeft) / cellWidth
	if c >= len(rows[r]) {
		return calendar.DayCell{}, false
	}
	return rows[r][c], true
}

// inCalendar reports whether y falls on the calendar surface: label, weekday
// header, the drawn rows or the drag handle just below them.
func inCalendar(rowCount, y int) bool {
	return y >= labelRow && y <= gridTop+rowCount
}

// shiftLine slides a rendered line of the given width by cols columns,
// clipping whatever leaves the area.
func shiftLine(line string, cols, width int) string {
	switch {
	case cols == 0:
		return line
	case cols >= width || -cols >= width:
		return strings.Repeat(" ", width)
	case cols > 0:
		return strings.Repeat(" ", cols) + ansi.Truncate(line, width-cols, "")
	default:
		cut := ansi.Cut(line, -cols, width)
		return cut + strings.Repeat(" ", max(0, width-ansi.StringWidth(cut)))
	}
}

// weekdayNames returns two-letter day names starting at weekStartsOn.
func weekdayNames(weekStartsOn time.Weekday) []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(weekStartsOn) + i) % 7)
	}
	return days
}
