package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stride/internal/calendar"
	"github.com/five82/stride/internal/schedule"
)

// renderMain renders the tab bar, the active tab and the footer.
func (m Model) renderMain() string {
	var lines []string
	lines = append(lines, m.renderTabs(), "")

	switch m.tab {
	case TabHome:
		lines = append(lines, m.renderHome()...)
	case TabCalendar:
		lines = append(lines, m.renderMonthTab()...)
	default:
		lines = append(lines, m.renderPlaceholder())
	}

	body := strings.Join(lines, "\n")
	footer := m.renderFooter()
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

// renderHome renders the expandable calendar and the workouts of the focused
// day.
func (m Model) renderHome() []string {
	styles := m.theme.Styles()
	e := m.home.engine
	st := e.State()

	label := st.Label.String()
	if st.Mode == calendar.ModeMonth {
		label = st.Current.MonthLabel()
	}

	rows := m.homeRows()
	lines := []string{
		indent(styles.Header.Render(label)),
		indent(m.renderWeekdays(e.Options().WeekStartsOn, false)),
	}
	lines = append(lines, m.renderGrid(m.home, rows, false)...)

	handle := styles.Handle
	if e.PanActive() {
		handle = styles.HandleActive
	}
	lines = append(lines, indent(lipgloss.PlaceHorizontal(gridWidth, lipgloss.Center, handle.Render("━━━━━"))), "")

	day := e.Today()
	if st.HasSelection {
		day = st.Selected
	}
	return append(lines, m.renderWorkouts(day)...)
}

// renderMonthTab renders the month grid screen.
func (m Model) renderMonthTab() []string {
	styles := m.theme.Styles()
	e := m.month.engine
	st := e.State()

	lines := []string{
		indent(styles.Header.Render(st.Current.MonthLabel()) + "  " + styles.FaintText.Render("< >")),
		indent(m.renderWeekdays(e.Options().WeekStartsOn, true)),
	}
	grid := weeks(e.MonthGrid())
	lines = append(lines, m.renderGrid(m.month, grid, true)...)
	lines = append(lines, "")

	first, last := st.Current.FirstOfMonth(0), st.Current.FirstOfMonth(1).AddDays(-1)
	count := 0
	for _, ws := range m.schedule.Between(first, last) {
		count += len(ws)
	}
	summary := fmt.Sprintf("%d workouts this month", count)
	if count == 1 {
		summary = "1 workout this month"
	}
	return append(lines, indent(styles.MutedText.Render(summary)))
}

func (m Model) renderPlaceholder() string {
	styles := m.theme.Styles()
	text := styles.MutedText.Render(m.tab.Title() + " is coming soon")
	return lipgloss.Place(m.width, max(1, m.height-3), lipgloss.Center, lipgloss.Center, text)
}

// renderWeekdays renders the two-letter weekday header.
func (m Model) renderWeekdays(weekStartsOn time.Weekday, weekend bool) string {
	styles := m.theme.Styles()
	var b strings.Builder
	for _, wd := range weekdayNames(weekStartsOn) {
		style := styles.MutedText
		if weekend {
			style = styles.WeekdayStyle(wd)
		}
		name := wd.String()[:2]
		b.WriteString(style.Render(fmt.Sprintf("%*s", cellWidth-2, name)))
		b.WriteString("  ")
	}
	return b.String()
}

// renderGrid renders week rows, shifted by the pane's horizontal offset.
func (m Model) renderGrid(p pane, rows [][]calendar.DayCell, weekend bool) []string {
	if len(rows) == 0 {
		return nil
	}
	first := rows[0][0].Date
	last := rows[len(rows)-1][len(rows[len(rows)-1])-1].Date
	marks := m.schedule.Between(first, last)

	cols := int(math.Round(p.offset() / m.gesture.ColumnUnits))
	st := p.engine.State()
	today := p.engine.Today()

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := m.renderRow(row, st, today, marks, weekend)
		lines = append(lines, indent(shiftLine(line, cols, gridWidth)))
	}
	return lines
}

func (m Model) renderRow(row []calendar.DayCell, st calendar.ViewState, today calendar.Date, marks map[calendar.Date][]schedule.Workout, weekend bool) string {
	styles := m.theme.Styles()
	var b strings.Builder
	for _, c := range row {
		style := styles.Text
		if weekend {
			style = styles.WeekdayStyle(c.Date.Weekday())
		}
		switch {
		case !c.Active:
			style = styles.FaintText
		case st.HasSelection && c.Date.Equal(st.Selected):
			style = styles.Selected
			if c.Date.Equal(today) {
				style = style.Underline(true)
			}
		case c.Date.Equal(today):
			style = styles.Today
		}

		mark := " "
		if c.Active && len(marks[c.Date]) > 0 {
			mark = styles.SuccessText.Render("•")
		}
		b.WriteString(" ")
		b.WriteString(style.Render(fmt.Sprintf("%2d", c.Number)))
		b.WriteString(mark)
		b.WriteString(" ")
	}
	return b.String()
}

// renderWorkouts lists the workouts planned for day.
func (m Model) renderWorkouts(day calendar.Date) []string {
	styles := m.theme.Styles()
	lines := []string{
		indent(styles.AccentText.Bold(true).Render("Workouts") + styles.FaintText.Render(" · "+day.Time().Format("Mon, 02 Jan 2006"))),
	}
	workouts := m.schedule.On(day)
	if len(workouts) == 0 {
		return append(lines, indent(styles.MutedText.Render("  Rest day")))
	}
	for _, w := range workouts {
		line := "  " + styles.SuccessText.Render("•") + " " + styles.Text.Render(w.Name)
		if w.Source != "" {
			line += styles.FaintText.Render("  " + w.Source)
		}
		lines = append(lines, indent(line))
	}
	return lines
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	h := m.help
	h.Styles.ShortKey = styles.WarningText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText
	return styles.Footer.Render(h.View(m.keys))
}

func indent(s string) string {
	return strings.Repeat(" ", gridLeft) + s
}
