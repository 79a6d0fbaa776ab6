package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one of the app's top-level screens.
type Tab int

const (
	TabHome Tab = iota
	TabCalendar
	TabLibrary
	TabMyPage

	tabCount = 4
)

var tabTitles = [tabCount]string{"HOME", "CALENDAR", "LIBRARY", "MY PAGE"}

var tabKeys = [tabCount]string{"home", "calendar", "library", "mypage"}

// Title is the label shown in the tab bar.
func (t Tab) Title() string { return tabTitles[t] }

// Key is the name stored in preferences.
func (t Tab) Key() string { return tabKeys[t] }

// ParseTab maps a preference name back to a tab, defaulting to home.
func ParseTab(s string) Tab {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, k := range tabKeys {
		if k == key {
			return Tab(i)
		}
	}
	return TabHome
}

func (t Tab) next(step int) Tab {
	return Tab(((int(t)+step)%tabCount + tabCount) % tabCount)
}

// renderTabs renders the tab bar.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	parts := make([]string, 0, tabCount)
	for i := 0; i < tabCount; i++ {
		t := Tab(i)
		style := styles.Tab
		if t == m.tab {
			style = styles.ActiveTab
		}
		parts = append(parts, style.Render(t.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// tabAt hit-tests a column on the tab bar using the rendered tab widths.
func (m Model) tabAt(x int) (Tab, bool) {
	styles := m.theme.Styles()
	pos := 0
	for i := 0; i < tabCount; i++ {
		t := Tab(i)
		style := styles.Tab
		if t == m.tab {
			style = styles.ActiveTab
		}
		end := pos + lipgloss.Width(style.Render(t.Title()))
		if x >= pos && x < end {
			return t, true
		}
		pos = end
	}
	return TabHome, false
}
