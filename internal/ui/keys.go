package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	JumpTab    key.Binding

	// Calendar
	PrevPage key.Binding
	NextPage key.Binding
	Collapse key.Binding
	Expand   key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Jump to tab"),
		),

		// Calendar
		PrevPage: key.NewBinding(
			key.WithKeys("left", "<"),
			key.WithHelp("←", "Previous week/month"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", ">"),
			key.WithHelp("→", "Next week/month"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Collapse to week"),
		),
		Expand: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Expand to month"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Go to today"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Expand, k.Today, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Calendar
		{k.PrevPage, k.NextPage, k.Collapse, k.Expand},
		{k.PrevDay, k.NextDay, k.Today},
		// Tabs
		{k.Tab, k.ShiftTab, k.JumpTab},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
