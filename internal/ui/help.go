package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpTitles = []string{"Calendar", "Days", "Tabs", "General"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	// Title
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		b.WriteString(styles.AccentText.Bold(true).Render(helpTitles[i]))
		b.WriteString("\n")
		for _, binding := range group {
			b.WriteString(renderHelpItem(styles, binding))
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Mouse"))
	b.WriteString("\n")
	b.WriteString(renderHelpItem(styles, key.NewBinding(key.WithHelp("click", "Select day or tab"))))
	b.WriteString(renderHelpItem(styles, key.NewBinding(key.WithHelp("drag ↕", "Expand/collapse"))))
	b.WriteString(renderHelpItem(styles, key.NewBinding(key.WithHelp("drag ↔", "Change week/month"))))

	modal := styles.Modal.Width(44).Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func renderHelpItem(styles Styles, binding key.Binding) string {
	h := binding.Help()
	return styles.WarningText.Width(12).Render(h.Key) + styles.Text.Render(h.Desc) + "\n"
}
