package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles of the search surface.
type Styles struct {
	Title    lipgloss.Style
	Hint     lipgloss.Style
	Notice   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Box      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Hint:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Row:      lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("42")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
	}
}
