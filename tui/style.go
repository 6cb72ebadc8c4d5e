package tui

import "github.com/charmbracelet/lipgloss"

// Style controls the composer's rendering. Mark, link and selection styles
// are layered over Text in that order.
type Style struct {
	Text          lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style
	Link          lipgloss.Style

	Bullet      lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style

	Toolbar       lipgloss.Style
	ToolbarActive lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:          lipgloss.NewStyle(),
		Bold:          lipgloss.NewStyle().Bold(true),
		Italic:        lipgloss.NewStyle().Italic(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		Code:          lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236")),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),

		Bullet:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),

		Toolbar:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("238")),
		ToolbarActive: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Bold(true),
	}
}
