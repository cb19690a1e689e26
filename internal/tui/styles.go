package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibscroll/internal/ui"
)

// Styles are rebuilt from the ui theme by initStyles.
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	dimStyle      lipgloss.Style
	accentStyle   lipgloss.Style
	listStyle     lipgloss.Style
	indexStyle    lipgloss.Style
	valueStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	overflowStyle lipgloss.Style
	footerStyle   lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds every style from the current ui theme.
// Run calls it again after the theme has been chosen.
func initStyles() {
	t := ui.CurrentTUITheme()

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	listStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	indexStyle = lipgloss.NewStyle().Foreground(t.Index)
	valueStyle = lipgloss.NewStyle().Foreground(t.Value)
	selectedStyle = lipgloss.NewStyle().Background(t.Selected).Bold(true)
	overflowStyle = lipgloss.NewStyle().Foreground(t.Overflow).Bold(true)
	footerStyle = lipgloss.NewStyle().Padding(0, 1)
}
