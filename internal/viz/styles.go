package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are derived from a Theme so the player can switch at runtime.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Playing lipgloss.Style
	Paused  lipgloss.Style
	Warning lipgloss.Style
	Trail   lipgloss.Style
	Graph   lipgloss.Style
	KeyHint lipgloss.Style
	Sidebar lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(8),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Playing: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Trail:   lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 2),
		Graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(sidebarWidth),
	}
}

// ProgressBar renders the fraction done as a bar of the given width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
