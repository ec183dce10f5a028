package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/ui/theme"
)

// Toggle renders a settings row with an on/off or choice value.
type Toggle struct {
	Label    string
	Value    string
	On       bool
	Selected bool
}

// View renders the toggle row.
func (t Toggle) View(width int) string {
	label := theme.Unselected.Render("    " + t.Label)
	if t.Selected {
		label = theme.Selected.Render("  ▸ " + t.Label)
	}

	valueStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.On {
		valueStyle = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	}
	value := valueStyle.Render(t.Value)

	gap := width - lipgloss.Width(label) - lipgloss.Width(value)
	if gap < 2 {
		gap = 2
	}
	return label + lipgloss.NewStyle().Width(gap).Render("") + value
}

// OnOff returns the display value for a boolean setting.
func OnOff(on bool) string {
	if on {
		return "● on"
	}
	return "○ off"
}
