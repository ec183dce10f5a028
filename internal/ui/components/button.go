package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/ui/theme"
)

// KeyButton is a labelled action chip showing its trigger key.
type KeyButton struct {
	Key    string
	Label  string
	Active bool
}

// View renders the button.
func (b KeyButton) View() string {
	key := lipgloss.NewStyle().Bold(true).Render("[" + b.Key + "]")
	if b.Active {
		return lipgloss.NewStyle().
			Foreground(theme.Text).
			Background(theme.Primary).
			Padding(0, 1).
			Render(key + " " + b.Label)
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(key + " " + b.Label)
}

// ButtonRow lays buttons out horizontally.
func ButtonRow(buttons ...KeyButton) string {
	views := make([]string, 0, 2*len(buttons))
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
