package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/pinyin"
)

// Color palette: ink and cinnabar on dark paper.
var (
	Primary   = lipgloss.Color("#DC2626") // Cinnabar
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Gold
	Success   = lipgloss.Color("#22C55E") // Jade
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#FACC15") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Tone colors follow the usual classroom scheme.
var (
	ToneFirst   = lipgloss.Color("#EF4444")
	ToneSecond  = lipgloss.Color("#F59E0B")
	ToneThird   = lipgloss.Color("#22C55E")
	ToneFourth  = lipgloss.Color("#3B82F6")
	ToneNeutral = lipgloss.Color("#94A3B8")
)

// ToneColor returns the color for tone t.
func ToneColor(t pinyin.Tone) color.Color {
	switch t {
	case pinyin.ToneFirst:
		return ToneFirst
	case pinyin.ToneSecond:
		return ToneSecond
	case pinyin.ToneThird:
		return ToneThird
	case pinyin.ToneFourth:
		return ToneFourth
	default:
		return ToneNeutral
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Glyph = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Warning)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Level = lipgloss.NewStyle().
		Foreground(Secondary)
)
