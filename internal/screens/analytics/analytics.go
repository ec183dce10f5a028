// Package analytics shows accuracy for the current run and lets the
// learner jump straight into their weakest items.
package analytics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
	practicescreen "github.com/abhisek/pinyin/internal/screens/practice"
	"github.com/abhisek/pinyin/internal/ui/components"
	"github.com/abhisek/pinyin/internal/ui/layout"
	"github.com/abhisek/pinyin/internal/ui/theme"
)

// weakLimit caps the weak-item list.
const weakLimit = 5

// AnalyticsScreen renders the run's tally.
type AnalyticsScreen struct {
	env  *screens.Env
	menu components.Menu
}

var _ screen.Screen = (*AnalyticsScreen)(nil)
var _ screen.KeyHintProvider = (*AnalyticsScreen)(nil)

// New creates the screen from the current tally.
func New(env *screens.Env) *AnalyticsScreen {
	s := &AnalyticsScreen{env: env}
	s.menu = components.NewMenu(s.weakItems())
	return s
}

func (s *AnalyticsScreen) weakItems() []components.MenuItem {
	if s.env.Tally == nil {
		return nil
	}
	var items []components.MenuItem
	for _, w := range s.env.Tally.WeakItems(weakLimit) {
		idx := s.env.Catalog.Index(w.Item.Character)
		if idx < 0 {
			continue
		}
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s  %s", w.Item.Character, w.Item.Pinyin),
			Detail: fmt.Sprintf("%d of %d missed", w.Errors, w.Attempts),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: practicescreen.New(s.env, idx)}
				}
			},
		})
	}
	return items
}

func (s *AnalyticsScreen) Init() tea.Cmd {
	return nil
}

func (s *AnalyticsScreen) Title() string {
	return "Analytics"
}

func (s *AnalyticsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	if len(s.menu.Items) > 0 {
		hints = append([]layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Practice item"},
		}, hints...)
	}
	return hints
}

func (s *AnalyticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *AnalyticsScreen) View(width, height int) string {
	if s.env.Tally == nil || s.env.Tally.Summary().Attempts == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No attempts yet. Practice a few characters first."))
	}
	sum := s.env.Tally.Summary()
	cw := min(width-8, 60)
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }

	var b strings.Builder
	b.WriteString(center(theme.Title.Render("學習分析 · Your progress")))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Body.Render(fmt.Sprintf(
		"Attempts: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Attempts, sum.Correct, sum.Accuracy))))
	if sum.Amplified > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.Notice.Render(fmt.Sprintf("%d attempts needed amplification", sum.Amplified))))
	}
	b.WriteString("\n\n")

	b.WriteString(section("Tones", cw, center))
	for _, ts := range sum.Tones {
		if ts.Attempts == 0 {
			continue
		}
		bar := components.NewProgressBar(padLabel(ts.Tone.Description()), ts.Accuracy()/100, true, cw)
		bar.Color = theme.ToneColor(ts.Tone)
		b.WriteString(center(bar.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(sum.Errors) > 0 {
		b.WriteString(section("Mistakes", cw, center))
		for _, es := range sum.Errors {
			bar := components.NewProgressBar(padLabel(es.Kind.String()+" errors"), es.Share/100, true, cw)
			bar.Color = theme.Error
			b.WriteString(center(bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.menu.Items) > 0 {
		b.WriteString(section("Needs work", cw, center))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(s.menu.View())))
	}

	return b.String()
}

func section(title string, cw int, center func(string) string) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	return center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) + "\n" + center(divider) + "\n"
}

func padLabel(s string) string {
	return fmt.Sprintf("%-18s", s)
}
