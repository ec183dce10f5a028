package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pinyin/internal/analytics"
	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
	analyticsscreen "github.com/abhisek/pinyin/internal/screens/analytics"
	practicescreen "github.com/abhisek/pinyin/internal/screens/practice"
	"github.com/abhisek/pinyin/internal/screens/settings"
	"github.com/abhisek/pinyin/internal/ui/components"
	"github.com/abhisek/pinyin/internal/ui/layout"
)

// HomeScreen is the root menu.
type HomeScreen struct {
	env    *screens.Env
	menu   components.Menu
	labels []string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(env *screens.Env) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	labels := []string{"PRACTICE", "ANALYTICS", "SETTINGS", "QUIT"}
	items := []components.MenuItem{
		{Label: labels[0], Action: push(func() screen.Screen { return practicescreen.New(env, 0) })},
		{Label: labels[1], Action: push(func() screen.Screen { return analyticsscreen.New(env) })},
		{Label: labels[2], Action: push(func() screen.Screen { return settings.New(env) })},
		{Label: labels[3], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{env: env, menu: components.NewMenu(items), labels: labels}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// View drops the banner art and seal below 46 rows and the mission and
// suggestion cards below 34.
func (h *HomeScreen) View(width, height int) string {
	compact := height < 46 || width < 100
	showCards := height >= 34
	cw := contentWidth(width)

	tally := h.env.Tally
	if tally == nil {
		tally = analytics.New()
	}
	sum := tally.Summary()

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderSeal(h.env.Environment, cw))
	}
	sections = append(sections, renderStatsBar(sum, h.env.Environment, cw))
	if showCards {
		weak, found := tally.WeakestTone()
		sections = append(sections,
			renderMissions(tally.Missions(), cw),
			renderSuggestion(weak, found, cw))
	}
	sections = append(sections, renderMenu(h.labels, h.menu.Selected, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
