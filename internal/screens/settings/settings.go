// Package settings edits display and practice preferences and saves them
// to the config file as they change.
package settings

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/config"
	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
	"github.com/abhisek/pinyin/internal/screens/calibrate"
	"github.com/abhisek/pinyin/internal/ui/components"
	"github.com/abhisek/pinyin/internal/ui/layout"
	"github.com/abhisek/pinyin/internal/ui/theme"
)

var (
	upKey     = key.NewBinding(key.WithKeys("up", "k"))
	downKey   = key.NewBinding(key.WithKeys("down", "j"))
	toggleKey = key.NewBinding(key.WithKeys("enter", "space"))
)

type row struct {
	label string
	value func(*config.Config) (string, bool)
	apply func(*config.Config)
}

var rows = []row{
	{
		label: "Tone curve",
		value: func(c *config.Config) (string, bool) {
			return components.OnOff(c.Display.ShowToneCurve), c.Display.ShowToneCurve
		},
		apply: func(c *config.Config) { c.Display.ShowToneCurve = !c.Display.ShowToneCurve },
	},
	{
		label: "Demo speed",
		value: func(c *config.Config) (string, bool) {
			return c.Display.DemoSpeed, c.Display.DemoSpeed == config.SpeedNormal
		},
		apply: func(c *config.Config) {
			if c.Display.DemoSpeed == config.SpeedSlow {
				c.Display.DemoSpeed = config.SpeedNormal
			} else {
				c.Display.DemoSpeed = config.SpeedSlow
			}
		},
	},
	{
		label: "Notifications",
		value: func(c *config.Config) (string, bool) {
			return components.OnOff(c.Display.Notifications), c.Display.Notifications
		},
		apply: func(c *config.Config) { c.Display.Notifications = !c.Display.Notifications },
	},
	{
		label: "Auto-advance",
		value: func(c *config.Config) (string, bool) {
			return components.OnOff(c.Practice.AutoAdvance), c.Practice.AutoAdvance
		},
		apply: func(c *config.Config) { c.Practice.AutoAdvance = !c.Practice.AutoAdvance },
	},
	{
		label: "Pronunciation demo",
		value: func(c *config.Config) (string, bool) {
			return components.OnOff(c.TTS.Enabled), c.TTS.Enabled
		},
		apply: func(c *config.Config) { c.TTS.Enabled = !c.TTS.Enabled },
	},
}

// SettingsScreen lists the toggles followed by a recalibrate action.
type SettingsScreen struct {
	env      *screens.Env
	selected int
	err      error
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen.
func New(env *screens.Env) *SettingsScreen {
	return &SettingsScreen{env: env}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

// recalibrateRow is the index of the action below the toggles.
func recalibrateRow() int { return len(rows) }

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, upKey):
		s.selected = max(0, s.selected-1)
	case key.Matches(kmsg, downKey):
		s.selected = min(recalibrateRow(), s.selected+1)
	case key.Matches(kmsg, toggleKey):
		if s.selected == recalibrateRow() {
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: calibrate.New(s.env)} }
		}
		rows[s.selected].apply(s.env.Settings)
		s.save()
	}
	return s, nil
}

func (s *SettingsScreen) save() {
	s.err = nil
	if s.env.ConfigPath == "" {
		return
	}
	if err := config.Save(s.env.ConfigPath, *s.env.Settings); err != nil {
		s.err = err
		s.env.Log().Error("failed to save settings", slog.String("error", err.Error()))
		return
	}
	s.env.Log().Debug("settings saved", slog.String("path", s.env.ConfigPath))
}

func (s *SettingsScreen) View(width, height int) string {
	cw := min(width-8, 56)
	lines := []string{theme.Title.Render("設定 · Settings"), ""}
	for i, r := range rows {
		value, on := r.value(s.env.Settings)
		lines = append(lines, components.Toggle{
			Label:    r.label,
			Value:    value,
			On:       on,
			Selected: i == s.selected,
		}.View(cw))
	}
	lines = append(lines, "")

	action := theme.Unselected.Render("    Recalibrate microphone")
	if s.selected == recalibrateRow() {
		action = theme.Selected.Render("  ▸ Recalibrate microphone")
	}
	lines = append(lines, action)

	switch {
	case s.err != nil:
		lines = append(lines, "", theme.Incorrect.Render(fmt.Sprintf("Could not save: %v", s.err)))
	case s.env.ConfigPath != "":
		lines = append(lines, "", theme.Hint.Render("Saved to "+s.env.ConfigPath))
	}

	block := lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
