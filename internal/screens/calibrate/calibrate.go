// Package calibrate is the device check shown at startup and on demand
// from settings.
package calibrate

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/calibration"
	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
	"github.com/abhisek/pinyin/internal/ui/layout"
	"github.com/abhisek/pinyin/internal/ui/theme"
)

var (
	skipKey  = key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "skip"))
	retryKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recalibrate"))
)

// CalibrateScreen runs a calibration and pops itself when done.
type CalibrateScreen struct {
	env  *screens.Env
	cal  *calibration.Calibrator
	snap calibration.Snapshot
	err  error
	done bool
}

var _ screen.Screen = (*CalibrateScreen)(nil)
var _ screen.KeyHintProvider = (*CalibrateScreen)(nil)
var _ screen.Closer = (*CalibrateScreen)(nil)

// New creates the screen. Calibration starts in Init.
func New(env *screens.Env) *CalibrateScreen {
	s := &CalibrateScreen{env: env}
	cal, err := calibration.New(env.Clock, env.Calibration, s.onSnapshot, env.CalibrationOptions()...)
	if err != nil {
		s.err = err
		return s
	}
	s.cal = cal
	s.snap = cal.State()
	return s
}

func (s *CalibrateScreen) onSnapshot(snap calibration.Snapshot) {
	s.snap = snap
	if snap.Environment != calibration.EnvironmentUnknown {
		s.env.Environment = snap.Environment
	}
}

func (s *CalibrateScreen) Init() tea.Cmd {
	if s.cal != nil {
		s.cal.Start()
	}
	return nil
}

func (s *CalibrateScreen) Title() string {
	return "Device Check"
}

func (s *CalibrateScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Skip"},
		{Key: "R", Description: "Recalibrate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *CalibrateScreen) Close() {
	if s.cal != nil {
		s.cal.Close()
	}
}

// State returns the latest calibration snapshot.
func (s *CalibrateScreen) State() calibration.Snapshot {
	return s.snap
}

func (s *CalibrateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ClockMsg:
		return s, s.popWhenDone()

	case tea.KeyPressMsg:
		if s.cal == nil {
			return s, pop
		}
		switch {
		case key.Matches(msg, skipKey):
			s.cal.Skip()
			return s, s.popWhenDone()
		case key.Matches(msg, retryKey):
			s.cal.Recalibrate()
		}
	}
	return s, nil
}

func (s *CalibrateScreen) popWhenDone() tea.Cmd {
	if s.snap.Stage != calibration.StageDone || s.done {
		return nil
	}
	s.done = true
	return pop
}

func pop() tea.Msg { return router.PopScreenMsg{} }

func (s *CalibrateScreen) View(width, height int) string {
	if s.err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(fmt.Sprintf("Calibration unavailable: %v", s.err)))
	}

	var lines []string
	lines = append(lines, theme.Title.Render("麥克風校正"), theme.Subtitle.Render("Microphone calibration"), "")

	switch s.snap.Stage {
	case calibration.StageScanning:
		lines = append(lines,
			theme.Body.Render("正在掃描音訊裝置"),
			theme.Hint.Render("Scanning audio devices..."))
	case calibration.StageTesting:
		lines = append(lines,
			theme.Body.Render("麥克風頻率校正"),
			theme.Level.Render(s.snap.SampleRate+" locking"))
	case calibration.StageSuccess, calibration.StageDone:
		lines = append(lines,
			theme.Correct.Render("✓ Microphone ready"),
			theme.Body.Render(s.snap.SampleRate+" locked"),
			environmentLine(s.snap.Environment))
	}

	card := theme.Card.Width(min(width-4, 50)).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func environmentLine(e calibration.Environment) string {
	switch e {
	case calibration.EnvironmentQuiet:
		return theme.Correct.Render("Quiet environment")
	case calibration.EnvironmentNoisy:
		return theme.Notice.Render("Noisy environment: input may be amplified")
	default:
		return ""
	}
}
