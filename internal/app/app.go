// Package app wires the screen router, the clock loop and the Bubble Tea
// program together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/clock"
	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
	"github.com/abhisek/pinyin/internal/screens/calibrate"
	"github.com/abhisek/pinyin/internal/screens/home"
	"github.com/abhisek/pinyin/internal/ui/layout"
)

// callbackMsg carries a clock callback onto the update goroutine.
type callbackMsg struct {
	fn func()
}

// Options configures Run.
type Options struct {
	// SkipCalibration opens straight on the home screen.
	SkipCalibration bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    *screens.Env
	loop   *clock.Loop
	opts   Options
	width  int
	height int
}

// newAppModel creates the model with home at the root. Clock callbacks
// dispatched on loop are run from Update.
func newAppModel(env *screens.Env, loop *clock.Loop, opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(env)),
		env:    env,
		loop:   loop,
		opts:   opts,
	}
}

// listen waits for the next clock callback.
func (m AppModel) listen() tea.Msg {
	fn, ok := m.loop.Next()
	if !ok {
		return nil
	}
	return callbackMsg{fn: fn}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listen}
	if !m.opts.SkipCalibration {
		cal := calibrate.New(m.env)
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: cal} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case callbackMsg:
		msg.fn()
		cmd := m.router.Update(screen.ClockMsg{})
		return m, tea.Batch(cmd, m.listen)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) shutdown() {
	m.router.CloseAll()
	m.loop.Close()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats layout.HeaderStats
	if m.env.Tally != nil {
		sum := m.env.Tally.Summary()
		stats = layout.HeaderStats{Attempts: sum.Attempts, Accuracy: sum.Accuracy}
	}
	header := layout.RenderHeader(title, stats, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program. Any clock on env is replaced by a
// wall clock whose callbacks run on the program's update goroutine.
func Run(ctx context.Context, env *screens.Env, opts Options) error {
	loop := clock.NewLoop()
	clk := clock.NewReal(loop)
	env.Clock = clk
	defer func() {
		clk.CancelAll()
		loop.Close()
	}()

	p := tea.NewProgram(newAppModel(env, loop, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		env.Log().Error("program exited with error", slog.String("error", err.Error()))
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
