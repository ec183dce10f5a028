// Package practice is the practice card screen: it renders a session's
// snapshots and turns key presses into session intents.
package practice

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/pinyin/internal/practice"
	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
	"github.com/abhisek/pinyin/internal/ui/layout"
)

// demoTimeout bounds one pronunciation demo.
const demoTimeout = 10 * time.Second

// PracticeScreen implements screen.Screen for one practice session.
type PracticeScreen struct {
	env     *screens.Env
	session *sess.Session
	snap    sess.Snapshot
	err     error
	leaving bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.Closer = (*PracticeScreen)(nil)

// New creates a practice screen positioned on catalog item start.
func New(env *screens.Env, start int) *PracticeScreen {
	p := &PracticeScreen{env: env}
	opts := append(env.SessionOptions(),
		sess.WithObserver(sess.ObserverFunc(p.onSnapshot)),
		sess.WithStartIndex(start),
	)
	s, err := sess.New(env.Catalog, env.Recognizer, env.Clock, env.Settings.SessionConfig(), opts...)
	if err != nil {
		p.err = err
		return p
	}
	p.session = s
	p.snap = s.State()
	return p
}

func (p *PracticeScreen) onSnapshot(s sess.Snapshot) {
	entered := s.Stage == sess.StageResult && p.snap.Stage != sess.StageResult
	p.snap = s
	if entered && s.LastResult != nil && p.env.Tally != nil {
		p.env.Tally.Record(s.Item, *s.LastResult)
	}
}

// State returns the latest session snapshot.
func (p *PracticeScreen) State() sess.Snapshot {
	return p.snap
}

func (p *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) Close() {
	if p.session != nil {
		p.session.Exit()
		p.session.Close()
	}
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	hint := func(b key.Binding) layout.KeyHint {
		h := b.Help()
		return layout.KeyHint{Key: h.Key, Description: h.Desc}
	}
	switch p.snap.Stage {
	case sess.StageIdle:
		return []layout.KeyHint{
			{Key: "Space", Description: "Record"},
			hint(keys.Demo),
			{Key: "←→", Description: "Browse"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.StageCountdown:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case sess.StageRecording:
		return []layout.KeyHint{
			{Key: "Space", Description: "Stop"},
			{Key: "Esc", Description: "Cancel"},
		}
	case sess.StageResult:
		return []layout.KeyHint{
			hint(keys.Retry),
			hint(keys.Next),
			hint(keys.Demo),
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ClockMsg:
		return p, p.homeOnCycleEnd()

	case tea.KeyPressMsg:
		if p.session == nil {
			return p, back
		}
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Record):
		if p.snap.Stage == sess.StageRecording {
			p.session.Stop()
		} else {
			p.session.Start()
		}
	case key.Matches(msg, keys.Retry):
		p.session.Retry()
	case key.Matches(msg, keys.Next):
		p.session.Next()
		return p.homeOnCycleEnd()
	case key.Matches(msg, keys.Prev):
		p.browse(-1)
	case key.Matches(msg, keys.Skip):
		p.browse(1)
	case key.Matches(msg, keys.Demo):
		return p.playDemo()
	case key.Matches(msg, keys.Quit):
		p.session.Exit()
		p.leaving = true
		return back
	}
	return nil
}

// browse moves to a neighbouring item while idle, wrapping at both ends.
func (p *PracticeScreen) browse(delta int) {
	n := p.snap.Total
	p.session.Select(((p.snap.Index+delta)%n + n) % n)
}

func (p *PracticeScreen) homeOnCycleEnd() tea.Cmd {
	if !p.snap.CycleComplete || p.leaving {
		return nil
	}
	p.leaving = true
	p.env.Log().Info("practice cycle finished, returning home")
	return func() tea.Msg { return router.HomeMsg{} }
}

func (p *PracticeScreen) playDemo() tea.Cmd {
	if p.env.Speaker == nil || !p.env.Settings.TTS.Enabled {
		return nil
	}
	speaker := p.env.Speaker
	text := p.snap.Item.Character
	opts := p.env.Settings.SpeechOptions()
	logger := p.env.Log()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), demoTimeout)
		defer cancel()
		if err := speaker.Speak(ctx, text, opts); err != nil {
			logger.Debug("pronunciation demo failed",
				slog.String("text", text),
				slog.String("error", err.Error()))
		}
		return nil
	}
}

func back() tea.Msg { return router.PopScreenMsg{} }
