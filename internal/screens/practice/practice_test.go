package practice

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pinyin/internal/analytics"
	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/clock"
	"github.com/abhisek/pinyin/internal/config"
	sess "github.com/abhisek/pinyin/internal/practice"
	"github.com/abhisek/pinyin/internal/recognizer"
	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
	"github.com/abhisek/pinyin/internal/speech"
)

type constMic float64

func (c constMic) Float64() float64 { return float64(c) }

type spySpeaker struct {
	mu    sync.Mutex
	texts []string
	opts  []speech.Options
	err   error
}

func (s *spySpeaker) Speak(_ context.Context, text string, opts speech.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	s.opts = append(s.opts, opts)
	return s.err
}

type fixture struct {
	p   *PracticeScreen
	clk *clock.Fake
	rec *recognizer.Stub
	env *screens.Env
	spk *spySpeaker
}

func newFixture(t *testing.T, start int) *fixture {
	t.Helper()
	settings := config.Default()
	f := &fixture{clk: clock.NewFake(), rec: recognizer.NewStub(), spk: &spySpeaker{}}
	f.env = &screens.Env{
		Catalog:    catalog.Default(),
		Recognizer: f.rec,
		Clock:      f.clk,
		Speaker:    f.spk,
		Tally:      analytics.New(),
		Settings:   &settings,
		Mic:        constMic(0.5),
	}
	f.p = New(f.env, start)
	require.NoError(t, f.p.err)
	f.p.Init()
	return f
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.p.Update(msg)
	return cmd
}

// toResult drives one full attempt: countdown, capture and processing.
func (f *fixture) toResult(t *testing.T) {
	t.Helper()
	f.send(space)
	f.clk.Advance(3*time.Second + 2*time.Second + time.Second)
	f.send(screen.ClockMsg{})
	require.Equal(t, sess.StageResult, f.p.State().Stage)
}

func msgOf(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestRecordFlowRendersEachStage(t *testing.T) {
	f := newFixture(t, 0)
	assert.Contains(t, f.p.View(80, 24), "媽")
	assert.Contains(t, f.p.View(80, 24), "mā")

	f.send(space)
	assert.Equal(t, sess.StageCountdown, f.p.State().Stage)
	assert.Contains(t, f.p.View(80, 24), "3")

	f.clk.Advance(3 * time.Second)
	f.send(screen.ClockMsg{})
	assert.Equal(t, sess.StageRecording, f.p.State().Stage)

	f.clk.Advance(500 * time.Millisecond)
	assert.Contains(t, f.p.View(80, 24), "REC")
	assert.Len(t, f.p.State().Samples, 5)

	f.send(space)
	assert.Equal(t, sess.StageProcessing, f.p.State().Stage)
	assert.Contains(t, f.p.View(80, 24), "Analyzing")

	f.clk.Advance(time.Second)
	assert.Equal(t, sess.StageResult, f.p.State().Stage)
	assert.Contains(t, f.p.View(80, 24), "Well done")
}

func TestResultIsTallied(t *testing.T) {
	f := newFixture(t, 0)
	f.rec.Push(recognizer.Outcome{RecognizedLabel: "麻", ErrorKind: recognizer.ErrorTone, Amplified: true})
	f.toResult(t)

	view := f.p.View(80, 24)
	assert.Contains(t, view, "麻")
	assert.Contains(t, view, "amplified")

	sum := f.env.Tally.Summary()
	assert.Equal(t, 1, sum.Attempts)
	assert.Equal(t, 0, sum.Correct)
	assert.Equal(t, 1, sum.Amplified)

	// Re-rendering or further clock messages must not tally again.
	f.send(screen.ClockMsg{})
	assert.Equal(t, 1, f.env.Tally.Summary().Attempts)

	f.send(keyPress('r'))
	assert.Equal(t, sess.StageCountdown, f.p.State().Stage)
	f.clk.Advance(6 * time.Second)
	assert.Equal(t, 2, f.env.Tally.Summary().Attempts)
}

func TestNotificationsOffHidesAmplified(t *testing.T) {
	f := newFixture(t, 0)
	f.env.Settings.Display.Notifications = false
	f.rec.Push(recognizer.Outcome{RecognizedLabel: "媽", IsCorrect: true, Amplified: true})
	f.toResult(t)
	assert.NotContains(t, f.p.View(80, 24), "amplified")
}

func TestNextAndCycleEnd(t *testing.T) {
	f := newFixture(t, 8)
	f.toResult(t)
	assert.Nil(t, msgOf(f.send(keyPress('n'))))
	assert.Equal(t, 9, f.p.State().Index)

	f.toResult(t)
	cmd := f.send(keyPress('n'))
	assert.IsType(t, router.HomeMsg{}, msgOf(cmd))
	assert.True(t, f.p.State().CycleComplete)
	assert.Equal(t, 0, f.p.State().Index)

	// The home request is only issued once.
	assert.Nil(t, f.send(screen.ClockMsg{}))
}

func TestBrowseWhileIdle(t *testing.T) {
	f := newFixture(t, 0)
	f.send(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 9, f.p.State().Index)
	f.send(keyPress('l'))
	f.send(keyPress('l'))
	assert.Equal(t, 1, f.p.State().Index)

	f.send(space)
	f.send(keyPress('l'))
	assert.Equal(t, 1, f.p.State().Index, "browsing is ignored outside idle")
}

func TestQuitExitsAndPops(t *testing.T) {
	f := newFixture(t, 0)
	f.send(space)
	cmd := f.send(keyPress('q'))
	assert.IsType(t, router.PopScreenMsg{}, msgOf(cmd))
	assert.Equal(t, sess.StageIdle, f.p.State().Stage)
	assert.Equal(t, 0, f.clk.Pending())
}

func TestCloseCancelsTimers(t *testing.T) {
	f := newFixture(t, 0)
	f.send(space)
	require.NotZero(t, f.clk.Pending())
	f.p.Close()
	assert.Equal(t, 0, f.clk.Pending())
}

func TestDemoUsesSpeechSettings(t *testing.T) {
	f := newFixture(t, 2)
	f.env.Settings.Display.DemoSpeed = config.SpeedSlow

	cmd := f.send(keyPress('p'))
	require.NotNil(t, cmd)
	cmd()

	require.Equal(t, []string{"馬"}, f.spk.texts)
	assert.InDelta(t, speech.RateSlow, f.spk.opts[0].Rate, 1e-9)
}

func TestDemoFailureIsLogged(t *testing.T) {
	f := newFixture(t, 0)
	var buf bytes.Buffer
	f.env.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f.spk.err = errors.New("espeak-ng: exit status 1")

	cmd := f.send(keyPress('p'))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	out := buf.String()
	assert.Contains(t, out, "pronunciation demo failed")
	assert.Contains(t, out, "espeak-ng: exit status 1")
	assert.Contains(t, out, "text=媽")
}

func TestDemoDisabled(t *testing.T) {
	f := newFixture(t, 0)
	f.env.Settings.TTS.Enabled = false
	assert.Nil(t, f.send(keyPress('p')))
}

func TestToneCurveToggle(t *testing.T) {
	f := newFixture(t, 1)
	assert.Contains(t, f.p.View(80, 24), "rising")
	f.env.Settings.Display.ShowToneCurve = false
	assert.NotContains(t, f.p.View(80, 24), "rising")
}

func TestEmptyCatalogShowsError(t *testing.T) {
	env := &screens.Env{Clock: clock.NewFake(), Recognizer: recognizer.NewStub(), Settings: new(config.Config)}
	*env.Settings = config.Default()
	p := New(env, 0)
	assert.ErrorIs(t, p.err, sess.ErrEmptyCatalog)
	assert.Contains(t, p.View(80, 24), "Cannot start practice")

	_, cmd := p.Update(keyPress('n'))
	assert.IsType(t, router.PopScreenMsg{}, msgOf(cmd))
}
