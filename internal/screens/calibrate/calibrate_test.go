package calibrate

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pinyin/internal/calibration"
	"github.com/abhisek/pinyin/internal/clock"
	"github.com/abhisek/pinyin/internal/router"
	"github.com/abhisek/pinyin/internal/screen"
	"github.com/abhisek/pinyin/internal/screens"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newScreen(t *testing.T, r float64) (*CalibrateScreen, *clock.Fake, *screens.Env) {
	t.Helper()
	clk := clock.NewFake()
	env := &screens.Env{
		Clock:           clk,
		Calibration:     calibration.DefaultConfig(),
		CalibrationRand: fixedRand(r),
	}
	s := New(env)
	require.NoError(t, s.err)
	s.Init()
	return s, clk, env
}

func isPop(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.PopScreenMsg)
	return ok
}

func TestPopsWhenDone(t *testing.T) {
	s, clk, env := newScreen(t, 0.9)
	assert.Equal(t, calibration.StageScanning, s.State().Stage)

	clk.Advance(4500 * time.Millisecond)
	_, cmd := s.Update(screen.ClockMsg{})
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(80, 20), "Noisy")
	assert.Equal(t, calibration.EnvironmentNoisy, env.Environment)

	clk.Advance(2500 * time.Millisecond)
	_, cmd = s.Update(screen.ClockMsg{})
	assert.True(t, isPop(cmd))

	// Only one pop even if more clock messages arrive.
	_, cmd = s.Update(screen.ClockMsg{})
	assert.Nil(t, cmd)
}

func TestSkip(t *testing.T) {
	s, clk, _ := newScreen(t, 0.1)
	_, cmd := s.Update(keyPress('s'))
	assert.True(t, isPop(cmd))
	assert.Equal(t, 0, clk.Pending())
}

func TestRecalibrateKey(t *testing.T) {
	s, clk, _ := newScreen(t, 0.1)
	clk.Advance(2 * time.Second)
	require.Equal(t, calibration.StageTesting, s.State().Stage)

	s.Update(keyPress('r'))
	assert.Equal(t, calibration.StageScanning, s.State().Stage)
	assert.Contains(t, s.View(80, 20), "Scanning")
}

func TestCloseCancelsTimers(t *testing.T) {
	s, clk, _ := newScreen(t, 0.1)
	s.Close()
	assert.Equal(t, 0, clk.Pending())
}
