package practice

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/clock"
	"github.com/abhisek/pinyin/internal/pinyin"
	"github.com/abhisek/pinyin/internal/recognizer"
)

type constMic float64

func (c constMic) Float64() float64 { return float64(c) }

// recorder keeps every published snapshot.
type recorder struct {
	snaps []Snapshot
}

func (r *recorder) OnSnapshot(s Snapshot) { r.snaps = append(r.snaps, s) }

func (r *recorder) stages() []Stage {
	out := make([]Stage, 0, len(r.snaps))
	for _, s := range r.snaps {
		out = append(out, s.Stage)
	}
	return out
}

func (r *recorder) last() Snapshot { return r.snaps[len(r.snaps)-1] }

func fourTones(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Item{
		{Character: "媽", Pinyin: "mā", Initial: "m", Final: "a", Tone: pinyin.ToneFirst},
		{Character: "麻", Pinyin: "má", Initial: "m", Final: "a", Tone: pinyin.ToneSecond},
		{Character: "馬", Pinyin: "mǎ", Initial: "m", Final: "a", Tone: pinyin.ToneThird},
		{Character: "罵", Pinyin: "mà", Initial: "m", Final: "a", Tone: pinyin.ToneFourth},
	})
	require.NoError(t, err)
	return cat
}

type fixture struct {
	s   *Session
	clk *clock.Fake
	rec *recognizer.Stub
	obs *recorder
}

func newFixture(t *testing.T, cfg Config, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{clk: clock.NewFake(), rec: recognizer.NewStub(), obs: &recorder{}}
	opts = append([]Option{
		WithObserver(f.obs),
		WithMicSource(constMic(0.42)),
		WithMeter(nil),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	s, err := New(fourTones(t), f.rec, f.clk, cfg, opts...)
	require.NoError(t, err)
	f.s = s
	return f
}

// toResult drives one full attempt from Idle.
func (f *fixture) toResult(t *testing.T) {
	t.Helper()
	require.True(t, f.s.Start())
	f.clk.Advance(3 * time.Second)
	f.clk.Advance(2 * time.Second)
	f.clk.Advance(time.Second)
	require.Equal(t, StageResult, f.s.State().Stage)
}

func TestNewErrors(t *testing.T) {
	clk := clock.NewFake()
	rec := recognizer.NewStub()

	_, err := New(nil, rec, clk, DefaultConfig())
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = New(catalog.Default(), nil, clk, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(catalog.Default(), rec, nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := []func(*Config){
		func(c *Config) { c.CountdownSteps = 0 },
		func(c *Config) { c.CountdownTick = 0 },
		func(c *Config) { c.SampleInterval = -time.Second },
		func(c *Config) { c.CaptureDuration = 0 },
		func(c *Config) { c.ProcessingDelay = 0 },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		_, err := New(catalog.Default(), rec, clk, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig, "case %d", i)
	}
}

func TestInitialState(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	st := f.s.State()
	assert.Equal(t, StageIdle, st.Stage)
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, "媽", st.Item.Character)
	assert.Nil(t, st.LastResult)
	assert.NotEmpty(t, st.SessionID)
	assert.Empty(t, f.obs.snaps)
}

func TestCountdownTicksExactly(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	require.True(t, f.s.Start())
	assert.Equal(t, 3, f.s.State().CountdownRemaining)

	f.clk.Advance(999 * time.Millisecond)
	assert.Equal(t, 3, f.s.State().CountdownRemaining)

	f.clk.Advance(time.Millisecond)
	assert.Equal(t, 2, f.s.State().CountdownRemaining)

	f.clk.Advance(time.Second)
	assert.Equal(t, 1, f.s.State().CountdownRemaining)
	assert.Equal(t, StageCountdown, f.s.State().Stage)

	f.clk.Advance(time.Second)
	assert.Equal(t, StageRecording, f.s.State().Stage)

	var counts []int
	for _, s := range f.obs.snaps {
		if s.Stage == StageCountdown {
			counts = append(counts, s.CountdownRemaining)
		}
	}
	assert.Equal(t, []int{3, 2, 1}, counts)
}

func TestRecordingCapturesForFullWindow(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.s.Start()
	f.clk.Advance(3 * time.Second)

	f.clk.Advance(1999 * time.Millisecond)
	st := f.s.State()
	assert.Equal(t, StageRecording, st.Stage)
	assert.Len(t, st.Samples, 19)
	assert.InDelta(t, 42, st.LatestMicLevel, 1e-9)

	f.clk.Advance(time.Millisecond)
	st = f.s.State()
	assert.Equal(t, StageProcessing, st.Stage)
	assert.Len(t, st.Samples, 20)
	for _, v := range st.Samples {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 100.0)
	}
}

func TestStopCancelsSampling(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.s.Start()
	f.clk.Advance(3 * time.Second)
	f.clk.Advance(550 * time.Millisecond)

	require.True(t, f.s.Stop())
	assert.Equal(t, StageProcessing, f.s.State().Stage)
	assert.Len(t, f.s.State().Samples, 5)

	// Only the processing timer remains; no sampling tick fires later.
	assert.Equal(t, 1, f.clk.Pending())
	f.clk.Advance(999 * time.Millisecond)
	assert.Len(t, f.s.State().Samples, 5)

	f.clk.Advance(time.Millisecond)
	assert.Equal(t, StageResult, f.s.State().Stage)
	assert.Len(t, f.s.State().Samples, 5)
	assert.Equal(t, 0, f.clk.Pending())
}

func TestExitCancelsEverything(t *testing.T) {
	for _, stage := range []Stage{StageCountdown, StageRecording, StageProcessing, StageResult} {
		t.Run(stage.String(), func(t *testing.T) {
			f := newFixture(t, DefaultConfig())
			f.s.Start()
			switch stage {
			case StageRecording:
				f.clk.Advance(3*time.Second + 250*time.Millisecond)
			case StageProcessing:
				f.clk.Advance(5 * time.Second)
			case StageResult:
				f.clk.Advance(6 * time.Second)
			}
			require.Equal(t, stage, f.s.State().Stage)

			require.True(t, f.s.Exit())
			st := f.s.State()
			assert.Equal(t, StageIdle, st.Stage)
			assert.Equal(t, 0, st.Index)
			assert.Nil(t, st.LastResult)
			assert.Empty(t, st.Samples)
			assert.Equal(t, 0, f.clk.Pending())

			n := len(f.obs.snaps)
			f.clk.Advance(time.Minute)
			assert.Len(t, f.obs.snaps, n, "timer fired after exit")
		})
	}
}

func TestInvalidIntentsIgnored(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	assert.False(t, f.s.Stop())
	assert.False(t, f.s.Retry())
	assert.False(t, f.s.Next())
	assert.Empty(t, f.obs.snaps, "ignored intents must not publish")

	f.s.Start()
	assert.False(t, f.s.Start())
	assert.False(t, f.s.Stop())
	assert.False(t, f.s.Select(2))

	f.clk.Advance(3 * time.Second)
	assert.False(t, f.s.Start())
	assert.False(t, f.s.Next())

	f.s.Stop()
	assert.False(t, f.s.Stop())
	assert.False(t, f.s.Retry())

	f.clk.Advance(time.Second)
	assert.False(t, f.s.Start())
	assert.False(t, f.s.Stop())
}

func TestOutcomeStoredOnResult(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.rec.Push(recognizer.Outcome{RecognizedLabel: "麻", ErrorKind: recognizer.ErrorTone, Amplified: true})
	f.toResult(t)

	st := f.s.State()
	require.NotNil(t, st.LastResult)
	assert.Equal(t, "麻", st.LastResult.RecognizedLabel)
	assert.False(t, st.LastResult.IsCorrect)
	assert.Equal(t, recognizer.ErrorTone, st.LastResult.ErrorKind)
	assert.True(t, st.LastResult.Amplified)
	require.Len(t, f.rec.Calls, 1)
	assert.Equal(t, "媽", f.rec.Calls[0].Character)
}

func TestRetryKeepsItem(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.toResult(t)
	f.s.Next()
	f.s.Start()
	f.clk.Advance(6 * time.Second)
	require.Equal(t, 1, f.s.State().Index)

	for i := 0; i < 3; i++ {
		require.True(t, f.s.Retry())
		st := f.s.State()
		assert.Equal(t, StageCountdown, st.Stage)
		assert.Equal(t, 1, st.Index)
		assert.Equal(t, 3, st.CountdownRemaining)
		assert.Empty(t, st.Samples)
		assert.Nil(t, st.LastResult)
		f.clk.Advance(6 * time.Second)
	}
	assert.Equal(t, StageResult, f.s.State().Stage)
	assert.Equal(t, 1, f.s.State().Index)
}

func TestNextWrapsAndCompletesCycle(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	var seen []string
	for i := 0; i < 4; i++ {
		f.toResult(t)
		seen = append(seen, f.s.State().Item.Character)
		require.True(t, f.s.Next())
		if i < 3 {
			assert.False(t, f.s.State().CycleComplete)
		}
	}
	assert.Equal(t, []string{"媽", "麻", "馬", "罵"}, seen)

	st := f.s.State()
	assert.Equal(t, StageIdle, st.Stage)
	assert.Equal(t, 0, st.Index)
	assert.True(t, st.CycleComplete)

	f.s.Start()
	assert.False(t, f.s.State().CycleComplete)
}

func TestAutoAdvance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoAdvance = true
	f := newFixture(t, cfg)
	f.toResult(t)

	require.True(t, f.s.Next())
	st := f.s.State()
	assert.Equal(t, StageCountdown, st.Stage)
	assert.Equal(t, 1, st.Index)

	// Wrapping still stops in Idle.
	f.clk.Advance(6 * time.Second)
	f.s.Next()
	f.clk.Advance(6 * time.Second)
	f.s.Next()
	f.clk.Advance(6 * time.Second)
	require.Equal(t, 3, f.s.State().Index)
	f.s.Next()
	assert.Equal(t, StageIdle, f.s.State().Stage)
	assert.True(t, f.s.State().CycleComplete)
}

func TestSelect(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	assert.True(t, f.s.Select(2))
	assert.Equal(t, "馬", f.s.State().Item.Character)
	assert.False(t, f.s.Select(4))
	assert.False(t, f.s.Select(-1))
	assert.Equal(t, 2, f.s.State().Index)
}

func TestStartIndexOption(t *testing.T) {
	f := newFixture(t, DefaultConfig(), WithStartIndex(3))
	assert.Equal(t, 3, f.s.State().Index)

	g := newFixture(t, DefaultConfig(), WithStartIndex(9))
	assert.Equal(t, 0, g.s.State().Index)
}

func TestPublishesOnlyOnChange(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.rec.Push(recognizer.Outcome{RecognizedLabel: "媽", IsCorrect: true})
	f.toResult(t)

	stages := f.obs.stages()
	// start, 2 countdown decrements, recording entry, 20 samples,
	// processing, result.
	assert.Len(t, stages, 1+2+1+20+1+1)
	assert.Equal(t, StageCountdown, stages[0])
	assert.Equal(t, StageRecording, stages[3])
	assert.Equal(t, StageProcessing, stages[len(stages)-2])
	assert.Equal(t, StageResult, stages[len(stages)-1])

	for i := 1; i < len(f.obs.snaps); i++ {
		assert.NotEqual(t, f.obs.snaps[i-1], f.obs.snaps[i], "snapshot %d repeats", i)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.toResult(t)

	st := f.s.State()
	st.Samples[0] = -1
	st.LastResult.RecognizedLabel = "changed"

	again := f.s.State()
	assert.InDelta(t, 42, again.Samples[0], 1e-9)
	assert.Equal(t, "媽", again.LastResult.RecognizedLabel)
}

// The four-item walk through one correct and one tone-error attempt.
func TestMaScenario(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.rec.Push(
		recognizer.Outcome{RecognizedLabel: "媽", IsCorrect: true},
		recognizer.Outcome{RecognizedLabel: "mǎ", ErrorKind: recognizer.ErrorTone},
	)

	f.toResult(t)
	r := f.s.State().LastResult
	require.NotNil(t, r)
	assert.True(t, r.IsCorrect)
	assert.Equal(t, recognizer.ErrorNone, r.ErrorKind)

	f.s.Next()
	assert.Equal(t, "麻", f.s.State().Item.Character)

	f.toResult(t)
	r = f.s.State().LastResult
	require.NotNil(t, r)
	assert.False(t, r.IsCorrect)
	assert.Equal(t, recognizer.ErrorTone, r.ErrorKind)
	assert.Equal(t, "mǎ", r.RecognizedLabel)

	f.s.Retry()
	f.clk.Advance(6 * time.Second)
	assert.True(t, f.s.State().LastResult.IsCorrect)
	assert.Equal(t, 1, f.s.State().Index)
}

func TestSimulatorIntegration(t *testing.T) {
	cat := catalog.Default()
	clk := clock.NewFake()
	sim, err := recognizer.NewSimulator(cat, constRand{f: 0.9, i: 1}, recognizer.DefaultConfig())
	require.NoError(t, err)

	s, err := New(cat, sim, clk, DefaultConfig(), WithMeter(nil))
	require.NoError(t, err)
	s.Start()
	clk.Advance(6 * time.Second)

	r := s.State().LastResult
	require.NotNil(t, r)
	assert.False(t, r.IsCorrect)
	assert.Equal(t, recognizer.ErrorInitial, r.ErrorKind)
	assert.Equal(t, "吧", r.RecognizedLabel)
}

type constRand struct {
	f float64
	i int
}

func (c constRand) Float64() float64 { return c.f }
func (c constRand) IntN(int) int     { return c.i }

func TestConfigScale(t *testing.T) {
	c := DefaultConfig().Scale(0.1)
	assert.Equal(t, 100*time.Millisecond, c.CountdownTick)
	assert.Equal(t, 10*time.Millisecond, c.SampleInterval)
	assert.Equal(t, 200*time.Millisecond, c.CaptureDuration)
	assert.Equal(t, 3, c.CountdownSteps)

	tiny := DefaultConfig().Scale(0)
	assert.Equal(t, time.Millisecond, tiny.SampleInterval)
	assert.NoError(t, tiny.Validate())
}
