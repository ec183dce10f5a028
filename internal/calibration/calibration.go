// Package calibration simulates the microphone check run before practice:
// device scan, sample-rate lock and a noise-floor verdict.
package calibration

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/pinyin/internal/clock"
)

// Stage is the calibration step.
type Stage int

const (
	StageScanning Stage = iota
	StageTesting
	StageSuccess
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageScanning:
		return "scanning"
	case StageTesting:
		return "testing"
	case StageSuccess:
		return "success"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Environment is the noise verdict.
type Environment int

const (
	EnvironmentUnknown Environment = iota
	EnvironmentQuiet
	EnvironmentNoisy
)

func (e Environment) String() string {
	switch e {
	case EnvironmentQuiet:
		return "quiet"
	case EnvironmentNoisy:
		return "noisy"
	default:
		return "unknown"
	}
}

// Sample rates shown while locking.
const (
	Rate44k = "44.1kHz"
	Rate48k = "48kHz"
)

// Config holds calibration timings.
type Config struct {
	ScanDuration     time.Duration
	TestDuration     time.Duration
	RateToggle       time.Duration
	SuccessHold      time.Duration
	QuietProbability float64
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		ScanDuration:     1500 * time.Millisecond,
		TestDuration:     3 * time.Second,
		RateToggle:       800 * time.Millisecond,
		SuccessHold:      2500 * time.Millisecond,
		QuietProbability: 0.7,
	}
}

// ErrInvalidConfig reports unusable calibration settings.
var ErrInvalidConfig = errors.New("calibration: invalid config")

// Validate rejects non-positive durations and probabilities outside [0,1].
// Durations are checked in pipeline order so the first bad one is reported.
func (c Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"scan", c.ScanDuration},
		{"test", c.TestDuration},
		{"rate toggle", c.RateToggle},
		{"success hold", c.SuccessHold},
	}
	for _, dur := range durations {
		if dur.d <= 0 {
			return fmt.Errorf("%w: %s duration %s must be positive", ErrInvalidConfig, dur.name, dur.d)
		}
	}
	if c.QuietProbability < 0 || c.QuietProbability > 1 {
		return fmt.Errorf("%w: quiet probability %v out of range", ErrInvalidConfig, c.QuietProbability)
	}
	return nil
}

// Snapshot is the published calibration state.
type Snapshot struct {
	Stage       Stage
	SampleRate  string
	Environment Environment
}

// Calibrator runs one calibration at a time. Like practice.Session it must
// only be used from the clock's dispatch goroutine.
type Calibrator struct {
	clk    clock.Clock
	cfg    Config
	rng    interface{ Float64() float64 }
	logger *slog.Logger
	notify func(Snapshot)

	stage  Stage
	rate   string
	env    Environment
	timers []clock.Token
}

// Option customizes a Calibrator.
type Option func(*Calibrator)

// WithRand sets the source for the noise verdict.
func WithRand(r interface{ Float64() float64 }) Option {
	return func(c *Calibrator) { c.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calibrator) { c.logger = l }
}

// New returns a calibrator that reports every change to notify.
func New(clk clock.Clock, cfg Config, notify func(Snapshot), opts ...Option) (*Calibrator, error) {
	if clk == nil {
		return nil, fmt.Errorf("%w: nil clock", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Calibrator{
		clk:    clk,
		cfg:    cfg,
		logger: slog.Default(),
		notify: notify,
		rate:   Rate44k,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.logger = c.logger.With(slog.String("component", "calibration"))
	return c, nil
}

// State returns the current snapshot.
func (c *Calibrator) State() Snapshot {
	return Snapshot{Stage: c.stage, SampleRate: c.rate, Environment: c.env}
}

// Start begins (or restarts) calibration from scanning.
func (c *Calibrator) Start() {
	c.enter(StageScanning)
	c.rate = Rate44k
	c.env = EnvironmentUnknown
	c.timers = append(c.timers, c.clk.After(c.cfg.ScanDuration, c.startTesting))
	c.publish()
}

// Recalibrate discards any result and starts over.
func (c *Calibrator) Recalibrate() {
	c.Start()
}

// Skip jumps straight to Done, keeping whatever verdict exists.
func (c *Calibrator) Skip() {
	if c.stage == StageDone {
		return
	}
	c.enter(StageDone)
	c.publish()
}

// Close cancels pending timers.
func (c *Calibrator) Close() {
	c.cancel()
}

func (c *Calibrator) enter(s Stage) {
	c.cancel()
	c.stage = s
}

func (c *Calibrator) cancel() {
	for _, t := range c.timers {
		c.clk.Cancel(t)
	}
	c.timers = c.timers[:0]
}

func (c *Calibrator) startTesting() {
	c.enter(StageTesting)
	c.timers = append(c.timers,
		c.clk.Every(c.cfg.RateToggle, c.toggleRate),
		c.clk.After(c.cfg.TestDuration, c.finishTesting),
	)
	c.publish()
}

func (c *Calibrator) toggleRate() {
	if c.rate == Rate44k {
		c.rate = Rate48k
	} else {
		c.rate = Rate44k
	}
	c.publish()
}

func (c *Calibrator) finishTesting() {
	c.enter(StageSuccess)
	c.rate = Rate48k
	if c.rng.Float64() < c.cfg.QuietProbability {
		c.env = EnvironmentQuiet
	} else {
		c.env = EnvironmentNoisy
	}
	c.logger.Info("microphone calibrated",
		slog.String("sample_rate", c.rate),
		slog.String("environment", c.env.String()))
	c.timers = append(c.timers, c.clk.After(c.cfg.SuccessHold, func() {
		c.enter(StageDone)
		c.publish()
	}))
	c.publish()
}

func (c *Calibrator) publish() {
	if c.notify != nil {
		c.notify(c.State())
	}
}
