// Package screens holds what every screen shares: the catalog, the
// recognizer, the clock and the run's settings and tally.
package screens

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/abhisek/pinyin/internal/analytics"
	"github.com/abhisek/pinyin/internal/calibration"
	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/clock"
	"github.com/abhisek/pinyin/internal/config"
	"github.com/abhisek/pinyin/internal/practice"
	"github.com/abhisek/pinyin/internal/recognizer"
	"github.com/abhisek/pinyin/internal/speech"
)

// Env is the dependency set passed to every screen. Fields are read and
// written only from the Bubble Tea update goroutine.
type Env struct {
	Catalog    *catalog.Catalog
	Recognizer recognizer.Recognizer
	Clock      clock.Clock
	Speaker    speech.Speaker
	Tally      *analytics.Tally
	Logger     *slog.Logger

	// Settings is the live configuration; the settings screen edits it
	// in place and saves it to ConfigPath.
	Settings   *config.Config
	ConfigPath string

	Calibration     calibration.Config
	CalibrationRand interface{ Float64() float64 }

	// Environment is the most recent calibration verdict.
	Environment calibration.Environment

	// Mic and Meter are optional overrides for practice sessions.
	Mic   practice.MicSource
	Meter metric.Meter
}

// SessionOptions returns the practice.Session options derived from env.
func (e *Env) SessionOptions() []practice.Option {
	opts := []practice.Option{practice.WithLogger(e.Log())}
	if e.Mic != nil {
		opts = append(opts, practice.WithMicSource(e.Mic))
	}
	if e.Meter != nil {
		opts = append(opts, practice.WithMeter(e.Meter))
	}
	return opts
}

// CalibrationOptions returns the calibration.Calibrator options.
func (e *Env) CalibrationOptions() []calibration.Option {
	opts := []calibration.Option{calibration.WithLogger(e.Log())}
	if e.CalibrationRand != nil {
		opts = append(opts, calibration.WithRand(e.CalibrationRand))
	}
	return opts
}

// Log returns the shared logger, falling back to the process default.
func (e *Env) Log() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
