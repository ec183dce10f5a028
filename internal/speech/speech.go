// Package speech plays pronunciation demos through an external
// text-to-speech command.
package speech

import (
	"context"
	"errors"
	"log/slog"
)

// ErrUnavailable is returned when no speech backend can be used.
var ErrUnavailable = errors.New("speech: unavailable")

// Default demo settings.
const (
	DefaultLang = "zh-CN"
	RateSlow    = 0.8
	RateNormal  = 1.0
)

// Options tune one utterance.
type Options struct {
	// Rate is relative to normal speed; zero means 1.
	Rate float64

	// Lang is a BCP 47 tag; empty means DefaultLang.
	Lang string
}

func (o Options) withDefaults() Options {
	if o.Rate <= 0 {
		o.Rate = RateNormal
	}
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	return o
}

// Speaker says text aloud. Speak blocks until playback ends or ctx is done.
type Speaker interface {
	Speak(ctx context.Context, text string, opts Options) error
}

// Noop discards every utterance.
type Noop struct{}

func (Noop) Speak(context.Context, string, Options) error { return nil }

// BestEffort wraps a Speaker so that failures are logged and swallowed.
type BestEffort struct {
	inner  Speaker
	logger *slog.Logger
}

// NewBestEffort returns a speaker that never fails. A nil inner speaker
// behaves as Noop.
func NewBestEffort(inner Speaker, logger *slog.Logger) *BestEffort {
	if inner == nil {
		inner = Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BestEffort{inner: inner, logger: logger.With(slog.String("component", "speech"))}
}

func (b *BestEffort) Speak(ctx context.Context, text string, opts Options) error {
	if err := b.inner.Speak(ctx, text, opts); err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Warn("speech playback failed",
			slog.String("text", text),
			slog.String("error", err.Error()))
	}
	return nil
}
