package practice

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyCatalog is returned when a session is created without items.
	ErrEmptyCatalog = errors.New("practice: empty catalog")

	// ErrInvalidConfig is returned for unusable session timings or
	// missing collaborators.
	ErrInvalidConfig = errors.New("practice: invalid config")
)

// Config holds the session timings.
type Config struct {
	// CountdownSteps is the number of countdown ticks before recording.
	CountdownSteps int

	// CountdownTick is the time between countdown steps.
	CountdownTick time.Duration

	// SampleInterval is the time between mic level samples while recording.
	SampleInterval time.Duration

	// CaptureDuration is how long recording runs without a stop.
	CaptureDuration time.Duration

	// ProcessingDelay is the time between capture end and the result.
	ProcessingDelay time.Duration

	// AutoAdvance starts the countdown for the next item straight away
	// instead of waiting in Idle.
	AutoAdvance bool
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		CountdownSteps:  3,
		CountdownTick:   time.Second,
		SampleInterval:  100 * time.Millisecond,
		CaptureDuration: 2 * time.Second,
		ProcessingDelay: time.Second,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.CountdownSteps < 1:
		return fmt.Errorf("%w: countdown steps %d, want at least 1", ErrInvalidConfig, c.CountdownSteps)
	case c.CountdownTick <= 0:
		return fmt.Errorf("%w: countdown tick %s", ErrInvalidConfig, c.CountdownTick)
	case c.SampleInterval <= 0:
		return fmt.Errorf("%w: sample interval %s", ErrInvalidConfig, c.SampleInterval)
	case c.CaptureDuration <= 0:
		return fmt.Errorf("%w: capture duration %s", ErrInvalidConfig, c.CaptureDuration)
	case c.ProcessingDelay <= 0:
		return fmt.Errorf("%w: processing delay %s", ErrInvalidConfig, c.ProcessingDelay)
	}
	return nil
}

// Scale returns c with every duration multiplied by f. Durations never
// drop below one millisecond.
func (c Config) Scale(f float64) Config {
	scale := func(d time.Duration) time.Duration {
		s := time.Duration(float64(d) * f)
		if s < time.Millisecond {
			return time.Millisecond
		}
		return s
	}
	c.CountdownTick = scale(c.CountdownTick)
	c.SampleInterval = scale(c.SampleInterval)
	c.CaptureDuration = scale(c.CaptureDuration)
	c.ProcessingDelay = scale(c.ProcessingDelay)
	return c
}
