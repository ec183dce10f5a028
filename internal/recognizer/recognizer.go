// Package recognizer classifies a spoken attempt at a practice item. The
// Simulator stands in for a speech model by drawing outcomes from a seeded
// random source.
package recognizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/pinyin/internal/catalog"
)

var (
	// ErrEmptyCatalog is returned when a simulator is built without items
	// to draw wrong labels from.
	ErrEmptyCatalog = errors.New("recognizer: empty catalog")

	// ErrInvalidProbability is returned for a probability outside [0,1].
	ErrInvalidProbability = errors.New("recognizer: probability out of range")
)

// ErrorKind names the part of a syllable that was mispronounced.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorTone
	ErrorInitial
	ErrorFinal
)

// ErrorKinds lists the kinds an incorrect attempt can carry.
var ErrorKinds = []ErrorKind{ErrorTone, ErrorInitial, ErrorFinal}

func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorTone:
		return "tone"
	case ErrorInitial:
		return "initial"
	case ErrorFinal:
		return "final"
	default:
		return fmt.Sprintf("error(%d)", int(k))
	}
}

// ParseErrorKind maps a kind name back to its value. "correct" is
// accepted as an alias for none.
func ParseErrorKind(s string) (ErrorKind, error) {
	switch s {
	case "none", "correct":
		return ErrorNone, nil
	case "tone":
		return ErrorTone, nil
	case "initial":
		return ErrorInitial, nil
	case "final":
		return ErrorFinal, nil
	default:
		return ErrorNone, fmt.Errorf("unknown error kind %q", s)
	}
}

// Description is the learner-facing explanation shown on the result panel.
func (k ErrorKind) Description() string {
	switch k {
	case ErrorTone:
		return "Tone error: the pitch contour did not match."
	case ErrorInitial:
		return "Initial error: the opening consonant was off."
	case ErrorFinal:
		return "Final error: the vowel ending was off."
	default:
		return ""
	}
}

// Outcome is the result of classifying one attempt.
type Outcome struct {
	// RecognizedLabel is what the recognizer heard: the target character
	// when correct, otherwise a confusable character or re-toned syllable.
	RecognizedLabel string

	IsCorrect bool

	// ErrorKind is ErrorNone exactly when IsCorrect is true.
	ErrorKind ErrorKind

	// Amplified reports that the input was quiet and had to be boosted.
	Amplified bool
}

// Recognizer classifies an attempt at item.
type Recognizer interface {
	Classify(item catalog.Item) Outcome
}

// Rand is the random source a Simulator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Config holds the simulator probabilities.
type Config struct {
	SuccessProbability float64
	AmplifyProbability float64
}

// DefaultConfig returns the standard probabilities.
func DefaultConfig() Config {
	return Config{
		SuccessProbability: 0.6,
		AmplifyProbability: 0.3,
	}
}

// Validate checks both probabilities lie in [0,1].
func (c Config) Validate() error {
	if !inUnit(c.SuccessProbability) {
		return fmt.Errorf("%w: success probability %v", ErrInvalidProbability, c.SuccessProbability)
	}
	if !inUnit(c.AmplifyProbability) {
		return fmt.Errorf("%w: amplify probability %v", ErrInvalidProbability, c.AmplifyProbability)
	}
	return nil
}

func inUnit(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}
