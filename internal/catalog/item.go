package catalog

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/pinyin/internal/pinyin"
)

var (
	// ErrEmpty is returned when a catalog has no items.
	ErrEmpty = errors.New("catalog is empty")

	// ErrInvalidItem is returned when an item breaks a catalog invariant.
	ErrInvalidItem = errors.New("invalid practice item")
)

// Item is a single unit of practice content.
type Item struct {
	// Character is the target grapheme, exactly one rune.
	Character string `json:"character" yaml:"character"`

	// Pinyin is the romanization including its tone diacritic.
	Pinyin string `json:"pinyin" yaml:"pinyin"`

	// Initial is the syllable onset; empty for zero-initial syllables.
	Initial string `json:"initial" yaml:"initial"`

	// Final is the rime following the initial.
	Final string `json:"final" yaml:"final"`

	// Tone is the tone number, 0 for neutral.
	Tone pinyin.Tone `json:"tone" yaml:"tone"`

	// Meaning is an optional English gloss.
	Meaning string `json:"meaning,omitempty" yaml:"meaning,omitempty"`
}

// Validate checks the item invariants: one-rune character, non-empty
// pinyin whose diacritic agrees with Tone, and a valid tone number.
func (it Item) Validate() error {
	if utf8.RuneCountInString(it.Character) != 1 {
		return fmt.Errorf("%w: character %q must be a single grapheme", ErrInvalidItem, it.Character)
	}
	if strings.TrimSpace(it.Pinyin) == "" {
		return fmt.Errorf("%w: %s has empty pinyin", ErrInvalidItem, it.Character)
	}
	if !it.Tone.Valid() {
		return fmt.Errorf("%w: %s has tone %d, want 0-4", ErrInvalidItem, it.Character, int(it.Tone))
	}
	if strings.TrimSpace(it.Final) == "" {
		return fmt.Errorf("%w: %s has empty final", ErrInvalidItem, it.Character)
	}
	if _, tone := pinyin.Split(it.Pinyin); tone != it.Tone {
		return fmt.Errorf("%w: %s pinyin %q carries the %s tone but tone is %s",
			ErrInvalidItem, it.Character, it.Pinyin, tone, it.Tone)
	}
	return nil
}

// Syllable returns the pinyin without its tone mark.
func (it Item) Syllable() string {
	base, _ := pinyin.Split(it.Pinyin)
	return base
}
