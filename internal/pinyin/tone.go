package pinyin

import "fmt"

// Tone is a Mandarin tone number. Zero is the neutral (light) tone.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneFirst
	ToneSecond
	ToneThird
	ToneFourth
)

// AllTones lists every valid tone in numeric order.
var AllTones = []Tone{ToneNeutral, ToneFirst, ToneSecond, ToneThird, ToneFourth}

// Valid reports whether t is one of the five tones.
func (t Tone) Valid() bool {
	return t >= ToneNeutral && t <= ToneFourth
}

func (t Tone) String() string {
	switch t {
	case ToneNeutral:
		return "neutral"
	case ToneFirst:
		return "1st"
	case ToneSecond:
		return "2nd"
	case ToneThird:
		return "3rd"
	case ToneFourth:
		return "4th"
	default:
		return fmt.Sprintf("tone(%d)", int(t))
	}
}

// Description is the learner-facing name of the pitch contour.
func (t Tone) Description() string {
	switch t {
	case ToneFirst:
		return "high level (1st)"
	case ToneSecond:
		return "rising (2nd)"
	case ToneThird:
		return "dipping (3rd)"
	case ToneFourth:
		return "falling (4th)"
	default:
		return "neutral"
	}
}

// Contour returns the Chao tone-letter sketch used for the tone curve.
func (t Tone) Contour() string {
	switch t {
	case ToneFirst:
		return "˥˥"
	case ToneSecond:
		return "˧˥"
	case ToneThird:
		return "˨˩˦"
	case ToneFourth:
		return "˥˩"
	default:
		return "˧"
	}
}
