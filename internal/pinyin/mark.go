// Package pinyin handles tone diacritics on romanized Mandarin syllables.
package pinyin

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Combining diacritics that carry tone information. The diaeresis on ü
// (U+0308) is part of the vowel and is never treated as a tone mark.
const (
	markFirst  = '\u0304' // macron
	markSecond = '\u0301' // acute
	markThird  = '\u030c' // caron
	markFourth = '\u0300' // grave
)

func markFor(t Tone) rune {
	switch t {
	case ToneFirst:
		return markFirst
	case ToneSecond:
		return markSecond
	case ToneThird:
		return markThird
	case ToneFourth:
		return markFourth
	}
	return 0
}

func toneFor(r rune) (Tone, bool) {
	switch r {
	case markFirst:
		return ToneFirst, true
	case markSecond:
		return ToneSecond, true
	case markThird:
		return ToneThird, true
	case markFourth:
		return ToneFourth, true
	}
	return ToneNeutral, false
}

// Split removes the tone diacritic from a syllable and returns the bare
// syllable with the tone it carried. Unmarked syllables are neutral.
func Split(syllable string) (string, Tone) {
	tone := ToneNeutral
	var b strings.Builder
	for _, r := range norm.NFD.String(syllable) {
		if t, ok := toneFor(r); ok {
			tone = t
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String()), tone
}

// Mark places the diacritic for tone on a bare syllable. The letter "v" is
// accepted as a stand-in for ü.
func Mark(base string, tone Tone) string {
	base = strings.ReplaceAll(base, "v", "ü")
	mark := markFor(tone)
	if mark == 0 {
		return norm.NFC.String(base)
	}

	runes := []rune(norm.NFC.String(base))
	i := markIndex(runes)
	if i < 0 {
		return string(runes)
	}

	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:i+1]...)
	out = append(out, mark)
	out = append(out, runes[i+1:]...)
	return norm.NFC.String(string(out))
}

// Retone replaces whatever tone a syllable carries with tone.
func Retone(syllable string, tone Tone) string {
	base, _ := Split(syllable)
	return Mark(base, tone)
}

// markIndex picks the vowel that carries the tone mark: a or e if present,
// the o of "ou", otherwise the last vowel.
func markIndex(runes []rune) int {
	lower := []rune(strings.ToLower(string(runes)))
	for i, r := range lower {
		if r == 'a' || r == 'e' {
			return i
		}
	}
	for i := 0; i+1 < len(lower); i++ {
		if lower[i] == 'o' && lower[i+1] == 'u' {
			return i
		}
	}
	for i := len(lower) - 1; i >= 0; i-- {
		if isVowel(lower[i]) {
			return i
		}
	}
	return -1
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'ü':
		return true
	}
	return false
}
