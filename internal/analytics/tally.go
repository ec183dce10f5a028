// Package analytics aggregates classified attempts for the current run.
package analytics

import (
	"sort"
	"time"

	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/pinyin"
	"github.com/abhisek/pinyin/internal/recognizer"
)

// Tally accumulates outcomes in memory. It is not safe for concurrent use.
type Tally struct {
	attempts  int
	correct   int
	amplified int
	errors    map[recognizer.ErrorKind]int
	tones     map[pinyin.Tone]*ToneStat
	items     map[string]*ItemStat
	order     []string

	now         func() time.Time
	streakStart time.Time
	lastAt      time.Time
	bestStreak  time.Duration
}

// Option customizes a Tally.
type Option func(*Tally)

// WithNow sets the time source used to stamp attempts.
func WithNow(now func() time.Time) Option {
	return func(t *Tally) { t.now = now }
}

// ToneStat is the attempt count and accuracy for one tone.
type ToneStat struct {
	Tone     pinyin.Tone
	Attempts int
	Correct  int
}

// Accuracy returns the correct percentage, or zero without attempts.
func (s ToneStat) Accuracy() float64 {
	return percent(s.Correct, s.Attempts)
}

// ItemStat counts attempts at one practice item.
type ItemStat struct {
	Item     catalog.Item
	Attempts int
	Errors   int
}

// ErrorStat is the count and share of one error kind among all errors.
type ErrorStat struct {
	Kind  recognizer.ErrorKind
	Count int
	Share float64
}

// Summary is a point-in-time report.
type Summary struct {
	Attempts  int
	Correct   int
	Amplified int
	Accuracy  float64
	Errors    []ErrorStat
	Tones     []ToneStat
}

// New returns an empty tally.
func New(opts ...Option) *Tally {
	t := &Tally{
		errors: make(map[recognizer.ErrorKind]int),
		tones:  make(map[pinyin.Tone]*ToneStat),
		items:  make(map[string]*ItemStat),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record adds one classified attempt at item.
func (t *Tally) Record(item catalog.Item, out recognizer.Outcome) {
	t.attempts++
	t.stamp(t.now())
	if out.Amplified {
		t.amplified++
	}

	ts, ok := t.tones[item.Tone]
	if !ok {
		ts = &ToneStat{Tone: item.Tone}
		t.tones[item.Tone] = ts
	}
	ts.Attempts++

	key := item.Character + "/" + item.Pinyin
	is, ok := t.items[key]
	if !ok {
		is = &ItemStat{Item: item}
		t.items[key] = is
		t.order = append(t.order, key)
	}
	is.Attempts++

	if out.IsCorrect {
		t.correct++
		ts.Correct++
		return
	}
	t.errors[out.ErrorKind]++
	is.Errors++
}

// summaryTones orders per-tone reports, neutral last.
var summaryTones = []pinyin.Tone{pinyin.ToneFirst, pinyin.ToneSecond, pinyin.ToneThird, pinyin.ToneFourth, pinyin.ToneNeutral}

// Summary reports totals, error kinds in a fixed order and per-tone
// accuracy for tones that were attempted, neutral last.
func (t *Tally) Summary() Summary {
	s := Summary{
		Attempts:  t.attempts,
		Correct:   t.correct,
		Amplified: t.amplified,
		Accuracy:  percent(t.correct, t.attempts),
	}
	wrong := t.attempts - t.correct
	for _, k := range recognizer.ErrorKinds {
		n := t.errors[k]
		s.Errors = append(s.Errors, ErrorStat{Kind: k, Count: n, Share: percent(n, wrong)})
	}
	for _, tone := range summaryTones {
		if ts, ok := t.tones[tone]; ok {
			s.Tones = append(s.Tones, *ts)
		}
	}
	return s
}

// WeakItems returns up to n items with at least one error, most errors
// first, ties in order of first attempt. n <= 0 means no limit.
func (t *Tally) WeakItems(n int) []ItemStat {
	var out []ItemStat
	for _, key := range t.order {
		if is := t.items[key]; is.Errors > 0 {
			out = append(out, *is)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Errors > out[j].Errors })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Reset clears every count and the practice streak.
func (t *Tally) Reset() {
	*t = *New(WithNow(t.now))
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
