package analytics

import (
	"time"

	"github.com/abhisek/pinyin/internal/pinyin"
)

// Daily mission targets.
const (
	MissionAttempts     = 5
	MissionThirdTone    = 3
	MissionStreakLength = 10 * time.Minute
)

// streakGap is the longest pause between attempts that still counts as
// continuous practice.
const streakGap = 2 * time.Minute

// Mission is one daily goal with its progress toward Target.
type Mission struct {
	Label    string
	Progress int
	Target   int
}

// Done reports whether the target is reached.
func (m Mission) Done() bool {
	return m.Progress >= m.Target
}

// stamp extends the current streak or starts a new one after a long pause.
func (t *Tally) stamp(at time.Time) {
	if t.lastAt.IsZero() || at.Sub(t.lastAt) > streakGap {
		t.streakStart = at
	}
	t.lastAt = at
	t.bestStreak = max(t.bestStreak, t.lastAt.Sub(t.streakStart))
}

// Missions returns the daily goals in display order: five attempts, three
// correct third-tone readings and ten minutes of continuous practice.
// Progress is capped at the target.
func (t *Tally) Missions() []Mission {
	third := 0
	if ts, ok := t.tones[pinyin.ToneThird]; ok {
		third = ts.Correct
	}
	streakTarget := int(MissionStreakLength / time.Minute)
	return []Mission{
		{Label: "完成 5 次練習", Progress: min(t.attempts, MissionAttempts), Target: MissionAttempts},
		{Label: "唸對 3 個三聲字", Progress: min(third, MissionThirdTone), Target: MissionThirdTone},
		{Label: "連續練習 10 分鐘", Progress: min(int(t.bestStreak/time.Minute), streakTarget), Target: streakTarget},
	}
}

// MissionsDone counts completed missions.
func (t *Tally) MissionsDone() int {
	n := 0
	for _, m := range t.Missions() {
		if m.Done() {
			n++
		}
	}
	return n
}

// WeakestTone returns the attempted tone with the lowest accuracy, ties
// going to the tone with more attempts and then to tone order. It reports
// false when nothing was attempted or every attempted tone is perfect.
func (t *Tally) WeakestTone() (ToneStat, bool) {
	var weakest ToneStat
	found := false
	for _, tone := range summaryTones {
		ts, ok := t.tones[tone]
		if !ok || ts.Correct == ts.Attempts {
			continue
		}
		if !found || ts.Accuracy() < weakest.Accuracy() ||
			(ts.Accuracy() == weakest.Accuracy() && ts.Attempts > weakest.Attempts) {
			weakest = *ts
			found = true
		}
	}
	return weakest, found
}
