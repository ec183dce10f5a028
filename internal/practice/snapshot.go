package practice

import (
	"fmt"

	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/recognizer"
)

// Stage is the position of a session in the record/evaluate flow.
type Stage int

const (
	StageIdle Stage = iota
	StageCountdown
	StageRecording
	StageProcessing
	StageResult
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageCountdown:
		return "countdown"
	case StageRecording:
		return "recording"
	case StageProcessing:
		return "processing"
	case StageResult:
		return "result"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Snapshot is an immutable view of a session, published after every change.
type Snapshot struct {
	SessionID string
	Stage     Stage
	Item      catalog.Item
	Index     int
	Total     int

	// CountdownRemaining is only meaningful in StageCountdown.
	CountdownRemaining int

	// LatestMicLevel is the most recent sample, or zero if none.
	LatestMicLevel float64

	// Samples holds the mic levels of the current capture, each in [0,100).
	Samples []float64

	// LastResult is set only in StageResult.
	LastResult *recognizer.Outcome

	// CycleComplete is raised when next wraps past the last item.
	CycleComplete bool
}

// Observer receives snapshots on the session's goroutine.
type Observer interface {
	OnSnapshot(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) OnSnapshot(s Snapshot) { f(s) }
