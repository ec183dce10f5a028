package recognizer

import "github.com/abhisek/pinyin/internal/catalog"

// Stub returns queued outcomes in order, then Fallback once the queue is
// empty. A zero Fallback means "correct, not amplified". Like the session
// that calls it, a Stub is used from a single goroutine.
type Stub struct {
	queue    []Outcome
	Fallback *Outcome
	Calls    []catalog.Item
}

var _ Recognizer = (*Stub)(nil)

// NewStub returns a stub that replays outcomes.
func NewStub(outcomes ...Outcome) *Stub {
	return &Stub{queue: outcomes}
}

// Push appends outcomes to the queue.
func (s *Stub) Push(outcomes ...Outcome) {
	s.queue = append(s.queue, outcomes...)
}

func (s *Stub) Classify(item catalog.Item) Outcome {
	s.Calls = append(s.Calls, item)
	if len(s.queue) > 0 {
		out := s.queue[0]
		s.queue = s.queue[1:]
		return out
	}
	if s.Fallback != nil {
		return *s.Fallback
	}
	return Outcome{RecognizedLabel: item.Character, IsCorrect: true}
}
