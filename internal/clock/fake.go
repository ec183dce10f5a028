package clock

import "time"

// Fake is a manually advanced Clock for tests. Callbacks run synchronously
// inside Advance in deadline order; timers due at the same instant fire in
// the order they were scheduled.
type Fake struct {
	now    time.Duration
	nextID uint64
	timers map[uint64]*fakeTimer
}

type fakeTimer struct {
	id     uint64
	due    time.Duration
	period time.Duration
	fn     func()
}

var _ Clock = (*Fake)(nil)

// NewFake returns a Fake clock at time zero.
func NewFake() *Fake {
	return &Fake{timers: make(map[uint64]*fakeTimer)}
}

// Elapsed returns how far the clock has been advanced.
func (f *Fake) Elapsed() time.Duration {
	return f.now
}

// Pending returns the number of scheduled, uncancelled timers.
func (f *Fake) Pending() int {
	return len(f.timers)
}

func (f *Fake) After(d time.Duration, fn func()) Token {
	return f.schedule(d, 0, fn)
}

func (f *Fake) Every(d time.Duration, fn func()) Token {
	if d <= 0 {
		panic("clock: non-positive interval")
	}
	return f.schedule(d, d, fn)
}

func (f *Fake) schedule(d, period time.Duration, fn func()) Token {
	f.nextID++
	f.timers[f.nextID] = &fakeTimer{
		id:     f.nextID,
		due:    f.now + d,
		period: period,
		fn:     fn,
	}
	return Token{id: f.nextID}
}

func (f *Fake) Cancel(t Token) {
	delete(f.timers, t.id)
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Callbacks may schedule or cancel timers; the pending set is re-read
// after each callback.
func (f *Fake) Advance(d time.Duration) {
	target := f.now + d
	for {
		next := f.earliest(target)
		if next == nil {
			break
		}
		f.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			delete(f.timers, next.id)
		}
		next.fn()
	}
	f.now = target
}

func (f *Fake) earliest(limit time.Duration) *fakeTimer {
	var best *fakeTimer
	for _, t := range f.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}
