package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Dispatcher hands a callback to the goroutine that owns session state.
type Dispatcher interface {
	Dispatch(fn func())
}

// Real is a wall-clock Clock. Timer goroutines never run callbacks
// themselves; they pass them to the Dispatcher, and the wrapped callback
// re-checks cancellation on the dispatcher goroutine before running.
type Real struct {
	d Dispatcher

	mu     sync.Mutex
	nextID uint64
	timers map[uint64]*realTimer
}

type realTimer struct {
	cancelled atomic.Bool
	stop      func()
}

var _ Clock = (*Real)(nil)

// NewReal returns a Real clock delivering callbacks through d.
func NewReal(d Dispatcher) *Real {
	return &Real{d: d, timers: make(map[uint64]*realTimer)}
}

func (r *Real) forget(id uint64) {
	r.mu.Lock()
	delete(r.timers, id)
	r.mu.Unlock()
}

func (r *Real) After(d time.Duration, fn func()) Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	rt := &realTimer{}
	t := time.AfterFunc(d, func() {
		r.d.Dispatch(func() {
			if rt.cancelled.Load() {
				return
			}
			r.forget(id)
			fn()
		})
	})
	rt.stop = func() { t.Stop() }
	r.timers[id] = rt
	return Token{id: id}
}

func (r *Real) Every(d time.Duration, fn func()) Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	rt := &realTimer{}
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.d.Dispatch(func() {
					if rt.cancelled.Load() {
						return
					}
					fn()
				})
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	rt.stop = func() { once.Do(func() { close(done) }) }
	r.timers[id] = rt
	return Token{id: id}
}

func (r *Real) Cancel(t Token) {
	r.mu.Lock()
	rt, ok := r.timers[t.id]
	delete(r.timers, t.id)
	r.mu.Unlock()
	if !ok {
		return
	}
	rt.cancelled.Store(true)
	if rt.stop != nil {
		rt.stop()
	}
}

// CancelAll cancels every outstanding timer.
func (r *Real) CancelAll() {
	r.mu.Lock()
	ids := make([]uint64, 0, len(r.timers))
	for id := range r.timers {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	for _, id := range ids {
		r.Cancel(Token{id: id})
	}
}
