package clock

import (
	"context"
	"sync"
)

// Loop is a Dispatcher that queues callbacks for a single consumer. The
// consumer either calls Run or pulls callbacks one at a time with Next.
type Loop struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

var _ Dispatcher = (*Loop)(nil)

// NewLoop creates an open Loop.
func NewLoop() *Loop {
	return &Loop{
		ch:   make(chan func()),
		done: make(chan struct{}),
	}
}

// Dispatch blocks until the consumer takes fn or the loop is closed, in
// which case fn is dropped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case l.ch <- fn:
	case <-l.done:
	}
}

// Next waits for the next callback. It returns false once the loop is closed.
func (l *Loop) Next() (func(), bool) {
	select {
	case fn := <-l.ch:
		return fn, true
	case <-l.done:
		return nil, false
	}
}

// Run executes callbacks until ctx is done or the loop is closed. After
// each callback it calls after, if non-nil, on the same goroutine.
func (l *Loop) Run(ctx context.Context, after func()) {
	for {
		select {
		case fn := <-l.ch:
			fn()
			if after != nil {
				after()
			}
		case <-l.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Close releases any blocked dispatchers and stops Run and Next.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}
