// Package clock schedules delayed and periodic callbacks behind cancellable
// tokens. Callbacks from Real are delivered through a Dispatcher so that
// every callback runs on the caller's single event-loop goroutine.
package clock

import "time"

// Token identifies a scheduled callback. The zero Token is never issued.
type Token struct {
	id uint64
}

// Valid reports whether the token was issued by a clock.
func (t Token) Valid() bool {
	return t.id != 0
}

// Clock schedules callbacks.
type Clock interface {
	// After runs fn once, d after the call.
	After(d time.Duration, fn func()) Token

	// Every runs fn every d until the token is cancelled.
	Every(d time.Duration, fn func()) Token

	// Cancel stops a scheduled callback. A cancelled callback never runs,
	// even if its deadline has already passed. Cancelling an unknown or
	// already-fired token is a no-op.
	Cancel(t Token)
}
