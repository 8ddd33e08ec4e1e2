// Package logbook holds the exercise log business rules: date
// normalization, log assembly (range filter and limit) and normalization
// of newly logged exercises.
//
// Everything here is pure and synchronous. A Logbook never touches the
// store or the network; callers fetch entries first and hand them in.
package logbook

import (
	"time"
)

// Clock returns the current instant. Only its UTC calendar date is used.
type Clock func() time.Time

// Logbook applies the log rules against an injected clock.
// It is safe for concurrent use.
type Logbook struct {
	now Clock
}

// New creates a Logbook. A nil clock falls back to time.Now.
func New(now Clock) *Logbook {
	if now == nil {
		now = time.Now
	}
	return &Logbook{now: now}
}

// Today returns the current UTC calendar date at 00:00 UTC.
func (b *Logbook) Today() time.Time {
	return calendarDate(b.now())
}
