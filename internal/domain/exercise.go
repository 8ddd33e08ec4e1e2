// internal/domain/exercise.go
package domain

import (
	"time"
)

// Exercise is a single logged exercise entry owned by a User.
type Exercise struct {
	ID          string `json:"-"`
	UserID      string `json:"-"` // Back-reference to the owning User, never cascaded
	Description string `json:"description"`
	Duration    int    `json:"duration"` // Minutes, always >= 1 for new entries

	// Date holds the stored date as the store yields it. New entries are
	// written as a time.Time at 00:00 UTC, but older documents may carry an
	// ISO string, a display string, epoch millis or a compact YYYYMMDD
	// integer. Use logbook.NormalizeDate before comparing or rendering it.
	Date any `json:"-"`

	CreatedAt time.Time `json:"-"`
}
