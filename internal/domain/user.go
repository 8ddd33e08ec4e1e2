package domain

import (
	"time"
)

// User is a registered person whose exercises are tracked.
// Users are immutable once created and are never deleted.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"` // Unique across the store
	CreatedAt time.Time `json:"-"`
}
