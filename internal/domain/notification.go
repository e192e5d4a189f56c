package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a per-principal message scoped to an outfitter, e.g.
// "contract ready for review". Read state flips via the
// mark_all_notifications_read procedure, never by deleting rows.
type Notification struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OutfitterID uuid.UUID  `json:"outfitter_id" db:"outfitter_id"`
	PrincipalID uuid.UUID  `json:"principal_id" db:"principal_id"`
	Kind        string     `json:"kind" db:"kind"`
	Body        string     `json:"body" db:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
