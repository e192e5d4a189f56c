package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutfitterStatus represents the status of an outfitter account
type OutfitterStatus string

const (
	OutfitterStatusActive    OutfitterStatus = "active"
	OutfitterStatusSuspended OutfitterStatus = "suspended"
	OutfitterStatusTrial     OutfitterStatus = "trial"
)

// Outfitter is the multi-tenancy scoping unit: every domain row belongs
// to exactly one outfitter, and every query must be filtered by a
// resolved outfitter id.
type Outfitter struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Slug      string          `json:"slug" db:"slug"`
	State     string          `json:"state" db:"state"` // two-letter state whose draw catalog applies
	OwnerID   *uuid.UUID      `json:"owner_id,omitempty" db:"owner_id"`
	Status    OutfitterStatus `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}
