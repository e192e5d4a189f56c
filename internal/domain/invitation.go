package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus represents the status of an outfitter invitation
type InvitationStatus string

const (
	InvitationStatusActive  InvitationStatus = "active"
	InvitationStatusExpired InvitationStatus = "expired"
	InvitationStatusRevoked InvitationStatus = "revoked"
)

// OutfitterInvitation represents an invitation to join an outfitter.
// Accepting one transitions the matching membership invited -> active,
// or creates an active membership carrying the invitation's role.
type OutfitterInvitation struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	OutfitterID uuid.UUID        `json:"outfitter_id" db:"outfitter_id"`
	TokenHash   string           `json:"-" db:"token_hash"` // SHA-256 hash, never expose
	CreatedBy   uuid.UUID        `json:"created_by" db:"created_by"`
	Role        Role             `json:"role" db:"role"`
	Email       *string          `json:"email,omitempty" db:"email"`       // restrict acceptance to this address
	MaxUses     *int             `json:"max_uses,omitempty" db:"max_uses"` // NULL = unlimited
	CurrentUses int              `json:"current_uses" db:"current_uses"`
	ExpiresAt   time.Time        `json:"expires_at" db:"expires_at"`
	Status      InvitationStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// IsValid checks if the invitation is still valid
func (i *OutfitterInvitation) IsValid() bool {
	if i.Status != InvitationStatusActive {
		return false
	}

	if time.Now().After(i.ExpiresAt) {
		return false
	}

	if i.MaxUses != nil && i.CurrentUses >= *i.MaxUses {
		return false
	}

	return true
}
