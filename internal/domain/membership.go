package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a principal can hold within an outfitter.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleGuide  Role = "guide"
	RoleCook   Role = "cook"
	RoleClient Role = "client"
)

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleGuide, RoleCook, RoleClient:
		return true
	}
	return false
}

// MembershipStatus is the lifecycle state of a membership. Invited rows
// exist for onboarding but grant no operational access; rows are soft
// deactivated, never deleted.
type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusInvited  MembershipStatus = "invited"
	MembershipStatusInactive MembershipStatus = "inactive"
)

// Membership relates a principal to an outfitter with a role. At most one
// row per (principal, outfitter) pair is authoritative for access checks.
type Membership struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	OutfitterID uuid.UUID        `json:"outfitter_id" db:"outfitter_id"`
	PrincipalID uuid.UUID        `json:"principal_id" db:"principal_id"`
	Role        Role             `json:"role" db:"role"`
	Status      MembershipStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the membership currently grants access.
func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}
