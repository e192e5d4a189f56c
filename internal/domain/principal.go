package domain

import (
	"time"

	"github.com/google/uuid"
)

type PrincipalStatus string

const (
	PrincipalStatusActive   PrincipalStatus = "active"
	PrincipalStatusInactive PrincipalStatus = "inactive"
)

// Principal is an authenticated identity as delivered by the identity
// provider. Rows are created at first sign-in and never deleted here.
type Principal struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	Email      *string         `json:"email,omitempty" db:"email"`
	FirstName  string          `json:"first_name" db:"first_name"`
	LastName   string          `json:"last_name" db:"last_name"`
	Status     PrincipalStatus `json:"status" db:"status"`
	ExternalID *string         `json:"-" db:"external_id"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	LastSeenAt *time.Time      `json:"last_seen_at,omitempty" db:"last_seen_at"`
}
