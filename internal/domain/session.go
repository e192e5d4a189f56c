package domain

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the JWT claims carried by the session cookie. The
// registered JTI is the session id used for revocation.
type SessionClaims struct {
	jwt.RegisteredClaims
	PrincipalID uuid.UUID `json:"principal_id"`
	Email       string    `json:"email,omitempty"`
}
