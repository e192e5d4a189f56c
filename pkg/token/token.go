// Package token issues and validates the signed session tokens carried
// by the session cookie. Tokens are produced when a verified external
// token pair is exchanged for a local session; the embedded JTI is the
// session id used for revocation.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

var (
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
)

type Service struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewService(secret string, expiry time.Duration, issuer string) (*Service, error) {
	if len(secret) < 32 {
		return nil, errors.New("session secret must be at least 32 bytes")
	}

	return &Service{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}, nil
}

// Issue signs a session token for the principal and returns the token
// string along with its session id.
func (s *Service) Issue(principal *domain.Principal) (string, uuid.UUID, error) {
	now := time.Now()
	sessionID := uuid.New()

	email := ""
	if principal.Email != nil {
		email = *principal.Email
	}

	claims := domain.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   principal.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID.String(),
		},
		PrincipalID: principal.ID,
		Email:       email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, sessionID, nil
}

// Validate parses and verifies a session token and returns its claims.
func (s *Service) Validate(tokenString string) (*domain.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &domain.SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*domain.SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Expiry exposes the configured session lifetime, used to bound
// revocation TTLs and cookie max-age.
func (s *Service) Expiry() time.Duration {
	return s.expiry
}
