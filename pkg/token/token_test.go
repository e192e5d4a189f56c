package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewServiceRejectsShortSecret(t *testing.T) {
	_, err := NewService("short", time.Hour, "test")
	assert.Error(t, err)
}

func TestIssueValidateRoundTrip(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour, "outfitter-service")
	require.NoError(t, err)

	email := "guide@example.com"
	principal := &domain.Principal{
		ID:    uuid.New(),
		Email: &email,
	}

	signed, sessionID, err := svc.Issue(principal)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, claims.PrincipalID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, sessionID.String(), claims.ID)
	assert.Equal(t, "outfitter-service", claims.Issuer)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour, "test")
	require.NoError(t, err)

	principal := &domain.Principal{ID: uuid.New()}
	signed, _, err := svc.Issue(principal)
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour, "test")
	require.NoError(t, err)

	other, err := NewService(strings.Repeat("z", 32), time.Hour, "test")
	require.NoError(t, err)

	signed, _, err := other.Issue(&domain.Principal{ID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc, err := NewService(testSecret, -time.Minute, "test")
	require.NoError(t, err)

	signed, _, err := svc.Issue(&domain.Principal{ID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
