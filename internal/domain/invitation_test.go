package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvitationIsValid(t *testing.T) {
	base := OutfitterInvitation{
		Status:    InvitationStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	t.Run("active and unexpired", func(t *testing.T) {
		inv := base
		assert.True(t, inv.IsValid())
	})

	t.Run("revoked", func(t *testing.T) {
		inv := base
		inv.Status = InvitationStatusRevoked
		assert.False(t, inv.IsValid())
	})

	t.Run("expired", func(t *testing.T) {
		inv := base
		inv.ExpiresAt = time.Now().Add(-time.Minute)
		assert.False(t, inv.IsValid())
	})

	t.Run("uses exhausted", func(t *testing.T) {
		maxUses := 2
		inv := base
		inv.MaxUses = &maxUses
		inv.CurrentUses = 2
		assert.False(t, inv.IsValid())
	})

	t.Run("uses remaining", func(t *testing.T) {
		maxUses := 2
		inv := base
		inv.MaxUses = &maxUses
		inv.CurrentUses = 1
		assert.True(t, inv.IsValid())
	})
}

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleOwner, RoleAdmin, RoleGuide, RoleCook, RoleClient} {
		assert.Truef(t, ValidRole(role), "role %q should be valid", role)
	}
	assert.False(t, ValidRole("wrangler"))
	assert.False(t, ValidRole(""))
}
