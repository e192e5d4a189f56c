package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

// Cookie names shared by handlers and middleware.
const (
	SessionCookieName = "outfitter_session"
	// HintCookieName persists the principal's outfitter choice so
	// subsequent requests resolve without a selection prompt.
	HintCookieName = "outfitter_id"
)

// SetSessionCookie writes the session token cookie.
func SetSessionCookie(c *fiber.Ctx, token string, expiry time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(expiry),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// SetHintCookie persists a resolved outfitter id.
func SetHintCookie(c *fiber.Ctx, outfitterID uuid.UUID, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     HintCookieName,
		Value:    outfitterID.String(),
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie expires a cookie by name.
func ClearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// HintFromRequest reads the tenant hint, body field first, cookie second.
// A malformed value is treated as no hint.
func HintFromRequest(c *fiber.Ctx, bodyHint string) *uuid.UUID {
	for _, raw := range []string{bodyHint, c.Cookies(HintCookieName)} {
		if raw == "" {
			continue
		}
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	return nil
}

// principalFromLocals returns the principal stored by the auth middleware.
func principalFromLocals(c *fiber.Ctx) *domain.Principal {
	principal, _ := c.Locals("principal").(*domain.Principal)
	return principal
}

// outfitterIDFromLocals returns the outfitter id stored by RequireOutfitter.
func outfitterIDFromLocals(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("outfitter_id").(uuid.UUID)
	return id
}
