package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/outfitterhq/outfitterhq-sub004/internal/access"
	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/handler"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

// RequireOutfitter resolves the outfitter a request is scoped to and
// verifies the principal's membership satisfies the required roles
// (none means any active role). The resolved id and membership land in
// request locals; handlers read those instead of ambient state. Runs
// after Auth.
//
// Resolution and authorization are re-evaluated against fresh membership
// rows on every request so a revocation takes effect immediately.
func RequireOutfitter(memberships repository.MembershipRepository, cookieSecure bool, required ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := c.Locals("principal").(*domain.Principal)
		hint := handler.HintFromRequest(c, "")

		// The active-membership list is only needed when there is no
		// hint to resolve against.
		var active []domain.Membership
		if principal != nil && hint == nil {
			var err error
			active, err = memberships.ListActiveByPrincipal(c.Context(), principal.ID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to load memberships",
				})
			}
		}

		resolution := access.ResolveOutfitter(principal, hint, active)
		switch resolution.State {
		case access.StateUnauthenticated:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthenticated",
			})
		case access.StateNeedsSelection:
			candidates := make([]fiber.Map, len(resolution.Candidates))
			for i, m := range resolution.Candidates {
				candidates[i] = fiber.Map{
					"outfitter_id": m.OutfitterID,
					"role":         m.Role,
				}
			}
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":      "needs_selection",
				"candidates": candidates,
			})
		}

		if resolution.AutoSelected {
			handler.SetHintCookie(c, resolution.OutfitterID, cookieSecure)
		}

		membership, err := memberships.Get(c.Context(), principal.ID, resolution.OutfitterID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load membership",
			})
		}

		decision := access.Authorize(membership, required...)
		if !decision.Granted {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":  "forbidden",
				"reason": decision.Reason,
			})
		}

		c.Locals("outfitter_id", resolution.OutfitterID)
		c.Locals("membership", membership)

		return c.Next()
	}
}
