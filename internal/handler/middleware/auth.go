package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/outfitterhq/outfitterhq-sub004/internal/handler"
	"github.com/outfitterhq/outfitterhq-sub004/internal/service"
)

// Auth resolves the session cookie to a principal on every request.
// Revocation and principal status are re-checked each time; a grant is
// never carried over from a previous request.
func Auth(sessions *service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionToken := c.Cookies(handler.SessionCookieName)
		if sessionToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthenticated",
			})
		}

		principal, claims, err := sessions.Authenticate(c.Context(), sessionToken)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "unauthenticated",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to verify session",
			})
		}

		c.Locals("principal", principal)
		c.Locals("claims", claims)

		return c.Next()
	}
}
