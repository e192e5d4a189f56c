package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/outfitterhq/outfitterhq-sub004/internal/config"
	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/service"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/validator"
)

type AuthHandler struct {
	sessions  *service.SessionService
	cfg       *config.Config
	validator *validator.Validator
}

func NewAuthHandler(sessions *service.SessionService, cfg *config.Config, validator *validator.Validator) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		cfg:       cfg,
		validator: validator,
	}
}

// ExchangeRequest carries a verified external identity into a local
// session. Verification of the upstream token pair happens before this
// endpoint; the protocol detail is not this service's concern.
type ExchangeRequest struct {
	Subject   string `json:"subject" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
}

// Exchange imports a verified external identity and sets the session cookie
// POST /api/v1/auth/exchange
func (h *AuthHandler) Exchange(c *fiber.Ctx) error {
	var req ExchangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}

	sessionToken, principal, err := h.sessions.Exchange(c.Context(), service.ExternalIdentity{
		Subject:   req.Subject,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthenticated",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to establish session",
		})
	}

	SetSessionCookie(c, sessionToken, h.cfg.Session.Expiry, h.cfg.Session.CookieSecure)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":   "Session established",
		"principal": principal,
	})
}

// Logout revokes the current session and clears the cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*domain.SessionClaims)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	if err := h.sessions.SignOut(c.Context(), claims); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to sign out",
		})
	}

	ClearCookie(c, SessionCookieName)
	ClearCookie(c, HintCookieName)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Signed out",
	})
}

// Me returns the authenticated principal
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	if principal == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"principal": principal,
	})
}
