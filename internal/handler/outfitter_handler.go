package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/config"
	"github.com/outfitterhq/outfitterhq-sub004/internal/service"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/validator"
)

type OutfitterHandler struct {
	outfitters *service.OutfitterService
	cfg        *config.Config
	validator  *validator.Validator
}

func NewOutfitterHandler(outfitters *service.OutfitterService, cfg *config.Config, validator *validator.Validator) *OutfitterHandler {
	return &OutfitterHandler{
		outfitters: outfitters,
		cfg:        cfg,
		validator:  validator,
	}
}

// CreateOutfitterRequest represents the request body for creating an outfitter
type CreateOutfitterRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=255"`
	Slug  string `json:"slug" validate:"omitempty,min=3,max=100"` // auto-generated if empty
	State string `json:"state" validate:"required,len=2,alpha"`
}

// SelectOutfitterRequest represents the request body for tenant selection
type SelectOutfitterRequest struct {
	OutfitterID string `json:"outfitter_id" validate:"required,uuid"`
}

// Create registers a new outfitter owned by the caller
// POST /api/v1/outfitters
func (h *OutfitterHandler) Create(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	if principal == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var req CreateOutfitterRequest
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

	outfitter, err := h.outfitters.CreateOutfitter(c.Context(), principal.ID, req.Name, req.Slug, req.State)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}

	// The creator has exactly this outfitter in scope now; persist it.
	SetHintCookie(c, outfitter.ID, h.cfg.Session.CookieSecure)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":   "Outfitter created successfully",
		"outfitter": outfitter,
	})
}

// Mine lists the caller's active memberships with their outfitters
// GET /api/v1/outfitters/mine
func (h *OutfitterHandler) Mine(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	if principal == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	candidates, err := h.outfitters.ListCandidates(c.Context(), principal.ID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to list outfitters",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"outfitters": candidates,
	})
}

// Select scopes future requests to the chosen outfitter via the hint cookie
// POST /api/v1/outfitters/select
func (h *OutfitterHandler) Select(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	if principal == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var req SelectOutfitterRequest
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

	outfitterID, err := uuid.Parse(req.OutfitterID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid outfitter_id",
		})
	}

	outfitter, err := h.outfitters.Select(c.Context(), principal.ID, outfitterID)
	if err != nil {
		if errors.Is(err, service.ErrNotAMember) || errors.Is(err, service.ErrInactiveOutfitter) {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error":  "forbidden",
				"reason": err.Error(),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to select outfitter",
		})
	}

	SetHintCookie(c, outfitter.ID, h.cfg.Session.CookieSecure)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":   "Outfitter selected",
		"outfitter": outfitter,
	})
}

// Current returns the outfitter the request resolved to
// GET /api/v1/outfitter
func (h *OutfitterHandler) Current(c *fiber.Ctx) error {
	outfitterID := outfitterIDFromLocals(c)

	outfitter, err := h.outfitters.GetOutfitter(c.Context(), outfitterID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"message": "Outfitter not found",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"outfitter":  outfitter,
		"membership": c.Locals("membership"),
	})
}

// RedeemAccessCodeRequest represents the request body for code redemption
type RedeemAccessCodeRequest struct {
	Code string `json:"code" validate:"required,min=4,max=64"`
}

// RedeemAccessCode attaches the caller to the outfitter that issued the code
// POST /api/v1/access-codes/redeem
func (h *OutfitterHandler) RedeemAccessCode(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	if principal == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var req RedeemAccessCodeRequest
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

	outfitter, err := h.outfitters.RedeemAccessCode(c.Context(), req.Code, principal.ID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAccessCode) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error":   true,
				"message": "Access code is not valid",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to redeem access code",
		})
	}

	SetHintCookie(c, outfitter.ID, h.cfg.Session.CookieSecure)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":   "Access code redeemed",
		"outfitter": outfitter,
	})
}
