package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/config"
	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
	"github.com/outfitterhq/outfitterhq-sub004/internal/service"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/validator"
)

type MembershipHandler struct {
	outfitters *service.OutfitterService
	cfg        *config.Config
	validator  *validator.Validator
}

func NewMembershipHandler(outfitters *service.OutfitterService, cfg *config.Config, validator *validator.Validator) *MembershipHandler {
	return &MembershipHandler{
		outfitters: outfitters,
		cfg:        cfg,
		validator:  validator,
	}
}

// CreateInvitationRequest represents the request body for creating an invitation
type CreateInvitationRequest struct {
	Role           string  `json:"role" validate:"required,oneof=admin guide cook client"`
	Email          *string `json:"email" validate:"omitempty,email"`
	MaxUses        *int    `json:"max_uses" validate:"omitempty,min=1"`
	ExpiresInHours int     `json:"expires_in_hours" validate:"omitempty,min=1,max=720"` // max 30 days
}

// AcceptInvitationRequest represents the request body for accepting an invitation
type AcceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// ChangeRoleRequest represents the request body for changing a member's role
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin guide cook client"`
}

// CreateInvitation mints an invitation token for the resolved outfitter
// POST /api/v1/members/invitations
func (h *MembershipHandler) CreateInvitation(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	outfitterID := outfitterIDFromLocals(c)

	var req CreateInvitationRequest
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

	expiresIn := h.cfg.Invite.DefaultExpiry
	if req.ExpiresInHours > 0 {
		expiresIn = time.Duration(req.ExpiresInHours) * time.Hour
	}
	if expiresIn > h.cfg.Invite.MaxExpiry {
		expiresIn = h.cfg.Invite.MaxExpiry
	}

	invitation, plainToken, err := h.outfitters.CreateInvitation(
		c.Context(), outfitterID, principal.ID, domain.Role(req.Role), req.Email, req.MaxUses, expiresIn)
	if err != nil {
		if errors.Is(err, service.ErrInactiveOutfitter) {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error":  "forbidden",
				"reason": err.Error(),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to create invitation",
		})
	}

	// The plain token is shown exactly once.
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":    "Invitation created",
		"invitation": invitation,
		"token":      plainToken,
	})
}

// ListInvitations lists invitations for the resolved outfitter
// GET /api/v1/members/invitations?page=1&limit=20
func (h *MembershipHandler) ListInvitations(c *fiber.Ctx) error {
	outfitterID := outfitterIDFromLocals(c)
	limit, offset := pagination(c)

	invitations, total, err := h.outfitters.ListInvitations(c.Context(), outfitterID, limit, offset)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to list invitations",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"invitations": invitations,
		"total":       total,
	})
}

// RevokeInvitation revokes a pending invitation
// DELETE /api/v1/members/invitations/:id
func (h *MembershipHandler) RevokeInvitation(c *fiber.Ctx) error {
	outfitterID := outfitterIDFromLocals(c)

	invitationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid invitation id",
		})
	}

	if err := h.outfitters.RevokeInvitation(c.Context(), outfitterID, invitationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error":   true,
				"message": "Invitation not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to revoke invitation",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Invitation revoked",
	})
}

// AcceptInvitation redeems an invitation token for the caller. This is
// the one operation an invited membership may perform; it runs outside
// RequireOutfitter on purpose.
// POST /api/v1/invitations/accept
func (h *MembershipHandler) AcceptInvitation(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	if principal == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var req AcceptInvitationRequest
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

	membership, outfitter, err := h.outfitters.AcceptInvitation(c.Context(), req.Token, principal)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyMember):
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"message":    "Already a member",
				"membership": membership,
				"outfitter":  outfitter,
			})
		case errors.Is(err, service.ErrInvalidInvitation), errors.Is(err, service.ErrInactiveOutfitter):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error":   true,
				"message": "Invitation is not valid",
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error":   true,
				"message": "Failed to accept invitation",
			})
		}
	}

	SetHintCookie(c, outfitter.ID, h.cfg.Session.CookieSecure)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":    "Invitation accepted",
		"membership": membership,
		"outfitter":  outfitter,
	})
}

// ListMembers lists memberships for the resolved outfitter
// GET /api/v1/members?page=1&limit=20
func (h *MembershipHandler) ListMembers(c *fiber.Ctx) error {
	outfitterID := outfitterIDFromLocals(c)
	limit, offset := pagination(c)

	members, total, err := h.outfitters.ListMembers(c.Context(), outfitterID, limit, offset)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to list members",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"members": members,
		"total":   total,
	})
}

// ChangeRole updates a member's role within the resolved outfitter
// PUT /api/v1/members/:id/role
func (h *MembershipHandler) ChangeRole(c *fiber.Ctx) error {
	outfitterID := outfitterIDFromLocals(c)

	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid membership id",
		})
	}

	var req ChangeRoleRequest
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

	membership, err := h.outfitters.ChangeMemberRole(c.Context(), outfitterID, membershipID, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error":   true,
				"message": "Membership not found",
			})
		case errors.Is(err, service.ErrOwnerImmutable):
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error":  "forbidden",
				"reason": err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error":   true,
				"message": "Failed to change role",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":    "Role updated",
		"membership": membership,
	})
}

// Deactivate soft-deactivates a membership
// DELETE /api/v1/members/:id
func (h *MembershipHandler) Deactivate(c *fiber.Ctx) error {
	outfitterID := outfitterIDFromLocals(c)

	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid membership id",
		})
	}

	membership, err := h.outfitters.DeactivateMember(c.Context(), outfitterID, membershipID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error":   true,
				"message": "Membership not found",
			})
		case errors.Is(err, service.ErrOwnerImmutable):
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error":  "forbidden",
				"reason": err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error":   true,
				"message": "Failed to deactivate member",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":    "Member deactivated",
		"membership": membership,
	})
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *fiber.Ctx) (limit, offset int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}
