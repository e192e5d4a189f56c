package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

type NotificationHandler struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationHandler(notificationRepo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: notificationRepo,
	}
}

// List returns the caller's notifications within the resolved outfitter
// GET /api/v1/notifications?unread=true
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	outfitterID := outfitterIDFromLocals(c)

	unreadOnly := c.QueryBool("unread", false)

	notifications, err := h.notificationRepo.ListByPrincipal(c.Context(), outfitterID, principal.ID, unreadOnly)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to list notifications",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"notifications": notifications,
	})
}

// ReadAll marks every unread notification read via the database procedure
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) ReadAll(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	outfitterID := outfitterIDFromLocals(c)

	updated, err := h.notificationRepo.MarkAllRead(c.Context(), outfitterID, principal.ID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to mark notifications read",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Notifications marked read",
		"updated": updated,
	})
}
