package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

type NotificationRepository interface {
	ListByPrincipal(ctx context.Context, outfitterID, principalID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error)
	Create(ctx context.Context, notification *domain.Notification) error
	// MarkAllRead invokes the mark_all_notifications_read database
	// procedure and returns the number of rows flipped.
	MarkAllRead(ctx context.Context, outfitterID, principalID uuid.UUID) (int, error)
}
