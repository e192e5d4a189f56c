package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

type notificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new PostgreSQL notification repository
func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListByPrincipal(ctx context.Context, outfitterID, principalID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error) {
	query := `
		SELECT id, outfitter_id, principal_id, kind, body, read_at, created_at
		FROM notifications
		WHERE outfitter_id = $1 AND principal_id = $2`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	var notifications []*domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, outfitterID, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, outfitter_id, principal_id, kind, body, read_at, created_at)
		VALUES (:id, :outfitter_id, :principal_id, :kind, :body, :read_at, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, outfitterID, principalID uuid.UUID) (int, error) {
	// mark_all_notifications_read flips read_at on every unread row for
	// the principal within the outfitter and returns the count.
	query := `SELECT mark_all_notifications_read($1, $2)`

	var updated int
	err := r.db.GetContext(ctx, &updated, query, outfitterID, principalID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return updated, nil
}
