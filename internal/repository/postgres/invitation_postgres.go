package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

type invitationRepository struct {
	db *sqlx.DB
}

// NewInvitationRepository creates a new PostgreSQL invitation repository
func NewInvitationRepository(db *sqlx.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *domain.OutfitterInvitation) error {
	query := `
		INSERT INTO outfitter_invitations (
			id, outfitter_id, token_hash, created_by, role, email,
			max_uses, current_uses, expires_at, status, created_at, updated_at
		) VALUES (
			:id, :outfitter_id, :token_hash, :created_by, :role, :email,
			:max_uses, :current_uses, :expires_at, :status, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, invitation)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutfitterInvitation, error) {
	query := `
		SELECT id, outfitter_id, token_hash, created_by, role, email,
			   max_uses, current_uses, expires_at, status, created_at, updated_at
		FROM outfitter_invitations
		WHERE id = $1`

	var invitation domain.OutfitterInvitation
	err := r.db.GetContext(ctx, &invitation, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invitation %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invitation by id: %w", err)
	}

	return &invitation, nil
}

func (r *invitationRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.OutfitterInvitation, error) {
	query := `
		SELECT id, outfitter_id, token_hash, created_by, role, email,
			   max_uses, current_uses, expires_at, status, created_at, updated_at
		FROM outfitter_invitations
		WHERE token_hash = $1`

	var invitation domain.OutfitterInvitation
	err := r.db.GetContext(ctx, &invitation, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invitation token: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invitation by token hash: %w", err)
	}

	return &invitation, nil
}

func (r *invitationRepository) Update(ctx context.Context, invitation *domain.OutfitterInvitation) error {
	query := `
		UPDATE outfitter_invitations
		SET status = :status,
			current_uses = :current_uses,
			expires_at = :expires_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, invitation)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("invitation %s: %w", invitation.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *invitationRepository) IncrementUses(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE outfitter_invitations
		SET current_uses = current_uses + 1,
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment invitation uses: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("invitation %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

func (r *invitationRepository) ListByOutfitter(ctx context.Context, outfitterID uuid.UUID, limit, offset int) ([]*domain.OutfitterInvitation, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM outfitter_invitations WHERE outfitter_id = $1`
	err := r.db.GetContext(ctx, &total, countQuery, outfitterID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invitations: %w", err)
	}

	query := `
		SELECT id, outfitter_id, token_hash, created_by, role, email,
			   max_uses, current_uses, expires_at, status, created_at, updated_at
		FROM outfitter_invitations
		WHERE outfitter_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var invitations []*domain.OutfitterInvitation
	err = r.db.SelectContext(ctx, &invitations, query, outfitterID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invitations: %w", err)
	}

	return invitations, total, nil
}
