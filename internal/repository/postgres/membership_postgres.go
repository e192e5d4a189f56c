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

type membershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository creates a new PostgreSQL membership repository
func NewMembershipRepository(db *sqlx.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Get(ctx context.Context, principalID, outfitterID uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT id, outfitter_id, principal_id, role, status, created_at, updated_at
		FROM memberships
		WHERE principal_id = $1 AND outfitter_id = $2`

	var membership domain.Membership
	err := r.db.GetContext(ctx, &membership, query, principalID, outfitterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("membership for principal %s in outfitter %s: %w",
				principalID, outfitterID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &membership, nil
}

func (r *membershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT id, outfitter_id, principal_id, role, status, created_at, updated_at
		FROM memberships
		WHERE id = $1`

	var membership domain.Membership
	err := r.db.GetContext(ctx, &membership, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("membership %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get membership by id: %w", err)
	}

	return &membership, nil
}

func (r *membershipRepository) ListActiveByPrincipal(ctx context.Context, principalID uuid.UUID) ([]domain.Membership, error) {
	query := `
		SELECT id, outfitter_id, principal_id, role, status, created_at, updated_at
		FROM memberships
		WHERE principal_id = $1 AND status = 'active'
		ORDER BY created_at`

	var memberships []domain.Membership
	err := r.db.SelectContext(ctx, &memberships, query, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}

	return memberships, nil
}

func (r *membershipRepository) ListByOutfitter(ctx context.Context, outfitterID uuid.UUID, limit, offset int) ([]*domain.Membership, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM memberships WHERE outfitter_id = $1`
	err := r.db.GetContext(ctx, &total, countQuery, outfitterID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count memberships: %w", err)
	}

	query := `
		SELECT id, outfitter_id, principal_id, role, status, created_at, updated_at
		FROM memberships
		WHERE outfitter_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var memberships []*domain.Membership
	err = r.db.SelectContext(ctx, &memberships, query, outfitterID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list memberships: %w", err)
	}

	return memberships, total, nil
}

func (r *membershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (id, outfitter_id, principal_id, role, status, created_at, updated_at)
		VALUES (:id, :outfitter_id, :principal_id, :role, :status, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, membership)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

func (r *membershipRepository) Update(ctx context.Context, membership *domain.Membership) error {
	query := `
		UPDATE memberships
		SET role = :role,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, membership)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("membership %s: %w", membership.ID, repository.ErrNotFound)
	}

	return nil
}
