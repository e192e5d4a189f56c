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

type principalRepository struct {
	db *sqlx.DB
}

// NewPrincipalRepository creates a new PostgreSQL principal repository
func NewPrincipalRepository(db *sqlx.DB) repository.PrincipalRepository {
	return &principalRepository{db: db}
}

func (r *principalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	query := `
		SELECT id, email, first_name, last_name, status, external_id,
			   created_at, updated_at, last_seen_at
		FROM principals
		WHERE id = $1`

	var principal domain.Principal
	err := r.db.GetContext(ctx, &principal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("principal %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get principal by id: %w", err)
	}

	return &principal, nil
}

func (r *principalRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Principal, error) {
	query := `
		SELECT id, email, first_name, last_name, status, external_id,
			   created_at, updated_at, last_seen_at
		FROM principals
		WHERE external_id = $1`

	var principal domain.Principal
	err := r.db.GetContext(ctx, &principal, query, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("principal external id %q: %w", externalID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get principal by external id: %w", err)
	}

	return &principal, nil
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	query := `
		SELECT id, email, first_name, last_name, status, external_id,
			   created_at, updated_at, last_seen_at
		FROM principals
		WHERE email = $1`

	var principal domain.Principal
	err := r.db.GetContext(ctx, &principal, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("principal email %q: %w", email, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get principal by email: %w", err)
	}

	return &principal, nil
}

func (r *principalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	query := `
		INSERT INTO principals (
			id, email, first_name, last_name, status, external_id,
			created_at, updated_at, last_seen_at
		) VALUES (
			:id, :email, :first_name, :last_name, :status, :external_id,
			:created_at, :updated_at, :last_seen_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, principal)
	if err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}

	return nil
}

func (r *principalRepository) TouchLastSeen(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE principals SET last_seen_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to touch last seen: %w", err)
	}

	return nil
}
