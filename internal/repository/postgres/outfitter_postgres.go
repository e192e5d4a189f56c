package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

type outfitterRepository struct {
	db *sqlx.DB
}

// NewOutfitterRepository creates a new PostgreSQL outfitter repository
func NewOutfitterRepository(db *sqlx.DB) repository.OutfitterRepository {
	return &outfitterRepository{db: db}
}

func (r *outfitterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Outfitter, error) {
	query := `
		SELECT id, name, slug, state, owner_id, status, created_at, updated_at
		FROM outfitters
		WHERE id = $1`

	var outfitter domain.Outfitter
	err := r.db.GetContext(ctx, &outfitter, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("outfitter %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get outfitter by id: %w", err)
	}

	return &outfitter, nil
}

func (r *outfitterRepository) GetBySlug(ctx context.Context, slug string) (*domain.Outfitter, error) {
	query := `
		SELECT id, name, slug, state, owner_id, status, created_at, updated_at
		FROM outfitters
		WHERE slug = $1`

	var outfitter domain.Outfitter
	err := r.db.GetContext(ctx, &outfitter, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("outfitter slug %q: %w", slug, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get outfitter by slug: %w", err)
	}

	return &outfitter, nil
}

func (r *outfitterRepository) Create(ctx context.Context, outfitter *domain.Outfitter) error {
	query := `
		INSERT INTO outfitters (id, name, slug, state, owner_id, status, created_at, updated_at)
		VALUES (:id, :name, :slug, :state, :owner_id, :status, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, outfitter)
	if err != nil {
		return fmt.Errorf("failed to create outfitter: %w", err)
	}

	return nil
}

func (r *outfitterRepository) Update(ctx context.Context, outfitter *domain.Outfitter) error {
	query := `
		UPDATE outfitters
		SET name = :name,
			slug = :slug,
			state = :state,
			owner_id = :owner_id,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, outfitter)
	if err != nil {
		return fmt.Errorf("failed to update outfitter: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("outfitter %s: %w", outfitter.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *outfitterRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Outfitter, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, slug, state, owner_id, status, created_at, updated_at
		FROM outfitters
		WHERE id = ANY($1)
		ORDER BY name`

	var outfitters []*domain.Outfitter
	err := r.db.SelectContext(ctx, &outfitters, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list outfitters: %w", err)
	}

	return outfitters, nil
}
