package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

type huntCodeRepository struct {
	db *sqlx.DB
}

// NewHuntCodeRepository creates a new PostgreSQL hunt-code catalog repository
func NewHuntCodeRepository(db *sqlx.DB) repository.HuntCodeRepository {
	return &huntCodeRepository{db: db}
}

func (r *huntCodeRepository) ListByState(ctx context.Context, state string) ([]domain.HuntCodeOption, error) {
	query := `
		SELECT id, state, code, species, unit_description, season_text,
			   start_date, end_date, imported_at
		FROM hunt_code_options
		WHERE state = $1
		ORDER BY code`

	var options []domain.HuntCodeOption
	err := r.db.SelectContext(ctx, &options, query, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list hunt codes for state %q: %w", state, err)
	}

	return options, nil
}
