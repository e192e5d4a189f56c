package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

type accessCodeRepository struct {
	db *sqlx.DB
}

// NewAccessCodeRepository creates a repository fronting the
// redeem_access_code database procedure
func NewAccessCodeRepository(db *sqlx.DB) repository.AccessCodeRepository {
	return &accessCodeRepository{db: db}
}

func (r *accessCodeRepository) Redeem(ctx context.Context, code string, principalID uuid.UUID) (uuid.UUID, error) {
	// The procedure validates the code, attaches the principal to the
	// issuing outfitter, and returns that outfitter's id. It returns no
	// row for unknown, spent, or expired codes.
	query := `SELECT redeem_access_code($1, $2)`

	var outfitterID uuid.UUID
	err := r.db.GetContext(ctx, &outfitterID, query, code, principalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("access code: %w", repository.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("failed to redeem access code: %w", err)
	}

	return outfitterID, nil
}
