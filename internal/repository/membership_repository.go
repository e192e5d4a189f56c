package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

type MembershipRepository interface {
	// Get returns the authoritative membership row for a (principal,
	// outfitter) pair, or ErrNotFound.
	Get(ctx context.Context, principalID, outfitterID uuid.UUID) (*domain.Membership, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Membership, error)
	// ListActiveByPrincipal returns the principal's active memberships
	// across all outfitters, the input to tenant resolution.
	ListActiveByPrincipal(ctx context.Context, principalID uuid.UUID) ([]domain.Membership, error)
	ListByOutfitter(ctx context.Context, outfitterID uuid.UUID, limit, offset int) ([]*domain.Membership, int, error)
	Create(ctx context.Context, membership *domain.Membership) error
	Update(ctx context.Context, membership *domain.Membership) error
}
