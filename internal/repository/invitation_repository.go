package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.OutfitterInvitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OutfitterInvitation, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.OutfitterInvitation, error)
	Update(ctx context.Context, invitation *domain.OutfitterInvitation) error
	IncrementUses(ctx context.Context, id uuid.UUID) error
	ListByOutfitter(ctx context.Context, outfitterID uuid.UUID, limit, offset int) ([]*domain.OutfitterInvitation, int, error)
}
