package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

type OutfitterRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Outfitter, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Outfitter, error)
	Create(ctx context.Context, outfitter *domain.Outfitter) error
	Update(ctx context.Context, outfitter *domain.Outfitter) error
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Outfitter, error)
}
