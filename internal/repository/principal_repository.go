package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

type PrincipalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
	Create(ctx context.Context, principal *domain.Principal) error
	TouchLastSeen(ctx context.Context, id uuid.UUID) error
}
