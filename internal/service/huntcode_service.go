package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/huntcodes"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

type HuntCodeService struct {
	outfitterRepo repository.OutfitterRepository
	huntCodeRepo  repository.HuntCodeRepository
}

func NewHuntCodeService(
	outfitterRepo repository.OutfitterRepository,
	huntCodeRepo repository.HuntCodeRepository,
) *HuntCodeService {
	return &HuntCodeService{
		outfitterRepo: outfitterRepo,
		huntCodeRepo:  huntCodeRepo,
	}
}

// ListOptions fetches the draw-code catalog for the outfitter's state and
// narrows it to the desired species and weapon. The repository hands
// back a snapshot the matcher filters in memory, so a catalog import
// landing mid-request never mixes generations.
func (s *HuntCodeService) ListOptions(ctx context.Context, outfitterID uuid.UUID, species, weapon string) ([]domain.HuntCodeOption, error) {
	outfitter, err := s.outfitterRepo.GetByID(ctx, outfitterID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.huntCodeRepo.ListByState(ctx, outfitter.State)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return huntcodes.Filter(catalog, species, weapon), nil
}
