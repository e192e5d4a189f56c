package repository

import (
	"context"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

// HuntCodeRepository reads the imported draw-code catalog. The catalog is
// refreshed out-of-band; reads hand back a snapshot the matcher filters
// in memory.
type HuntCodeRepository interface {
	ListByState(ctx context.Context, state string) ([]domain.HuntCodeOption, error)
}
