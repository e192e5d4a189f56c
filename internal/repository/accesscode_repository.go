package repository

import (
	"context"

	"github.com/google/uuid"
)

// AccessCodeRepository fronts the redeem_access_code database procedure:
// a one-shot code handed to a client that, when redeemed, attaches the
// principal to the issuing outfitter. The procedure owns the whole
// transition; this layer only carries the call.
type AccessCodeRepository interface {
	// Redeem returns the outfitter id the code attached the principal to,
	// or ErrNotFound when the code is unknown, spent, or expired.
	Redeem(ctx context.Context, code string, principalID uuid.UUID) (uuid.UUID, error)
}
