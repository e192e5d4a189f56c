// Package access decides which outfitter a request is scoped to and
// whether the caller's membership satisfies a role requirement. Both
// operations are pure functions over inputs the caller has already
// fetched; they hold no state and are safe for concurrent use. Decisions
// must be re-evaluated on every request against fresh membership rows.
package access

import (
	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

// ResolutionState tags the outcome of ResolveOutfitter.
type ResolutionState string

const (
	// StateResolved means a single outfitter id was selected.
	StateResolved ResolutionState = "resolved"
	// StateNeedsSelection means the principal must pick among candidates.
	StateNeedsSelection ResolutionState = "needs_selection"
	// StateUnauthenticated means no principal was supplied.
	StateUnauthenticated ResolutionState = "unauthenticated"
)

// Resolution is the tagged outcome of ResolveOutfitter. OutfitterID is
// meaningful only when State == StateResolved; Candidates only when
// State == StateNeedsSelection.
type Resolution struct {
	State        ResolutionState
	OutfitterID  uuid.UUID
	AutoSelected bool
	Candidates   []domain.Membership
}

// ResolveOutfitter picks the outfitter a request operates against.
//
// An explicit hint (cookie or request body) is taken as-is; its validity
// is established by the Authorize call that follows, not here. With no
// hint and exactly one active membership the membership's outfitter is
// auto-selected, and the result says so: callers use AutoSelected to
// decide whether to persist the choice (e.g. set the hint cookie) for
// future requests. Zero or multiple memberships without a hint means the
// principal has to choose.
func ResolveOutfitter(principal *domain.Principal, hint *uuid.UUID, activeMemberships []domain.Membership) Resolution {
	if principal == nil {
		return Resolution{State: StateUnauthenticated}
	}

	if hint != nil {
		return Resolution{State: StateResolved, OutfitterID: *hint}
	}

	if len(activeMemberships) == 1 {
		return Resolution{
			State:        StateResolved,
			OutfitterID:  activeMemberships[0].OutfitterID,
			AutoSelected: true,
		}
	}

	return Resolution{State: StateNeedsSelection, Candidates: activeMemberships}
}

// DenyReason distinguishes why Authorize refused access.
type DenyReason string

const (
	DenyNoMembership       DenyReason = "no_membership"
	DenyInactiveMembership DenyReason = "inactive_membership"
	DenyRoleInsufficient   DenyReason = "role_insufficient"
)

// Decision is the outcome of Authorize. Reason is set only when access
// was denied.
type Decision struct {
	Granted bool
	Reason  DenyReason
}

// Authorize grants access iff the membership exists, is active, and its
// role is one of required. Passing no required roles is the "any active
// role" sentinel. An invited membership never grants access regardless
// of role: invited principals may only perform invite acceptance, which
// runs outside this check. Denial is always reported, never defaulted to
// allow.
func Authorize(membership *domain.Membership, required ...domain.Role) Decision {
	if membership == nil {
		return Decision{Reason: DenyNoMembership}
	}

	if membership.Status != domain.MembershipStatusActive {
		return Decision{Reason: DenyInactiveMembership}
	}

	if len(required) == 0 {
		return Decision{Granted: true}
	}

	for _, role := range required {
		if membership.Role == role {
			return Decision{Granted: true}
		}
	}

	return Decision{Reason: DenyRoleInsufficient}
}
