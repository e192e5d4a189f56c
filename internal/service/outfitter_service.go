package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/access"
	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

var (
	ErrInvalidInvitation = errors.New("invitation is not valid")
	ErrInactiveOutfitter = errors.New("outfitter is not active")
	ErrNotAMember        = errors.New("principal is not a member of this outfitter")
	ErrOwnerImmutable    = errors.New("the owner membership cannot be changed")
	ErrInvalidAccessCode = errors.New("access code is not valid")
	ErrAlreadyMember     = errors.New("principal already has an active membership")
)

// MembershipCandidate pairs a membership with its outfitter for tenant
// selection responses.
type MembershipCandidate struct {
	Membership domain.Membership `json:"membership"`
	Outfitter  domain.Outfitter  `json:"outfitter"`
}

type OutfitterService struct {
	outfitterRepo  repository.OutfitterRepository
	membershipRepo repository.MembershipRepository
	invitationRepo repository.InvitationRepository
	accessCodeRepo repository.AccessCodeRepository
}

func NewOutfitterService(
	outfitterRepo repository.OutfitterRepository,
	membershipRepo repository.MembershipRepository,
	invitationRepo repository.InvitationRepository,
	accessCodeRepo repository.AccessCodeRepository,
) *OutfitterService {
	return &OutfitterService{
		outfitterRepo:  outfitterRepo,
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		accessCodeRepo: accessCodeRepo,
	}
}

// CreateOutfitter registers a new outfitter and makes the creator its
// owner with an active membership.
func (s *OutfitterService) CreateOutfitter(ctx context.Context, ownerID uuid.UUID, name, slug, state string) (*domain.Outfitter, error) {
	if slug == "" {
		slug = generateSlugFromName(name)
	}

	if !isValidSlug(slug) {
		return nil, errors.New("invalid slug format: must be lowercase alphanumeric with hyphens, 3-100 characters")
	}

	existing, err := s.outfitterRepo.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("outfitter with slug '%s' already exists", slug)
	}

	now := time.Now()
	outfitter := &domain.Outfitter{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		State:     strings.ToUpper(state),
		OwnerID:   &ownerID,
		Status:    domain.OutfitterStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.outfitterRepo.Create(ctx, outfitter); err != nil {
		return nil, fmt.Errorf("failed to create outfitter: %w", err)
	}

	membership := &domain.Membership{
		ID:          uuid.New(),
		OutfitterID: outfitter.ID,
		PrincipalID: ownerID,
		Role:        domain.RoleOwner,
		Status:      domain.MembershipStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	return outfitter, nil
}

// GetOutfitter retrieves an outfitter by id.
func (s *OutfitterService) GetOutfitter(ctx context.Context, id uuid.UUID) (*domain.Outfitter, error) {
	return s.outfitterRepo.GetByID(ctx, id)
}

// ListCandidates returns the principal's active memberships joined with
// their outfitters, the choice set shown when tenant resolution needs a
// selection.
func (s *OutfitterService) ListCandidates(ctx context.Context, principalID uuid.UUID) ([]MembershipCandidate, error) {
	memberships, err := s.membershipRepo.ListActiveByPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []MembershipCandidate{}, nil
	}

	ids := make([]uuid.UUID, len(memberships))
	for i, m := range memberships {
		ids[i] = m.OutfitterID
	}

	outfitters, err := s.outfitterRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Outfitter, len(outfitters))
	for _, o := range outfitters {
		byID[o.ID] = o
	}

	candidates := make([]MembershipCandidate, 0, len(memberships))
	for _, m := range memberships {
		o, ok := byID[m.OutfitterID]
		if !ok {
			continue
		}
		candidates = append(candidates, MembershipCandidate{Membership: m, Outfitter: *o})
	}

	return candidates, nil
}

// Select confirms the principal may scope future requests to the given
// outfitter. The caller persists the choice as the hint cookie.
func (s *OutfitterService) Select(ctx context.Context, principalID, outfitterID uuid.UUID) (*domain.Outfitter, error) {
	membership, err := s.membershipRepo.Get(ctx, principalID, outfitterID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if dec := access.Authorize(membership); !dec.Granted {
		return nil, fmt.Errorf("%w: %s", ErrNotAMember, dec.Reason)
	}

	outfitter, err := s.outfitterRepo.GetByID(ctx, outfitterID)
	if err != nil {
		return nil, err
	}
	if outfitter.Status != domain.OutfitterStatusActive {
		return nil, ErrInactiveOutfitter
	}

	return outfitter, nil
}

// CreateInvitation mints an invitation token for an outfitter. The plain
// token is returned exactly once; only its SHA-256 hash is stored.
func (s *OutfitterService) CreateInvitation(ctx context.Context, outfitterID, createdBy uuid.UUID, role domain.Role, email *string, maxUses *int, expiresIn time.Duration) (*domain.OutfitterInvitation, string, error) {
	outfitter, err := s.outfitterRepo.GetByID(ctx, outfitterID)
	if err != nil {
		return nil, "", fmt.Errorf("outfitter not found: %w", err)
	}

	if outfitter.Status != domain.OutfitterStatusActive {
		return nil, "", ErrInactiveOutfitter
	}

	if !domain.ValidRole(role) || role == domain.RoleOwner {
		return nil, "", fmt.Errorf("invalid invitation role %q", role)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	plainToken := base64.URLEncoding.EncodeToString(tokenBytes)
	hash := sha256.Sum256([]byte(plainToken))
	tokenHash := fmt.Sprintf("%x", hash[:])

	now := time.Now()
	invitation := &domain.OutfitterInvitation{
		ID:          uuid.New(),
		OutfitterID: outfitterID,
		TokenHash:   tokenHash,
		CreatedBy:   createdBy,
		Role:        role,
		Email:       email,
		MaxUses:     maxUses,
		CurrentUses: 0,
		ExpiresAt:   now.Add(expiresIn),
		Status:      domain.InvitationStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, "", fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, plainToken, nil
}

// ValidateInvitationToken resolves a plain invitation token to its
// invitation and outfitter, expiring stale rows on the way.
func (s *OutfitterService) ValidateInvitationToken(ctx context.Context, plainToken string) (*domain.OutfitterInvitation, *domain.Outfitter, error) {
	hash := sha256.Sum256([]byte(plainToken))
	tokenHash := fmt.Sprintf("%x", hash[:])

	invitation, err := s.invitationRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, nil, ErrInvalidInvitation
	}

	if !invitation.IsValid() {
		if time.Now().After(invitation.ExpiresAt) && invitation.Status == domain.InvitationStatusActive {
			invitation.Status = domain.InvitationStatusExpired
			invitation.UpdatedAt = time.Now()
			_ = s.invitationRepo.Update(ctx, invitation)
		}
		return nil, nil, ErrInvalidInvitation
	}

	outfitter, err := s.outfitterRepo.GetByID(ctx, invitation.OutfitterID)
	if err != nil {
		return nil, nil, ErrInvalidInvitation
	}

	if outfitter.Status != domain.OutfitterStatusActive {
		return nil, nil, ErrInactiveOutfitter
	}

	return invitation, outfitter, nil
}

// AcceptInvitation redeems an invitation for a principal. An invited
// membership transitions to active; no membership at all becomes an
// active one carrying the invitation's role. An already-active member
// just consumes nothing.
func (s *OutfitterService) AcceptInvitation(ctx context.Context, plainToken string, principal *domain.Principal) (*domain.Membership, *domain.Outfitter, error) {
	invitation, outfitter, err := s.ValidateInvitationToken(ctx, plainToken)
	if err != nil {
		return nil, nil, err
	}

	if invitation.Email != nil {
		if principal.Email == nil || !strings.EqualFold(*invitation.Email, *principal.Email) {
			return nil, nil, ErrInvalidInvitation
		}
	}

	membership, err := s.membershipRepo.Get(ctx, principal.ID, outfitter.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	now := time.Now()
	switch {
	case membership == nil:
		membership = &domain.Membership{
			ID:          uuid.New(),
			OutfitterID: outfitter.ID,
			PrincipalID: principal.ID,
			Role:        invitation.Role,
			Status:      domain.MembershipStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.membershipRepo.Create(ctx, membership); err != nil {
			return nil, nil, fmt.Errorf("failed to create membership: %w", err)
		}
	case membership.Status == domain.MembershipStatusActive:
		return membership, outfitter, ErrAlreadyMember
	default:
		// invited or inactive rows are reactivated in place
		membership.Role = invitation.Role
		membership.Status = domain.MembershipStatusActive
		membership.UpdatedAt = now
		if err := s.membershipRepo.Update(ctx, membership); err != nil {
			return nil, nil, fmt.Errorf("failed to activate membership: %w", err)
		}
	}

	if err := s.invitationRepo.IncrementUses(ctx, invitation.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to record invitation use: %w", err)
	}

	return membership, outfitter, nil
}

// RevokeInvitation revokes an active invitation belonging to the outfitter.
func (s *OutfitterService) RevokeInvitation(ctx context.Context, outfitterID, invitationID uuid.UUID) error {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}

	if invitation.OutfitterID != outfitterID {
		return fmt.Errorf("invitation %s: %w", invitationID, repository.ErrNotFound)
	}

	invitation.Status = domain.InvitationStatusRevoked
	invitation.UpdatedAt = time.Now()

	return s.invitationRepo.Update(ctx, invitation)
}

// ListInvitations lists invitations for an outfitter with pagination.
func (s *OutfitterService) ListInvitations(ctx context.Context, outfitterID uuid.UUID, limit, offset int) ([]*domain.OutfitterInvitation, int, error) {
	return s.invitationRepo.ListByOutfitter(ctx, outfitterID, limit, offset)
}

// ListMembers lists memberships for an outfitter with pagination.
func (s *OutfitterService) ListMembers(ctx context.Context, outfitterID uuid.UUID, limit, offset int) ([]*domain.Membership, int, error) {
	return s.membershipRepo.ListByOutfitter(ctx, outfitterID, limit, offset)
}

// ChangeMemberRole updates the role on a membership within the outfitter.
// The owner row is immutable; ownership transfer is a separate concern.
func (s *OutfitterService) ChangeMemberRole(ctx context.Context, outfitterID, membershipID uuid.UUID, role domain.Role) (*domain.Membership, error) {
	if !domain.ValidRole(role) || role == domain.RoleOwner {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	if membership.OutfitterID != outfitterID {
		return nil, fmt.Errorf("membership %s: %w", membershipID, repository.ErrNotFound)
	}

	if membership.Role == domain.RoleOwner {
		return nil, ErrOwnerImmutable
	}

	membership.Role = role
	membership.UpdatedAt = time.Now()

	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// DeactivateMember soft-deactivates a membership. Rows are never deleted,
// so a later invitation can reactivate the same pair.
func (s *OutfitterService) DeactivateMember(ctx context.Context, outfitterID, membershipID uuid.UUID) (*domain.Membership, error) {
	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	if membership.OutfitterID != outfitterID {
		return nil, fmt.Errorf("membership %s: %w", membershipID, repository.ErrNotFound)
	}

	if membership.Role == domain.RoleOwner {
		return nil, ErrOwnerImmutable
	}

	membership.Status = domain.MembershipStatusInactive
	membership.UpdatedAt = time.Now()

	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// RedeemAccessCode runs the redeem_access_code procedure for a principal
// and returns the outfitter the code attached them to.
func (s *OutfitterService) RedeemAccessCode(ctx context.Context, code string, principalID uuid.UUID) (*domain.Outfitter, error) {
	outfitterID, err := s.accessCodeRepo.Redeem(ctx, code, principalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidAccessCode
		}
		return nil, err
	}

	return s.outfitterRepo.GetByID(ctx, outfitterID)
}

// Helper functions

// generateSlugFromName creates a URL-friendly slug from a name
func generateSlugFromName(name string) string {
	slug := strings.ToLower(name)
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}

// isValidSlug checks if a slug meets the format requirements
func isValidSlug(slug string) bool {
	if len(slug) < 3 || len(slug) > 100 {
		return false
	}
	matched, _ := regexp.MatchString(`^[a-z0-9-]+$`, slug)
	return matched
}
