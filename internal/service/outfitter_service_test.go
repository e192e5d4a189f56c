package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
)

// In-memory fakes. Maps are keyed the way the postgres queries filter.

type fakeOutfitterRepo struct {
	byID map[uuid.UUID]*domain.Outfitter
}

func newFakeOutfitterRepo() *fakeOutfitterRepo {
	return &fakeOutfitterRepo{byID: map[uuid.UUID]*domain.Outfitter{}}
}

func (r *fakeOutfitterRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Outfitter, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("outfitter %s: %w", id, repository.ErrNotFound)
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOutfitterRepo) GetBySlug(_ context.Context, slug string) (*domain.Outfitter, error) {
	for _, o := range r.byID {
		if o.Slug == slug {
			copied := *o
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("outfitter slug %q: %w", slug, repository.ErrNotFound)
}

func (r *fakeOutfitterRepo) Create(_ context.Context, o *domain.Outfitter) error {
	copied := *o
	r.byID[o.ID] = &copied
	return nil
}

func (r *fakeOutfitterRepo) Update(_ context.Context, o *domain.Outfitter) error {
	copied := *o
	r.byID[o.ID] = &copied
	return nil
}

func (r *fakeOutfitterRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Outfitter, error) {
	var out []*domain.Outfitter
	for _, id := range ids {
		if o, ok := r.byID[id]; ok {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeMembershipRepo struct {
	byID map[uuid.UUID]*domain.Membership
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{byID: map[uuid.UUID]*domain.Membership{}}
}

func (r *fakeMembershipRepo) Get(_ context.Context, principalID, outfitterID uuid.UUID) (*domain.Membership, error) {
	for _, m := range r.byID {
		if m.PrincipalID == principalID && m.OutfitterID == outfitterID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("membership: %w", repository.ErrNotFound)
}

func (r *fakeMembershipRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Membership, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("membership %s: %w", id, repository.ErrNotFound)
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMembershipRepo) ListActiveByPrincipal(_ context.Context, principalID uuid.UUID) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, m := range r.byID {
		if m.PrincipalID == principalID && m.Status == domain.MembershipStatusActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) ListByOutfitter(_ context.Context, outfitterID uuid.UUID, _, _ int) ([]*domain.Membership, int, error) {
	var out []*domain.Membership
	for _, m := range r.byID {
		if m.OutfitterID == outfitterID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (r *fakeMembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	copied := *m
	r.byID[m.ID] = &copied
	return nil
}

func (r *fakeMembershipRepo) Update(_ context.Context, m *domain.Membership) error {
	if _, ok := r.byID[m.ID]; !ok {
		return fmt.Errorf("membership %s: %w", m.ID, repository.ErrNotFound)
	}
	copied := *m
	r.byID[m.ID] = &copied
	return nil
}

type fakeInvitationRepo struct {
	byID map[uuid.UUID]*domain.OutfitterInvitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byID: map[uuid.UUID]*domain.OutfitterInvitation{}}
}

func (r *fakeInvitationRepo) Create(_ context.Context, inv *domain.OutfitterInvitation) error {
	copied := *inv
	r.byID[inv.ID] = &copied
	return nil
}

func (r *fakeInvitationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.OutfitterInvitation, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("invitation %s: %w", id, repository.ErrNotFound)
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeInvitationRepo) GetByTokenHash(_ context.Context, tokenHash string) (*domain.OutfitterInvitation, error) {
	for _, inv := range r.byID {
		if inv.TokenHash == tokenHash {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("invitation token: %w", repository.ErrNotFound)
}

func (r *fakeInvitationRepo) Update(_ context.Context, inv *domain.OutfitterInvitation) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return fmt.Errorf("invitation %s: %w", inv.ID, repository.ErrNotFound)
	}
	copied := *inv
	r.byID[inv.ID] = &copied
	return nil
}

func (r *fakeInvitationRepo) IncrementUses(_ context.Context, id uuid.UUID) error {
	inv, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("invitation %s: %w", id, repository.ErrNotFound)
	}
	inv.CurrentUses++
	return nil
}

func (r *fakeInvitationRepo) ListByOutfitter(_ context.Context, outfitterID uuid.UUID, _, _ int) ([]*domain.OutfitterInvitation, int, error) {
	var out []*domain.OutfitterInvitation
	for _, inv := range r.byID {
		if inv.OutfitterID == outfitterID {
			copied := *inv
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

type fakeAccessCodeRepo struct {
	codes map[string]uuid.UUID
}

func (r *fakeAccessCodeRepo) Redeem(_ context.Context, code string, _ uuid.UUID) (uuid.UUID, error) {
	id, ok := r.codes[code]
	if !ok {
		return uuid.Nil, fmt.Errorf("access code: %w", repository.ErrNotFound)
	}
	return id, nil
}

type fixture struct {
	svc         *OutfitterService
	outfitters  *fakeOutfitterRepo
	memberships *fakeMembershipRepo
	invitations *fakeInvitationRepo
	accessCodes *fakeAccessCodeRepo
}

func newFixture() *fixture {
	f := &fixture{
		outfitters:  newFakeOutfitterRepo(),
		memberships: newFakeMembershipRepo(),
		invitations: newFakeInvitationRepo(),
		accessCodes: &fakeAccessCodeRepo{codes: map[string]uuid.UUID{}},
	}
	f.svc = NewOutfitterService(f.outfitters, f.memberships, f.invitations, f.accessCodes)
	return f
}

func (f *fixture) addOutfitter(status domain.OutfitterStatus) *domain.Outfitter {
	o := &domain.Outfitter{
		ID:     uuid.New(),
		Name:   "High Country",
		Slug:   "high-country-" + uuid.NewString()[:8],
		State:  "CO",
		Status: status,
	}
	f.outfitters.byID[o.ID] = o
	return o
}

func (f *fixture) addMembership(outfitterID, principalID uuid.UUID, role domain.Role, status domain.MembershipStatus) *domain.Membership {
	m := &domain.Membership{
		ID:          uuid.New(),
		OutfitterID: outfitterID,
		PrincipalID: principalID,
		Role:        role,
		Status:      status,
	}
	f.memberships.byID[m.ID] = m
	return m
}

func TestCreateOutfitterMakesOwnerMembership(t *testing.T) {
	f := newFixture()
	ownerID := uuid.New()

	outfitter, err := f.svc.CreateOutfitter(context.Background(), ownerID, "Black Creek Guides", "", "nm")
	require.NoError(t, err)
	assert.Equal(t, "black-creek-guides", outfitter.Slug)
	assert.Equal(t, "NM", outfitter.State)

	m, err := f.memberships.Get(context.Background(), ownerID, outfitter.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, m.Role)
	assert.Equal(t, domain.MembershipStatusActive, m.Status)
}

func TestCreateOutfitterRejectsDuplicateSlug(t *testing.T) {
	f := newFixture()
	existing := f.addOutfitter(domain.OutfitterStatusActive)

	_, err := f.svc.CreateOutfitter(context.Background(), uuid.New(), "Other", existing.Slug, "CO")
	assert.Error(t, err)
}

func TestSelectRequiresActiveMembership(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	principalID := uuid.New()

	_, err := f.svc.Select(context.Background(), principalID, outfitter.ID)
	assert.ErrorIs(t, err, ErrNotAMember)

	f.addMembership(outfitter.ID, principalID, domain.RoleGuide, domain.MembershipStatusInvited)
	_, err = f.svc.Select(context.Background(), principalID, outfitter.ID)
	assert.ErrorIs(t, err, ErrNotAMember, "invited membership must not allow selection")
}

func TestSelectRejectsInactiveOutfitter(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusSuspended)
	principalID := uuid.New()
	f.addMembership(outfitter.ID, principalID, domain.RoleOwner, domain.MembershipStatusActive)

	_, err := f.svc.Select(context.Background(), principalID, outfitter.ID)
	assert.ErrorIs(t, err, ErrInactiveOutfitter)
}

func TestCreateInvitationStoresOnlyHash(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)

	invitation, plainToken, err := f.svc.CreateInvitation(
		context.Background(), outfitter.ID, uuid.New(), domain.RoleGuide, nil, nil, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, plainToken)

	hash := sha256.Sum256([]byte(plainToken))
	assert.Equal(t, fmt.Sprintf("%x", hash[:]), invitation.TokenHash)
	assert.NotContains(t, invitation.TokenHash, plainToken)
}

func TestCreateInvitationRejectsOwnerRole(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)

	_, _, err := f.svc.CreateInvitation(
		context.Background(), outfitter.ID, uuid.New(), domain.RoleOwner, nil, nil, time.Hour)
	assert.Error(t, err)
}

func TestAcceptInvitationCreatesMembership(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	_, plainToken, err := f.svc.CreateInvitation(
		context.Background(), outfitter.ID, uuid.New(), domain.RoleCook, nil, nil, time.Hour)
	require.NoError(t, err)

	principal := &domain.Principal{ID: uuid.New()}
	membership, got, err := f.svc.AcceptInvitation(context.Background(), plainToken, principal)
	require.NoError(t, err)
	assert.Equal(t, outfitter.ID, got.ID)
	assert.Equal(t, domain.RoleCook, membership.Role)
	assert.Equal(t, domain.MembershipStatusActive, membership.Status)
}

func TestAcceptInvitationActivatesInvitedMembership(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	principal := &domain.Principal{ID: uuid.New()}
	invited := f.addMembership(outfitter.ID, principal.ID, domain.RoleClient, domain.MembershipStatusInvited)

	_, plainToken, err := f.svc.CreateInvitation(
		context.Background(), outfitter.ID, uuid.New(), domain.RoleGuide, nil, nil, time.Hour)
	require.NoError(t, err)

	membership, _, err := f.svc.AcceptInvitation(context.Background(), plainToken, principal)
	require.NoError(t, err)
	assert.Equal(t, invited.ID, membership.ID, "existing row is reactivated, not replaced")
	assert.Equal(t, domain.MembershipStatusActive, membership.Status)
	assert.Equal(t, domain.RoleGuide, membership.Role)
}

func TestAcceptInvitationAlreadyMember(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	principal := &domain.Principal{ID: uuid.New()}
	f.addMembership(outfitter.ID, principal.ID, domain.RoleGuide, domain.MembershipStatusActive)

	inv, plainToken, err := f.svc.CreateInvitation(
		context.Background(), outfitter.ID, uuid.New(), domain.RoleCook, nil, nil, time.Hour)
	require.NoError(t, err)

	membership, _, err := f.svc.AcceptInvitation(context.Background(), plainToken, principal)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.Equal(t, domain.RoleGuide, membership.Role, "existing role is untouched")

	stored, getErr := f.invitations.GetByID(context.Background(), inv.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 0, stored.CurrentUses, "no use is consumed")
}

func TestAcceptInvitationEnforcesEmailRestriction(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	invited := "client@example.com"
	_, plainToken, err := f.svc.CreateInvitation(
		context.Background(), outfitter.ID, uuid.New(), domain.RoleClient, &invited, nil, time.Hour)
	require.NoError(t, err)

	other := "someone-else@example.com"
	principal := &domain.Principal{ID: uuid.New(), Email: &other}
	_, _, err = f.svc.AcceptInvitation(context.Background(), plainToken, principal)
	assert.ErrorIs(t, err, ErrInvalidInvitation)

	matching := "Client@Example.com"
	principal = &domain.Principal{ID: uuid.New(), Email: &matching}
	_, _, err = f.svc.AcceptInvitation(context.Background(), plainToken, principal)
	assert.NoError(t, err, "email match is case-insensitive")
}

func TestAcceptInvitationRejectsExpiredToken(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	inv, plainToken, err := f.svc.CreateInvitation(
		context.Background(), outfitter.ID, uuid.New(), domain.RoleGuide, nil, nil, time.Millisecond)
	require.NoError(t, err)

	stored := f.invitations.byID[inv.ID]
	stored.ExpiresAt = time.Now().Add(-time.Minute)

	_, _, err = f.svc.AcceptInvitation(context.Background(), plainToken, &domain.Principal{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInvitation)

	assert.Equal(t, domain.InvitationStatusExpired, f.invitations.byID[inv.ID].Status,
		"stale active rows are expired on validation")
}

func TestChangeMemberRole(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	member := f.addMembership(outfitter.ID, uuid.New(), domain.RoleCook, domain.MembershipStatusActive)

	updated, err := f.svc.ChangeMemberRole(context.Background(), outfitter.ID, member.ID, domain.RoleGuide)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuide, updated.Role)
}

func TestChangeMemberRoleProtectsOwner(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	owner := f.addMembership(outfitter.ID, uuid.New(), domain.RoleOwner, domain.MembershipStatusActive)

	_, err := f.svc.ChangeMemberRole(context.Background(), outfitter.ID, owner.ID, domain.RoleGuide)
	assert.ErrorIs(t, err, ErrOwnerImmutable)

	_, err = f.svc.DeactivateMember(context.Background(), outfitter.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOwnerImmutable)
}

func TestChangeMemberRoleScopedToOutfitter(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	other := f.addOutfitter(domain.OutfitterStatusActive)
	foreign := f.addMembership(other.ID, uuid.New(), domain.RoleCook, domain.MembershipStatusActive)

	// A membership id from another outfitter must look like it does not exist.
	_, err := f.svc.ChangeMemberRole(context.Background(), outfitter.ID, foreign.ID, domain.RoleGuide)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeactivateMember(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	member := f.addMembership(outfitter.ID, uuid.New(), domain.RoleGuide, domain.MembershipStatusActive)

	updated, err := f.svc.DeactivateMember(context.Background(), outfitter.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipStatusInactive, updated.Status)
}

func TestRedeemAccessCode(t *testing.T) {
	f := newFixture()
	outfitter := f.addOutfitter(domain.OutfitterStatusActive)
	f.accessCodes.codes["ELK25"] = outfitter.ID

	got, err := f.svc.RedeemAccessCode(context.Background(), "ELK25", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, outfitter.ID, got.ID)

	_, err = f.svc.RedeemAccessCode(context.Background(), "BOGUS", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
}

func TestListCandidates(t *testing.T) {
	f := newFixture()
	principalID := uuid.New()
	first := f.addOutfitter(domain.OutfitterStatusActive)
	second := f.addOutfitter(domain.OutfitterStatusActive)
	f.addMembership(first.ID, principalID, domain.RoleOwner, domain.MembershipStatusActive)
	f.addMembership(second.ID, principalID, domain.RoleGuide, domain.MembershipStatusActive)
	// invited rows never appear as candidates
	third := f.addOutfitter(domain.OutfitterStatusActive)
	f.addMembership(third.ID, principalID, domain.RoleClient, domain.MembershipStatusInvited)

	candidates, err := f.svc.ListCandidates(context.Background(), principalID)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}
