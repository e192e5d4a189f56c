package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
	"github.com/outfitterhq/outfitterhq-sub004/internal/repository"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/revocation"
	"github.com/outfitterhq/outfitterhq-sub004/pkg/token"
)

var (
	// ErrUnauthenticated covers every way a session can fail to produce a
	// principal: bad token, revoked session, unknown or inactive identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ExternalIdentity is the already-verified identity imported during
// session exchange. Verification of the external token pair happens at
// the identity-provider boundary before this struct exists.
type ExternalIdentity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

type SessionService struct {
	principalRepo repository.PrincipalRepository
	tokens        *token.Service
	revoked       *revocation.SessionList
}

func NewSessionService(
	principalRepo repository.PrincipalRepository,
	tokens *token.Service,
	revoked *revocation.SessionList,
) *SessionService {
	return &SessionService{
		principalRepo: principalRepo,
		tokens:        tokens,
		revoked:       revoked,
	}
}

// Exchange imports a verified external identity into a local session:
// the principal row is found (or created on first sign-in) and a signed
// session token is issued.
func (s *SessionService) Exchange(ctx context.Context, identity ExternalIdentity) (string, *domain.Principal, error) {
	if identity.Subject == "" {
		return "", nil, fmt.Errorf("%w: missing external subject", ErrUnauthenticated)
	}

	principal, err := s.principalRepo.GetByExternalID(ctx, identity.Subject)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", nil, fmt.Errorf("failed to look up principal: %w", err)
		}
		principal, err = s.createPrincipal(ctx, identity)
		if err != nil {
			return "", nil, err
		}
	}

	if principal.Status != domain.PrincipalStatusActive {
		return "", nil, fmt.Errorf("%w: principal is %s", ErrUnauthenticated, principal.Status)
	}

	// Best effort; not worth failing the sign-in over.
	_ = s.principalRepo.TouchLastSeen(ctx, principal.ID)

	sessionToken, _, err := s.tokens.Issue(principal)
	if err != nil {
		return "", nil, err
	}

	return sessionToken, principal, nil
}

// Authenticate turns a session token back into a principal, rejecting
// revoked sessions and inactive identities. Called once per request.
func (s *SessionService) Authenticate(ctx context.Context, sessionToken string) (*domain.Principal, *domain.SessionClaims, error) {
	claims, err := s.tokens.Validate(sessionToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, nil, fmt.Errorf("%w: session revoked", ErrUnauthenticated)
	}

	principal, err := s.principalRepo.GetByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown principal", ErrUnauthenticated)
		}
		return nil, nil, fmt.Errorf("failed to load principal: %w", err)
	}

	if principal.Status != domain.PrincipalStatusActive {
		return nil, nil, fmt.Errorf("%w: principal is %s", ErrUnauthenticated, principal.Status)
	}

	return principal, claims, nil
}

// SignOut revokes the session carried by the claims.
func (s *SessionService) SignOut(ctx context.Context, claims *domain.SessionClaims) error {
	expiresAt := time.Now().Add(s.tokens.Expiry())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return s.revoked.Revoke(ctx, claims.ID, expiresAt)
}

func (s *SessionService) createPrincipal(ctx context.Context, identity ExternalIdentity) (*domain.Principal, error) {
	now := time.Now()
	principal := &domain.Principal{
		ID:         uuid.New(),
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		Status:     domain.PrincipalStatusActive,
		ExternalID: &identity.Subject,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if identity.Email != "" {
		principal.Email = &identity.Email
	}

	if err := s.principalRepo.Create(ctx, principal); err != nil {
		return nil, fmt.Errorf("failed to create principal: %w", err)
	}

	return principal, nil
}
