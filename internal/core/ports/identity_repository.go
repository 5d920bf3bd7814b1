package ports

import (
	"context"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// IdentityRepository defines persistence for citizens, their bound
// authenticator and their XP counter.
type IdentityRepository interface {
	// FindByNationalID returns domain.ErrIdentityNotFound for unknown or
	// soft-deleted identities.
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)

	// BindAuthenticator creates the identity when it does not exist (with the
	// given role and display name) and replaces its authenticator otherwise.
	BindAuthenticator(ctx context.Context, nationalID, displayName, role string, auth *domain.Authenticator) (*domain.Identity, error)

	// EnsureIdentity creates a credential-less identity when absent.
	EnsureIdentity(ctx context.Context, nationalID, displayName, role string) (*domain.Identity, error)

	UpdateSignCount(ctx context.Context, id string, count uint32) error

	// AddXP atomically applies max(0, xp+delta) and returns the new value.
	AddXP(ctx context.Context, id string, delta int) (int, error)

	// SetVerified flips the verification flag; a non-empty displayName
	// replaces the stored one.
	SetVerified(ctx context.Context, nationalID string, verified bool, displayName string) (*domain.Identity, error)
}
