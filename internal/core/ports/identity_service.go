package ports

import (
	"context"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// IdentityStatus answers whether a national ID can log in or must register.
type IdentityStatus struct {
	Exists           bool
	HasAuthenticator bool
	DisplayName      string
}

// IdentityProfile is an identity with its resolved level.
type IdentityProfile struct {
	Identity *domain.Identity
	Level    domain.LevelInfo
}

// VerifyIdentityInput marks an identity as verified by an administrator.
type VerifyIdentityInput struct {
	NationalID  string
	DisplayName string
	Actor       string
}

type IdentityService interface {
	Check(ctx context.Context, nationalID string) (*IdentityStatus, error)
	Profile(ctx context.Context, nationalID string) (*IdentityProfile, error)
	Verify(ctx context.Context, in VerifyIdentityInput) (*IdentityProfile, error)
}
