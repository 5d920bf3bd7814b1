package ports

import (
	"context"
	"encoding/json"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// CeremonyResult is returned by every successful ceremony.
type CeremonyResult struct {
	Verified bool
	Identity *domain.Identity
	Level    domain.LevelInfo
	// Token is the session token attributed to the identity.
	Token string
}

// MasterLoginInput carries the out-of-band override request.
type MasterLoginInput struct {
	NationalID string
	Secret     string
	RemoteAddr string
}

// CeremonyService runs the two-phase registration and authentication
// ceremonies. Every failure is terminal for the attempt.
type CeremonyService interface {
	BeginRegistration(ctx context.Context, nationalID, displayName string) (json.RawMessage, error)
	FinishRegistration(ctx context.Context, nationalID, displayName string, response json.RawMessage) (*CeremonyResult, error)
	BeginAuthentication(ctx context.Context, nationalID string) (json.RawMessage, error)
	FinishAuthentication(ctx context.Context, nationalID string, response json.RawMessage) (*CeremonyResult, error)
	MasterLogin(ctx context.Context, in MasterLoginInput) (*CeremonyResult, error)
}
