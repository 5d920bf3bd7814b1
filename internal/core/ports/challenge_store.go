package ports

import (
	"context"
	"time"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// ChallengeStore keeps at most one outstanding challenge per identity.
type ChallengeStore interface {
	// Put stores c, replacing any outstanding challenge for the same identity.
	Put(ctx context.Context, c *domain.Challenge, ttl time.Duration) error
	// Take removes and returns the outstanding challenge. It returns
	// domain.ErrChallengeNotFound when none exists or it has expired.
	Take(ctx context.Context, nationalID string) (*domain.Challenge, error)
}
