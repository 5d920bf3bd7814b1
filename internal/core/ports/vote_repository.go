package ports

import (
	"context"
	"time"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// VoteRepository is the vote ledger. There is at most one row per VoteKey;
// retraction sets its soft-delete marker instead of removing it.
type VoteRepository interface {
	// Find returns the row regardless of its soft-delete marker, or
	// domain.ErrVoteNotFound.
	Find(ctx context.Context, key domain.VoteKey) (*domain.Vote, error)
	// SetActive inserts the row when absent and sets or clears its marker.
	SetActive(ctx context.Context, key domain.VoteKey, active bool, at time.Time) error
	// CountActive returns the number of rows for the target without a marker.
	CountActive(ctx context.Context, targetID string, kind domain.TargetKind) (int64, error)
}
