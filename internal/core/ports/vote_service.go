package ports

import (
	"context"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// ToggleVoteInput identifies the voter and the target of a toggle.
type ToggleVoteInput struct {
	VoterNationalID string
	TargetID        string
	TargetKind      string
}

// VoteResult is the ledger state after a toggle.
type VoteResult struct {
	TargetID   string
	TargetKind domain.TargetKind
	Outcome    domain.VoteOutcome
	VoteCount  int64
}

type VoteService interface {
	Toggle(ctx context.Context, in ToggleVoteInput) (*VoteResult, error)
}
