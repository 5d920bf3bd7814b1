package ports

import "context"

// ReputationLedger is the only writer of XP.
type ReputationLedger interface {
	// ApplyDelta sets xp = max(0, xp+amount) and returns the new value.
	ApplyDelta(ctx context.Context, identityID string, amount int) (int, error)
}
