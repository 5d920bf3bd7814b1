package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vozciudadana/civic-core/internal/core/ports"
)

// ReputationService is the single writer of identity XP.
type ReputationService struct {
	identities ports.IdentityRepository
	log        zerolog.Logger
}

func NewReputationService(identities ports.IdentityRepository, log zerolog.Logger) *ReputationService {
	return &ReputationService{identities: identities, log: log}
}

var _ ports.ReputationLedger = (*ReputationService)(nil)

// ApplyDelta sets xp = max(0, xp+amount) and returns the stored value.
// Unknown identities yield domain.ErrIdentityNotFound.
func (s *ReputationService) ApplyDelta(ctx context.Context, identityID string, amount int) (int, error) {
	xp, err := s.identities.AddXP(ctx, identityID, amount)
	if err != nil {
		return 0, fmt.Errorf("apply delta: %w", err)
	}
	s.log.Debug().Str("identity_id", identityID).Int("delta", amount).Int("xp", xp).Msg("reputation updated")
	return xp, nil
}
