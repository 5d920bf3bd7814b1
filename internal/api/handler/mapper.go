package handler

import (
	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

func toIdentityResponse(i *domain.Identity, level domain.LevelInfo) identityResponse {
	return identityResponse{
		ID:               i.ID,
		NationalID:       i.NationalID,
		DisplayName:      i.DisplayName,
		Role:             i.Role,
		XP:               i.XP,
		Verified:         i.Verified,
		HasAuthenticator: i.HasAuthenticator(),
		Level:            level,
		CreatedAt:        i.CreatedAt,
	}
}

func toCeremonyResponse(r *ports.CeremonyResult) ceremonyResponse {
	return ceremonyResponse{
		Verified: r.Verified,
		Token:    r.Token,
		Identity: toIdentityResponse(r.Identity, r.Level),
	}
}

func toVoteResponse(r *ports.VoteResult) voteResponse {
	return voteResponse{
		TargetID:   r.TargetID,
		TargetKind: string(r.TargetKind),
		Outcome:    string(r.Outcome),
		VoteCount:  r.VoteCount,
	}
}

func toStateChangeResponse(r *ports.StateChangeResult) stateChangeResponse {
	return stateChangeResponse{
		PostID:  r.PostID,
		From:    string(r.From),
		To:      string(r.To),
		XPDelta: r.XPDelta,
		Changed: r.Changed,
	}
}
