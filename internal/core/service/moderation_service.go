package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type moderationService struct {
	posts      ports.PostRepository
	reputation ports.ReputationLedger
	audit      ports.AuditRepository
	serializer ports.Serializer
	log        zerolog.Logger
}

// NewModerationService returns a ModerationService implementation.
func NewModerationService(
	posts ports.PostRepository,
	reputation ports.ReputationLedger,
	audit ports.AuditRepository,
	serializer ports.Serializer,
	log zerolog.Logger,
) ports.ModerationService {
	return &moderationService{
		posts:      posts,
		reputation: reputation,
		audit:      audit,
		serializer: serializer,
		log:        log,
	}
}

// SetState moves a post to a new moderation state and settles its author's XP
// with a single net delta.
func (s *moderationService) SetState(ctx context.Context, in ports.SetStateInput) (*ports.StateChangeResult, error) {
	to, err := domain.ParsePostState(in.State)
	if err != nil {
		return nil, err
	}

	res := &ports.StateChangeResult{PostID: in.PostID, To: to}
	var authorID string

	err = s.serializer.Do(ctx, targetKey(domain.TargetPost, in.PostID), func(ctx context.Context) error {
		// 1. Read current state and author.
		post, err := s.posts.FindByID(ctx, in.PostID)
		if err != nil {
			return err
		}
		res.From = post.State
		authorID = post.AuthorID

		// 2. Redundant request.
		if post.State == to {
			return nil
		}

		// 3. Persist the new state even when the author is unknown.
		if err := s.posts.UpdateState(ctx, in.PostID, to); err != nil {
			return fmt.Errorf("update state: %w", err)
		}
		res.Changed = true
		res.XPDelta = domain.TransitionDelta(post.State, to)

		// 4. Revert-then-apply as one ledger call.
		return applyAuthorDelta(ctx, s.reputation, s.log, authorID, res.XPDelta)
	})
	if err != nil {
		return nil, fmt.Errorf("set state: %w", err)
	}

	if !res.Changed {
		s.log.Debug().Str("post_id", in.PostID).Str("state", string(to)).Msg("post already in state, skipped")
		return res, nil
	}

	// 5. Audit trail (non-fatal on failure).
	event := &domain.AuditEvent{
		ID:      uuid.NewString(),
		Action:  domain.AuditModerationChange,
		Actor:   in.Actor,
		Subject: in.PostID,
		Outcome: "success",
		Details: map[string]any{
			"from":      string(res.From),
			"to":        string(res.To),
			"xp_delta":  res.XPDelta,
			"author_id": authorID,
		},
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.Insert(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("post_id", in.PostID).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("post_id", in.PostID).
		Str("from", string(res.From)).
		Str("to", string(res.To)).
		Int("delta", res.XPDelta).
		Msg("post state changed")

	return res, nil
}
