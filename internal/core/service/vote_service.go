package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type voteService struct {
	identities ports.IdentityRepository
	votes      ports.VoteRepository
	posts      ports.PostRepository
	comments   ports.CommentRepository
	reputation ports.ReputationLedger
	serializer ports.Serializer
	log        zerolog.Logger
	now        func() time.Time
}

// NewVoteService returns a VoteService implementation.
func NewVoteService(
	identities ports.IdentityRepository,
	votes ports.VoteRepository,
	posts ports.PostRepository,
	comments ports.CommentRepository,
	reputation ports.ReputationLedger,
	serializer ports.Serializer,
	log zerolog.Logger,
) ports.VoteService {
	return &voteService{
		identities: identities,
		votes:      votes,
		posts:      posts,
		comments:   comments,
		reputation: reputation,
		serializer: serializer,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Toggle flips the voter's vote on a target, recounts the target and settles
// the post author's XP. Lookup, write and recount run under the target's key
// in the serializer.
func (s *voteService) Toggle(ctx context.Context, in ports.ToggleVoteInput) (*ports.VoteResult, error) {
	kind := domain.TargetKind(in.TargetKind)
	if !kind.Valid() {
		return nil, domain.ErrInvalidTargetKind
	}

	voter, err := s.identities.FindByNationalID(ctx, in.VoterNationalID)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, domain.ErrVoterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle vote: %w", err)
	}

	key := domain.VoteKey{VoterID: voter.ID, TargetID: in.TargetID, TargetKind: kind}
	res := &ports.VoteResult{TargetID: in.TargetID, TargetKind: kind}

	err = s.serializer.Do(ctx, targetKey(kind, in.TargetID), func(ctx context.Context) error {
		authorID, err := s.targetAuthor(ctx, kind, in.TargetID)
		if err != nil {
			return err
		}

		current, err := s.votes.Find(ctx, key)
		if err != nil && !errors.Is(err, domain.ErrVoteNotFound) {
			return err
		}
		_, outcome := domain.StateOf(current).Toggle()

		if err := s.votes.SetActive(ctx, key, outcome == domain.VoteCast, s.now()); err != nil {
			return fmt.Errorf("write vote: %w", err)
		}

		count, err := s.votes.CountActive(ctx, in.TargetID, kind)
		if err != nil {
			return fmt.Errorf("recount: %w", err)
		}
		if err := s.setVoteCount(ctx, kind, in.TargetID, count); err != nil {
			return fmt.Errorf("store vote count: %w", err)
		}
		res.Outcome = outcome
		res.VoteCount = count

		// Comment votes never move reputation.
		if kind == domain.TargetPost {
			return s.settleAuthor(ctx, authorID, outcome.ReputationDelta())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle vote: %w", err)
	}

	s.log.Info().
		Str("voter_id", voter.ID).
		Str("target_id", in.TargetID).
		Str("target_kind", string(kind)).
		Str("outcome", string(res.Outcome)).
		Int64("vote_count", res.VoteCount).
		Msg("vote toggled")

	return res, nil
}

func (s *voteService) targetAuthor(ctx context.Context, kind domain.TargetKind, id string) (string, error) {
	switch kind {
	case domain.TargetPost:
		p, err := s.posts.FindByID(ctx, id)
		if errors.Is(err, domain.ErrPostNotFound) {
			return "", domain.ErrTargetNotFound
		}
		if err != nil {
			return "", err
		}
		return p.AuthorID, nil
	default:
		c, err := s.comments.FindByID(ctx, id)
		if errors.Is(err, domain.ErrCommentNotFound) {
			return "", domain.ErrTargetNotFound
		}
		if err != nil {
			return "", err
		}
		return c.AuthorID, nil
	}
}

func (s *voteService) setVoteCount(ctx context.Context, kind domain.TargetKind, id string, count int64) error {
	if kind == domain.TargetPost {
		return s.posts.SetVoteCount(ctx, id, count)
	}
	return s.comments.SetVoteCount(ctx, id, count)
}

func (s *voteService) settleAuthor(ctx context.Context, authorID string, delta int) error {
	return applyAuthorDelta(ctx, s.reputation, s.log, authorID, delta)
}

// applyAuthorDelta routes an author's XP change through the ledger. An
// unknown or missing author is logged and skipped.
func applyAuthorDelta(ctx context.Context, ledger ports.ReputationLedger, log zerolog.Logger, authorID string, delta int) error {
	if delta == 0 {
		return nil
	}
	if authorID == "" {
		log.Debug().Int("delta", delta).Msg("post has no author, reputation skipped")
		return nil
	}
	_, err := ledger.ApplyDelta(ctx, authorID, delta)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		log.Warn().Str("author_id", authorID).Int("delta", delta).Msg("unknown author, reputation skipped")
		return nil
	}
	return err
}

func targetKey(kind domain.TargetKind, id string) string {
	return string(kind) + ":" + id
}
