package ports

import (
	"context"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// SetStateInput is a moderation request on a post.
type SetStateInput struct {
	PostID string
	State  string
	Actor  string
}

// StateChangeResult reports what a moderation request did.
type StateChangeResult struct {
	PostID  string
	From    domain.PostState
	To      domain.PostState
	XPDelta int
	// Changed is false when the post already was in the requested state.
	Changed bool
}

type ModerationService interface {
	SetState(ctx context.Context, in SetStateInput) (*StateChangeResult, error)
}
