package ports

import (
	"context"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// CreatePostInput carries the data needed to publish a post.
type CreatePostInput struct {
	AuthorNationalID string
	Title            string
	Content          string
	Kind             string
	Anonymous        bool
}

// CreateCommentInput carries the data needed to comment on a post.
type CreateCommentInput struct {
	AuthorNationalID string
	PostID           string
	ParentID         string
	Text             string
}

// ContentService creates the vote targets. Listing and media are handled
// elsewhere.
type ContentService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	CreateComment(ctx context.Context, in CreateCommentInput) (*domain.Comment, error)
}
