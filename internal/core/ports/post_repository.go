package ports

import (
	"context"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// PostRepository defines persistence for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	// FindByID returns domain.ErrPostNotFound for unknown or soft-deleted posts.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	UpdateState(ctx context.Context, id string, state domain.PostState) error
	SetVoteCount(ctx context.Context, id string, count int64) error
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	// FindByID returns domain.ErrCommentNotFound for unknown or soft-deleted comments.
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	SetVoteCount(ctx context.Context, id string, count int64) error
}
