package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

const anonymousAuthor = "Anonymous"

type ContentService struct {
	identities ports.IdentityRepository
	posts      ports.PostRepository
	comments   ports.CommentRepository
	logger     zerolog.Logger
}

func NewContentService(identities ports.IdentityRepository, posts ports.PostRepository, comments ports.CommentRepository, logger zerolog.Logger) *ContentService {
	return &ContentService{identities: identities, posts: posts, comments: comments, logger: logger}
}

var _ ports.ContentService = (*ContentService)(nil)

// CreatePost publishes a post in the pending state. Anonymous posts hide the
// author's name but keep the author id so moderation still credits XP.
func (s *ContentService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	author, err := s.identities.FindByNationalID(ctx, in.AuthorNationalID)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	name := author.DisplayName
	if in.Anonymous {
		name = anonymousAuthor
	}
	post := &domain.Post{
		AuthorID:   author.ID,
		AuthorName: name,
		Title:      strings.TrimSpace(in.Title),
		Content:    strings.TrimSpace(in.Content),
		Kind:       in.Kind,
		Anonymous:  in.Anonymous,
		State:      domain.StatePending,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info().Str("post_id", created.ID).Str("author_id", author.ID).Str("kind", created.Kind).Msg("post created")
	return created, nil
}

// CreateComment adds a comment to a post. A parent comment, when given, must
// belong to the same post.
func (s *ContentService) CreateComment(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	author, err := s.identities.FindByNationalID(ctx, in.AuthorNationalID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if _, err := s.posts.FindByID(ctx, in.PostID); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if in.ParentID != "" {
		parent, err := s.comments.FindByID(ctx, in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("create comment: parent: %w", err)
		}
		if parent.PostID != in.PostID {
			return nil, fmt.Errorf("create comment: parent: %w", domain.ErrCommentNotFound)
		}
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		PostID:     in.PostID,
		ParentID:   in.ParentID,
		AuthorID:   author.ID,
		AuthorName: author.DisplayName,
		Text:       strings.TrimSpace(in.Text),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.logger.Info().Str("comment_id", created.ID).Str("post_id", in.PostID).Msg("comment created")
	return created, nil
}

