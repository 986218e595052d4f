package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// CommentService implements comment reads and writes on posts.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users, logger: logger}
}

func (s *CommentService) Add(ctx context.Context, postID, authorID, text string) (*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:         postID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	return s.comments.Create(ctx, comment)
}

func (s *CommentService) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	return s.comments.FindByID(ctx, id)
}

func (s *CommentService) ListByPost(ctx context.Context, postID string, page ports.PageInput) ([]domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	limit, offset := pageBounds(page)
	return s.comments.FindByPost(ctx, postID, limit, offset)
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.comments.Delete(ctx, id)
}
