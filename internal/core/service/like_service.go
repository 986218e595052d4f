package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// LikeService implements the like/unlike pair and the public like listing.
type LikeService struct {
	likes  ports.LikeRepository
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewLikeService(likes ports.LikeRepository, posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *LikeService {
	return &LikeService{likes: likes, posts: posts, users: users, logger: logger}
}

// Like records a like. The repository's unique index makes a second like of
// the same post by the same user fail with ErrAlreadyLiked.
func (s *LikeService) Like(ctx context.Context, postID, userID string) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.likes.Create(ctx, &domain.Like{
		PostID:    postID,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *LikeService) Unlike(ctx context.Context, postID, userID string) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return err
	}
	return s.likes.Delete(ctx, postID, userID)
}

func (s *LikeService) ListByPost(ctx context.Context, postID string) ([]domain.Like, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.likes.FindByPost(ctx, postID)
}
