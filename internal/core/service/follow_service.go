package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// FollowService implements follow/unfollow between users. A principal always
// acts as itself here; the HTTP layer never lets one user follow on behalf
// of another.
type FollowService struct {
	follows ports.FollowRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewFollowService(follows ports.FollowRepository, users ports.UserRepository, logger zerolog.Logger) *FollowService {
	return &FollowService{follows: follows, users: users, logger: logger}
}

func (s *FollowService) Follow(ctx context.Context, followerID, targetUsername string) error {
	target, err := s.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return domain.ErrSelfFollow
	}
	return s.follows.Create(ctx, followerID, target.ID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, targetUsername string) error {
	target, err := s.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	return s.follows.Delete(ctx, followerID, target.ID)
}

// Followers lists the users following the named account.
func (s *FollowService) Followers(ctx context.Context, username string) ([]domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	ids, err := s.follows.FollowerIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

// Following lists the users the named account follows.
func (s *FollowService) Following(ctx context.Context, username string) ([]domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	ids, err := s.follows.FollowingIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

func (s *FollowService) resolve(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	return s.users.FindByIDs(ctx, ids)
}
