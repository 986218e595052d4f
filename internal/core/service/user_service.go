package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// UserService implements profile lookup and username changes.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// ChangeUsername renames the account after re-checking uniqueness. Tokens
// issued for the old username stop resolving to a credential and fail at
// validation time.
func (s *UserService) ChangeUsername(ctx context.Context, userID, newUsername string) (*domain.User, error) {
	if existing, err := s.users.FindByUsername(ctx, newUsername); err == nil {
		if existing.ID == userID {
			return existing, nil
		}
		return nil, domain.ErrUsernameConflict
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	updated, err := s.users.UpdateUsername(ctx, userID, newUsername)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("username", newUsername).Msg("username changed")
	return updated, nil
}
