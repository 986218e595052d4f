package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// AuthService implements login, registration, and access-token renewal. It
// holds no state of its own; users live in the repository and tokens are
// self-contained.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	tokens   ports.TokenService
	hasher   ports.PasswordHasher
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService wires the authentication flows. throttle may be nil, which
// disables the failed-login limiter.
func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService, hasher ports.PasswordHasher, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		tokens:   tokens,
		hasher:   hasher,
		throttle: throttle,
		logger:   logger,
	}
}

// Login verifies the credential and issues an access/refresh token pair.
// A missing user and a wrong password are indistinguishable to the caller:
// both return ErrAuthenticationFailed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle unavailable, allowing attempt")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return nil, domain.ErrAuthenticationFailed
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle reset failed")
		}
	}

	return s.issuePair(user)
}

// Register creates a new account with the default role. Username and email
// uniqueness are checked before any write; the store's unique indexes catch
// the race between two concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameConflict
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailConflict
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// Deployment precondition: the default role record must exist.
	role, err := s.roles.FindByName(ctx, domain.DefaultRole)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Description:  input.Description,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Refresh validates a refresh token and issues a fresh access token. The
// refresh token itself is returned unchanged: there is no rotation and no
// revocation list, so it stays valid until natural expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.Validate(refreshToken, domain.TokenRefresh)
	if err != nil {
		return nil, err
	}

	// The subject must still resolve: the account may have been removed
	// after the token was issued.
	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	access, err := s.tokens.Issue(user.Username, domain.TokenAccess, map[string]string{"email": user.Email})
	if err != nil {
		return nil, err
	}

	return &ports.TokenPair{
		TokenType:    "Bearer",
		AccessToken:  access,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) issuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := s.tokens.Issue(user.Username, domain.TokenAccess, map[string]string{"email": user.Email})
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(user.Username, domain.TokenRefresh, nil)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{
		TokenType:    "Bearer",
		AccessToken:  access,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("login throttle record failed")
	}
}
