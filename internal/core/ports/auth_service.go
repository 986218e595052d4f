package ports

import (
	"context"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	Description string
}

// TokenPair is the credential set returned by login and refresh. ExpiresIn is
// the access-token lifetime in seconds.
type TokenPair struct {
	TokenType    string
	AccessToken  string
	ExpiresIn    int64
	RefreshToken string
}

// AuthService orchestrates login, registration, and access-token renewal.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// LoginThrottle limits failed login attempts per username. Successful logins
// reset the counter.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
