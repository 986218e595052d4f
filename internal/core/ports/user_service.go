package ports

import (
	"context"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

// UserService exposes profile lookup and the username-change flow.
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ChangeUsername(ctx context.Context, userID, newUsername string) (*domain.User, error)
}
