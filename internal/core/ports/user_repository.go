package ports

import (
	"context"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

// UserRepository is the credential store: it persists users and resolves them
// for login, refresh, and per-request principal resolution.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUsername(ctx context.Context, id, username string) (*domain.User, error)
}

// RoleRepository resolves role records by name. Roles are seeded at
// deployment time; a missing role is a broken deployment, not bad input.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.Role) (domain.Role, error)
}
