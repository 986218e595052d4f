package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user can hold. Roles are referenced by
// name and must exist in the role store before they can be assigned.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned to every account created through registration.
const DefaultRole = RoleUser

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameConflict = errors.New("username already taken")
var ErrEmailConflict = errors.New("email already registered")
var ErrRoleNotFound = errors.New("role not found")
var ErrAuthenticationFailed = errors.New("username or password is incorrect")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// User is the durable identity record against which login is verified.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Description  string    `json:"description,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the request-scoped projection of a User built from a validated
// access token. It lives in the request context only and is never cached
// across requests.
type Principal struct {
	ID       string
	Username string
	Email    string
	Role     Role
}

// PrincipalOf projects a User into the identity attached to a request.
func PrincipalOf(u *User) Principal {
	return Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
