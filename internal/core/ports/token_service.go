package ports

import (
	"time"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

// TokenClaims is the decoded content of a validated token.
type TokenClaims struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService creates and validates signed bearer tokens. Each kind is
// signed with its own key, so an access token never validates as a refresh
// token and vice versa. Signature alone is not enough: expiry is always
// checked against the validating process's wall clock.
type TokenService interface {
	Issue(subject string, kind domain.TokenKind, extra map[string]string) (string, error)
	Validate(token string, kind domain.TokenKind) (*TokenClaims, error)
	SubjectOf(token string, kind domain.TokenKind) (string, error)
	ExpiryOf(token string, kind domain.TokenKind) (time.Time, error)
	AccessTTL() time.Duration
}

// PasswordHasher is the one-way hash used for stored credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
