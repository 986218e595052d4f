package domain

import "errors"

// TokenKind selects the signing key and expiry a token is issued and
// validated with. A token of one kind never validates as the other.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")

// ErrUnauthenticated is returned by route guards when a protected endpoint is
// reached without a usable principal.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when a principal is present but fails the
// ownership or role check for the targeted resource.
var ErrForbidden = errors.New("access forbidden")
