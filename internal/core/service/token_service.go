package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// TokenService signs and validates HS256 JWTs. Access and refresh tokens use
// separate secrets and expiries, both fixed at construction time for the
// process lifetime.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 14 * 24 * time.Hour
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue builds and signs a token of the given kind for subject. Extra claims
// are merged into the payload; reserved claims cannot be overridden.
func (s *TokenService) Issue(subject string, kind domain.TokenKind, extra map[string]string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttlFor(kind)).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.keyFor(kind))
}

// Validate verifies the signature against the key registered for kind and
// checks expiry. A token without an exp claim is rejected outright, so a
// good signature alone never validates. Cross-kind misuse surfaces as a
// signature failure.
func (s *TokenService) Validate(token string, kind domain.TokenKind) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.keyFor(kind), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, translateJWTError(err)
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenSignatureInvalid
	}

	out := &ports.TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	return out, nil
}

// SubjectOf validates token as kind and returns its subject.
func (s *TokenService) SubjectOf(token string, kind domain.TokenKind) (string, error) {
	claims, err := s.Validate(token, kind)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExpiryOf validates token as kind and returns its expiry instant.
func (s *TokenService) ExpiryOf(token string, kind domain.TokenKind) (time.Time, error) {
	claims, err := s.Validate(token, kind)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt, nil
}

// AccessTTL reports the configured access-token lifetime.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *TokenService) keyFor(kind domain.TokenKind) []byte {
	if kind == domain.TokenRefresh {
		return s.refreshSecret
	}
	return s.accessSecret
}

func (s *TokenService) ttlFor(kind domain.TokenKind) time.Duration {
	if kind == domain.TokenRefresh {
		return s.refreshTTL
	}
	return s.accessTTL
}

// translateJWTError collapses the jwt library's errors into the domain
// taxonomy so callers never see parser internals.
func translateJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenSignatureInvalid
	}
}
