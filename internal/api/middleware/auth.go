package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/api/metrics"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

const principalKey = "auth.principal"

const bearerPrefix = "Bearer "

// Principal resolves the request's principal from the Authorization header.
// It never rejects a request: on any failure (no header, bad token, deleted
// account) the request continues anonymous and route-level guards decide
// whether that is acceptable. A principal is attached at most once.
func Principal(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := PrincipalFrom(c); ok {
				return next(c)
			}

			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			claims, err := tokens.Validate(token, domain.TokenAccess)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("access", "failure").Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("access token rejected, continuing anonymous")
				return next(c)
			}
			metrics.TokenValidationsTotal.WithLabelValues("access", "success").Inc()

			// The subject must still resolve to a live account.
			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				log.Debug().Err(err).Str("subject", claims.Subject).Msg("token subject not resolvable, continuing anonymous")
				return next(c)
			}

			c.Set(principalKey, domain.PrincipalOf(user))
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal attached to the request, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// WithPrincipal attaches a principal directly. The resolver is the only
// production writer; this exists so handlers can be exercised in isolation.
func WithPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
