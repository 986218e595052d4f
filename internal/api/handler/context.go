package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/api/middleware"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the resolver middleware.
// Handlers behind RequirePrincipal can rely on it being present; the error
// branch exists for handlers used on mixed routes.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}
