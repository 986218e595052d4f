package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// UserHandler serves public profile lookup and the username-change flow.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type changeUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
}

// GetByUsername handles GET /api/v1/users/by-username/:username (public).
//
// @Summary      Look up a user by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      404       {object}  map[string]string
// @Router       /api/v1/users/by-username/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangeUsername handles PATCH /api/v1/users/me/username. The principal can
// only rename its own account.
//
// @Summary      Change the caller's username
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeUsernameRequest  true  "New username"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/users/me/username [patch]
func (h *UserHandler) ChangeUsername(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req changeUsernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.ChangeUsername(c.Request().Context(), principal.ID, req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
