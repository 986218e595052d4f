package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// FollowHandler serves follow/unfollow and the public followers/following
// listings. The follower is always the principal; there is no way to follow
// on another user's behalf.
type FollowHandler struct {
	followService ports.FollowService
}

func NewFollowHandler(followService ports.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow handles POST /api/v1/users/:username/follow.
//
// @Summary      Follow a user
// @Tags         follows
// @Security     BearerAuth
// @Param        username  path  string  true  "Username to follow"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/users/{username}/follow [post]
func (h *FollowHandler) Follow(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.followService.Follow(c.Request().Context(), principal.ID, c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unfollow handles DELETE /api/v1/users/:username/follow.
//
// @Summary      Unfollow a user
// @Tags         follows
// @Security     BearerAuth
// @Param        username  path  string  true  "Username to unfollow"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{username}/follow [delete]
func (h *FollowHandler) Unfollow(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(c.Request().Context(), principal.ID, c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Followers handles GET /api/v1/users/:username/followers (public).
//
// @Summary      List a user's followers
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {array}   userResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{username}/followers [get]
func (h *FollowHandler) Followers(c echo.Context) error {
	users, err := h.followService.Followers(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Following handles GET /api/v1/users/:username/following (public).
//
// @Summary      List who a user follows
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {array}   userResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{username}/following [get]
func (h *FollowHandler) Following(c echo.Context) error {
	users, err := h.followService.Following(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}
