package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// LikeHandler serves the like/unlike pair and the public like listing. A
// principal likes and unlikes as itself only, so no ownership check is
// needed beyond requiring a principal.
type LikeHandler struct {
	likeService ports.LikeService
}

func NewLikeHandler(likeService ports.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Like handles POST /api/v1/posts/:id/like.
//
// @Summary      Like a post
// @Tags         likes
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/posts/{id}/like [post]
func (h *LikeHandler) Like(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.likeService.Like(c.Request().Context(), c.Param("id"), principal.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unlike handles DELETE /api/v1/posts/:id/like.
//
// @Summary      Remove a like
// @Tags         likes
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/posts/{id}/like [delete]
func (h *LikeHandler) Unlike(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.likeService.Unlike(c.Request().Context(), c.Param("id"), principal.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByPost handles GET /api/v1/posts/:id/likes (public).
//
// @Summary      List a post's likes
// @Tags         likes
// @Produce      json
// @Param        id  path  string  true  "Post ID"
// @Success      200  {array}   domain.Like
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/posts/{id}/likes [get]
func (h *LikeHandler) ListByPost(c echo.Context) error {
	likes, err := h.likeService.ListByPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}
