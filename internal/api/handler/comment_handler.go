package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/api/authz"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// CommentHandler serves comment reads and writes on posts.
type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Text string `json:"text" validate:"required,max=280"`
}

// Add handles POST /api/v1/posts/:id/comments.
//
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment text"
// @Success      201   {object}  domain.Comment
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/posts/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Add(c.Request().Context(), c.Param("id"), principal.ID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListByPost handles GET /api/v1/posts/:id/comments (public).
//
// @Summary      List a post's comments
// @Tags         comments
// @Produce      json
// @Param        id    path   string  true   "Post ID"
// @Param        page  query  int     false  "Page number (zero-based)"
// @Param        size  query  int     false  "Page size"
// @Success      200  {array}   domain.Comment
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/posts/{id}/comments [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	comments, err := h.commentService.ListByPost(c.Request().Context(), c.Param("id"), pageInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Delete handles DELETE /api/v1/posts/:id/comments/:commentId. Only the
// comment's author or an admin may delete it.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id         path  string  true  "Post ID"
// @Param        commentId  path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/posts/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	comment, err := h.commentService.GetByID(c.Request().Context(), c.Param("commentId"))
	if err != nil {
		return err
	}
	if err := authz.SameUserOrAdmin(principal, comment.AuthorID); err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), comment.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
