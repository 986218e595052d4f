package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/api/authz"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

// PostHandler serves post CRUD and the timelines. Updates and deletes load
// the post first, then apply the ownership check against its author.
type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type postRequest struct {
	Text string `json:"text" validate:"required,max=280"`
}

// Create handles POST /api/v1/posts.
//
// @Summary      Publish a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post text"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), ports.CreatePostInput{
		AuthorID: principal.ID,
		Text:     req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update handles PUT /api/v1/posts/:id. Only the author or an admin may edit.
//
// @Summary      Edit a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post ID"
// @Param        body  body      postRequest  true  "New text"
// @Success      200   {object}  domain.Post
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if err := authz.SameUserOrAdmin(principal, post.AuthorID); err != nil {
		return err
	}

	updated, err := h.postService.UpdateText(c.Request().Context(), post.ID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/posts/:id. Only the author or an admin may
// delete.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	post, err := h.postService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if err := authz.SameUserOrAdmin(principal, post.AuthorID); err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), post.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /api/v1/posts (public): the global timeline, newest
// first.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Param        page  query  int  false  "Page number (zero-based)"
// @Param        size  query  int  false  "Page size"
// @Success      200  {array}  domain.Post
// @Router       /api/v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context(), pageInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ListByUser handles GET /api/v1/posts/user/:username (public).
//
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Param        username  path   string  true   "Username"
// @Param        page      query  int     false  "Page number (zero-based)"
// @Param        size      query  int     false  "Page size"
// @Success      200  {array}   domain.Post
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/posts/user/{username} [get]
func (h *PostHandler) ListByUser(c echo.Context) error {
	posts, err := h.postService.ListByUsername(c.Request().Context(), c.Param("username"), pageInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Feed handles GET /api/v1/posts/feed: the posts of everyone the principal
// follows, newest first.
//
// @Summary      Following timeline
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number (zero-based)"
// @Param        size  query  int  false  "Page size"
// @Success      200  {array}   domain.Post
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/posts/feed [get]
func (h *PostHandler) Feed(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.Feed(c.Request().Context(), principal.ID, pageInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func pageInput(c echo.Context) ports.PageInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return ports.PageInput{Page: page, Size: size}
}
