package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogosphere/blog/internal/core/ports"
)

// APIHandler serves the read-only JSON view of the blog.
type APIHandler struct {
	posts    ports.PostService
	comments ports.CommentService
}

func NewAPIHandler(posts ports.PostService, comments ports.CommentService) *APIHandler {
	return &APIHandler{posts: posts, comments: comments}
}

// ListPosts returns every post, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  listPostsResponse
// @Failure      500  {object}  map[string]string
// @Router       /v1/posts [get]
func (h *APIHandler) ListPosts(c echo.Context) error {
	posts, err := h.posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostList(posts))
}

// GetPost returns one post with its comments.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  postDetailResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/posts/{id} [get]
func (h *APIHandler) GetPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	post, err := h.posts.GetPost(ctx, id)
	if err != nil {
		return err
	}
	comments, err := h.comments.ListComments(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostDetail(post, comments))
}
