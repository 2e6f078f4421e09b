package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogosphere/blog/internal/api/metrics"
	"github.com/blogosphere/blog/internal/api/view"
	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

// PostHandler serves the HTML pages for posts and their comments.
type PostHandler struct {
	posts    ports.PostService
	comments ports.CommentService
	log      zerolog.Logger
}

func NewPostHandler(posts ports.PostService, comments ports.CommentService, log zerolog.Logger) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, log: log}
}

type postForm struct {
	Title string `form:"title"`
	Body  string `form:"body"`
}

type commentForm struct {
	Comment string `form:"comment"`
}

// Index lists every post, newest first.
func (h *PostHandler) Index(c echo.Context) error {
	posts, err := h.posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.Index, &view.Page{Posts: posts})
}

// Create shows the new post form and handles its submission.
func (h *PostHandler) Create(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, view.Create, &view.Page{})
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var form postForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	_, err = h.posts.CreatePost(c.Request().Context(), actor, ports.PostInput{Title: form.Title, Body: form.Body})
	if ve := validationError(err); ve != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("post").Inc()
		return c.Render(http.StatusUnprocessableEntity, view.Create, &view.Page{
			Flash: ve.Message,
			Form:  formValues(c, "title", "body"),
		})
	}
	if err != nil {
		return err
	}

	metrics.PostMutationsTotal.WithLabelValues("create").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Post shows a post with its comments on GET and adds a comment on POST.
func (h *PostHandler) Post(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	post, err := h.posts.GetPost(ctx, id)
	if err != nil {
		return err
	}

	page := &view.Page{Post: post}
	status := http.StatusOK

	if c.Request().Method == http.MethodPost {
		actor, err := ctxActor(c)
		if err != nil {
			return err
		}
		var form commentForm
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
		}

		_, err = h.comments.AddComment(ctx, actor, id, ports.CommentInput{Body: form.Comment})
		ve := validationError(err)
		if ve == nil && err != nil {
			return err
		}
		if ve == nil {
			metrics.CommentMutationsTotal.WithLabelValues("add").Inc()
			return c.Redirect(http.StatusFound, postPath(id))
		}

		metrics.ValidationFailuresTotal.WithLabelValues("comment").Inc()
		page.Flash = ve.Message
		page.Form = formValues(c, "comment")
		status = http.StatusUnprocessableEntity
	}

	comments, err := h.comments.ListComments(ctx, id)
	if err != nil {
		return err
	}
	page.Comments = comments
	return c.Render(status, view.Post, page)
}

// Update shows the edit form and handles its submission.
func (h *PostHandler) Update(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	post, err := h.posts.EditPost(ctx, actor, id)
	if err != nil {
		return err
	}
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, view.Update, &view.Page{Post: post})
	}

	var form postForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	_, err = h.posts.UpdatePost(ctx, actor, id, ports.PostInput{Title: form.Title, Body: form.Body})
	if ve := validationError(err); ve != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("post").Inc()
		return c.Render(http.StatusUnprocessableEntity, view.Update, &view.Page{
			Post:  post,
			Flash: ve.Message,
			Form:  map[string]string{"body": form.Body},
		})
	}
	if err != nil {
		return err
	}

	metrics.PostMutationsTotal.WithLabelValues("update").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Delete removes a post and redirects to the index.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.posts.DeletePost(c.Request().Context(), actor, id); err != nil {
		return err
	}

	metrics.PostMutationsTotal.WithLabelValues("delete").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// DeleteComment removes a comment of the post in the path and redirects back
// to that post.
func (h *PostHandler) DeleteComment(c echo.Context) error {
	pid, cid, err := commentIDs(c)
	if err != nil {
		return err
	}
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.comments.DeleteComment(c.Request().Context(), actor, pid, cid); err != nil {
		return err
	}

	metrics.CommentMutationsTotal.WithLabelValues("delete").Inc()
	return c.Redirect(http.StatusFound, postPath(pid))
}

func postPath(id int64) string {
	return fmt.Sprintf("/%d", id)
}

func validationError(err error) *domain.ValidationError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
