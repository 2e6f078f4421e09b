package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/blogosphere/blog/internal/api/middleware"
	"github.com/blogosphere/blog/internal/api/view"
	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

var errNotImplemented = errors.New("not implemented")

type stubPostService struct {
	listFn   func(ctx context.Context) ([]*domain.Post, error)
	getFn    func(ctx context.Context, id int64) (*domain.Post, error)
	createFn func(ctx context.Context, actor domain.Actor, in ports.PostInput) (*domain.Post, error)
	editFn   func(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error)
	updateFn func(ctx context.Context, actor domain.Actor, id int64, in ports.PostInput) (*domain.Post, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id int64) error
}

func (s *stubPostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	if s.listFn == nil {
		return nil, errNotImplemented
	}
	return s.listFn(ctx)
}

func (s *stubPostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	if s.getFn == nil {
		return nil, errNotImplemented
	}
	return s.getFn(ctx, id)
}

func (s *stubPostService) CreatePost(ctx context.Context, actor domain.Actor, in ports.PostInput) (*domain.Post, error) {
	if s.createFn == nil {
		return nil, errNotImplemented
	}
	return s.createFn(ctx, actor, in)
}

func (s *stubPostService) EditPost(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error) {
	if s.editFn == nil {
		return nil, errNotImplemented
	}
	return s.editFn(ctx, actor, id)
}

func (s *stubPostService) UpdatePost(ctx context.Context, actor domain.Actor, id int64, in ports.PostInput) (*domain.Post, error) {
	if s.updateFn == nil {
		return nil, errNotImplemented
	}
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubPostService) DeletePost(ctx context.Context, actor domain.Actor, id int64) error {
	if s.deleteFn == nil {
		return errNotImplemented
	}
	return s.deleteFn(ctx, actor, id)
}

type stubCommentService struct {
	listFn   func(ctx context.Context, postID int64) ([]*domain.Comment, error)
	addFn    func(ctx context.Context, actor domain.Actor, postID int64, in ports.CommentInput) (*domain.Comment, error)
	deleteFn func(ctx context.Context, actor domain.Actor, postID, id int64) error
}

func (s *stubCommentService) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, postID)
}

func (s *stubCommentService) AddComment(ctx context.Context, actor domain.Actor, postID int64, in ports.CommentInput) (*domain.Comment, error) {
	if s.addFn == nil {
		return nil, errNotImplemented
	}
	return s.addFn(ctx, actor, postID, in)
}

func (s *stubCommentService) DeleteComment(ctx context.Context, actor domain.Actor, postID, id int64) error {
	if s.deleteFn == nil {
		return errNotImplemented
	}
	return s.deleteFn(ctx, actor, postID, id)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, creds ports.Credentials) (*domain.User, error)
	loginFn    func(ctx context.Context, creds ports.Credentials) (string, *domain.User, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, creds ports.Credentials) (*domain.User, error) {
	return s.registerFn(ctx, creds)
}

func (s *stubAuthService) Login(ctx context.Context, creds ports.Credentials) (string, *domain.User, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token)
}

var alice = &domain.User{ID: 1, Username: "alice"}

// newEcho returns an Echo with the renderer and validator the handlers rely on.
func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.New(func(*domain.User, *domain.Post) bool { return true }, middleware.CurrentUser)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context. A non-nil form is sent URL-encoded;
// params are assigned in order to names.
func newContext(e *echo.Echo, method, path string, form url.Values, names, values []string) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

// asUser marks the request as authenticated.
func asUser(c echo.Context, u *domain.User) {
	c.Set("user", u)
}
