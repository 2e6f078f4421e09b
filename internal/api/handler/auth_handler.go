package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogosphere/blog/internal/api/metrics"
	"github.com/blogosphere/blog/internal/api/middleware"
	"github.com/blogosphere/blog/internal/api/view"
	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

// SessionOptions controls the session cookie issued at login.
type SessionOptions struct {
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	session     SessionOptions
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, session SessionOptions, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, session: session, log: log}
}

type credentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (f credentialsForm) credentials() ports.Credentials {
	return ports.Credentials{Username: f.Username, Password: f.Password}
}

// Register shows the registration form and creates the account on POST.
func (h *AuthHandler) Register(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, view.Register, &view.Page{})
	}

	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	_, err := h.authService.Register(c.Request().Context(), form.credentials())
	if err == nil {
		metrics.RegistrationsTotal.Inc()
		h.log.Info().Str("username", form.Username).Msg("user registered")
		return c.Redirect(http.StatusFound, middleware.LoginPath)
	}

	if ve := validationError(err); ve != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("register").Inc()
		return h.rerender(c, view.Register, http.StatusUnprocessableEntity, ve.Message, form)
	}
	if errors.Is(err, domain.ErrUserExists) {
		msg := fmt.Sprintf("User %s is already registered.", form.Username)
		return h.rerender(c, view.Register, http.StatusConflict, msg, form)
	}
	return err
}

// Login shows the login form and opens a session on POST.
func (h *AuthHandler) Login(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, view.Login, &view.Page{})
	}

	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	token, user, err := h.authService.Login(c.Request().Context(), form.credentials())
	switch {
	case err == nil:
	case validationError(err) != nil:
		metrics.ValidationFailuresTotal.WithLabelValues("login").Inc()
		return h.rerender(c, view.Login, http.StatusUnprocessableEntity, validationError(err).Message, form)
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		return h.rerender(c, view.Login, http.StatusUnauthorized, "Incorrect username.", form)
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return h.rerender(c, view.Login, http.StatusUnauthorized, "Incorrect password.", form)
	default:
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	middleware.SetSessionCookie(c, token, h.session.TTL, h.session.Secure)
	return c.Redirect(http.StatusFound, "/")
}

// Logout ends the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("session revocation failed")
		}
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) rerender(c echo.Context, page string, status int, msg string, form credentialsForm) error {
	return c.Render(status, page, &view.Page{
		Flash: msg,
		Form:  map[string]string{"username": form.Username},
	})
}
