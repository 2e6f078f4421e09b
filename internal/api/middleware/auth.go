package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "session"
	// LoginPath is where anonymous requests to protected pages are sent.
	LoginPath = "/auth/login"

	userKey = "user"
)

// LoadIdentity resolves the session cookie to a user and stores it on the
// context. Requests without a valid session continue anonymously.
func LoadIdentity(auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), cookie.Value)
			switch {
			case err == nil:
				c.Set(userKey, user)
			case errors.Is(err, domain.ErrInvalidCredentials),
				errors.Is(err, domain.ErrSessionNotFound),
				errors.Is(err, domain.ErrUserNotFound):
				log.Debug().Err(err).Msg("discarding stale session cookie")
				c.SetCookie(expiredCookie())
			default:
				log.Warn().Err(err).Msg("session lookup failed")
			}
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the identity loaded by LoadIdentity, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(userKey).(*domain.User)
	return u
}

// SetSessionCookie hands token to the client for ttl.
func SetSessionCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie tells the client to drop its session.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(expiredCookie())
}

func expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
