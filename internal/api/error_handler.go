package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogosphere/blog/internal/api/view"
	"github.com/blogosphere/blog/internal/core/domain"
)

// errorResponse is the canonical error envelope for the JSON API.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Answers /api/ paths with {"error": "<message>"} and everything else
//     with the HTML error page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		switch {
		case c.Request().Method == http.MethodHead:
			err = c.NoContent(code)
		case strings.HasPrefix(c.Request().URL.Path, "/api/"):
			err = c.JSON(code, errorResponse{Error: msg})
		default:
			err = c.Render(code, view.Error, &view.Page{Status: code, Message: msg})
			if err != nil && !c.Response().Committed {
				err = c.String(code, msg)
			}
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to write error response")
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (unknown route, bad path params, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, fmt.Sprintf("Post id %s doesn't exist.", c.Param("id"))
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, fmt.Sprintf("Comment id %s doesn't exist on post %s.", c.Param("comment_id"), c.Param("id"))
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You are not allowed to modify this post."
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "Login required."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User already exists."
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Message
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error."
}
