package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogosphere/blog/internal/api/middleware"
	"github.com/blogosphere/blog/internal/core/domain"
)

// ctxActor returns the identity of the logged-in user. Routes that call it
// sit behind RequireLogin, so a missing identity means the middleware chain
// is misconfigured.
func ctxActor(c echo.Context) (domain.Actor, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return domain.ActorOf(user), nil
}

// formValues collects the named form fields for re-filling a form.
func formValues(c echo.Context, names ...string) map[string]string {
	values := make(map[string]string, len(names))
	for _, n := range names {
		values[n] = c.FormValue(n)
	}
	return values
}
