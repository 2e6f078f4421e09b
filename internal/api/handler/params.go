package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type postIDParam struct {
	ID int64 `param:"id" validate:"gt=0"`
}

type commentIDParam struct {
	PostID    int64 `param:"id" validate:"gt=0"`
	CommentID int64 `param:"comment_id" validate:"gt=0"`
}

// postID reads and validates the :id path parameter. Anything that is not a
// positive integer is treated as a missing page.
func postID(c echo.Context) (int64, error) {
	var p postIDParam
	if err := bindPath(c, &p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func commentIDs(c echo.Context) (postID, commentID int64, err error) {
	var p commentIDParam
	if err := bindPath(c, &p); err != nil {
		return 0, 0, err
	}
	return p.PostID, p.CommentID, nil
}

func bindPath(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	return nil
}
