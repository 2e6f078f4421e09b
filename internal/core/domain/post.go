package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrForbidden = errors.New("access forbidden")

// Post is a titled piece of content authored by a user.
type Post struct {
	ID       int64
	Title    string
	Body     string
	Created  time.Time
	AuthorID int64
	// AuthorUsername is filled by queries that join the author row.
	AuthorUsername string
}
