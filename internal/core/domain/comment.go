package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment is a reply attached to a post.
type Comment struct {
	ID             int64
	PostID         int64
	AuthorID       int64
	Body           string
	Created        time.Time
	AuthorUsername string
}
