package ports

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// CommentInput carries the body of a new comment.
type CommentInput struct {
	Body string `validate:"required"`
}

// CommentService defines use-case operations for comments on a post.
type CommentService interface {
	ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error)
	AddComment(ctx context.Context, actor domain.Actor, postID int64, input CommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor domain.Actor, postID, id int64) error
}
