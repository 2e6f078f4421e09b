package ports

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error)
	// FindByID returns domain.ErrCommentNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	Create(ctx context.Context, c *domain.Comment) error
	// DeleteFromPost removes comment id only if it belongs to postID and
	// reports whether a row was deleted.
	DeleteFromPost(ctx context.Context, postID, id int64) (bool, error)
}
