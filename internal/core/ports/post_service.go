package ports

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title string `validate:"required"`
	Body  string
}

// PostService defines use-case operations for posts. Mutations take the
// acting identity explicitly.
type PostService interface {
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	CreatePost(ctx context.Context, actor domain.Actor, input PostInput) (*domain.Post, error)
	// EditPost returns a post the actor is allowed to modify.
	EditPost(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error)
	UpdatePost(ctx context.Context, actor domain.Actor, id int64, input PostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, actor domain.Actor, id int64) error
}
