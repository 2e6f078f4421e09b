package ports

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// List returns every post joined with its author, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	// FindByID returns domain.ErrPostNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// Create inserts p and assigns its ID.
	Create(ctx context.Context, p *domain.Post) error
	// Update rewrites title and body only.
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id int64) error
}
