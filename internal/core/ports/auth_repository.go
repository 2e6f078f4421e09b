package ports

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionStore maps opaque session ids to user ids.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	// Get returns domain.ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}
