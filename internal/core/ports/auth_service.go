package ports

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// Credentials is the username/password pair submitted by the auth forms.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type AuthService interface {
	Register(ctx context.Context, creds Credentials) (*domain.User, error)
	// Login opens a session and returns the signed token to hand to the client.
	Login(ctx context.Context, creds Credentials) (string, *domain.User, error)
	// Authenticate resolves a token issued by Login to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}
