package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// User models an account that can log in and author posts and comments.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Actor is the identity on whose behalf a request runs.
type Actor struct {
	UserID   int64
	Username string
}

// ActorOf returns the request identity for an authenticated user.
func ActorOf(u *User) Actor {
	return Actor{UserID: u.ID, Username: u.Username}
}
