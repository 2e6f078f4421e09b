package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

// sessionClaims is the payload of the session cookie token.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and session resolution.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	secret     string
	sessionTTL time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, secret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, secret: secret, sessionTTL: sessionTTL}
}

func (s *AuthService) Register(ctx context.Context, creds ports.Credentials) (*domain.User, error) {
	if err := validateInput(creds); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     creds.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, creds ports.Credentials) (string, *domain.User, error) {
	if err := validateInput(creds); err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByUsername(ctx, creds.Username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.generateToken(user, sid)
	if err != nil {
		_ = s.sessions.Delete(ctx, sid)
		return "", nil, err
	}

	return token, user, nil
}

// Authenticate verifies the token signature, then requires the session it
// names to still exist for the same user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	uid, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if strconv.FormatInt(uid, 10) != claims.Subject {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		// Nothing to revoke.
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

func (s *AuthService) generateToken(user *domain.User, sid string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *AuthService) parseToken(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, errors.Join(domain.ErrInvalidCredentials, err)
	}
	if claims.SessionID == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return claims, nil
}
