package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/blogosphere/blog/internal/core/domain"
)

const DefaultSessionTTL = 24 * time.Hour

// SessionStore keeps login sessions in Redis.
// Key format: session:<uuid> holding the user id.
type SessionStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSessionStore wraps client. A non-positive ttl falls back to
// DefaultSessionTTL.
func NewSessionStore(client redis.Cmdable, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(sid), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return sid, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("session get: %w", err)
	}

	uid, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session get: malformed user id %q: %w", val, err)
	}
	return uid, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sid string) string {
	return "session:" + sid
}
