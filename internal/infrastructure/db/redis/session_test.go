package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/blogosphere/blog/internal/core/domain"
)

// connectForTest returns a client against REDIS_TEST_ADDR or skips.
func connectForTest(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, time.Minute)
}

func TestSessionKey(t *testing.T) {
	if got := sessionKey("abc"); got != "session:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewSessionStore_DefaultTTL(t *testing.T) {
	s := NewSessionStore(nil, 0)
	if s.ttl != DefaultSessionTTL {
		t.Fatalf("expected default ttl, got %s", s.ttl)
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	store := connectForTest(t)
	ctx := context.Background()

	sid, err := store.Create(ctx, 42)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uid, err := store.Get(ctx, sid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected 42, got %d", uid)
	}

	if err := store.Delete(ctx, sid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, sid); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestConfig_TimeoutDefault(t *testing.T) {
	if got := (Config{}).timeout(); got != defaultTimeout {
		t.Fatalf("expected %s, got %s", defaultTimeout, got)
	}
	if got := (Config{Timeout: time.Second}).timeout(); got != time.Second {
		t.Fatalf("expected 1s, got %s", got)
	}
}
