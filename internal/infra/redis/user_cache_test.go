package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-shopping-list/internal/domain/model"
)

// mockRedisClient lets each test script cache behavior per call.
type mockRedisClient struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error

	setCalls    []setCall
	expireCalls []string
}

type setCall struct {
	key   string
	value interface{}
	ttl   time.Duration
}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", Nil
}

func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.setCalls = append(m.setCalls, setCall{key: key, value: value, ttl: expiration})
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key)
	}
	return 0, nil
}

func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	m.expireCalls = append(m.expireCalls, key)
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	return nil
}

func (m *mockRedisClient) Ping(context.Context) error           { return nil }
func (m *mockRedisClient) Del(context.Context, ...string) error { return nil }
func (m *mockRedisClient) Close() error                         { return nil }

// mockResolver counts authoritative resolutions.
type mockResolver struct {
	user  *model.User
	err   error
	calls int
}

func (m *mockResolver) RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.User, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestUserIDCache_ResolveUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit never touches the resolver", func(t *testing.T) {
		cache := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				if key != "user:123" {
					t.Fatalf("unexpected key %q", key)
				}
				return "42", nil
			},
		}
		resolver := &mockResolver{user: &model.User{ID: 99, TelegramID: 123}}
		c := NewUserIDCache(resolver, cache, newTestLogger())

		id, err := c.ResolveUserID(ctx, 123)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 42 {
			t.Fatalf("expected cached id 42, got %d", id)
		}
		if resolver.calls != 0 {
			t.Fatalf("resolver should not be called on hit, got %d calls", resolver.calls)
		}
		if len(cache.setCalls) != 0 {
			t.Fatalf("cache should not be written on hit")
		}
	})

	t.Run("miss falls back to resolver and fills the cache with 1h TTL", func(t *testing.T) {
		cache := &mockRedisClient{}
		resolver := &mockResolver{user: &model.User{ID: 7, TelegramID: 555}}
		c := NewUserIDCache(resolver, cache, newTestLogger())

		id, err := c.ResolveUserID(ctx, 555)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 7 {
			t.Fatalf("expected resolved id 7, got %d", id)
		}
		if resolver.calls != 1 {
			t.Fatalf("expected exactly one resolver call, got %d", resolver.calls)
		}
		if len(cache.setCalls) != 1 {
			t.Fatalf("expected one cache write, got %d", len(cache.setCalls))
		}
		sc := cache.setCalls[0]
		if sc.key != "user:555" || sc.value != "7" || sc.ttl != time.Hour {
			t.Fatalf("unexpected cache write: %+v", sc)
		}
	})

	t.Run("resolving twice hits the cache on the second call", func(t *testing.T) {
		stored := map[string]string{}
		cache := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				if v, ok := stored[key]; ok {
					return v, nil
				}
				return "", Nil
			},
			SetFunc: func(ctx context.Context, key string, value interface{}, _ time.Duration) error {
				stored[key] = value.(string)
				return nil
			},
		}
		resolver := &mockResolver{user: &model.User{ID: 11, TelegramID: 9}}
		c := NewUserIDCache(resolver, cache, newTestLogger())

		first, err := c.ResolveUserID(ctx, 9)
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		second, err := c.ResolveUserID(ctx, 9)
		if err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if first != second {
			t.Fatalf("expected stable id, got %d then %d", first, second)
		}
		if resolver.calls != 1 {
			t.Fatalf("expected resolver to be invoked at most once, got %d", resolver.calls)
		}
	})

	t.Run("cache read failure does not prevent resolution", func(t *testing.T) {
		cache := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		resolver := &mockResolver{user: &model.User{ID: 3, TelegramID: 1}}
		c := NewUserIDCache(resolver, cache, newTestLogger())

		id, err := c.ResolveUserID(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 3 {
			t.Fatalf("expected id 3, got %d", id)
		}
	})

	t.Run("cache write failure is swallowed after successful resolution", func(t *testing.T) {
		cache := &mockRedisClient{
			SetFunc: func(ctx context.Context, key string, value interface{}, _ time.Duration) error {
				return errors.New("connection refused")
			},
		}
		resolver := &mockResolver{user: &model.User{ID: 8, TelegramID: 2}}
		c := NewUserIDCache(resolver, cache, newTestLogger())

		id, err := c.ResolveUserID(ctx, 2)
		if err != nil {
			t.Fatalf("write failure must not surface: %v", err)
		}
		if id != 8 {
			t.Fatalf("expected id 8, got %d", id)
		}
	})

	t.Run("corrupt cache entry is treated as a miss", func(t *testing.T) {
		cache := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return "not-a-number", nil
			},
		}
		resolver := &mockResolver{user: &model.User{ID: 5, TelegramID: 4}}
		c := NewUserIDCache(resolver, cache, newTestLogger())

		id, err := c.ResolveUserID(ctx, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 5 {
			t.Fatalf("expected id 5, got %d", id)
		}
		if resolver.calls != 1 {
			t.Fatalf("expected resolver fallback, got %d calls", resolver.calls)
		}
	})

	t.Run("resolver failure is surfaced", func(t *testing.T) {
		expectedErr := errors.New("database is down")
		cache := &mockRedisClient{}
		resolver := &mockResolver{err: expectedErr}
		c := NewUserIDCache(resolver, cache, newTestLogger())

		if _, err := c.ResolveUserID(ctx, 6); !errors.Is(err, expectedErr) {
			t.Fatalf("expected resolver error, got %v", err)
		}
		if len(cache.setCalls) != 0 {
			t.Fatalf("no cache write expected after resolver failure")
		}
	})
}
