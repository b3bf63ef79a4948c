package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"telegram-shopping-list/internal/domain/model"
	"telegram-shopping-list/internal/domain/ports/repository"
	"telegram-shopping-list/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ repository.IdentityResolver = (*UserIDCache)(nil)

// Authoritative create-or-fetch resolution; the store is always the
// source of truth for the mapping.
type userResolver interface {
	RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.User, error)
}

// UserIDCache is a cache-aside resolver from Telegram ids to internal user
// ids. The cache is an optimization only: any read or write failure falls
// back to the authoritative resolver and is never surfaced to callers.
type UserIDCache struct {
	inner userResolver
	cache RedisClient
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewUserIDCache(inner userResolver, cache RedisClient, logger *zerolog.Logger) *UserIDCache {
	return &UserIDCache{
		inner: inner,
		cache: cache,
		ttl:   1 * time.Hour,
		log:   logger,
	}
}

func userKey(tgID int64) string {
	return fmt.Sprintf("user:%d", tgID)
}

func (c *UserIDCache) ResolveUserID(ctx context.Context, tgID int64) (int64, error) {
	key := userKey(tgID)

	val, err := c.cache.Get(ctx, key)
	if err == nil {
		if id, perr := strconv.ParseInt(val, 10, 64); perr == nil {
			metrics.IncCacheRequest("user_id", "hit")
			return id, nil
		}
		// Unparseable entry: treat as a miss and let the refill overwrite it.
		c.log.Warn().Str("key", key).Str("value", val).Msg("corrupt user id cache entry")
	} else if !errors.Is(err, Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("user id cache read failed")
	}

	metrics.IncCacheRequest("user_id", "miss")
	user, err := c.inner.RegisterOrFetch(ctx, tgID, "")
	if err != nil {
		return 0, err
	}

	if err := c.cache.Set(ctx, key, strconv.FormatInt(user.ID, 10), c.ttl); err != nil {
		// Write failure after a successful resolution is not an error.
		c.log.Warn().Err(err).Str("key", key).Msg("user id cache write failed")
	}
	return user.ID, nil
}
