package referencedata

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedStore decorates a Store with a Redis existence cache. Reference data
// changes rarely; a short TTL keeps deactivated codes from being accepted for
// long.
type CachedStore struct {
	next   Store
	client redis.Cmdable
	ttl    time.Duration
}

func NewCachedStore(next Store, client redis.Cmdable, ttl time.Duration) *CachedStore {
	return &CachedStore{next: next, client: client, ttl: ttl}
}

func (c *CachedStore) Exists(ctx context.Context, group Group, code string) (bool, error) {
	cacheKey := fmt.Sprintf("refdata:%s:%s", group, code)

	cached, err := c.client.Get(ctx, cacheKey).Result()
	if err == nil {
		return cached == "1", nil
	}
	// Any cache failure falls through to the store; the cache is an
	// optimization, never a source of truth.

	exists, err := c.next.Exists(ctx, group, code)
	if err != nil {
		return false, err
	}

	value := "0"
	if exists {
		value = "1"
	}
	_ = c.client.Set(ctx, cacheKey, value, c.ttl).Err()

	return exists, nil
}
