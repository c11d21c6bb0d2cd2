package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "storefront:cartcache:"
	defaultTTL = 2 * time.Hour
)

// RedisCache keeps a cart cached for as long as its session is active.
// Writes and reads both push the expiry out to ttl, so an idle cart leaves
// the cache together with its session.
type RedisCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisCache(rdb redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.Cart, error) {
	raw, err := c.rdb.GetEx(ctx, redisKey(key), c.ttl).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("redis getex %s: %w", key, err)
	}

	cart := &domain.Cart{}
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, fmt.Errorf("decode cached cart %s: %w", key, err)
	}
	return cart, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, redisKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func redisKey(key string) string {
	return keyPrefix + key
}
