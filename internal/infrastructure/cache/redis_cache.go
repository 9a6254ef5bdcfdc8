package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/restopos/inventory-service/internal/application/inventory"
)

var _ inventory.AvailabilityCache = (*RedisAvailabilityCache)(nil)

// RedisAvailabilityCache caches availability results in redis with a short
// TTL. There is no invalidation: staleness is bounded by the TTL and the
// ledger re-checks stock on every deduction.
type RedisAvailabilityCache struct {
	client *redis.Client
}

// NewRedisAvailabilityCache builds the cache.
func NewRedisAvailabilityCache(addr, password string, db int) *RedisAvailabilityCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisAvailabilityCache{client: client}
}

// Ping checks the connection.
func (c *RedisAvailabilityCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection.
func (c *RedisAvailabilityCache) Close() error {
	return c.client.Close()
}

// Get returns the cached result for key, if present.
func (c *RedisAvailabilityCache) Get(ctx context.Context, key string) (*inventory.AvailabilityResult, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var result inventory.AvailabilityResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

// Set stores the result under key for ttl.
func (c *RedisAvailabilityCache) Set(ctx context.Context, key string, value *inventory.AvailabilityResult, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
