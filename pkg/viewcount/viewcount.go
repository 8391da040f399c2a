// Package viewcount tracks profile page views in Redis.
package viewcount

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "profile_views:"

// Counter increments and reads per-username view counts.
type Counter struct {
	rdb *redis.Client
}

// New creates a Counter backed by the Redis instance at addr.
func New(addr string) *Counter {
	return &Counter{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies the Redis connection.
func (c *Counter) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Incr bumps the view count for a username and returns the new total.
func (c *Counter) Incr(ctx context.Context, username string) (int64, error) {
	count, err := c.rdb.Incr(ctx, keyPrefix+username).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment view count for %s: %w", username, err)
	}
	return count, nil
}

// Get returns the view count for a username; a never-viewed profile is 0.
func (c *Counter) Get(ctx context.Context, username string) (int64, error) {
	count, err := c.rdb.Get(ctx, keyPrefix+username).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read view count for %s: %w", username, err)
	}
	return count, nil
}

// Close releases the underlying Redis client.
func (c *Counter) Close() error {
	return c.rdb.Close()
}
