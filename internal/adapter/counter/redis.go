package counter

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// counterKey holds the total; a single key so INCR stays atomic server-side.
const counterKey = "natal-chart:total-acessos"

// RedisCounter backs the access counter with Redis. INCR is atomic on the
// server, so concurrent increments from any number of service replicas
// cannot lose updates.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter connects to Redis and verifies reachability.
func NewRedisCounter(ctx context.Context, addr, password string, db int) (*RedisCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return &RedisCounter{client: client}, nil
}

// Increment adds one to the total and returns the new value.
func (c *RedisCounter) Increment(ctx context.Context) (int64, error) {
	total, err := c.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("incr counter: %w", err)
	}
	return total, nil
}

// Read returns the current total; an absent key reads as 0.
func (c *RedisCounter) Read(ctx context.Context) (int64, error) {
	total, err := c.client.Get(ctx, counterKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	return total, nil
}

// Close releases the Redis connection.
func (c *RedisCounter) Close() error {
	return c.client.Close()
}
