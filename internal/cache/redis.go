package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

const eventKeyPrefix = "event:"

// RedisOptions configures the Redis client behind the event cache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient dials Redis and verifies the connection.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

type redisEventCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisEventCache stores events as JSON under "event:<slug>" with the given TTL.
func NewRedisEventCache(client redis.Cmdable, ttl time.Duration) domain.EventCache {
	return &redisEventCache{client: client, ttl: ttl}
}

func (c *redisEventCache) Get(ctx context.Context, slug string) (*domain.Event, bool, error) {
	raw, err := c.client.Get(ctx, eventKeyPrefix+slug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup error: %w", err)
	}
	var e domain.Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, false, fmt.Errorf("invalid cached event %q: %w", slug, err)
	}
	return &e, true, nil
}

func (c *redisEventCache) Set(ctx context.Context, slug string, e *domain.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event %q: %w", slug, err)
	}
	if err := c.client.Set(ctx, eventKeyPrefix+slug, string(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache store error: %w", err)
	}
	return nil
}
