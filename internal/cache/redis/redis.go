// Package redis mirrors the profile into a Redis instance. Used when the
// client core runs on a shared host and the mirror must outlive the local
// filesystem (kiosk deployments).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matchbook-app/matchbook-client/internal/cache"
	"github.com/matchbook-app/matchbook-client/internal/domain"
)

// cacheKey is the fixed key of the single cache entry.
const cacheKey = "matchbook:profile:current"

// Config carries the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

type redisCache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(cfg Config) (cache.Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &redisCache{client: client}, nil
}

func (c *redisCache) Load(ctx context.Context) (*domain.Profile, error) {
	payload, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &profile, nil
}

func (c *redisCache) Save(ctx context.Context, profile *domain.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context) error {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
