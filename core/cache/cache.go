package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gameday-api/core/config"
	"gameday-api/core/constants"
	"gameday-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a redis-backed query cache keyed by (resource, params), with
// explicit invalidation driven by the lifecycle service after mutations.
// Cache misses and redis outages both report ErrCacheMiss so callers fall
// through to the database.
type Cache struct {
	client *redis.Client
}

var ErrCacheMiss = errors.New("cache miss")

func New(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Cache{client: client}, nil
}

// Client exposes the underlying connection for subsystems that share the
// redis instance (the task queue transport).
func (c *Cache) Client() *redis.Client {
	return c.client
}

func queryKey(resource, params string) string {
	return constants.RedisKeyQueryCache + resource + ":" + params
}

// GetQuery loads a cached query result into dest.
func (c *Cache) GetQuery(ctx context.Context, resource, params string, dest any) error {
	raw, err := c.client.Get(ctx, queryKey(resource, params)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Cache:GetQuery", "resource", resource, "error", err)
		}
		return ErrCacheMiss
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetQuery stores a query result under (resource, params).
func (c *Cache) SetQuery(ctx context.Context, resource, params string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, queryKey(resource, params), raw, constants.QueryCacheTTL).Err(); err != nil {
		logger.Warn("Cache:SetQuery", "resource", resource, "error", err)
	}
}

// InvalidateResource drops every cached query for a resource. Called by the
// lifecycle service after any mutating operation; staleness is bounded by
// this message, not by polling.
func (c *Cache) InvalidateResource(ctx context.Context, resource string) {
	pattern := constants.RedisKeyQueryCache + resource + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Cache:InvalidateResource", "resource", resource, "error", err)
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warn("Cache:InvalidateResource", "resource", resource, "error", err)
		}
	}
}

// SetOAuthState stores a one-time OAuth state token.
func (c *Cache) SetOAuthState(ctx context.Context, state string) error {
	return c.client.Set(ctx, constants.RedisKeyOAuthState+state, "1", constants.OAuthStateTTL).Err()
}

// ConsumeOAuthState validates and deletes a state token in one step.
func (c *Cache) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	n, err := c.client.Del(ctx, constants.RedisKeyOAuthState+state).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetWeather / SetWeather cache forecast lookups keyed by location+date.
func (c *Cache) GetWeather(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, constants.RedisKeyWeather+key).Bytes()
	if err != nil {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrCacheMiss
	}
	return nil
}

func (c *Cache) SetWeather(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, constants.RedisKeyWeather+key, raw, constants.WeatherCacheTTL).Err()
}

// Ping reports redis reachability for the health endpoint.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
