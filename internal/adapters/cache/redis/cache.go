// Package redis implements ports.Cache on a redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v7"

	"github.com/jsamuelsen/quotebot/internal/domain"
	"github.com/jsamuelsen/quotebot/internal/ports"
)

// Name identifies the cache in readiness checks.
const Name = "quote-cache"

var (
	_ ports.Cache           = (*Cache)(nil)
	_ ports.OptionalChecker = (*Cache)(nil)
)

// Config configures the redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int

	// KeyPrefix namespaces every key.
	KeyPrefix string

	Logger *slog.Logger
}

// Cache is a redis-backed ports.Cache. Its health check is optional: the
// read API falls back to the store when redis is down.
type Cache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// New creates a cache. The connection is established lazily.
func New(cfg Config) *Cache {
	return newCache(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg)
}

func newCache(client *redis.Client, cfg Config) *Cache {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Cache{
		client: client,
		prefix: cfg.KeyPrefix,
		logger: logger.With(slog.String("component", "cache.redis")),
	}
}

// Close closes the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get returns the cached value or a domain.NotFoundError on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.WithContext(ctx).Get(c.prefix + key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	if err != nil {
		return nil, wrap("get", err)
	}

	return data, nil
}

// Set stores value under key. A TTL of zero never expires.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	ttl := time.Duration(ttlSeconds) * time.Second

	if err := c.client.WithContext(ctx).Set(c.prefix+key, value, ttl).Err(); err != nil {
		return wrap("set", err)
	}

	return nil
}

// Delete removes key; a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.WithContext(ctx).Del(c.prefix + key).Err(); err != nil {
		return wrap("delete", err)
	}

	c.logger.DebugContext(ctx, "cache entry evicted", slog.String("key", key))

	return nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string {
	return Name
}

// Check pings the server.
func (c *Cache) Check(ctx context.Context) error {
	if err := c.client.WithContext(ctx).Ping().Err(); err != nil {
		return wrap("ping", err)
	}

	return nil
}

// Optional implements ports.OptionalChecker.
func (c *Cache) Optional() bool {
	return true
}

func wrap(op string, err error) error {
	return fmt.Errorf("redis %s: %w", op, domain.NewUnavailableError("redis", err.Error()))
}
