// Package cache provides the redis-backed read cache for account
// snapshots. Cache misses and failures fall through to postgres; the
// cache never decides correctness.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tally/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates the key was absent.
var ErrCacheMiss = errors.New("cache miss")

// RedisConfig holds redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient creates a redis client from config.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// AccountCache stores JSON-marshaled account snapshots keyed by user.
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAccountCache creates an AccountCache with the given TTL.
func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	return &AccountCache{client: client, ttl: ttl}
}

func accountKey(userID uint) string {
	return fmt.Sprintf("account:%d", userID)
}

// GetAccount returns the cached snapshot or ErrCacheMiss.
func (c *AccountCache) GetAccount(ctx context.Context, userID uint) (*models.Account, error) {
	data, err := c.client.Get(ctx, accountKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached account: %w", err)
	}
	var acct models.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached account: %w", err)
	}
	return &acct, nil
}

// SetAccount stores a snapshot with the cache TTL.
func (c *AccountCache) SetAccount(ctx context.Context, acct *models.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	return c.client.Set(ctx, accountKey(acct.UserID), data, c.ttl).Err()
}

// InvalidateAccount drops the snapshot after a balance mutation.
func (c *AccountCache) InvalidateAccount(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, accountKey(userID)).Err()
}

// HealthCheck pings redis.
func (c *AccountCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *AccountCache) Close() error {
	return c.client.Close()
}
