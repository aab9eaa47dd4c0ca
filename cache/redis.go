package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis connection backing a RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, e.g. "leaguecache:".
	Prefix string
}

// Validate validates the configuration.
func (c RedisConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("cache: redis address is required")
	}
	if c.DB < 0 {
		return fmt.Errorf("cache: redis db must be non-negative, got %d", c.DB)
	}
	return nil
}

// NewRedisClient opens a go-redis client for cfg.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// RedisClient is the subset of *redis.Client used by RedisCache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisCache is a Store kept in Redis, so several client processes share one
// cache. Entry lifetime is enforced by Redis key expiry, set to the Expiry's
// TTL bounded by the Policy (at most one hour under DefaultPolicy).
type RedisCache[V any] struct {
	client RedisClient
	prefix string
	codec  Codec[V]
	expiry Expiry[string, V]
	policy Policy
	now    func() time.Time
}

// NewRedisCache creates a Redis-backed store. If codec is nil, JSONCodec is used.
func NewRedisCache[V any](client RedisClient, prefix string, expiry Expiry[string, V], policy Policy, codec Codec[V]) (*RedisCache[V], error) {
	if client == nil {
		return nil, ErrNilStore
	}
	if expiry == nil {
		return nil, ErrNilExpiry
	}
	if codec == nil {
		codec = JSONCodec[V]{}
	}
	return &RedisCache[V]{
		client: client,
		prefix: prefix,
		codec:  codec,
		expiry: expiry,
		policy: policy,
		now:    time.Now,
	}, nil
}

// Get retrieves a value. Missing keys, transport errors and undecodable
// payloads are all reported as a miss.
func (c *RedisCache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return zero, false
	}

	v, err := c.codec.Unmarshal(data)
	if err != nil {
		return zero, false
	}
	return v, true
}

// Insert stores value with the TTL computed by the store's Expiry.
// A non-positive TTL deletes any existing key instead.
func (c *RedisCache[V]) Insert(ctx context.Context, key string, value V) error {
	ttl := c.policy.ClampTTL(c.expiry.ExpireAfterCreate(key, value, c.now()))
	if ttl <= 0 {
		return c.Invalidate(ctx, key)
	}

	data, err := c.codec.Marshal(value)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set %q: %w", key, err)
	}
	return nil
}

// Invalidate deletes a key. Idempotent - no error on miss.
func (c *RedisCache[V]) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache: redis del %q: %w", key, err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (c *RedisCache[V]) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Ensure RedisCache implements Store
var _ Store[string, []byte] = (*RedisCache[[]byte])(nil)
