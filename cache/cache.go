package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrNilExpiry  = errors.New("cache: expiry is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
	ErrCodec      = errors.New("cache: codec failed")
)

// Store is a keyed cache shared by concurrent callers.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Entries: at most one live entry per key; Insert replaces any previous one.
//   - Expiry: the store consults its Expiry exactly once per Insert and never
//     on read. A non-positive TTL means the value is not retained.
//   - Errors: Get should never error; it returns (zero, false) on miss.
type Store[K comparable, V any] interface {
	// Get retrieves a live value.
	Get(ctx context.Context, key K) (V, bool)

	// Insert stores value under key with the TTL chosen by the store's Expiry.
	Insert(ctx context.Context, key K, value V) error

	// Invalidate removes a value. Idempotent - no error on miss.
	Invalidate(ctx context.Context, key K) error
}

// Expiry decides how long a freshly inserted value stays in a Store.
//
// Contract:
//   - Side effects: none. value must not be retained beyond the call, since
//     the store may evict it concurrently with other readers.
//   - Result: a non-positive duration means evict immediately.
type Expiry[K comparable, V any] interface {
	ExpireAfterCreate(key K, value V, now time.Time) time.Duration
}

// ExpiryFunc adapts a function to the Expiry interface.
type ExpiryFunc[K comparable, V any] func(key K, value V, now time.Time) time.Duration

// ExpireAfterCreate calls f.
func (f ExpiryFunc[K, V]) ExpireAfterCreate(key K, value V, now time.Time) time.Duration {
	return f(key, value, now)
}

// FixedExpiry returns an Expiry that gives every value the same TTL.
func FixedExpiry[K comparable, V any](ttl time.Duration) Expiry[K, V] {
	return ExpiryFunc[K, V](func(K, V, time.Time) time.Duration { return ttl })
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
