package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-memory Store.
//
// An entry lives for the Expiry's TTL bounded by the Policy: with
// DefaultPolicy a value whose Expiry asks for more than an hour is kept for
// one hour. Use Policy{} to keep the Expiry's TTL unbounded.
type MemoryCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*cacheEntry[V]
	expiry  Expiry[K, V]
	policy  Policy
	now     func() time.Time
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now func() time.Time
}

// WithClock sets the time source used for insertion and expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemoryCache creates a new in-memory cache that asks expiry for the TTL
// of each inserted value and bounds it with policy.
func NewMemoryCache[K comparable, V any](expiry Expiry[K, V], policy Policy, opts ...MemoryOption) (*MemoryCache[K, V], error) {
	if expiry == nil {
		return nil, ErrNilExpiry
	}

	o := memoryOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &MemoryCache[K, V]{
		entries: make(map[K]*cacheEntry[V]),
		expiry:  expiry,
		policy:  policy,
		now:     o.now,
	}, nil
}

// Get retrieves a value from the cache. Returns (zero, false) on miss or expiry.
func (c *MemoryCache[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return zero, false
	}

	if !c.now().Before(entry.expiresAt) {
		// Expired - clean up lazily, unless a fresh entry replaced it meanwhile
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current == entry {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}

	return entry.value, true
}

// Insert stores value under key. The TTL is computed fresh from value on every
// call; re-inserting a key never extends the previous entry. A non-positive
// TTL removes any existing entry and does not retain value.
func (c *MemoryCache[K, V]) Insert(_ context.Context, key K, value V) error {
	now := c.now()
	ttl := c.policy.ClampTTL(c.expiry.ExpireAfterCreate(key, value, now))

	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		delete(c.entries, key)
		return nil
	}

	c.entries[key] = &cacheEntry[V]{
		value:     value,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// Invalidate removes a value from the cache. Idempotent - no error on miss.
func (c *MemoryCache[K, V]) Invalidate(_ context.Context, key K) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (c *MemoryCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes all expired entries and returns how many were removed.
func (c *MemoryCache[K, V]) Sweep(ctx context.Context) int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if ctx.Err() != nil {
			break
		}
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Ensure MemoryCache implements Store
var _ Store[string, []byte] = (*MemoryCache[string, []byte])(nil)
