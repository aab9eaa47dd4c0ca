package packet

import "time"

// Cache status values reported by the service.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheAwaited = "awaited"
)

// CacheMeta is the cache block attached to successful responses.
// Timestamps are Unix milliseconds.
type CacheMeta struct {
	Status      string `json:"status"`
	CachedAt    int64  `json:"cached_at"`
	CachedUntil int64  `json:"cached_until"`
}

// CachedAtTime returns when the service produced the response.
func (m CacheMeta) CachedAtTime() time.Time {
	return time.UnixMilli(m.CachedAt)
}

// CachedUntilTime returns when the service-declared validity window ends.
func (m CacheMeta) CachedUntilTime() time.Time {
	return time.UnixMilli(m.CachedUntil)
}

// TimeUntilElapsed returns how much validity remains from now.
// An elapsed window returns 0, never a negative duration.
func (m CacheMeta) TimeUntilElapsed() time.Duration {
	return m.TimeUntilElapsedAt(time.Now())
}

// TimeUntilElapsedAt is TimeUntilElapsed relative to now.
func (m CacheMeta) TimeUntilElapsedAt(now time.Time) time.Duration {
	remaining := m.CachedUntilTime().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
