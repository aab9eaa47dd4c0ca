package packet

import "time"

// CacheExpiration is the expiry rule for cached envelopes. It is stateless
// and satisfies cache.Expiry[K, *Packet[T]].
type CacheExpiration[K comparable, T any] struct{}

// ExpireAfterCreate returns the time-to-live for value inserted under key.
//
// Envelopes carrying cache metadata live until the service-declared window
// elapses, counted from now. Anything else (error envelopes, successes
// without metadata) gets zero and is evicted immediately.
//
// The value is only read during the call and is never retained.
func (CacheExpiration[K, T]) ExpireAfterCreate(_ K, value *Packet[T], now time.Time) time.Duration {
	if value == nil || value.Cache == nil {
		return 0
	}
	return value.Cache.TimeUntilElapsedAt(now)
}
