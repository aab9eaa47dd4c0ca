package cache

import "time"

// Policy bounds the TTLs an Expiry produces.
type Policy struct {
	// MaxTTL is the maximum allowed TTL. Longer TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration

	// Disabled turns caching off: every TTL becomes zero.
	Disabled bool
}

// DefaultPolicy returns the default caching policy.
// MaxTTL: 1 hour
func DefaultPolicy() Policy {
	return Policy{
		MaxTTL: 1 * time.Hour,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{Disabled: true}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return !p.Disabled
}

// ClampTTL returns the TTL to use for a computed ttl.
// Negative values become zero; values above MaxTTL are clamped.
func (p Policy) ClampTTL(ttl time.Duration) time.Duration {
	if p.Disabled || ttl <= 0 {
		return 0
	}

	// Clamp to MaxTTL if set
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}
