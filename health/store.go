package health

import (
	"context"
	"fmt"
)

// Sizer reports how many entries a store holds. cache.MemoryCache
// satisfies it.
type Sizer interface {
	Len() int
}

// StoreCheckerConfig configures the store size checker.
type StoreCheckerConfig struct {
	// Name identifies the checker. Default: "cache"
	Name string

	// MaxEntries is the expected capacity. Zero disables the thresholds and
	// the check only reports the entry count.
	MaxEntries int

	// WarningThreshold is the fraction of MaxEntries that triggers degraded status.
	// Value should be between 0 and 1. Default: 0.8 (80%)
	WarningThreshold float64

	// CriticalThreshold is the fraction of MaxEntries that triggers unhealthy status.
	// Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64
}

// StoreChecker reports a cache store's fill level.
type StoreChecker struct {
	config StoreCheckerConfig
	store  Sizer
}

// NewStoreChecker creates a store health checker.
func NewStoreChecker(store Sizer, config StoreCheckerConfig) (*StoreChecker, error) {
	if store == nil {
		return nil, ErrNilTarget
	}
	if config.Name == "" {
		config.Name = "cache"
	}
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold + 0.1
		if config.CriticalThreshold >= 1 {
			config.CriticalThreshold = 0.99
		}
	}
	return &StoreChecker{config: config, store: store}, nil
}

// Name returns the name of this checker.
func (s *StoreChecker) Name() string {
	return s.config.Name
}

// Check performs the store health check.
func (s *StoreChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	entries := s.store.Len()
	details := map[string]any{
		"entries": entries,
	}

	if s.config.MaxEntries <= 0 {
		return Healthy(fmt.Sprintf("%d entries", entries)).WithDetails(details)
	}

	usage := float64(entries) / float64(s.config.MaxEntries)
	details["max_entries"] = s.config.MaxEntries
	details["usage_percent"] = usage * 100

	if usage >= s.config.CriticalThreshold {
		return Unhealthy(
			fmt.Sprintf("cache usage critical: %.1f%%", usage*100),
			ErrCheckFailed,
		).WithDetails(details)
	}

	if usage >= s.config.WarningThreshold {
		return Degraded(
			fmt.Sprintf("cache usage high: %.1f%%", usage*100),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("cache usage normal: %.1f%%", usage*100),
	).WithDetails(details)
}
