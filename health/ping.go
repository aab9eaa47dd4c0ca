package health

import (
	"context"
	"fmt"
	"time"
)

// Pinger is anything reachable over the network. cache.RedisCache
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheckerConfig configures the ping checker.
type PingCheckerConfig struct {
	// Timeout bounds a single ping. Default: 2 seconds
	Timeout time.Duration

	// SlowThreshold marks a successful but slow ping as degraded.
	// Zero disables it.
	SlowThreshold time.Duration
}

// PingChecker checks that a remote store answers.
type PingChecker struct {
	name   string
	target Pinger
	config PingCheckerConfig
}

// NewPingChecker creates a ping health checker.
func NewPingChecker(name string, target Pinger, config PingCheckerConfig) (*PingChecker, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Second
	}
	return &PingChecker{name: name, target: target, config: config}, nil
}

// Name returns the name of this checker.
func (p *PingChecker) Name() string {
	return p.name
}

// Check pings the target once.
func (p *PingChecker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	start := time.Now()
	err := p.target.Ping(ctx)
	latency := time.Since(start)

	details := map[string]any{
		"latency_ms": float64(latency.Microseconds()) / 1000,
	}

	if err != nil {
		return Unhealthy("ping failed", fmt.Errorf("%w: %w", ErrCheckFailed, err)).
			WithDetails(details)
	}
	if p.config.SlowThreshold > 0 && latency > p.config.SlowThreshold {
		return Degraded(fmt.Sprintf("ping slow: %s", latency)).WithDetails(details)
	}
	return Healthy("ping ok").WithDetails(details)
}
