package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper removes expired entries and reports how many it removed.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// Janitor periodically sweeps expired entries out of in-memory stores, which
// otherwise only drop them lazily on Get.
type Janitor struct {
	cron     *cron.Cron
	sweepers []Sweeper

	mu      sync.Mutex
	removed int
}

// NewJanitor schedules sweeps on a cron spec, e.g. "@every 1m" or "*/5 * * * *".
func NewJanitor(spec string, sweepers ...Sweeper) (*Janitor, error) {
	j := &Janitor{
		cron:     cron.New(),
		sweepers: sweepers,
	}
	if _, err := j.cron.AddFunc(spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("cache: invalid janitor schedule %q: %w", spec, err)
	}
	return j, nil
}

// Start begins running scheduled sweeps in the background.
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish or ctx to end.
func (j *Janitor) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce sweeps every registered store immediately.
func (j *Janitor) RunOnce(ctx context.Context) int {
	removed := 0
	for _, s := range j.sweepers {
		removed += s.Sweep(ctx)
	}

	j.mu.Lock()
	j.removed += removed
	j.mu.Unlock()

	return removed
}

// Removed returns the total number of entries swept so far.
func (j *Janitor) Removed() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.removed
}
