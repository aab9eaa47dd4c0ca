package health

import (
	"context"
	"time"
)

// Status is the health of one part of a cache deployment. Values are
// ordered, so the worse of two statuses is the larger one.
type Status int

const (
	// StatusHealthy means the store is serving normally.
	StatusHealthy Status = iota
	// StatusDegraded means the store serves but is near capacity or slow.
	StatusDegraded
	// StatusUnhealthy means the store cannot be relied on.
	StatusUnhealthy
)

// String returns the status name used in result details.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is one checker's report.
type Result struct {
	Status  Status
	Message string

	// Details carries checker specific figures such as entries or latency_ms.
	Details map[string]any

	// Duration is set by the Aggregator. Timestamp is set there too when left
	// empty.
	Duration  time.Duration
	Timestamp time.Time

	// Error is set on unhealthy results and wraps ErrCheckFailed or
	// ErrCheckTimeout.
	Error error
}

// Healthy reports a store serving normally.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now()}
}

// Degraded reports a store that serves but needs attention.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message, Timestamp: time.Now()}
}

// Unhealthy reports a failed store together with the cause.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err, Timestamp: time.Now()}
}

// WithDetails returns r carrying details.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker reports the health of one component, e.g. a MemoryCache or the
// Redis connection behind a RedisCache.
//
// Contract:
//   - Concurrency: Check may be called concurrently by an Aggregator.
//   - Context: Check should give up when ctx is done.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc turns a function into a named Checker.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a Checker named name that runs fn.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the checker name.
func (f *CheckerFunc) Name() string { return f.name }

// Check runs the wrapped function.
func (f *CheckerFunc) Check(ctx context.Context) Result { return f.fn(ctx) }
