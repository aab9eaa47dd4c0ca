package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricFetchTotal    = "leaguecache.fetch.total"
	MetricFetchErrors   = "leaguecache.fetch.errors"
	MetricFetchDuration = "leaguecache.fetch.duration_ms"
	MetricCacheLookups  = "leaguecache.cache.lookups"
	MetricOutcomes      = "leaguecache.packet.outcomes"
)

// Metrics records fetch, cache and envelope metrics per endpoint.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordFetch records a remote fetch with duration and error status.
	RecordFetch(ctx context.Context, meta EndpointMeta, duration time.Duration, err error)

	// RecordLookup records a cache lookup.
	RecordLookup(ctx context.Context, meta EndpointMeta, hit bool)

	// RecordOutcome records how a decoded envelope resolved
	// ("success", "error" or "malformed").
	RecordOutcome(ctx context.Context, meta EndpointMeta, outcome string)
}

type metricsImpl struct {
	fetchTotal    metric.Int64Counter
	fetchErrors   metric.Int64Counter
	fetchDuration metric.Float64Histogram
	lookups       metric.Int64Counter
	outcomes      metric.Int64Counter
}

// NewMetrics creates Metrics backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	fetchTotal, err := meter.Int64Counter(
		MetricFetchTotal,
		metric.WithDescription("Total number of remote fetches"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter(
		MetricFetchErrors,
		metric.WithDescription("Total number of failed remote fetches"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		MetricFetchDuration,
		metric.WithDescription("Remote fetch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter(
		MetricCacheLookups,
		metric.WithDescription("Cache lookups by hit or miss"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	outcomes, err := meter.Int64Counter(
		MetricOutcomes,
		metric.WithDescription("Decoded envelopes by resolved outcome"),
		metric.WithUnit("{packet}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		fetchTotal:    fetchTotal,
		fetchErrors:   fetchErrors,
		fetchDuration: fetchDuration,
		lookups:       lookups,
		outcomes:      outcomes,
	}, nil
}

func endpointAttrs(meta EndpointMeta, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("endpoint.id", meta.EndpointID()),
	}
	if meta.Group != "" {
		attrs = append(attrs, attribute.String("endpoint.group", meta.Group))
	}
	return metric.WithAttributes(append(attrs, extra...)...)
}

// RecordFetch records metrics for a remote fetch.
func (m *metricsImpl) RecordFetch(ctx context.Context, meta EndpointMeta, duration time.Duration, err error) {
	opt := endpointAttrs(meta)

	m.fetchTotal.Add(ctx, 1, opt)
	if err != nil {
		m.fetchErrors.Add(ctx, 1, opt)
	}
	m.fetchDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordLookup records a cache hit or miss.
func (m *metricsImpl) RecordLookup(ctx context.Context, meta EndpointMeta, hit bool) {
	m.lookups.Add(ctx, 1, endpointAttrs(meta, attribute.Bool("cache.hit", hit)))
}

// RecordOutcome records a resolved envelope.
func (m *metricsImpl) RecordOutcome(ctx context.Context, meta EndpointMeta, outcome string) {
	m.outcomes.Add(ctx, 1, endpointAttrs(meta, attribute.String("packet.outcome", outcome)))
}

type noopMetrics struct{}

// NopMetrics returns Metrics that record nothing.
func NopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordFetch(context.Context, EndpointMeta, time.Duration, error) {}
func (noopMetrics) RecordLookup(context.Context, EndpointMeta, bool)                {}
func (noopMetrics) RecordOutcome(context.Context, EndpointMeta, string)             {}
