package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumWhere totals an int64 counter over data points carrying attr.
func sumWhere(t *testing.T, rm metricdata.ResourceMetrics, name string, attr attribute.KeyValue) int64 {
	t.Helper()
	found := findMetric(rm, name)
	if found == nil {
		return 0
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64] for %s, got %T", name, found.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attr.Key); ok && v.Emit() == attr.Value.Emit() {
			total += dp.Value
		}
	}
	return total
}

var leagueMeta = EndpointMeta{Group: "users", Name: "lists.league"}
var leagueID = attribute.String("endpoint.id", "users.lists.league")

// TestMetrics_RecordFetch verifies fetch counters and duration histogram.
func TestMetrics_RecordFetch(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordFetch(ctx, leagueMeta, 100*time.Millisecond, nil)
	m.RecordFetch(ctx, leagueMeta, 50*time.Millisecond, errors.New("timeout"))

	rm := collect(t, reader)

	if got := sumWhere(t, rm, MetricFetchTotal, leagueID); got != 2 {
		t.Errorf("%s = %d, want 2", MetricFetchTotal, got)
	}
	if got := sumWhere(t, rm, MetricFetchErrors, leagueID); got != 1 {
		t.Errorf("%s = %d, want 1", MetricFetchErrors, got)
	}

	found := findMetric(rm, MetricFetchDuration)
	if found == nil {
		t.Fatalf("%s not found", MetricFetchDuration)
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) != 1 || hist.DataPoints[0].Count != 2 {
		t.Errorf("expected one data point with count 2, got %+v", hist.DataPoints)
	}
	if hist.DataPoints[0].Sum != 150 {
		t.Errorf("duration sum = %v, want 150", hist.DataPoints[0].Sum)
	}
}

// TestMetrics_ErrorCounterOnSuccess verifies errors counter is not incremented on success.
func TestMetrics_ErrorCounterOnSuccess(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordFetch(context.Background(), leagueMeta, time.Millisecond, nil)

	if got := sumWhere(t, collect(t, reader), MetricFetchErrors, leagueID); got != 0 {
		t.Errorf("%s = %d, want 0", MetricFetchErrors, got)
	}
}

// TestMetrics_RecordLookup verifies hit and miss are counted separately.
func TestMetrics_RecordLookup(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordLookup(ctx, leagueMeta, true)
	m.RecordLookup(ctx, leagueMeta, true)
	m.RecordLookup(ctx, leagueMeta, false)

	rm := collect(t, reader)
	if got := sumWhere(t, rm, MetricCacheLookups, attribute.Bool("cache.hit", true)); got != 2 {
		t.Errorf("hits = %d, want 2", got)
	}
	if got := sumWhere(t, rm, MetricCacheLookups, attribute.Bool("cache.hit", false)); got != 1 {
		t.Errorf("misses = %d, want 1", got)
	}
}

// TestMetrics_RecordOutcome verifies outcomes are labelled.
func TestMetrics_RecordOutcome(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordOutcome(ctx, leagueMeta, "success")
	m.RecordOutcome(ctx, leagueMeta, "malformed")
	m.RecordOutcome(ctx, leagueMeta, "malformed")

	rm := collect(t, reader)
	if got := sumWhere(t, rm, MetricOutcomes, attribute.String("packet.outcome", "malformed")); got != 2 {
		t.Errorf("malformed = %d, want 2", got)
	}
	if got := sumWhere(t, rm, MetricOutcomes, attribute.String("packet.outcome", "success")); got != 1 {
		t.Errorf("success = %d, want 1", got)
	}
}
