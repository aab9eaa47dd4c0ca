package observe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type middlewareHarness struct {
	mw       *Middleware
	spans    *tracetest.SpanRecorder
	reader   *sdkmetric.ManualReader
	logBuf   *bytes.Buffer
	metadata EndpointMeta
}

func newMiddlewareHarness(t *testing.T, level string) *middlewareHarness {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	var buf bytes.Buffer
	return &middlewareHarness{
		mw:       NewMiddleware(NewTracer(tp.Tracer("test")), metrics, NewLoggerWithWriter(level, &buf)),
		spans:    spans,
		reader:   reader,
		logBuf:   &buf,
		metadata: EndpointMeta{Group: "users", Name: "lists.league"},
	}
}

// TestMiddleware_SuccessPath verifies a successful fetch records telemetry.
func TestMiddleware_SuccessPath(t *testing.T) {
	h := newMiddlewareHarness(t, "debug")
	body := []byte(`{"success":true}`)

	var gotParams any
	wrapped := h.mw.Wrap(func(ctx context.Context, meta EndpointMeta, params any) ([]byte, error) {
		gotParams = params
		return body, nil
	})

	got, err := wrapped(context.Background(), h.metadata, map[string]any{"limit": 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("body = %s, want %s", got, body)
	}
	if gotParams == nil {
		t.Error("params were not forwarded")
	}

	spans := h.spans.Ended()
	if len(spans) != 1 || spans[0].Name() != "fetch.users.lists.league" {
		t.Fatalf("unexpected spans: %v", spans)
	}

	rm := collect(t, h.reader)
	if n := sumWhere(t, rm, MetricFetchTotal, leagueID); n != 1 {
		t.Errorf("%s = %d, want 1", MetricFetchTotal, n)
	}

	entries := decodeLines(t, h.logBuf)
	if len(entries) != 1 || entries[0]["msg"] != "fetch completed" {
		t.Fatalf("unexpected log entries: %v", entries)
	}
	if entries[0]["bytes"] != float64(len(body)) {
		t.Errorf("bytes = %v, want %d", entries[0]["bytes"], len(body))
	}
	if entries[0]["trace_id"] == nil {
		t.Error("expected trace_id on fetch log line")
	}
}

// TestMiddleware_ErrorPath verifies a failed fetch records error telemetry.
func TestMiddleware_ErrorPath(t *testing.T) {
	h := newMiddlewareHarness(t, "info")
	fetchErr := errors.New("upstream 503")

	wrapped := h.mw.Wrap(func(ctx context.Context, meta EndpointMeta, params any) ([]byte, error) {
		return nil, fetchErr
	})

	_, err := wrapped(context.Background(), h.metadata, nil)
	if err != fetchErr {
		t.Errorf("error = %v, want %v", err, fetchErr)
	}

	if v := spanAttrs(h.spans.Ended()[0])["fetch.error"]; !v.AsBool() {
		t.Error("expected fetch.error=true on failed fetch")
	}

	rm := collect(t, h.reader)
	if n := sumWhere(t, rm, MetricFetchErrors, leagueID); n != 1 {
		t.Errorf("%s = %d, want 1", MetricFetchErrors, n)
	}

	entries := decodeLines(t, h.logBuf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0]["level"] != "error" || entries[0]["error"] != "upstream 503" {
		t.Errorf("unexpected error log: %v", entries[0])
	}
}

// TestMiddleware_SuccessNotLoggedAtInfo verifies success lines are debug only.
func TestMiddleware_SuccessNotLoggedAtInfo(t *testing.T) {
	h := newMiddlewareHarness(t, "info")

	wrapped := h.mw.Wrap(func(ctx context.Context, meta EndpointMeta, params any) ([]byte, error) {
		return []byte("{}"), nil
	})
	if _, err := wrapped(context.Background(), h.metadata, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(h.logBuf.String()) != "" {
		t.Errorf("expected no info output, got %s", h.logBuf.String())
	}
}

// TestMiddleware_ContextCarriesSpan verifies the wrapped function sees the fetch span.
func TestMiddleware_ContextCarriesSpan(t *testing.T) {
	h := newMiddlewareHarness(t, "error")

	var inner bool
	wrapped := h.mw.Wrap(func(ctx context.Context, meta EndpointMeta, params any) ([]byte, error) {
		inner = trace.SpanContextFromContext(ctx).IsValid()
		return nil, nil
	})
	_, _ = wrapped(context.Background(), h.metadata, nil)

	if !inner {
		t.Error("expected a valid span context inside the wrapped fetch")
	}
}

// TestNewMiddleware_NilComponents verifies nil components fall back to no-ops.
func TestNewMiddleware_NilComponents(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)

	wrapped := mw.Wrap(func(ctx context.Context, meta EndpointMeta, params any) ([]byte, error) {
		return []byte("ok"), nil
	})
	got, err := wrapped(context.Background(), EndpointMeta{Name: "x"}, nil)
	if err != nil || string(got) != "ok" {
		t.Errorf("got (%q, %v), want (ok, nil)", got, err)
	}
}
