package fetch

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/leaguecache/cache"
	"github.com/jonwraymond/leaguecache/observe"
	"github.com/jonwraymond/leaguecache/packet"
)

// Loader fetches envelopes for one endpoint through a shared store.
//
// Contract:
//   - Concurrency: safe for concurrent use. Concurrent misses on the same key
//     share one remote call.
//   - Errors: transport failures wrap ErrFetch and undecodable bodies wrap
//     packet.ErrDecode. Neither is cached. Error and malformed envelopes are
//     returned as values, not errors.
//   - Ownership: returned packets are shared with the store and other callers
//     and must not be mutated.
type Loader[T any] struct {
	meta    observe.EndpointMeta
	store   cache.Store[string, *packet.Packet[T]]
	keyer   cache.Keyer
	fetch   observe.FetchFunc
	logger  observe.Logger
	metrics observe.Metrics
	group   singleflight.Group
}

// NewLoader creates a Loader. A nil keyer uses cache.DefaultKeyer; nil logger
// and metrics are replaced by no-ops.
func NewLoader[T any](
	meta observe.EndpointMeta,
	store cache.Store[string, *packet.Packet[T]],
	keyer cache.Keyer,
	fetch observe.FetchFunc,
	logger observe.Logger,
	metrics observe.Metrics,
) (*Loader[T], error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, cache.ErrNilStore
	}
	if fetch == nil {
		return nil, ErrNilFetchFunc
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	if metrics == nil {
		metrics = observe.NopMetrics()
	}
	return &Loader[T]{
		meta:    meta,
		store:   store,
		keyer:   keyer,
		fetch:   fetch,
		logger:  logger.WithEndpoint(meta),
		metrics: metrics,
	}, nil
}

// Load returns the envelope for params, from the store when live.
func (l *Loader[T]) Load(ctx context.Context, params any) (*packet.Packet[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := l.keyer.Key(l.meta.EndpointID(), params)
	if err != nil {
		// Unkeyable params still get an answer, just not a cached one.
		l.logger.Warn(ctx, "cache key generation failed",
			observe.Field{Key: "error", Value: err.Error()})
		return l.fetchAndDecode(ctx, params)
	}

	if p, ok := l.store.Get(ctx, key); ok {
		l.metrics.RecordLookup(ctx, l.meta, true)
		return p, nil
	}
	l.metrics.RecordLookup(ctx, l.meta, false)

	v, err, _ := l.group.Do(key, func() (any, error) {
		p, err := l.fetchAndDecode(ctx, params)
		if err != nil {
			return nil, err
		}
		if err := l.store.Insert(ctx, key, p); err != nil {
			l.logger.Warn(ctx, "cache insert failed",
				observe.Field{Key: "key", Value: key},
				observe.Field{Key: "error", Value: err.Error()})
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*packet.Packet[T]), nil
}

// Resolve loads the envelope for params and narrows it into an Outcome.
func (l *Loader[T]) Resolve(ctx context.Context, params any) (packet.Outcome[T], error) {
	p, err := l.Load(ctx, params)
	if err != nil {
		return nil, err
	}
	return packet.Resolve(p), nil
}

// Invalidate drops any cached envelope for params.
func (l *Loader[T]) Invalidate(ctx context.Context, params any) error {
	key, err := l.keyer.Key(l.meta.EndpointID(), params)
	if err != nil {
		return err
	}
	return l.store.Invalidate(ctx, key)
}

func (l *Loader[T]) fetchAndDecode(ctx context.Context, params any) (*packet.Packet[T], error) {
	body, err := l.fetch(ctx, l.meta, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, l.meta.EndpointID(), err)
	}

	p, err := packet.Decode[T](body)
	if err != nil {
		l.logger.Error(ctx, "response body is not an envelope",
			observe.Field{Key: "bytes", Value: len(body)},
			observe.Field{Key: "error", Value: err.Error()})
		return nil, err
	}

	l.record(ctx, packet.Resolve(p))
	return p, nil
}

func (l *Loader[T]) record(ctx context.Context, outcome packet.Outcome[T]) {
	l.metrics.RecordOutcome(ctx, l.meta, outcome.Kind().String())

	switch o := outcome.(type) {
	case packet.Failure[T]:
		l.logger.Debug(ctx, "service returned error envelope",
			observe.Field{Key: "error", Value: o.Error})
	case packet.Malformed[T]:
		l.logger.Warn(ctx, "malformed envelope",
			observe.Field{Key: "reason", Value: o.Reason.Error()})
	}
}
