// Package fetch loads response envelopes through a shared cache.
//
// A Loader owns one endpoint. On each call it derives a key from the request
// parameters, serves a live cached envelope when there is one, and otherwise
// performs a single coalesced remote fetch per key. The fetched envelope is
// decoded, classified, and offered to the store, whose Expiry decides from the
// envelope's own cache metadata whether and for how long it is kept. Error
// envelopes carry no cache metadata and are therefore never retained.
//
// Transport is not part of this package: callers supply an observe.FetchFunc,
// usually wrapped by observe.Middleware for tracing and metrics.
package fetch
