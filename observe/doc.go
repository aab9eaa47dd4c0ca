// Package observe provides observability primitives for endpoint fetches.
//
// It is a pure instrumentation library: no transport, no I/O beyond exporter
// setup. Consumers wrap their FetchFunc with Middleware and hand the Logger
// and Metrics to fetch.Loader.
package observe
