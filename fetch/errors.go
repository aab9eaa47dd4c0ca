package fetch

import "errors"

// Sentinel errors for loader construction and fetches.
var (
	// ErrNilFetchFunc indicates NewLoader was called without a transport.
	ErrNilFetchFunc = errors.New("fetch: fetch func is nil")

	// ErrFetch wraps failures returned by the FetchFunc.
	ErrFetch = errors.New("fetch: remote call failed")
)
