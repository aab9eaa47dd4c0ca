package packet

import "errors"

// Malformed reasons. These describe why an envelope could not be narrowed;
// they are carried as data inside Malformed and never returned as failures.
var (
	// ErrNilPacket indicates a nil *Packet was resolved.
	ErrNilPacket = errors.New("packet: packet is nil")

	// ErrMissingCache indicates success=true without cache metadata.
	ErrMissingCache = errors.New("packet: success without cache metadata")

	// ErrMissingData indicates success=true without a payload.
	ErrMissingData = errors.New("packet: success without data")

	// ErrMissingError indicates success=false without an error message.
	ErrMissingError = errors.New("packet: failure without error message")
)

// ErrDecode indicates the response body is not a decodable envelope.
var ErrDecode = errors.New("packet: decode failed")
