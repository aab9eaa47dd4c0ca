package packet

import (
	"encoding/json"
	"fmt"
)

// Decode parses a response body into a Packet.
//
// Only syntactically invalid JSON or type mismatches fail. Missing fields
// decode to nil and are left for Resolve to classify.
func Decode[T any](data []byte) (*Packet[T], error) {
	var p Packet[T]
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &p, nil
}

// Encode serializes p back into its wire shape.
func (p *Packet[T]) Encode() ([]byte, error) {
	return json.Marshal(p)
}
