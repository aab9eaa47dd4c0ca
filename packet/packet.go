package packet

// Packet is the envelope every endpoint responds with.
//
// On the wire it is one of two shapes:
//
//	{"success": true,  "cache": {...}, "data": {...}}
//	{"success": false, "error": "..."}
//
// Both shapes decode into this single struct. The type does not forbid
// inconsistent combinations (success without data, failure without error);
// IntoSuccess, IntoError and Resolve defend against them.
//
// Contract:
// - Ownership: a *Packet is shared between the cache and in-flight callers.
// - Concurrency: nothing mutates a Packet after decode, so reads need no locking.
type Packet[T any] struct {
	Success bool       `json:"success"`
	Cache   *CacheMeta `json:"cache,omitempty"`
	Data    *T         `json:"data,omitempty"`
	Error   *string    `json:"error,omitempty"`
}

// SuccessPacket is a narrowed, fully populated success response.
type SuccessPacket[T any] struct {
	Success bool      `json:"success"`
	Cache   CacheMeta `json:"cache"`
	Data    T         `json:"data"`
}

// ErrorPacket is a narrowed failure response.
type ErrorPacket struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// IntoSuccess narrows p into a SuccessPacket.
// ok is true only when success is set and both cache and data are present.
// The envelope fields are copied, but the copy of Data is shallow: slices,
// maps and pointers inside T still alias the packet, which may be shared
// through a cache. Callers must treat them as read-only.
func (p *Packet[T]) IntoSuccess() (SuccessPacket[T], bool) {
	if p == nil || !p.Success || p.Cache == nil || p.Data == nil {
		return SuccessPacket[T]{}, false
	}
	return SuccessPacket[T]{
		Success: p.Success,
		Cache:   *p.Cache,
		Data:    *p.Data,
	}, true
}

// IntoError narrows p into an ErrorPacket.
// ok is true only when success is unset and an error message is present.
func (p *Packet[T]) IntoError() (ErrorPacket, bool) {
	if p == nil || p.Success || p.Error == nil {
		return ErrorPacket{}, false
	}
	return ErrorPacket{
		Success: p.Success,
		Error:   *p.Error,
	}, true
}

// IsSuccess reports the raw success flag, regardless of whether the rest of
// the envelope is well formed.
func (p *Packet[T]) IsSuccess() bool {
	return p != nil && p.Success
}

// NewSuccess builds a well-formed success envelope.
func NewSuccess[T any](meta CacheMeta, data T) *Packet[T] {
	return &Packet[T]{Success: true, Cache: &meta, Data: &data}
}

// NewError builds a well-formed error envelope.
func NewError[T any](msg string) *Packet[T] {
	return &Packet[T]{Success: false, Error: &msg}
}
