package packet

// Kind identifies which variant an Outcome holds.
type Kind int

const (
	// KindSuccess is a well-formed success response.
	KindSuccess Kind = iota
	// KindError is a well-formed error response.
	KindError
	// KindMalformed is an envelope inconsistent with its own success flag.
	KindMalformed
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Outcome is the closed union a Packet narrows into. The only
// implementations are Success, Failure and Malformed.
type Outcome[T any] interface {
	Kind() Kind
	sealed()
}

// Success wraps a narrowed success response.
type Success[T any] struct {
	SuccessPacket[T]
}

// Failure wraps a narrowed error response.
type Failure[T any] struct {
	ErrorPacket
}

// Malformed records an envelope that could not be narrowed and why.
type Malformed[T any] struct {
	Reason error
}

func (Success[T]) Kind() Kind   { return KindSuccess }
func (Failure[T]) Kind() Kind   { return KindError }
func (Malformed[T]) Kind() Kind { return KindMalformed }

func (Success[T]) sealed()   {}
func (Failure[T]) sealed()   {}
func (Malformed[T]) sealed() {}

// Resolve narrows p into exactly one Outcome. It never fails: envelopes that
// contradict their own success flag resolve to Malformed with a reason.
func Resolve[T any](p *Packet[T]) Outcome[T] {
	if p == nil {
		return Malformed[T]{Reason: ErrNilPacket}
	}
	if s, ok := p.IntoSuccess(); ok {
		return Success[T]{SuccessPacket: s}
	}
	if e, ok := p.IntoError(); ok {
		return Failure[T]{ErrorPacket: e}
	}
	return Malformed[T]{Reason: malformedReason(p)}
}

func malformedReason[T any](p *Packet[T]) error {
	switch {
	case !p.Success:
		return ErrMissingError
	case p.Cache == nil:
		return ErrMissingCache
	default:
		return ErrMissingData
	}
}
