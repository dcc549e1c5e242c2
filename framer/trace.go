package framer

import (
	"log"

	"github.com/imdario/mergo"
)

// Trace defines diagnostic hooks for the Framer, following the trace-hooks
// pattern used throughout this codebase's ancestry (one Trace struct per
// component, merged over a no-op base rather than a shared logging
// interface). Both hooks correspond to spec.md §4.2/§7 recovery paths.
type Trace struct {
	// UnknownType is called once per unknown-type byte consumed during
	// resync (spec.md §4.2 "unknown-type event").
	UnknownType func(b byte)
	// Truncated is called once, at most, when the stream ends mid-message
	// (spec.md §7 "truncated trailing message").
	Truncated func(remaining int)
}

// NoOpTrace discards every event.
var NoOpTrace = &Trace{
	UnknownType: func(b byte) {},
	Truncated:   func(remaining int) {},
}

// DefaultTrace logs every event via the standard library logger.
var DefaultTrace = &Trace{
	UnknownType: func(b byte) {
		log.Printf("framer: unknown message type 0x%02x; resyncing\n", b)
	},
	Truncated: func(remaining int) {
		log.Printf("framer: truncated trailing message (%d bytes); stream ends\n", remaining)
	},
}

// mergeTrace fills any unset field of t from base, so a caller can supply a
// partial Trace and get NoOp behaviour for the rest.
func mergeTrace(t *Trace, base *Trace) *Trace {
	merged := *t
	_ = mergo.Merge(&merged, *base) // nolint: errcheck
	return &merged
}
