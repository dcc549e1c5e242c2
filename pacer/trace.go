package pacer

import (
	"log"
	"time"

	"github.com/imdario/mergo"
)

// Trace defines diagnostic hooks for the Pacer, in the trace-hooks style
// used across this codebase (see framer.Trace for the sibling component).
type Trace struct {
	// Sleep is called before each cooperative sleep, with the computed
	// duration (already capped).
	Sleep func(d time.Duration)
	// CapHit is called when a single sleep would have exceeded the 1s cap
	// and the Pacer reset its reference clocks instead (spec.md §4.3).
	CapHit func(wanted time.Duration)
	// Egress is called immediately before a record is handed to the sink.
	Egress func(timestamp uint64)
}

var NoOpTrace = &Trace{
	Sleep:  func(d time.Duration) {},
	CapHit: func(wanted time.Duration) {},
	Egress: func(timestamp uint64) {},
}

var DefaultTrace = &Trace{
	Sleep: func(d time.Duration) {},
	CapHit: func(wanted time.Duration) {
		log.Printf("pacer: sleep of %s exceeded cap; resetting reference clocks\n", wanted)
	},
	Egress: func(timestamp uint64) {},
}

func mergeTrace(t *Trace, base *Trace) *Trace {
	merged := *t
	_ = mergo.Merge(&merged, *base) // nolint: errcheck
	return &merged
}
