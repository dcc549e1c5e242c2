package broadcast

import (
	"log"
	"net"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
)

// Trace defines diagnostic hooks for the Broadcaster.
type Trace struct {
	// Attached is called when a subscriber takes a Free slot.
	Attached func(id uuid.UUID, slot int, addr net.Addr)
	// Retired is called when a slot is retired, either on write failure or
	// on shutdown. err is nil for an orderly shutdown retirement.
	Retired func(id uuid.UUID, slot int, err error)
	// CapacityExceeded is called when attach is refused because every slot
	// is occupied.
	CapacityExceeded func(addr net.Addr)
}

var NoOpTrace = &Trace{
	Attached:         func(id uuid.UUID, slot int, addr net.Addr) {},
	Retired:          func(id uuid.UUID, slot int, err error) {},
	CapacityExceeded: func(addr net.Addr) {},
}

var DefaultTrace = &Trace{
	Attached: func(id uuid.UUID, slot int, addr net.Addr) {
		log.Printf("broadcast: slot %d connected from %s (id=%s)\n", slot, addr, id)
	},
	Retired: func(id uuid.UUID, slot int, err error) {
		if err != nil {
			log.Printf("broadcast: slot %d (id=%s) retired: %v\n", slot, id, err)
			return
		}
		log.Printf("broadcast: slot %d (id=%s) retired\n", slot, id)
	},
	CapacityExceeded: func(addr net.Addr) {
		log.Printf("broadcast: no free slot for %s; closing\n", addr)
	},
}

func mergeTrace(t *Trace, base *Trace) *Trace {
	merged := *t
	_ = mergo.Merge(&merged, *base) // nolint: errcheck
	return &merged
}
