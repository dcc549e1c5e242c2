// Package broadcast maintains the set of active TCP subscribers and fans
// out paced messages to all of them, per spec.md §4.4.
package broadcast

import (
	"errors"
	"io"
	"net"
	"sync"
	"syscall"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

// ErrCapacity is returned by Attach when every slot is occupied.
var ErrCapacity = errors.New("broadcast: at capacity")

type slotState int

const (
	stateFree slotState = iota
	stateActive
	stateRetired
)

type slot struct {
	state slotState
	id    uuid.UUID
	conn  net.Conn
	addr  net.Addr
}

// Config configures a Table.
type Config struct {
	// Capacity is the number of subscriber slots. Spec.md §3 requires ≥ 32.
	Capacity int
}

// DefaultConfig matches spec.md §3's minimum subscriber capacity.
var DefaultConfig = Config{Capacity: 32}

// Table is the mutex-protected subscriber set shared by the Acceptor (which
// attaches new connections) and the replay task (which delivers messages
// and retires dead subscribers). Per spec.md §5, the full fan-out write
// happens under the lock so retirement stays consistent with the
// Acceptor's view of Free slots.
type Table struct {
	mu    sync.Mutex
	slots []slot
	trace *Trace
}

// Option configures a Table at construction time.
type Option func(*Table)

// WithTrace attaches diagnostic hooks.
func WithTrace(t *Trace) Option {
	return func(tb *Table) { tb.trace = mergeTrace(t, NoOpTrace) }
}

// New constructs a Table with cfg.Capacity Free slots.
func New(cfg Config, opts ...Option) *Table {
	tb := &Table{
		slots: make([]slot, cfg.Capacity),
		trace: NoOpTrace,
	}
	for _, opt := range opts {
		opt(tb)
	}
	return tb
}

// Capacity returns the fixed slot count.
func (tb *Table) Capacity() int {
	return len(tb.slots)
}

// Active returns the current count of occupied (Active) slots.
func (tb *Table) Active() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	n := 0
	for i := range tb.slots {
		if tb.slots[i].state == stateActive {
			n++
		}
	}
	return n
}

// Attach assigns conn to the first Free slot and transitions it to Active
// (Free→Active). It returns ErrCapacity if no Free slot exists, in which
// case the caller is responsible for closing conn.
func (tb *Table) Attach(conn net.Conn) (uuid.UUID, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	for i := range tb.slots {
		if tb.slots[i].state != stateFree {
			continue
		}
		id := uuid.New()
		tb.slots[i] = slot{state: stateActive, id: id, conn: conn, addr: conn.RemoteAddr()}
		tb.trace.Attached(id, i, conn.RemoteAddr())
		return id, nil
	}

	tb.trace.CapacityExceeded(conn.RemoteAddr())
	return uuid.UUID{}, pkgerrors.Wrap(ErrCapacity, "attach")
}

// Deliver writes b to every Active subscriber. A subscriber whose write
// fails is retired (Active→Retired→Free) and its socket closed exactly
// once; Deliver never returns an error itself (spec.md §4.4) since a single
// slow or dead subscriber must not prevent delivery to the rest.
func (tb *Table) Deliver(b []byte) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	for i := range tb.slots {
		if tb.slots[i].state != stateActive {
			continue
		}
		if _, err := tb.slots[i].conn.Write(b); err != nil {
			tb.retireLocked(i, err)
		}
	}
}

// Shutdown retires every Active slot, closing its socket, for orderly
// server shutdown.
func (tb *Table) Shutdown() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	for i := range tb.slots {
		if tb.slots[i].state == stateActive {
			tb.retireLocked(i, nil)
		}
	}
}

// retireLocked transitions slot i to Retired then immediately to Free,
// closing its connection. Callers must hold tb.mu.
func (tb *Table) retireLocked(i int, err error) {
	s := &tb.slots[i]
	s.state = stateRetired
	id := s.id
	_ = s.conn.Close()
	tb.trace.Retired(id, i, err)
	*s = slot{state: stateFree}
}

// IsDisconnect reports whether err is a disconnect-class error (broken
// pipe, connection reset, or an already-closed peer), as opposed to some
// other transport failure (spec.md §4.4). Both classes retire the slot the
// same way; this only affects how an implementation chooses to log.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EPIPE) || errors.Is(opErr.Err, syscall.ECONNRESET)
	}
	return false
}
