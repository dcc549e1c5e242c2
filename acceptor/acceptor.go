// Package acceptor admits new TCP subscribers up to the Broadcaster's fixed
// capacity, per spec.md §4.5.
package acceptor

import (
	"net"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/marketfeed/itchreplay/broadcast"
)

// Acceptor runs the accept loop described in spec.md §4.5 and §5.
type Acceptor struct {
	listener net.Listener
	table    *broadcast.Table
	trace    *Trace
	stopped  atomic.Bool
}

// Option configures an Acceptor at construction time.
type Option func(*Acceptor)

// WithTrace attaches diagnostic hooks.
func WithTrace(t *Trace) Option {
	return func(a *Acceptor) { a.trace = mergeTrace(t, NoOpTrace) }
}

// Listen binds addr and returns an Acceptor ready to Serve, handing
// admitted connections to table.
func Listen(addr string, table *broadcast.Table, opts ...Option) (*Acceptor, error) {
	a := &Acceptor{table: table, trace: NoOpTrace}
	for _, opt := range opts {
		opt(a)
	}

	l, err := net.Listen("tcp", addr)
	a.trace.Listened(addr, err)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", addr)
	}
	a.listener = l
	return a, nil
}

// Addr returns the bound address, useful when addr was "host:0".
func (a *Acceptor) Addr() net.Addr {
	return a.listener.Addr()
}

// Serve runs the accept loop until Stop is called, at which point it
// returns nil. Any other accept error that is not a signal-driven
// interruption is logged via trace and the loop continues, per spec.md
// §4.5 ("other accept errors are logged and the loop continues").
func (a *Acceptor) Serve() error {
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			if a.stopped.Load() {
				a.trace.Stopped()
				return nil
			}
			a.trace.Accepted(nil, err)
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			continue
		}
		a.trace.Accepted(conn, nil)

		if _, err := a.table.Attach(conn); err != nil {
			a.trace.Refused(conn.RemoteAddr())
			_ = conn.Close()
		}
	}
}

// Stop closes the listening socket, causing a blocked Serve to return nil.
func (a *Acceptor) Stop() {
	a.stopped.Store(true)
	_ = a.listener.Close()
}
