package acceptor

import (
	"log"
	"net"

	"github.com/imdario/mergo"
)

// Trace defines diagnostic hooks for the Acceptor.
type Trace struct {
	Listened func(addr string, err error)
	Accepted func(conn net.Conn, err error)
	Refused  func(addr net.Addr)
	Stopped  func()
}

var NoOpTrace = &Trace{
	Listened: func(addr string, err error) {},
	Accepted: func(conn net.Conn, err error) {},
	Refused:  func(addr net.Addr) {},
	Stopped:  func() {},
}

var DefaultTrace = &Trace{
	Listened: func(addr string, err error) {
		if err != nil {
			log.Printf("acceptor: listen %s failed: %v\n", addr, err)
			return
		}
		log.Printf("acceptor: listening on %s\n", addr)
	},
	Accepted: func(conn net.Conn, err error) {
		if err != nil {
			log.Printf("acceptor: accept failed: %v\n", err)
			return
		}
		log.Printf("acceptor: accepted %s\n", conn.RemoteAddr())
	},
	Refused: func(addr net.Addr) {
		log.Printf("acceptor: no free slot for %s; closed\n", addr)
	},
	Stopped: func() {
		log.Println("acceptor: stopped")
	},
}

func mergeTrace(t *Trace, base *Trace) *Trace {
	merged := *t
	_ = mergo.Merge(&merged, *base) // nolint: errcheck
	return &merged
}
