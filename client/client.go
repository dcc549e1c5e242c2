// Package client connects to a replay server, re-frames the raw byte
// stream with the same type→length table the server used, and reports
// per-type statistics (spec.md §6 Egress).
package client

import (
	"net"

	"github.com/pkg/errors"

	"github.com/marketfeed/itchreplay/framer"
	"github.com/marketfeed/itchreplay/itch"
)

// Client consumes a replay server's plain-TCP egress stream.
type Client struct {
	conn  net.Conn
	fr    *framer.Framer
	stats *Stats
}

// Dial connects to addr and returns a Client ready to Run.
func Dial(addr string, opts ...framer.Option) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	return &Client{
		conn:  conn,
		fr:    framer.New(conn, opts...),
		stats: NewStats(),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Stats returns the running statistics. Stats is not synchronised with Run:
// read it from the onMessage callback or after Run has returned.
func (c *Client) Stats() *Stats {
	return c.stats
}

// Run decodes messages until the connection closes or an error occurs,
// invoking onMessage for each one. A nil onMessage is valid when only
// aggregate Stats are wanted.
func (c *Client) Run(onMessage func(itch.Message)) error {
	for c.fr.Scan() {
		framed := c.fr.Message()
		msg, err := framed.Decode()
		if err != nil {
			return errors.Wrap(err, "decode")
		}
		c.stats.Observe(msg, len(framed.Raw))
		if onMessage != nil {
			onMessage(msg)
		}
	}
	return c.fr.Err()
}
