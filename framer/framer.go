// Package framer turns a raw ITCH byte stream into a sequence of framed
// messages. It never interprets message payloads; that is the itch
// package's job. The design follows this codebase's rfc6242 chunk decoder:
// a bufio.Scanner driven by a custom SplitFunc, rather than a hand-rolled
// ring buffer.
package framer

import (
	"bufio"
	"io"

	"github.com/marketfeed/itchreplay/itch"
)

// minBufferSize is the smallest scratch buffer a Framer will use (spec.md
// §4.2): large enough to hold the longest defined message with headroom for
// scanner growth.
const minBufferSize = 64 * 1024

// Framer reads framed ITCH messages from an underlying stream.
type Framer struct {
	sc      *bufio.Scanner
	trace   *Trace
	bufSize int
}

// New wraps r and returns a Framer configured by opts.
func New(r io.Reader, opts ...Option) *Framer {
	fr := &Framer{
		trace:   NoOpTrace,
		bufSize: minBufferSize,
	}
	for _, opt := range opts {
		opt(fr)
	}
	fr.sc = bufio.NewScanner(r)
	fr.sc.Buffer(make([]byte, 0, fr.bufSize), fr.bufSize)
	fr.sc.Split(fr.split)
	return fr
}

// Scan advances the Framer to the next framed message. It returns false at
// end of stream or on an unrecoverable read error; callers should consult
// Err to distinguish the two.
func (fr *Framer) Scan() bool {
	return fr.sc.Scan()
}

// Message returns the most recently scanned framed message. It must only be
// called after a call to Scan that returned true.
func (fr *Framer) Message() itch.Framed {
	raw := fr.sc.Bytes()
	f := itch.Framed{
		Type: raw[0],
		Raw:  append([]byte(nil), raw...),
	}
	if len(raw) >= 11 {
		f.Timestamp = itch.Timestamp(raw[5:11])
		f.HasTimestamp = true
	}
	return f
}

// Err returns the first non-EOF error encountered, if any.
func (fr *Framer) Err() error {
	return fr.sc.Err()
}

// split implements bufio.SplitFunc. It resyncs past unknown type bytes one
// at a time (spec.md §4.2 "unknown-type event") and treats a truncated
// trailing message at EOF as clean termination, not an error (spec.md §7).
func (fr *Framer) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	length, known := itch.Lookup(data[0])
	if !known {
		fr.trace.UnknownType(data[0])
		return 1, nil, nil
	}

	if len(data) < length {
		if atEOF {
			fr.trace.Truncated(len(data))
			return len(data), nil, nil
		}
		return 0, nil, nil
	}

	return length, data[:length], nil
}
