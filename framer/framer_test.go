package framer

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func header(typ byte, ts uint64) []byte {
	b := make([]byte, 11)
	b[0] = typ
	b[1], b[2] = 0x00, 0x01
	for i := 0; i < 6; i++ {
		b[10-i] = byte(ts)
		ts >>= 8
	}
	return b
}

func systemEvent(ts uint64) []byte {
	b := header('S', ts)
	return append(b, 'O')
}

// TestEmptyInput implements spec.md §8 R2: no bytes in, no messages out.
func TestEmptyInput(t *testing.T) {
	fr := New(bytes.NewReader(nil))
	require.False(t, fr.Scan())
	require.NoError(t, fr.Err())
}

// TestSingleUnknownByte implements spec.md §8 R3: a stream containing only
// one unrecognised type byte yields zero messages and no error.
func TestSingleUnknownByte(t *testing.T) {
	fr := New(bytes.NewReader([]byte{0xFF}))
	require.False(t, fr.Scan())
	require.NoError(t, fr.Err())
}

// TestRoundTripSingleMessage implements spec.md §8 P1: framing a single
// well-formed message returns exactly that message, byte for byte.
func TestRoundTripSingleMessage(t *testing.T) {
	msg := systemEvent(34200000000000)
	fr := New(bytes.NewReader(msg))
	require.True(t, fr.Scan())
	f := fr.Message()
	require.Equal(t, byte('S'), f.Type)
	require.Equal(t, msg, f.Raw)
	require.True(t, f.HasTimestamp)
	require.Equal(t, uint64(34200000000000), f.Timestamp)
	require.False(t, fr.Scan())
	require.NoError(t, fr.Err())
}

// TestUnknownTypeResync implements spec.md §8 S4: an unknown-type byte
// between two well-formed messages is skipped one byte at a time and both
// neighbouring messages are still recovered.
func TestUnknownTypeResync(t *testing.T) {
	var unknown []byte
	var buf bytes.Buffer
	buf.Write(systemEvent(1))
	buf.WriteByte(0xFF)
	unknown = append(unknown, 0xFF)
	buf.Write(systemEvent(2))

	var seen []byte
	tr := &Trace{
		UnknownType: func(b byte) { seen = append(seen, b) },
	}
	fr := New(&buf, WithTrace(tr))

	require.True(t, fr.Scan())
	require.Equal(t, uint64(1), fr.Message().Timestamp)

	require.True(t, fr.Scan())
	require.Equal(t, uint64(2), fr.Message().Timestamp)

	require.False(t, fr.Scan())
	require.NoError(t, fr.Err())
	require.Equal(t, unknown, seen)
}

// TestTruncatedTrailingMessage implements spec.md §7: a well-formed message
// followed by a partial one ends the stream cleanly, with no error, and the
// partial bytes are reported via trace, not surfaced as a message.
func TestTruncatedTrailingMessage(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(systemEvent(1))
	buf.Write(header('S', 2)) // 11 of 12 bytes of a second System Event

	var truncatedLen int
	tr := &Trace{Truncated: func(remaining int) { truncatedLen = remaining }}
	fr := New(&buf, WithTrace(tr))

	require.True(t, fr.Scan())
	require.Equal(t, uint64(1), fr.Message().Timestamp)

	require.False(t, fr.Scan())
	require.NoError(t, fr.Err())
	require.Equal(t, 11, truncatedLen)
}

// TestSplitRefillInvariance implements spec.md §8 P3/S5: feeding the exact
// same byte stream through a reader that only ever returns a handful of
// bytes per Read must produce the same messages as one large Read would.
func TestSplitRefillInvariance(t *testing.T) {
	var want bytes.Buffer
	want.Write(systemEvent(1))
	want.Write(systemEvent(2))
	want.Write(systemEvent(3))
	full := want.Bytes()

	fr := New(&stutterReader{data: full, chunk: 3})
	var got []byte
	for fr.Scan() {
		got = append(got, fr.Message().Raw...)
	}
	require.NoError(t, fr.Err())
	require.Equal(t, full, got)
}

// stutterReader returns at most chunk bytes per Read call, to exercise the
// Framer's buffering across partial reads.
type stutterReader struct {
	data  []byte
	chunk int
}

func (s *stutterReader) Read(p []byte) (int, error) {
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	n := s.chunk
	if n > len(p) {
		n = len(p)
	}
	if n > len(s.data) {
		n = len(s.data)
	}
	copy(p, s.data[:n])
	s.data = s.data[n:]
	return n, nil
}
