package broadcast

import (
	"io"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	defaultWait = time.Second
	defaultTick = 10 * time.Millisecond
)

func pipeConn(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return server, client
}

func TestAttachFillsFreeSlots(t *testing.T) {
	tb := New(Config{Capacity: 2})
	s1, c1 := pipeConn(t)
	s2, c2 := pipeConn(t)
	_ = c1
	_ = c2

	_, err := tb.Attach(s1)
	require.NoError(t, err)
	require.Equal(t, 1, tb.Active())

	_, err = tb.Attach(s2)
	require.NoError(t, err)
	require.Equal(t, 2, tb.Active())
}

func TestAttachCapacityExceeded(t *testing.T) {
	tb := New(Config{Capacity: 1})
	s1, _ := pipeConn(t)
	s2, _ := pipeConn(t)

	_, err := tb.Attach(s1)
	require.NoError(t, err)

	_, err = tb.Attach(s2)
	require.ErrorIs(t, err, ErrCapacity)
}

// TestDeliverFanOut implements spec.md §8 S6 / I3: every Active subscriber
// receives the exact same bytes, in order.
func TestDeliverFanOut(t *testing.T) {
	tb := New(Config{Capacity: 2})
	s1, c1 := pipeConn(t)
	s2, c2 := pipeConn(t)

	_, err := tb.Attach(s1)
	require.NoError(t, err)
	_, err = tb.Attach(s2)
	require.NoError(t, err)

	payload := []byte("hello")
	done := make(chan struct{})
	go func() {
		defer close(done)
		tb.Deliver(payload)
	}()

	buf1 := make([]byte, len(payload))
	_, err = io.ReadFull(c1, buf1)
	require.NoError(t, err)
	require.Equal(t, payload, buf1)

	buf2 := make([]byte, len(payload))
	_, err = io.ReadFull(c2, buf2)
	require.NoError(t, err)
	require.Equal(t, payload, buf2)

	<-done
}

// TestDeliverRetiresFailedSubscriber implements spec.md §4.4: a write
// failure retires that slot without affecting delivery to others.
func TestDeliverRetiresFailedSubscriber(t *testing.T) {
	tb := New(Config{Capacity: 2})
	s1, c1 := pipeConn(t)
	s2, c2 := pipeConn(t)
	_ = c2

	_, err := tb.Attach(s1)
	require.NoError(t, err)
	_, err = tb.Attach(s2)
	require.NoError(t, err)

	c1.Close() // peer gone; s1's next write fails

	go tb.Deliver([]byte("x"))

	buf := make([]byte, 1)
	_, err = io.ReadFull(c2, buf)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return tb.Active() == 1
	}, defaultWait, defaultTick)
}

func TestShutdownRetiresAllSlots(t *testing.T) {
	tb := New(Config{Capacity: 2})
	s1, _ := pipeConn(t)
	s2, _ := pipeConn(t)

	_, err := tb.Attach(s1)
	require.NoError(t, err)
	_, err = tb.Attach(s2)
	require.NoError(t, err)

	tb.Shutdown()
	require.Equal(t, 0, tb.Active())
}

func TestIsDisconnectClassification(t *testing.T) {
	require.False(t, IsDisconnect(nil))
	require.True(t, IsDisconnect(io.EOF))
	require.True(t, IsDisconnect(syscall.EPIPE))
	require.True(t, IsDisconnect(syscall.ECONNRESET))
	require.True(t, IsDisconnect(&net.OpError{Op: "write", Err: syscall.EPIPE}))
	require.True(t, IsDisconnect(&net.OpError{Op: "read", Err: syscall.ECONNRESET}))
	require.False(t, IsDisconnect(&net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}))
}
