package acceptor

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/marketfeed/itchreplay/broadcast"
)

func TestListenAndAddr(t *testing.T) {
	tb := broadcast.New(broadcast.Config{Capacity: 4})
	a, err := Listen("127.0.0.1:0", tb)
	require.NoError(t, err)
	defer a.Stop()

	require.NotEmpty(t, a.Addr().String())
}

func TestServeAttachesConnections(t *testing.T) {
	tb := broadcast.New(broadcast.Config{Capacity: 4})
	a, err := Listen("127.0.0.1:0", tb)
	require.NoError(t, err)

	go a.Serve()
	defer a.Stop()

	conn, err := net.Dial("tcp", a.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return tb.Active() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestServeRefusesOverCapacity(t *testing.T) {
	tb := broadcast.New(broadcast.Config{Capacity: 1})
	a, err := Listen("127.0.0.1:0", tb)
	require.NoError(t, err)

	go a.Serve()
	defer a.Stop()

	conn1, err := net.Dial("tcp", a.Addr().String())
	require.NoError(t, err)
	defer conn1.Close()

	require.Eventually(t, func() bool {
		return tb.Active() == 1
	}, time.Second, 10*time.Millisecond)

	conn2, err := net.Dial("tcp", a.Addr().String())
	require.NoError(t, err)
	defer conn2.Close()

	buf := make([]byte, 1)
	conn2.SetReadDeadline(time.Now().Add(time.Second))
	_, err = conn2.Read(buf)
	require.Error(t, err) // closed immediately by the Acceptor
}

func TestStopEndsServe(t *testing.T) {
	tb := broadcast.New(broadcast.Config{Capacity: 4})
	a, err := Listen("127.0.0.1:0", tb)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Serve() }()

	a.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}
