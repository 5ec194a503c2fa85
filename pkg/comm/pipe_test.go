package comm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitReadable(t *testing.T, ch Channel) {
	t.Helper()
	select {
	case <-ch.Readable():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for readiness")
	}
}

func TestPipeRoundTrip(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.Send([]byte("ping")))
	waitReadable(t, b)
	var buf [32]byte
	n, err := b.Recv(buf[:])
	require.NoError(t, err)
	require.Equal(t, "ping", string(buf[:n]))

	require.NoError(t, b.Send([]byte("pong")))
	waitReadable(t, a)
	n, err = a.Recv(buf[:])
	require.NoError(t, err)
	require.Equal(t, "pong", string(buf[:n]))
}

func TestPipeTruncation(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.Send([]byte("0123456789")))
	require.NoError(t, a.Send([]byte("next")))

	var buf [4]byte
	waitReadable(t, b)
	n, err := b.Recv(buf[:])
	require.NoError(t, err)
	require.Equal(t, "0123", string(buf[:n]))

	// the excess is discarded, not delivered to the next receive
	waitReadable(t, b)
	n, err = b.Recv(buf[:])
	require.NoError(t, err)
	require.Equal(t, "next", string(buf[:n]))
}

func TestPipeZeroLengthMessage(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.Send(nil))
	waitReadable(t, b)
	var buf [8]byte
	n, err := b.Recv(buf[:])
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestPipeRecvTimeout(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	require.NoError(t, b.SetRecvTimeout(20*time.Millisecond))
	var buf [8]byte
	_, err := b.Recv(buf[:])
	require.ErrorIs(t, err, ErrRecvTimeout)
	nerr, ok := err.(interface{ Timeout() bool })
	require.True(t, ok)
	require.True(t, nerr.Timeout())
}

func TestPipeClosedPeer(t *testing.T) {
	a, b := Pipe()
	defer a.Close()

	require.NoError(t, b.Close())
	require.ErrorIs(t, a.Send([]byte("x")), ErrClosed)

	_, ok := <-b.Readable()
	require.False(t, ok, "readiness channel stays open after close")
}

func TestPipeDrainsAfterClose(t *testing.T) {
	a, b := Pipe()
	defer a.Close()

	require.NoError(t, a.Send([]byte("last")))
	require.NoError(t, b.Close())
	var buf [8]byte
	n, err := b.Recv(buf[:])
	require.NoError(t, err)
	require.Equal(t, "last", string(buf[:n]))
	_, err = b.Recv(buf[:])
	require.ErrorIs(t, err, ErrClosed)
}

func TestPrintableString(t *testing.T) {
	testCases := []struct {
		name    string
		payload []byte
		expect  string
	}{
		{"plain ascii", []byte("reboot!!"), "reboot!!"},
		{"control bytes", []byte{'o', 'k', 0, '\n', 0x1f}, "ok..."},
		{"high bytes", []byte{0x7e, 0x7f, 0xff}, "~.."},
		{"empty", nil, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, PrintableString(tc.payload))
		})
	}
}
