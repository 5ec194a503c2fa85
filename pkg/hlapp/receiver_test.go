package hlapp

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/intercore.go/pkg/comm"
)

func TestIsRebootRequest(t *testing.T) {
	testCases := []struct {
		name    string
		payload []byte
		match   bool
	}{
		{"exact", []byte("reboot!!"), true},
		{"empty", nil, false},
		{"zero length", []byte{}, false},
		{"prefix", []byte("reboot!"), false},
		{"extended", []byte("reboot!!!"), false},
		{"one byte off", []byte("reboot!?"), false},
		{"case differs", []byte("Reboot!!"), false},
		{"same length", []byte("restart!"), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.match, IsRebootRequest(tc.payload))
		})
	}
}

func TestReceiverClassifies(t *testing.T) {
	appEnd, testEnd := comm.Pipe()
	defer appEnd.Close()
	defer testEnd.Close()

	var status StatusFlag
	receiver := &Receiver{Channel: appEnd, Status: &status}

	require.NoError(t, testEnd.Send([]byte("rt-app-to-hl-app-00")))
	receiver.HandleEvent()
	require.Equal(t, Success, status.Get())

	require.NoError(t, testEnd.Send([]byte("reboot!!")))
	receiver.HandleEvent()
	require.Equal(t, SimReboot, status.Get())
}

func TestReceiverZeroLengthRead(t *testing.T) {
	appEnd, testEnd := comm.Pipe()
	defer appEnd.Close()
	defer testEnd.Close()

	var status StatusFlag
	receiver := &Receiver{Channel: appEnd, Status: &status}

	// an empty message is a valid no-op event, not a disconnect
	require.NoError(t, testEnd.Send(nil))
	receiver.HandleEvent()
	require.Equal(t, Success, status.Get())
}

func TestReceiverTruncatesToBuffer(t *testing.T) {
	appEnd, testEnd := comm.Pipe()
	defer appEnd.Close()
	defer testEnd.Close()

	var status StatusFlag
	receiver := &Receiver{Channel: appEnd, Status: &status}

	long := append([]byte("reboot!!"), bytes.Repeat([]byte{'x'}, recvBufSize)...)
	require.NoError(t, testEnd.Send(long))
	receiver.HandleEvent()
	// the truncated 32 bytes are not the 8-byte sentinel
	require.Equal(t, Success, status.Get())
}

func TestReceiverRecvFailure(t *testing.T) {
	appEnd, testEnd := comm.Pipe()
	defer appEnd.Close()
	defer testEnd.Close()

	require.NoError(t, appEnd.SetRecvTimeout(10*time.Millisecond))
	var status StatusFlag
	receiver := &Receiver{Channel: appEnd, Status: &status}

	receiver.HandleEvent()
	require.Equal(t, RecvFailed, status.Get())
}
