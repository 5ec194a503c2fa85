package sim

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/intercore.go/pkg/comm"
)

type companionTestEnv struct {
	t         *testing.T
	companion *Companion
	peer      comm.Channel
	cancel    context.CancelFunc
}

func newCompanionTestEnv(t *testing.T, autoReply bool) *companionTestEnv {
	hlEnd, rtEnd := comm.Pipe()
	env := &companionTestEnv{
		t:         t,
		companion: NewCompanion(autoReply),
		peer:      hlEnd,
	}
	var ctx context.Context
	ctx, env.cancel = context.WithCancel(context.Background())
	lis := comm.NewSingleListener("pipe", rtEnd)
	go env.companion.Serve(ctx, lis)
	t.Cleanup(func() {
		env.cancel()
		lis.Close()
		hlEnd.Close()
	})
	return env
}

func (e *companionTestEnv) recvText() string {
	e.t.Helper()
	select {
	case <-e.peer.Readable():
	case <-time.After(2 * time.Second):
		e.t.Fatal("timeout waiting for readiness")
	}
	var buf [recvBufSize]byte
	n, err := e.peer.Recv(buf[:])
	require.NoError(e.t, err)
	return string(buf[:n])
}

func TestAutoReplyCounterWraps(t *testing.T) {
	env := newCompanionTestEnv(t, true)

	for i := 0; i < 102; i++ {
		require.NoError(t, env.peer.Send([]byte("hl-app-to-rt-app-adding00")))
		require.Equal(t, fmt.Sprintf("rt-app-to-hl-app-%02d", i%100), env.recvText())
	}
}

func TestAutoReplyOff(t *testing.T) {
	env := newCompanionTestEnv(t, false)

	require.NoError(t, env.peer.Send([]byte("ping")))
	select {
	case <-env.peer.Readable():
		t.Fatal("unexpected reply")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRebootSendsExactSentinel(t *testing.T) {
	env := newCompanionTestEnv(t, true)

	// a first exchange establishes the peer
	require.NoError(t, env.peer.Send([]byte("hello")))
	env.recvText()

	require.NoError(t, env.companion.Reboot())
	reply := env.recvText()
	require.Equal(t, "reboot!!", reply)
	require.Len(t, []byte(reply), 8)
}

func TestSendWithoutPeer(t *testing.T) {
	companion := NewCompanion(false)
	require.ErrorIs(t, companion.Send("x"), comm.ErrNoPeer)
}
