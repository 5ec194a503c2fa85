package connect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/intercore.go/pkg/comm/local"
)

func TestUnknownScheme(t *testing.T) {
	_, err := Dial("foo://localhost/x")
	require.Error(t, err)
	require.Contains(t, err.Error(), `"foo"`)

	_, err = Listen("foo://localhost/x")
	require.Error(t, err)
	require.Contains(t, err.Error(), `"foo"`)
}

func TestBareIdentifierIsLocal(t *testing.T) {
	old := local.SocketDir
	local.SocketDir = t.TempDir()
	t.Cleanup(func() { local.SocketDir = old })

	const id = "005180bc-402f-4cb3-a662-72937dbcde47"
	lis, err := Listen(id)
	require.NoError(t, err)
	defer lis.Close()
	require.Equal(t, local.SocketPath(id), lis.Addr())

	ch, err := Dial(id)
	require.NoError(t, err)
	defer ch.Close()
	server, err := lis.Accept(context.Background())
	require.NoError(t, err)

	require.NoError(t, ch.Send([]byte("probe")))
	select {
	case <-server.Readable():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for readiness")
	}
	var buf [32]byte
	n, err := server.Recv(buf[:])
	require.NoError(t, err)
	require.Equal(t, "probe", string(buf[:n]))
}
