// Package local provides the companion channel over Unix datagram
// sockets. The companion identifier names the socket file under the
// socket directory.
package local

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/intercore.go/pkg/comm"
)

// DefaultSocketDir is where companion sockets live.
const DefaultSocketDir = "/tmp/intercore"

// SocketDir locates companion sockets. Overridable through
// INTERCORE_SOCKET_DIR for tests and non-default deployments.
var SocketDir = DefaultSocketDir

func init() {
	if val := os.Getenv("INTERCORE_SOCKET_DIR"); val != "" {
		SocketDir = val
	}
}

// SocketPath resolves a companion identifier to its socket file.
func SocketPath(id string) string {
	return filepath.Join(SocketDir, id+".sock")
}

var dialSeq uint32

// Dial connects to the companion identified by id. A local socket is
// bound as well so replies can flow back.
func Dial(id string) (comm.Channel, error) {
	if err := os.MkdirAll(SocketDir, 0o755); err != nil {
		return nil, err
	}
	laddr := &net.UnixAddr{
		Name: filepath.Join(SocketDir,
			fmt.Sprintf("%s.%d.%d.sock", id, os.Getpid(), atomic.AddUint32(&dialSeq, 1))),
		Net: "unixgram",
	}
	raddr := &net.UnixAddr{Name: SocketPath(id), Net: "unixgram"}
	os.Remove(laddr.Name)
	conn, err := net.DialUnix("unixgram", laddr, raddr)
	if err != nil {
		return nil, err
	}
	return newChannel(conn, laddr.Name, true), nil
}

// Listen binds the companion socket for id. The listener yields a
// single datagram channel; the peer is whoever sent the last message.
func Listen(id string) (comm.Listener, error) {
	if err := os.MkdirAll(SocketDir, 0o755); err != nil {
		return nil, err
	}
	path := SocketPath(id)
	os.Remove(path)
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		return nil, err
	}
	return comm.NewSingleListener(path, newChannel(conn, path, false)), nil
}

type channel struct {
	conn      *net.UnixConn
	localPath string
	connected bool

	recvTimeout time.Duration

	peerLock sync.RWMutex
	peer     *net.UnixAddr // listening side only

	readable chan struct{}
	recvDone chan struct{}
	closed   chan struct{}

	closeOnce sync.Once
}

func newChannel(conn *net.UnixConn, localPath string, connected bool) *channel {
	c := &channel{
		conn:      conn,
		localPath: localPath,
		connected: connected,
		readable:  make(chan struct{}),
		recvDone:  make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
	go c.watch()
	return c
}

// Send implements comm.Channel.
func (c *channel) Send(payload []byte) error {
	if c.connected {
		_, err := c.conn.Write(payload)
		return err
	}
	c.peerLock.RLock()
	peer := c.peer
	c.peerLock.RUnlock()
	if peer == nil {
		return comm.ErrNoPeer
	}
	_, err := c.conn.WriteToUnix(payload, peer)
	return err
}

// Recv implements comm.Channel. One datagram per call; a datagram
// longer than buf is truncated by the socket with the excess dropped.
func (c *channel) Recv(buf []byte) (n int, err error) {
	if d := c.recvTimeout; d > 0 {
		c.conn.SetReadDeadline(time.Now().Add(d))
	} else {
		c.conn.SetReadDeadline(time.Time{})
	}
	if c.connected {
		n, err = c.conn.Read(buf)
	} else {
		var addr *net.UnixAddr
		n, addr, err = c.conn.ReadFromUnix(buf)
		if addr != nil {
			c.peerLock.Lock()
			c.peer = addr
			c.peerLock.Unlock()
		}
	}
	select {
	case c.recvDone <- struct{}{}:
	default:
	}
	return
}

// SetRecvTimeout implements comm.Channel.
func (c *channel) SetRecvTimeout(d time.Duration) error {
	c.recvTimeout = d
	return nil
}

// Readable implements comm.Channel.
func (c *channel) Readable() <-chan struct{} {
	return c.readable
}

// Close implements comm.Channel. The bound socket file is removed.
func (c *channel) Close() (err error) {
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
		if c.localPath != "" {
			os.Remove(c.localPath)
		}
	})
	return
}

// watch waits for the socket to become readable without consuming any
// data, notifies, then waits for a Recv before re-arming. The raw wait
// shares the connection's read deadline with Recv: a deadline left
// behind by a timed Recv would expire the wait instantly, so the
// timeout branch clears it before re-arming. No read is in flight at
// that point — Recv only runs after a readiness notification, and the
// next Recv re-applies its own per-call deadline.
func (c *channel) watch() {
	defer close(c.readable)
	rc, err := c.conn.SyscallConn()
	if err != nil {
		glog.Errorf("socket readiness watch unavailable: %v", err)
		return
	}
	for {
		waited := false
		err := rc.Read(func(uintptr) bool {
			if waited {
				return true
			}
			waited = true
			return false
		})
		if err != nil {
			if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
				c.conn.SetReadDeadline(time.Time{})
				continue
			}
			return
		}
		select {
		case c.readable <- struct{}{}:
		case <-c.closed:
			return
		}
		select {
		case <-c.recvDone:
		case <-c.closed:
			return
		}
	}
}
