// Package websocket provides the companion channel over WebSocket
// binary messages.
package websocket

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/intercore.go/pkg/comm"
)

const inboundDepth = 16

// Dial connects to a companion WebSocket endpoint.
func Dial(endpoint string) (comm.Channel, error) {
	conn, err := websocket.Dial(endpoint, "", originFor(endpoint))
	if err != nil {
		return nil, err
	}
	return newChannel(conn), nil
}

func originFor(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "http://localhost/"
	}
	return "http://" + u.Host + "/"
}

type channel struct {
	conn    *websocket.Conn
	inbound *comm.MsgQueue
	done    chan struct{}

	recvTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

func newChannel(conn *websocket.Conn) *channel {
	c := &channel{
		conn:    conn,
		inbound: comm.NewMsgQueue(inboundDepth),
		done:    make(chan struct{}),
	}
	go c.pump()
	return c
}

// pump moves frames from the connection into the inbound queue. When
// the peer goes away the queue is closed, which closes the readiness
// channel seen by the consumer.
func (c *channel) pump() {
	defer c.inbound.Close()
	for {
		var payload []byte
		if err := websocket.Message.Receive(c.conn, &payload); err != nil {
			return
		}
		c.inbound.Push(payload)
	}
}

// Send implements comm.Channel.
func (c *channel) Send(payload []byte) error {
	return websocket.Message.Send(c.conn, payload)
}

// Recv implements comm.Channel.
func (c *channel) Recv(buf []byte) (int, error) {
	return c.inbound.Pop(buf, c.recvTimeout)
}

// SetRecvTimeout implements comm.Channel.
func (c *channel) SetRecvTimeout(d time.Duration) error {
	c.recvTimeout = d
	return nil
}

// Readable implements comm.Channel.
func (c *channel) Readable() <-chan struct{} {
	return c.inbound.Readable()
}

// Close implements comm.Channel.
func (c *channel) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
		c.inbound.Close()
		close(c.done)
	})
	return c.closeErr
}

// Listen serves companion WebSocket channels at ws://host:port/path.
// Every connecting client becomes one accepted channel.
func Listen(endpoint string) (comm.Listener, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	l := &listener{
		addr:     endpoint,
		accepted: make(chan comm.Channel, 4),
		closed:   make(chan struct{}),
	}
	mux := http.NewServeMux()
	mux.Handle(path, websocket.Handler(l.serve))
	l.server = &http.Server{Handler: mux}
	ln, err := net.Listen("tcp", u.Host)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := l.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			glog.Errorf("websocket listener %s: %v", endpoint, err)
		}
	}()
	return l, nil
}

type listener struct {
	addr     string
	server   *http.Server
	accepted chan comm.Channel
	closed   chan struct{}

	closeOnce sync.Once
}

// serve keeps the handler alive until the channel is released, as the
// websocket package closes the connection when the handler returns.
func (l *listener) serve(conn *websocket.Conn) {
	ch := newChannel(conn)
	select {
	case l.accepted <- ch:
	case <-l.closed:
		ch.Close()
		return
	}
	select {
	case <-ch.done:
	case <-l.closed:
	}
}

// Accept implements comm.Listener.
func (l *listener) Accept(ctx context.Context) (comm.Channel, error) {
	select {
	case ch := <-l.accepted:
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, comm.ErrListenerClosed
	}
}

// Addr implements comm.Listener.
func (l *listener) Addr() string {
	return l.addr
}

// Close implements comm.Listener.
func (l *listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)
	})
	return l.server.Close()
}
