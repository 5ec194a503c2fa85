package comm

import (
	"context"
	"sync"
)

// NewSingleListener wraps one established channel as a Listener whose
// Accept yields it exactly once. Datagram and broker transports have
// no per-connection accept step, so the bound endpoint is the session.
func NewSingleListener(addr string, ch Channel) Listener {
	l := &singleListener{
		addr:     addr,
		ch:       ch,
		accepted: make(chan Channel, 1),
		closed:   make(chan struct{}),
	}
	l.accepted <- ch
	return l
}

type singleListener struct {
	addr     string
	ch       Channel
	accepted chan Channel
	closed   chan struct{}

	closeOnce sync.Once
}

// Accept implements Listener.
func (l *singleListener) Accept(ctx context.Context) (Channel, error) {
	select {
	case ch := <-l.accepted:
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, ErrListenerClosed
	}
}

// Addr implements Listener.
func (l *singleListener) Addr() string {
	return l.addr
}

// Close implements Listener. The wrapped channel is closed as well.
func (l *singleListener) Close() (err error) {
	l.closeOnce.Do(func() {
		close(l.closed)
		err = l.ch.Close()
	})
	return
}
