package comm

import (
	"sync"
	"time"

	"github.com/golang/glog"
)

// MsgQueue buffers inbound messages for transports which receive on a
// goroutine of their own (broker callbacks, frame pumps). Push copies
// the payload; Pop moves one message into a receive buffer, truncating
// to its size.
type MsgQueue struct {
	msgs     chan []byte
	readable chan struct{}
	closed   chan struct{}

	lock sync.Mutex
	done bool
}

// NewMsgQueue creates a MsgQueue holding up to depth messages.
func NewMsgQueue(depth int) *MsgQueue {
	return &MsgQueue{
		msgs:     make(chan []byte, depth),
		readable: make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
}

// Push queues one inbound message. Messages beyond the queue depth are
// dropped rather than blocking the transport's receive path.
func (q *MsgQueue) Push(payload []byte) error {
	select {
	case <-q.closed:
		return ErrClosed
	default:
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	select {
	case q.msgs <- cp:
	default:
		glog.Warningf("inbound queue full, message dropped (%d bytes)", len(payload))
		return nil
	}
	q.notify()
	return nil
}

// Pop moves one message into buf, truncating to len(buf) with the
// excess discarded. A zero timeout waits indefinitely.
func (q *MsgQueue) Pop(buf []byte, timeout time.Duration) (int, error) {
	// drain queued messages even if the queue was closed meanwhile
	select {
	case msg := <-q.msgs:
		return q.deliver(buf, msg), nil
	default:
	}
	var expire <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expire = t.C
	}
	select {
	case msg := <-q.msgs:
		return q.deliver(buf, msg), nil
	case <-expire:
		return 0, ErrRecvTimeout
	case <-q.closed:
		return 0, ErrClosed
	}
}

// Readable exposes the readiness notification channel.
func (q *MsgQueue) Readable() <-chan struct{} {
	return q.readable
}

// Close releases the queue and closes the readiness channel.
// Idempotent.
func (q *MsgQueue) Close() {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.done {
		return
	}
	q.done = true
	close(q.closed)
	close(q.readable)
}

func (q *MsgQueue) deliver(buf, msg []byte) int {
	if len(q.msgs) > 0 {
		// more messages pending, renew the readiness notification
		q.notify()
	}
	return copy(buf, msg)
}

func (q *MsgQueue) notify() {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.done {
		return
	}
	select {
	case q.readable <- struct{}{}:
	default:
	}
}
