package dispatch

import (
	"sync"
)

const eventBacklog = 8

// Loop owns a queue of ready events and dispatches them one at a time.
// All handlers run on the goroutine calling Dispatch.
type Loop struct {
	events chan func()
	intrCh chan struct{}
	closed chan struct{}

	closeOnce sync.Once
}

// New creates an empty event loop with no registered sources.
func New() (*Loop, error) {
	return &Loop{
		events: make(chan func(), eventBacklog),
		intrCh: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}, nil
}

// Dispatch waits until one event fires, runs its handler to completion
// and returns nil. It returns ErrInterrupted when woken by Interrupt
// before an event fired, and ErrClosed once the loop is closed.
func (l *Loop) Dispatch() error {
	select {
	case <-l.closed:
		return ErrClosed
	default:
	}
	select {
	case fn := <-l.events:
		fn()
		return nil
	case <-l.intrCh:
		return ErrInterrupted
	case <-l.closed:
		return ErrClosed
	}
}

// Interrupt wakes a blocked Dispatch without delivering an event.
// It never blocks and is safe to call from any goroutine, so it can be
// used from signal watchers. Interrupts coalesce: waking once is
// enough, extra calls before the next Dispatch are absorbed.
func (l *Loop) Interrupt() {
	select {
	case l.intrCh <- struct{}{}:
	default:
	}
}

// Close releases the loop. Registered sources are owned by their
// creators and must be closed separately. Close is idempotent.
func (l *Loop) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)
	})
	return nil
}

// post queues one bound callback, blocking the source goroutine until
// the loop has room. A closed loop discards the event.
func (l *Loop) post(fn func()) {
	select {
	case l.events <- fn:
	case <-l.closed:
	}
}
