package dispatch

import (
	"errors"
	"sync"
)

// Registration binds a readiness channel to the loop. It stays active
// until closed or until the watched channel is closed by its producer.
type Registration struct {
	stop chan struct{}

	closeOnce sync.Once
}

// AddReader registers a readiness source. Every value received from ch
// queues one invocation of h; closing ch ends the registration.
func (l *Loop) AddReader(ch <-chan struct{}, h Handler) (*Registration, error) {
	if ch == nil {
		return nil, errors.New("readiness channel required")
	}
	if h == nil {
		return nil, errors.New("event handler required")
	}
	r := &Registration{stop: make(chan struct{})}
	go r.run(l, ch, h)
	return r, nil
}

// Close unregisters the source. An event already queued may still be
// dispatched. Close is idempotent.
func (r *Registration) Close() error {
	r.closeOnce.Do(func() {
		close(r.stop)
	})
	return nil
}

func (r *Registration) run(l *Loop, ch <-chan struct{}, h Handler) {
	for {
		select {
		case <-r.stop:
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			l.post(func() {
				h.HandleEvent()
			})
		}
	}
}
