package dispatch

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Timer fires a handler on the loop at a fixed period. Expirations
// that pile up while the loop is busy coalesce rather than queue
// without bound.
type Timer struct {
	loop    *Loop
	ticker  *time.Ticker
	pending int32
	stop    chan struct{}

	closeOnce sync.Once
}

// AddTimer registers a periodic timer on the loop. Each expiration
// queues one invocation of h.
func (l *Loop) AddTimer(period time.Duration, h TimerHandler) (*Timer, error) {
	if period <= 0 {
		return nil, fmt.Errorf("invalid timer period %v", period)
	}
	if h == nil {
		return nil, errors.New("timer handler required")
	}
	t := &Timer{
		loop:   l,
		ticker: time.NewTicker(period),
		stop:   make(chan struct{}),
	}
	go t.run(h)
	return t, nil
}

// Consume acknowledges one expiration. Handlers call it first; a
// handler that runs with no expiration pending gets ErrNoTick.
func (t *Timer) Consume() error {
	if atomic.AddInt32(&t.pending, -1) < 0 {
		atomic.AddInt32(&t.pending, 1)
		return ErrNoTick
	}
	return nil
}

// Close stops the timer. A tick already queued on the loop may still
// be dispatched. Close is idempotent.
func (t *Timer) Close() error {
	t.closeOnce.Do(func() {
		close(t.stop)
		t.ticker.Stop()
	})
	return nil
}

func (t *Timer) run(h TimerHandler) {
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			atomic.AddInt32(&t.pending, 1)
			t.loop.post(func() {
				h.HandleTimer(t)
			})
		}
	}
}
