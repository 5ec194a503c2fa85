package dispatch

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimerDispatch(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	var consumeErr error
	fired := 0
	timer, err := loop.AddTimer(10*time.Millisecond, HandleTimerFunc(func(tm *Timer) {
		consumeErr = tm.Consume()
		fired++
	}))
	require.NoError(t, err)
	defer timer.Close()

	require.NoError(t, loop.Dispatch())
	require.Equal(t, 1, fired)
	require.NoError(t, consumeErr)
}

func TestConsumeWithoutPendingTick(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	timer, err := loop.AddTimer(time.Hour, HandleTimerFunc(func(*Timer) {}))
	require.NoError(t, err)
	defer timer.Close()

	require.ErrorIs(t, timer.Consume(), ErrNoTick)
}

func TestInterrupt(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	loop.Interrupt()
	err = loop.Dispatch()
	require.ErrorIs(t, err, ErrInterrupted)
	require.ErrorIs(t, err, syscall.EINTR)
}

func TestInterruptsCoalesce(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	loop.Interrupt()
	loop.Interrupt()
	loop.Interrupt()
	require.ErrorIs(t, loop.Dispatch(), ErrInterrupted)

	// a single pending interrupt was absorbed; the next wait sees events
	ready := make(chan struct{}, 1)
	handled := 0
	reg, err := loop.AddReader(ready, HandleEventFunc(func() { handled++ }))
	require.NoError(t, err)
	defer reg.Close()
	ready <- struct{}{}
	require.NoError(t, loop.Dispatch())
	require.Equal(t, 1, handled)
}

func TestReaderOneHandlerPerDispatch(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	ready := make(chan struct{}, 2)
	handled := 0
	reg, err := loop.AddReader(ready, HandleEventFunc(func() { handled++ }))
	require.NoError(t, err)
	defer reg.Close()

	ready <- struct{}{}
	ready <- struct{}{}
	require.NoError(t, loop.Dispatch())
	require.Equal(t, 1, handled)
	require.NoError(t, loop.Dispatch())
	require.Equal(t, 2, handled)
}

func TestReaderSourceClosed(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	ready := make(chan struct{})
	handled := 0
	reg, err := loop.AddReader(ready, HandleEventFunc(func() { handled++ }))
	require.NoError(t, err)
	defer reg.Close()

	close(ready)
	// the source stops silently without queuing anything
	loop.Interrupt()
	require.ErrorIs(t, loop.Dispatch(), ErrInterrupted)
	require.Equal(t, 0, handled)
}

func TestDispatchAfterClose(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	require.NoError(t, loop.Close())
	require.NoError(t, loop.Close())
	require.ErrorIs(t, loop.Dispatch(), ErrClosed)
}

func TestSourceRegistrationErrors(t *testing.T) {
	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	_, err = loop.AddTimer(0, HandleTimerFunc(func(*Timer) {}))
	require.Error(t, err)
	_, err = loop.AddTimer(time.Second, nil)
	require.Error(t, err)
	_, err = loop.AddReader(nil, HandleEventFunc(func() {}))
	require.Error(t, err)
	_, err = loop.AddReader(make(chan struct{}), nil)
	require.Error(t, err)
}
