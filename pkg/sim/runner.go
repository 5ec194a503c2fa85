package sim

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
)

// RunFunc is one background serve loop.
type RunFunc func(context.Context) error

// Runner runs the simulator's serve loops and collects their errors.
type Runner struct {
	Context context.Context
	Cancel  context.CancelFunc

	count  int
	errCh  chan error
	exitCh chan struct{}
}

// NewRunner creates a Runner with a cancelable background context.
func NewRunner() *Runner {
	r := &Runner{
		errCh:  make(chan error, 1),
		exitCh: make(chan struct{}),
	}
	r.Context, r.Cancel = context.WithCancel(context.Background())
	return r
}

// HandleSignals translates CtrlC and SIGTERM into context
// cancellation. A second signal forces exit.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		glog.Info("stop requested")
		r.Cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go spawns serve loops.
func (r *Runner) Go(name string, fn RunFunc) *Runner {
	r.count++
	glog.V(4).Infof("start serve[%s]", name)
	go func() {
		r.errCh <- fn(r.Context)
		glog.V(4).Infof("serve[%s] stopped", name)
	}()
	return r
}

// Wait waits until all serve loops stop and joins their errors.
// Cancellation is not an error.
func (r *Runner) Wait() error {
	var errs []error
	for i := 0; i < r.count; i++ {
		select {
		case <-r.exitCh:
			return errors.New("forced exit")
		case err := <-r.errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
