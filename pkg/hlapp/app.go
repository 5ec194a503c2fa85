// Package hlapp implements the high-level application exchanging
// periodic messages with the real-time companion application.
package hlapp

import (
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/intercore.go/pkg/comm"
	"github.com/robotalks/intercore.go/pkg/dispatch"
)

// App owns the run cycle: initialization, the blocking dispatch loop,
// shutdown, and the top-level restart decision.
type App struct {
	Config Config

	status StatusFlag
	term   StatusFlag

	loop    atomic.Pointer[dispatch.Loop]
	timer   *dispatch.Timer
	reg     *dispatch.Registration
	channel comm.Channel
}

// Terminate requests termination. Safe from any execution context at
// any time: it performs one atomic status store per flag and one
// non-blocking loop wakeup, nothing else.
func (a *App) Terminate() {
	a.term.Set(TermSignal)
	a.status.Set(TermSignal)
	if l := a.loop.Load(); l != nil {
		l.Interrupt()
	}
}

// WatchSignals captures SIGTERM and translates it into Terminate.
func (a *App) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	go func() {
		for range sigCh {
			a.Terminate()
		}
	}()
}

// RunCycle performs one Initializing -> Running -> ShuttingDown pass
// and returns the terminal code. Each cycle starts with a fresh
// dispatcher, a fresh channel and the outbound counter at zero.
func (a *App) RunCycle() ExitCode {
	a.status.Set(Success)
	if a.term.Get() != Success {
		// a termination request raced the cycle start; still run the
		// shutdown path exactly once below
		a.status.Set(TermSignal)
	}
	glog.Info("cycle starting")

	loop, err := dispatch.New()
	if err != nil {
		glog.Errorf("cannot create event loop: %v", err)
		return InitEventLoop
	}
	a.loop.Store(loop)
	defer a.shutdown()

	sender := &Sender{Status: &a.status}
	if a.timer, err = loop.AddTimer(a.Config.SendPeriod, sender); err != nil {
		glog.Errorf("cannot register send timer: %v", err)
		return InitSendTimer
	}

	if a.channel, err = a.Config.dial(); err != nil {
		glog.Errorf("cannot connect companion %q: %v", a.Config.ComponentID, err)
		return InitConnection
	}
	sender.Channel = a.channel
	glog.Infof("connected companion %q", a.Config.ComponentID)

	if err = a.channel.SetRecvTimeout(a.Config.RecvTimeout); err != nil {
		glog.Errorf("cannot set receive timeout: %v", err)
		return InitSockOpt
	}

	receiver := &Receiver{Channel: a.channel, Status: &a.status}
	if a.reg, err = loop.AddReader(a.channel.Readable(), receiver); err != nil {
		glog.Errorf("cannot register readiness watch: %v", err)
		return InitRegisterIo
	}

	for a.status.Get() == Success {
		if err := loop.Dispatch(); err != nil {
			if errors.Is(err, syscall.EINTR) {
				// interrupted wait, not a failure
				continue
			}
			glog.Errorf("dispatch failed: %v", err)
			a.status.Set(LoopFailed)
		}
	}
	return a.status.Get()
}

// Main runs cycles until a terminal condition other than SimReboot,
// pausing the reboot duration between cycles. The returned code is
// meant to become the process exit status; SimReboot never escapes.
func (a *App) Main() ExitCode {
	for {
		code := a.RunCycle()
		glog.Infof("cycle finished: %s (%d)", code, int(code))
		if code != SimReboot {
			return code
		}
		glog.Infof("simulating reboot, pausing %v", a.Config.RebootPause)
		time.Sleep(a.Config.RebootPause)
		if a.term.Get() != Success {
			// termination arrived during the pause; do not re-init
			return TermSignal
		}
	}
}

// shutdown releases whatever the cycle created, in registration
// order. Close errors are logged, never failed on. Resources never
// created are left alone.
func (a *App) shutdown() {
	glog.Info("shutting down")
	if a.reg != nil {
		if err := a.reg.Close(); err != nil {
			glog.Errorf("close readiness watch: %v", err)
		}
		a.reg = nil
	}
	if a.timer != nil {
		if err := a.timer.Close(); err != nil {
			glog.Errorf("close send timer: %v", err)
		}
		a.timer = nil
	}
	if loop := a.loop.Swap(nil); loop != nil {
		if err := loop.Close(); err != nil {
			glog.Errorf("close event loop: %v", err)
		}
	}
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			glog.Errorf("close channel: %v", err)
		}
		a.channel = nil
	}
}
