package hlapp

import "sync/atomic"

// ExitCode enumerates the terminal conditions of a run cycle. Values
// double as the process exit status.
type ExitCode int

// Exit codes. Success also means "still running" while the dispatch
// loop is live: the loop keeps going until the status leaves Success.
const (
	Success ExitCode = iota
	TermSignal
	TimerConsume
	SendFailed
	RecvFailed
	InitEventLoop
	InitSendTimer
	InitConnection
	InitSockOpt
	InitRegisterIo
	LoopFailed
	SimReboot
)

var exitCodeNames = map[ExitCode]string{
	Success:        "success",
	TermSignal:     "termination requested",
	TimerConsume:   "timer event consume failed",
	SendFailed:     "send failed",
	RecvFailed:     "receive failed",
	InitEventLoop:  "event loop init failed",
	InitSendTimer:  "send timer registration failed",
	InitConnection: "companion connect failed",
	InitSockOpt:    "receive timeout setup failed",
	InitRegisterIo: "readiness registration failed",
	LoopFailed:     "dispatch failed",
	SimReboot:      "simulated reboot requested",
}

// String implements fmt.Stringer.
func (c ExitCode) String() string {
	if name, ok := exitCodeNames[c]; ok {
		return name
	}
	return "unknown"
}

// StatusFlag is the shared run status. It is written from callbacks on
// the dispatch goroutine and from the asynchronous termination
// capture, so access is a single atomic word.
type StatusFlag struct {
	code int32
}

// Set stores the status. Safe from any goroutine at any time.
func (f *StatusFlag) Set(c ExitCode) {
	atomic.StoreInt32(&f.code, int32(c))
}

// Get loads the status.
func (f *StatusFlag) Get() ExitCode {
	return ExitCode(atomic.LoadInt32(&f.code))
}
