package dispatch

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrInterrupted is returned by Dispatch when the wait was woken by
	// Interrupt before any event fired. It wraps syscall.EINTR so
	// callers can treat it like an interrupted system call and retry.
	ErrInterrupted = fmt.Errorf("dispatch interrupted: %w", syscall.EINTR)

	// ErrClosed is returned by Dispatch after Close.
	ErrClosed = errors.New("event loop closed")

	// ErrNoTick is returned by Timer.Consume when no expiration is
	// pending, meaning the handler ran without a matching tick.
	ErrNoTick = errors.New("no timer event pending")
)
