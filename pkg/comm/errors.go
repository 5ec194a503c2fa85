package comm

import "errors"

var (
	// ErrClosed indicates the channel endpoint has been closed.
	ErrClosed = errors.New("channel closed")
	// ErrNoPeer is returned by Send on a listening endpoint before
	// any inbound message identified the peer.
	ErrNoPeer = errors.New("no peer")
	// ErrListenerClosed is returned by Accept after Close.
	ErrListenerClosed = errors.New("listener closed")
	// ErrRecvTimeout indicates no message arrived within the receive
	// timeout.
	ErrRecvTimeout error = timeoutError{}
)

type timeoutError struct{}

// Error implements error.
func (timeoutError) Error() string { return "receive timeout" }

// Timeout marks the error for net.Error style classification.
func (timeoutError) Timeout() bool { return true }
