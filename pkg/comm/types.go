package comm

import (
	"context"
	"time"
)

// Channel is a bidirectional message endpoint to a companion
// application.
type Channel interface {
	// Send writes one outbound message.
	Send(payload []byte) error
	// Recv reads one inbound message into buf and returns the number
	// of bytes stored. A message longer than buf is truncated and the
	// excess discarded. A zero-length message yields (0, nil).
	Recv(buf []byte) (int, error)
	// SetRecvTimeout bounds every subsequent Recv. Zero disables the
	// timeout.
	SetRecvTimeout(d time.Duration) error
	// Readable notifies when a message is waiting to be received.
	// Notifications coalesce. The channel is closed on teardown.
	Readable() <-chan struct{}
	// Close releases the endpoint.
	Close() error
}

// Listener yields inbound channels on the companion side.
type Listener interface {
	Accept(context.Context) (Channel, error)
	Addr() string
	Close() error
}
