// Package sim provides a simulator for the real-time companion
// application: it serves companion endpoints, logs received messages
// and replies with its own cycling counter.
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/intercore.go/pkg/comm"
)

const replyTemplate = "rt-app-to-hl-app-%02d"

const recvBufSize = 256

// RebootMessage is the sentinel the high-level application recognizes
// as a simulated-reboot request.
const RebootMessage = "reboot!!"

// Companion simulates the real-time application. It serves channels
// accepted from listeners; the most recent channel is the peer for
// ad-hoc sends.
type Companion struct {
	lock      sync.Mutex
	autoReply bool
	counter   int
	peer      comm.Channel
}

// NewCompanion creates a Companion.
func NewCompanion(autoReply bool) *Companion {
	return &Companion{autoReply: autoReply}
}

// SetAutoReply switches automatic replies on or off.
func (c *Companion) SetAutoReply(en bool) {
	c.lock.Lock()
	c.autoReply = en
	c.lock.Unlock()
}

// AutoReply reports whether automatic replies are on.
func (c *Companion) AutoReply() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.autoReply
}

// Serve accepts channels from the listener until the context is
// canceled or the listener closes.
func (c *Companion) Serve(ctx context.Context, lis comm.Listener) error {
	for {
		ch, err := lis.Accept(ctx)
		if err != nil {
			if err == comm.ErrListenerClosed || ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go func() {
			defer ch.Close()
			c.serveChannel(ctx, ch)
		}()
	}
}

// Send sends an ad-hoc message to the current peer.
func (c *Companion) Send(text string) error {
	c.lock.Lock()
	peer := c.peer
	c.lock.Unlock()
	if peer == nil {
		return comm.ErrNoPeer
	}
	glog.Infof("SND %d bytes: %s", len(text), comm.PrintableString([]byte(text)))
	return peer.Send([]byte(text))
}

// Reboot sends the reboot sentinel verbatim.
func (c *Companion) Reboot() error {
	return c.Send(RebootMessage)
}

// Counter exposes the auto-reply counter value.
func (c *Companion) Counter() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.counter
}

func (c *Companion) serveChannel(ctx context.Context, ch comm.Channel) {
	c.lock.Lock()
	c.peer = ch
	c.lock.Unlock()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch.Readable():
			if !ok {
				glog.Info("peer gone")
				return
			}
		}
		var buf [recvBufSize]byte
		n, err := ch.Recv(buf[:])
		if err != nil {
			glog.Errorf("receive failed: %v", err)
			return
		}
		glog.Infof("RCV %d bytes: %s", n, comm.PrintableString(buf[:n]))
		if reply, ok := c.nextReply(); ok {
			if err := ch.Send([]byte(reply)); err != nil {
				glog.Errorf("reply failed: %v", err)
				return
			}
			glog.Infof("SND %d bytes: %s", len(reply), reply)
		}
	}
}

func (c *Companion) nextReply() (string, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.autoReply {
		return "", false
	}
	reply := fmt.Sprintf(replyTemplate, c.counter)
	c.counter = (c.counter + 1) % 100
	return reply, true
}
