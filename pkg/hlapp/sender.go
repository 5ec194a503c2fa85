package hlapp

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/intercore.go/pkg/comm"
	"github.com/robotalks/intercore.go/pkg/dispatch"
)

const msgTemplate = "hl-app-to-rt-app-adding%02d"

// counterModulo bounds the outbound counter to two decimal digits.
const counterModulo = 100

// Sender writes the periodic outbound message, cycling the counter.
// The channel is assigned after the connect step; the timer only fires
// inside Dispatch, which starts later.
type Sender struct {
	Channel comm.Channel
	Status  *StatusFlag

	counter int
}

// FormatMessage renders the outbound message for a counter value.
func FormatMessage(counter int) string {
	return fmt.Sprintf(msgTemplate, counter)
}

// HandleTimer implements dispatch.TimerHandler.
func (s *Sender) HandleTimer(t *dispatch.Timer) {
	if err := t.Consume(); err != nil {
		glog.Errorf("cannot consume send timer event: %v", err)
		s.Status.Set(TimerConsume)
		return
	}
	msg := FormatMessage(s.counter)
	glog.Infof("Sending: %s", msg)
	if err := s.Channel.Send([]byte(msg)); err != nil {
		glog.Errorf("send failed: %v", err)
		s.Status.Set(SendFailed)
		return
	}
	s.counter = (s.counter + 1) % counterModulo
}
