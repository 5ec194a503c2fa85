package hlapp

import (
	"github.com/golang/glog"

	"github.com/robotalks/intercore.go/pkg/comm"
)

const recvBufSize = 32

const rebootSentinel = "reboot!!"

// Receiver reads inbound messages, logs them and recognizes the
// reboot sentinel.
type Receiver struct {
	Channel comm.Channel
	Status  *StatusFlag
}

// IsRebootRequest reports whether payload is exactly the reboot
// sentinel: same length, same bytes. Prefixes, extensions and empty
// payloads never match.
func IsRebootRequest(payload []byte) bool {
	return len(payload) == len(rebootSentinel) && string(payload) == rebootSentinel
}

// HandleEvent implements dispatch.Handler. The receive buffer is
// scoped to the call; a zero-length read is a valid empty message,
// not a disconnect.
func (r *Receiver) HandleEvent() {
	var buf [recvBufSize]byte
	n, err := r.Channel.Recv(buf[:])
	if err != nil {
		glog.Errorf("receive failed: %v", err)
		r.Status.Set(RecvFailed)
		return
	}
	payload := buf[:n]
	glog.Infof("Received %d bytes: %s", n, comm.PrintableString(payload))
	if IsRebootRequest(payload) {
		glog.Info("companion requested a simulated reboot")
		r.Status.Set(SimReboot)
	}
}
