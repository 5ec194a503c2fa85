package comm

import "time"

const pipeDepth = 16

// Pipe creates an in-memory channel pair with message semantics
// matching the socket transports. Intended for tests and in-process
// wiring.
func Pipe() (Channel, Channel) {
	a := &pipeEnd{q: NewMsgQueue(pipeDepth)}
	b := &pipeEnd{q: NewMsgQueue(pipeDepth)}
	a.peer, b.peer = b, a
	return a, b
}

type pipeEnd struct {
	q           *MsgQueue
	peer        *pipeEnd
	recvTimeout time.Duration
}

// Send implements Channel.
func (p *pipeEnd) Send(payload []byte) error {
	return p.peer.q.Push(payload)
}

// Recv implements Channel.
func (p *pipeEnd) Recv(buf []byte) (int, error) {
	return p.q.Pop(buf, p.recvTimeout)
}

// SetRecvTimeout implements Channel.
func (p *pipeEnd) SetRecvTimeout(d time.Duration) error {
	p.recvTimeout = d
	return nil
}

// Readable implements Channel.
func (p *pipeEnd) Readable() <-chan struct{} {
	return p.q.Readable()
}

// Close implements Channel.
func (p *pipeEnd) Close() error {
	p.q.Close()
	return nil
}
