package mqtt

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robotalks/intercore.go/pkg/comm"
)

const inboundDepth = 16

// Topic conventions: the dialing (high-level) side publishes <id>/cmd
// and subscribes <id>/msg; the listening (companion) side mirrors.

// TopicsForDialer derives the topic pair for the dialing side.
func TopicsForDialer(id string) (sub, pub string) {
	return id + "/msg", id + "/cmd"
}

// TopicsForListener derives the topic pair for the companion side.
func TopicsForListener(id string) (sub, pub string) {
	return id + "/cmd", id + "/msg"
}

// SplitEndpoint splits an endpoint URL of the form
// mqtt://host:port/prefix/<id> into the broker URL (carrying the
// topic prefix) and the companion identifier (the last path element).
func SplitEndpoint(endpoint string) (brokerURL, id string, err error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", "", err
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", "", fmt.Errorf("endpoint %q misses a companion identifier", endpoint)
	}
	items := strings.Split(path, "/")
	id = items[len(items)-1]
	u.Path = "/" + strings.Join(items[:len(items)-1], "/")
	return u.String(), id, nil
}

// Dial opens a channel to the companion behind an MQTT endpoint.
func Dial(endpoint string) (comm.Channel, error) {
	brokerURL, id, err := SplitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	sub, pub := TopicsForDialer(id)
	return newChannel(brokerURL, sub, pub)
}

// Listen serves the companion side of an MQTT endpoint. The broker
// session is the single accepted channel.
func Listen(endpoint string) (comm.Listener, error) {
	brokerURL, id, err := SplitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	sub, pub := TopicsForListener(id)
	ch, err := newChannel(brokerURL, sub, pub)
	if err != nil {
		return nil, err
	}
	return comm.NewSingleListener(endpoint, ch), nil
}

type channel struct {
	q        *Queue
	sub      *Subscription
	pubTopic string
	inbound  *comm.MsgQueue

	recvTimeout time.Duration
}

func newChannel(brokerURL, subTopic, pubTopic string) (*channel, error) {
	q, err := NewQueueFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	c := &channel{
		q:        q,
		pubTopic: pubTopic,
		inbound:  comm.NewMsgQueue(inboundDepth),
	}
	// registered before connect, picked up by Resubscribe on connect
	c.sub = q.Sub(subTopic, func(_ string, payload []byte) {
		c.inbound.Push(payload)
	})
	token := q.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		q.Close()
		return nil, err
	}
	return c, nil
}

// Send implements comm.Channel.
func (c *channel) Send(payload []byte) error {
	token := c.q.Pub(c.pubTopic, payload)
	token.Wait()
	return token.Error()
}

// Recv implements comm.Channel.
func (c *channel) Recv(buf []byte) (int, error) {
	return c.inbound.Pop(buf, c.recvTimeout)
}

// SetRecvTimeout implements comm.Channel.
func (c *channel) SetRecvTimeout(d time.Duration) error {
	c.recvTimeout = d
	return nil
}

// Readable implements comm.Channel.
func (c *channel) Readable() <-chan struct{} {
	return c.inbound.Readable()
}

// Close implements comm.Channel.
func (c *channel) Close() error {
	err := c.sub.Close()
	c.inbound.Close()
	if cerr := c.q.Close(); err == nil {
		err = cerr
	}
	return err
}
