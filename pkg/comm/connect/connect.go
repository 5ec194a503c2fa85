// Package connect resolves companion endpoint identifiers to
// transports: a bare identifier names a local datagram socket,
// mqtt:// an MQTT topic pair, ws:// a WebSocket endpoint.
package connect

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robotalks/intercore.go/pkg/comm"
	"github.com/robotalks/intercore.go/pkg/comm/local"
	"github.com/robotalks/intercore.go/pkg/comm/mqtt"
	"github.com/robotalks/intercore.go/pkg/comm/websocket"
)

// Dial opens a channel to the companion named by endpoint.
func Dial(endpoint string) (comm.Channel, error) {
	scheme, err := schemeOf(endpoint)
	if err != nil {
		return nil, err
	}
	switch scheme {
	case "":
		return local.Dial(endpoint)
	case "mqtt", "tcp", "ssl":
		return mqtt.Dial(endpoint)
	case "ws", "wss":
		return websocket.Dial(endpoint)
	default:
		return nil, fmt.Errorf("unknown endpoint scheme %q", scheme)
	}
}

// Listen serves the companion side of the endpoint.
func Listen(endpoint string) (comm.Listener, error) {
	scheme, err := schemeOf(endpoint)
	if err != nil {
		return nil, err
	}
	switch scheme {
	case "":
		return local.Listen(endpoint)
	case "mqtt", "tcp", "ssl":
		return mqtt.Listen(endpoint)
	case "ws", "wss":
		return websocket.Listen(endpoint)
	default:
		return nil, fmt.Errorf("unknown endpoint scheme %q", scheme)
	}
}

func schemeOf(endpoint string) (string, error) {
	if !strings.Contains(endpoint, "://") {
		return "", nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %v", endpoint, err)
	}
	return u.Scheme, nil
}
