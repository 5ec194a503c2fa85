// Package comm provides the message channel to the companion
// application with pluggable transports.
package comm

// A Channel moves whole messages, never byte streams: each Send is one
// message, each Recv returns one message truncated to the caller's
// buffer with the excess discarded. Transports live in subpackages
// (local datagram sockets, MQTT topic pairs, WebSocket endpoints) and
// are selected through comm/connect.
