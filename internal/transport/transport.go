// Package transport defines the peer-to-peer boundary the distribution
// protocol runs over: a Swarm joined by topic yields duplex connections
// to every other peer rendezvousing on the same topic. The protocol layer
// only ever sees these interfaces; the websocket implementation talks to
// a rendezvous relay, and the memory implementation wires processes
// together in-process for tests.
package transport

import (
	"context"
	"errors"

	"github.com/mrz1836/splinter/internal/session"
)

// ErrConnClosed is returned by connection operations after either side
// has closed the link.
var ErrConnClosed = errors.New("connection closed")

// JoinOptions declares the role a peer takes in the swarm. Server peers
// accept inbound links, client peers establish them; a peer may be both.
type JoinOptions struct {
	Server bool
	Client bool
}

// Swarm joins rendezvous topics.
type Swarm interface {
	// Join enters the swarm on the given topic. Connections to peers on
	// the same topic are delivered through the returned Discovery until
	// it is closed or the context is cancelled.
	Join(ctx context.Context, topic session.Topic, opts JoinOptions) (Discovery, error)
}

// Discovery is one joined topic.
type Discovery interface {
	// Connections yields a Conn for each peer found on the topic,
	// both inbound and outbound.
	Connections() <-chan Conn

	// Close leaves the topic and closes all its connections.
	Close() error
}

// Conn is a duplex, message-oriented link to a single peer.
type Conn interface {
	// WriteMessage sends one message to the peer.
	WriteMessage(data []byte) error

	// ReadMessage blocks until the next message from the peer arrives,
	// returning ErrConnClosed once the link is gone.
	ReadMessage() ([]byte, error)

	// RemoteID identifies the peer for the lifetime of the connection.
	// It carries no authenticated meaning beyond connection identity.
	RemoteID() string

	// Close tears down the link.
	Close() error
}
