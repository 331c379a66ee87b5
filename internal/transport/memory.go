package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/mrz1836/splinter/internal/session"
)

// MemorySwarm is an in-process Swarm: every Join on the same topic is
// wired to all earlier joiners with paired in-memory connections. It
// exists so the dealer and collector state machines can be exercised
// without a live relay.
type MemorySwarm struct {
	mu     sync.Mutex
	nextID int
	topics map[session.Topic][]*memoryDiscovery
}

// NewMemorySwarm creates an empty in-process swarm.
func NewMemorySwarm() *MemorySwarm {
	return &MemorySwarm{topics: make(map[session.Topic][]*memoryDiscovery)}
}

// Join implements Swarm. The options are accepted for interface parity;
// in-process peers are always mutually reachable.
func (s *MemorySwarm) Join(_ context.Context, topic session.Topic, _ JoinOptions) (Discovery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	d := &memoryDiscovery{
		swarm: s,
		topic: topic,
		id:    fmt.Sprintf("mem-%d", s.nextID),
		conns: make(chan Conn, 64),
	}

	for _, other := range s.topics[topic] {
		local, remote := newMemoryConnPair(other.id, d.id)
		d.deliver(local)
		other.deliver(remote)
	}

	s.topics[topic] = append(s.topics[topic], d)
	return d, nil
}

func (s *MemorySwarm) leave(d *memoryDiscovery) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.topics[d.topic]
	for i, m := range members {
		if m == d {
			s.topics[d.topic] = append(members[:i], members[i+1:]...)
			break
		}
	}
}

type memoryDiscovery struct {
	swarm *MemorySwarm
	topic session.Topic
	id    string

	mu     sync.Mutex
	closed bool
	conns  chan Conn
	opened []*memoryConn
}

func (d *memoryDiscovery) Connections() <-chan Conn {
	return d.conns
}

func (d *memoryDiscovery) deliver(c *memoryConn) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		_ = c.Close()
		return
	}
	d.opened = append(d.opened, c)
	d.conns <- c
}

func (d *memoryDiscovery) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	opened := d.opened
	d.mu.Unlock()

	d.swarm.leave(d)
	for _, c := range opened {
		_ = c.Close()
	}
	return nil
}

// memoryConn is one end of an in-memory duplex pair.
type memoryConn struct {
	remoteID  string
	peer      *memoryConn
	inbox     chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newMemoryConnPair(idA, idB string) (a, b *memoryConn) {
	a = &memoryConn{remoteID: idA, inbox: make(chan []byte, 64), closed: make(chan struct{})}
	b = &memoryConn{remoteID: idB, inbox: make(chan []byte, 64), closed: make(chan struct{})}
	a.peer = b
	b.peer = a
	return a, b
}

func (c *memoryConn) WriteMessage(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	select {
	case <-c.closed:
		return ErrConnClosed
	case <-c.peer.closed:
		return ErrConnClosed
	case c.peer.inbox <- cp:
		return nil
	}
}

func (c *memoryConn) ReadMessage() ([]byte, error) {
	// Drain delivered messages before reporting closure.
	select {
	case msg := <-c.inbox:
		return msg, nil
	default:
	}

	select {
	case msg := <-c.inbox:
		return msg, nil
	case <-c.closed:
		return nil, ErrConnClosed
	case <-c.peer.closed:
		return nil, ErrConnClosed
	}
}

func (c *memoryConn) RemoteID() string {
	return c.remoteID
}

func (c *memoryConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}
