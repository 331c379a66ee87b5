package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mrz1836/splinter/internal/session"
)

// WSSwarm implements Swarm over a websocket rendezvous relay. One relay
// connection per joined topic carries multiplexed frames for every
// logical peer link; see frame.go for the framing.
type WSSwarm struct {
	relayURL string
	dialer   *websocket.Dialer
}

// NewWSSwarm creates a swarm client that dials the given relay URL
// (e.g. ws://127.0.0.1:9400/join).
func NewWSSwarm(relayURL string) *WSSwarm {
	return &WSSwarm{
		relayURL: relayURL,
		dialer:   websocket.DefaultDialer,
	}
}

// Join implements Swarm. The relay connects every peer on a topic to
// every other, so JoinOptions only expresses intent; filtering inbound
// versus outbound links is not needed by the protocol layer.
func (s *WSSwarm) Join(ctx context.Context, topic session.Topic, _ JoinOptions) (Discovery, error) {
	ws, resp, err := s.dialer.DialContext(ctx, s.relayURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing relay %s: %w", s.relayURL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err := ws.WriteJSON(Frame{Type: FrameJoin, Topic: topic.String()}); err != nil {
		_ = ws.Close()
		return nil, fmt.Errorf("joining topic: %w", err)
	}

	d := &wsDiscovery{
		ws:    ws,
		peers: make(map[string]*wsConn),
		conns: make(chan Conn, 64),
		done:  make(chan struct{}),
	}

	go d.readPump()
	go func() {
		select {
		case <-ctx.Done():
			_ = d.Close()
		case <-d.done:
		}
	}()

	return d, nil
}

type wsDiscovery struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	mu    sync.Mutex
	peers map[string]*wsConn

	conns     chan Conn
	done      chan struct{}
	closeOnce sync.Once
}

func (d *wsDiscovery) Connections() <-chan Conn {
	return d.conns
}

// readPump is the only reader of the relay socket. It demultiplexes
// frames into per-peer connections until the socket dies.
func (d *wsDiscovery) readPump() {
	for {
		var f Frame
		if err := d.ws.ReadJSON(&f); err != nil {
			_ = d.Close()
			return
		}

		switch f.Type {
		case FramePeer:
			c := &wsConn{
				disc:   d,
				peerID: f.Peer,
				inbox:  make(chan []byte, 64),
				closed: make(chan struct{}),
			}
			d.mu.Lock()
			d.peers[f.Peer] = c
			d.mu.Unlock()

			select {
			case d.conns <- c:
			case <-d.done:
				return
			}

		case FrameData:
			d.mu.Lock()
			c := d.peers[f.Peer]
			d.mu.Unlock()
			if c == nil {
				continue
			}
			// No backpressure on the protocol: drop when the peer's
			// inbox is saturated rather than stalling every other link.
			select {
			case c.inbox <- f.Data:
			case <-c.closed:
			default:
			}

		case FrameLeave:
			d.mu.Lock()
			c := d.peers[f.Peer]
			delete(d.peers, f.Peer)
			d.mu.Unlock()
			if c != nil {
				c.shutdown()
			}
		}
	}
}

func (d *wsDiscovery) writeFrame(f Frame) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.ws.WriteJSON(f)
}

func (d *wsDiscovery) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
		_ = d.ws.Close()

		d.mu.Lock()
		peers := make([]*wsConn, 0, len(d.peers))
		for _, c := range d.peers {
			peers = append(peers, c)
		}
		d.peers = make(map[string]*wsConn)
		d.mu.Unlock()

		for _, c := range peers {
			c.shutdown()
		}
	})
	return nil
}

// wsConn is one logical peer link multiplexed over the relay socket.
type wsConn struct {
	disc      *wsDiscovery
	peerID    string
	inbox     chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func (c *wsConn) WriteMessage(data []byte) error {
	select {
	case <-c.closed:
		return ErrConnClosed
	case <-c.disc.done:
		return ErrConnClosed
	default:
	}

	if err := c.disc.writeFrame(Frame{Type: FrameData, Peer: c.peerID, Data: data}); err != nil {
		return fmt.Errorf("%w: %v", ErrConnClosed, err)
	}
	return nil
}

func (c *wsConn) ReadMessage() ([]byte, error) {
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
	case <-c.disc.done:
		return nil, ErrConnClosed
	}
}

func (c *wsConn) RemoteID() string {
	return c.peerID
}

func (c *wsConn) shutdown() {
	c.closeOnce.Do(func() { close(c.closed) })
}

func (c *wsConn) Close() error {
	c.shutdown()
	return nil
}
