package protocol

import (
	"fmt"

	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/shamir"
)

// Collector gathers shares for one session until it holds the threshold
// number of distinct indices, then reconstructs the secret and is done.
// Shares for other sessions, already-held indices, and undecodable share
// text are ignored without state change. The collector never delivers
// shares to other peers.
type Collector struct {
	session   string
	threshold int
	held      []shamir.Share
	indices   map[byte]bool
	secret    []byte
	log       *config.Logger
}

// NewCollector creates a collector for the given session and threshold.
// An operator-held share supplied out-of-band seeds the collection.
func NewCollector(sessionName string, threshold int, own *shamir.Share, logger *config.Logger) *Collector {
	if logger == nil {
		logger = config.NullLogger()
	}
	c := &Collector{
		session:   sessionName,
		threshold: threshold,
		indices:   make(map[byte]bool),
		log:       logger,
	}
	if own != nil {
		c.held = append(c.held, *own)
		c.indices[own.Index] = true
	}
	return c
}

// OnConnect asks a newly connected peer for a share of this session.
func (c *Collector) OnConnect() *Envelope {
	if c.Done() {
		return nil
	}
	env := NewShareRequest(c.session)
	return &env
}

// OnMessage handles one inbound message. Accepted deliveries are acked;
// once the threshold is reached the first threshold shares by insertion
// order are validated and interpolated. A returned error with a nil
// envelope means the message was discarded but collection continues.
func (c *Collector) OnMessage(env Envelope) (*Envelope, error) {
	if c.Done() || env.Type != TypeShareDelivery {
		return nil, nil
	}
	if env.Session != c.session {
		c.log.Debug("ignoring delivery for session %q", env.Session)
		return nil, nil
	}

	s, err := shamir.Decode(env.Share)
	if err != nil {
		return nil, fmt.Errorf("discarding share: %w", err)
	}
	if c.indices[s.Index] {
		c.log.Debug("ignoring duplicate share %d", s.Index)
		return nil, nil
	}
	if len(c.held) > 0 && len(s.Payload) != len(c.held[0].Payload) {
		return nil, fmt.Errorf("discarding share %d: %w", s.Index, shamir.ErrLengthMismatch)
	}

	c.held = append(c.held, s)
	c.indices[s.Index] = true
	c.log.Info("holding %d of %d shares for session %q", len(c.held), c.threshold, c.session)

	ack := NewShareAck(int(s.Index))
	if len(c.held) < c.threshold {
		return &ack, nil
	}

	take := c.held[:c.threshold]
	if err := shamir.Validate(take, c.threshold); err != nil {
		return &ack, err
	}
	secret, err := shamir.Reconstruct(take)
	if err != nil {
		return &ack, err
	}

	c.secret = secret
	c.log.Info("threshold reached, secret reconstructed")
	return &ack, nil
}

// Held returns the indices currently held, in insertion order.
func (c *Collector) Held() []byte {
	out := make([]byte, len(c.held))
	for i, s := range c.held {
		out[i] = s.Index
	}
	return out
}

// Done reports whether the secret has been reconstructed. This state is
// terminal.
func (c *Collector) Done() bool {
	return c.secret != nil
}

// Result returns the reconstructed secret, or nil before Done.
func (c *Collector) Result() []byte {
	return c.secret
}
