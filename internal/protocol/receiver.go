package protocol

import (
	"fmt"

	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/shamir"
)

// Receiver waits for exactly one share of a session during initial
// distribution. It requests a share from every peer that connects, keeps
// the first matching delivery, acks it, and is then done.
type Receiver struct {
	session string
	share   *shamir.Share
	log     *config.Logger
}

// NewReceiver creates a receiver for the given session.
func NewReceiver(sessionName string, logger *config.Logger) *Receiver {
	if logger == nil {
		logger = config.NullLogger()
	}
	return &Receiver{session: sessionName, log: logger}
}

// OnConnect asks the connecting peer for a share, unless one is already
// held.
func (r *Receiver) OnConnect() *Envelope {
	if r.Done() {
		return nil
	}
	env := NewShareRequest(r.session)
	return &env
}

// OnMessage keeps and acks the first decodable delivery for this
// session. Everything else is ignored.
func (r *Receiver) OnMessage(env Envelope) (*Envelope, error) {
	if r.Done() || env.Type != TypeShareDelivery {
		return nil, nil
	}
	if env.Session != r.session {
		r.log.Debug("ignoring delivery for session %q", env.Session)
		return nil, nil
	}

	s, err := shamir.Decode(env.Share)
	if err != nil {
		return nil, fmt.Errorf("discarding share: %w", err)
	}

	r.share = &s
	r.log.Info("received share %d for session %q", s.Index, r.session)
	ack := NewShareAck(int(s.Index))
	return &ack, nil
}

// Share returns the received share, or nil before Done.
func (r *Receiver) Share() *shamir.Share {
	return r.share
}

// Done reports whether a share has been received.
func (r *Receiver) Done() bool {
	return r.share != nil
}

// Result returns the canonical text form of the received share, or nil
// before Done.
func (r *Receiver) Result() []byte {
	if r.share == nil {
		return nil
	}
	return []byte(r.share.Encode())
}
