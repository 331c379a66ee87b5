package protocol

import (
	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/shamir"
)

// Dealer hands exactly one share to each newly connected peer until all
// shares are gone. Delivery is at-most-once and best-effort: a slot is
// consumed the moment a share is assigned to a connection, so a failed
// send does not put the share back in play. The dealer never requests or
// reconstructs.
type Dealer struct {
	session     string
	threshold   int
	shares      []shamir.Share
	distributed int
	log         *config.Logger
}

// NewDealer creates a dealer for the given session holding the shares to
// distribute. The threshold is advertised in every delivery so receivers
// learn the session's configuration.
func NewDealer(sessionName string, shares []shamir.Share, threshold int, logger *config.Logger) *Dealer {
	if logger == nil {
		logger = config.NullLogger()
	}
	return &Dealer{
		session:   sessionName,
		threshold: threshold,
		shares:    shares,
		log:       logger,
	}
}

// OnConnect assigns the next undealt share to a newly connected peer and
// returns the delivery to send, or nil once all shares are dealt. The
// slot is consumed immediately regardless of whether the caller's send
// succeeds.
func (d *Dealer) OnConnect() *Envelope {
	if d.distributed >= len(d.shares) {
		d.log.Debug("dealer exhausted, peer gets no share")
		return nil
	}

	s := d.shares[d.distributed]
	d.distributed++
	d.log.Info("dealing share %d of %d for session %q", s.Index, len(d.shares), d.session)

	env := NewShareDelivery(d.session, s, len(d.shares), d.threshold)
	return &env
}

// OnMessage accepts inbound messages. Acks are logged; nothing drives a
// state transition.
func (d *Dealer) OnMessage(env Envelope) (*Envelope, error) {
	if env.Type == TypeShareAck {
		d.log.Info("share %d acknowledged", env.ShareIndex)
	}
	return nil, nil
}

// Distributed reports how many shares have been dealt.
func (d *Dealer) Distributed() int {
	return d.distributed
}

// Done reports whether every share has been dealt. The dealer may keep
// listening after this point but grants no further shares.
func (d *Dealer) Done() bool {
	return d.distributed == len(d.shares)
}

// Result implements Role; a dealer produces no output.
func (d *Dealer) Result() []byte {
	return nil
}
