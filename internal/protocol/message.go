// Package protocol implements the share distribution protocol: the wire
// messages peers exchange and the dealer, receiver, and collector state
// machines driven by a single-threaded event loop over the transport.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/mrz1836/splinter/internal/shamir"
)

// Version is the wire protocol version carried in every message.
const Version = 1

// Message types.
const (
	TypeShareDelivery = "share_delivery"
	TypeShareAck      = "share_ack"
	TypeShareRequest  = "share_request"
)

// Envelope is the tagged union carried on the wire, one JSON object per
// message. Only the fields relevant to a message's type are set.
type Envelope struct {
	V           int    `json:"v"`
	Type        string `json:"type"`
	Session     string `json:"session,omitempty"`
	ShareIndex  int    `json:"shareIndex,omitempty"`
	TotalShares int    `json:"totalShares,omitempty"`
	Threshold   int    `json:"threshold,omitempty"`
	Share       string `json:"share,omitempty"`
}

// NewShareDelivery builds the message a dealer sends to hand one share to
// a peer.
func NewShareDelivery(sessionName string, s shamir.Share, total, threshold int) Envelope {
	return Envelope{
		V:           Version,
		Type:        TypeShareDelivery,
		Session:     sessionName,
		ShareIndex:  int(s.Index),
		TotalShares: total,
		Threshold:   threshold,
		Share:       s.Encode(),
	}
}

// NewShareAck builds the acknowledgement for a received share.
func NewShareAck(index int) Envelope {
	return Envelope{V: Version, Type: TypeShareAck, ShareIndex: index}
}

// NewShareRequest builds the message a collecting peer sends when it
// connects, asking for a share of the given session.
func NewShareRequest(sessionName string) Envelope {
	return Envelope{V: Version, Type: TypeShareRequest, Session: sessionName}
}

// Marshal encodes the envelope as one JSON object.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// ParseEnvelope decodes one wire message.
func ParseEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("invalid protocol message: %w", err)
	}
	return e, nil
}
