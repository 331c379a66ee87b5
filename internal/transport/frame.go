package transport

// Frame types exchanged between a swarm client and the rendezvous relay.
// One websocket connection to the relay multiplexes all of a peer's
// logical links; each data frame names the logical peer it belongs to.
const (
	// FrameJoin is sent by a client right after connecting to enter a topic.
	FrameJoin = "join"
	// FramePeer announces a new logical peer on the topic.
	FramePeer = "peer"
	// FrameData carries one protocol message between two peers.
	FrameData = "data"
	// FrameLeave announces that a logical peer left the topic.
	FrameLeave = "leave"
)

// Frame is one relay multiplexing frame. Data rides as base64 inside the
// JSON encoding, which keeps the relay oblivious to protocol payloads.
type Frame struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
	Peer  string `json:"peer,omitempty"`
	Data  []byte `json:"data,omitempty"`
}
