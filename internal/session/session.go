// Package session provides rendezvous session identities. A session is a
// human-chosen name shared out-of-band between operators; the derived
// topic is the transport-layer rendezvous key, so two processes with the
// same session name converge on each other without prior coordination.
package session

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Topic namespace components. The prefix and suffix pin topics to this
// application and protocol revision so unrelated tools hashing the same
// human name land on different rendezvous keys.
const (
	topicPrefix = "splinter:session:"
	topicSuffix = ":v1"
)

// TopicSize is the byte length of a derived topic.
const TopicSize = 32

// ErrEmptyName is returned when a session name is blank.
var ErrEmptyName = errors.New("session name cannot be empty")

// Topic is the fixed-length rendezvous identifier derived from a session
// name.
type Topic [TopicSize]byte

// String returns the topic as lowercase hex.
func (t Topic) String() string {
	return hex.EncodeToString(t[:])
}

// DeriveTopic maps a session name to its rendezvous topic by hashing the
// namespaced name with SHA3-256. Identical names always yield identical
// topics; the hash is one-way, so the topic does not reveal the name.
func DeriveTopic(name string) (Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Topic{}, ErrEmptyName
	}
	return Topic(sha3.Sum256([]byte(topicPrefix + name + topicSuffix))), nil
}
