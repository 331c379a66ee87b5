package shamir

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Share is one (index, payload) pair produced by Split. The payload has
// the same length as the original secret; the index is the x-coordinate
// the payload bytes were evaluated at, never zero.
type Share struct {
	Index   byte
	Payload []byte
}

// Encode renders the share in its canonical text form: two lowercase hex
// digits of index, a colon, and the lowercase hex payload.
func (s Share) Encode() string {
	return fmt.Sprintf("%02x:%x", s.Index, s.Payload)
}

// String implements fmt.Stringer using the canonical encoding.
func (s Share) String() string {
	return s.Encode()
}

// Decode parses the canonical text form of a share. It fails with
// ErrMalformedShare when the separator is missing, the index is not a
// two-digit hex byte, or the payload has an odd number of hex digits.
func Decode(text string) (Share, error) {
	idxPart, payloadPart, found := strings.Cut(text, ":")
	if !found {
		return Share{}, fmt.Errorf("%w: missing separator", ErrMalformedShare)
	}

	if len(idxPart) != 2 {
		return Share{}, fmt.Errorf("%w: index must be two hex digits", ErrMalformedShare)
	}
	idx, err := hex.DecodeString(idxPart)
	if err != nil {
		return Share{}, fmt.Errorf("%w: invalid index: %v", ErrMalformedShare, err)
	}
	if idx[0] == 0 {
		return Share{}, ErrInvalidIndex
	}

	payload, err := hex.DecodeString(payloadPart)
	if err != nil {
		return Share{}, fmt.Errorf("%w: invalid payload: %v", ErrMalformedShare, err)
	}

	return Share{Index: idx[0], Payload: payload}, nil
}
