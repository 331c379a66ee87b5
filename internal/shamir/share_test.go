package shamir

import (
	"bytes"
	"errors"
	"testing"
)

func TestShareEncode(t *testing.T) {
	s := Share{Index: 1, Payload: []byte{0x6d, 0x79}}
	if got := s.Encode(); got != "01:6d79" {
		t.Errorf("Encode = %q, want %q", got, "01:6d79")
	}

	s = Share{Index: 0xff, Payload: []byte{0x00, 0xab, 0x0f}}
	if got := s.Encode(); got != "ff:00ab0f" {
		t.Errorf("Encode = %q, want %q", got, "ff:00ab0f")
	}
}

func TestShareCodecRoundTrip(t *testing.T) {
	shares, err := Split([]byte("round trip payload"), 9, 4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	for _, s := range shares {
		decoded, err := Decode(s.Encode())
		if err != nil {
			t.Fatalf("Decode(%q): %v", s.Encode(), err)
		}
		if decoded.Index != s.Index || !bytes.Equal(decoded.Payload, s.Payload) {
			t.Errorf("round trip mismatch for index %d", s.Index)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	malformed := []string{
		"",         // empty
		"0102ab",   // no separator
		"1:abcd",   // one-digit index
		"001:abcd", // three-digit index
		"zz:abcd",  // non-hex index
		"01:abc",   // odd payload digits
		"01:xyzt",  // non-hex payload
	}

	for _, text := range malformed {
		if _, err := Decode(text); !errors.Is(err, ErrMalformedShare) {
			t.Errorf("Decode(%q) = %v, want ErrMalformedShare", text, err)
		}
	}

	if _, err := Decode("00:abcd"); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Decode zero index = %v, want ErrInvalidIndex", err)
	}
}

func TestDecodePayloadOnlyFirstSeparator(t *testing.T) {
	// Splitting happens on the first colon only; a second colon makes
	// the payload non-hex.
	if _, err := Decode("01:ab:cd"); !errors.Is(err, ErrMalformedShare) {
		t.Errorf("expected ErrMalformedShare, got %v", err)
	}
}
