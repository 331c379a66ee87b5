// Package crypto protects share and secret material at rest and in
// memory: age passphrase encryption and mlocked byte buffers.
//
//nolint:revive // Internal package name is intentional
package crypto

import (
	"runtime"
	"sync"
)

// SecureBytes holds sensitive bytes in memory that is mlocked where the
// platform allows it and zeroed on Destroy. Secrets and reconstructed
// material live here between operations.
type SecureBytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewSecureBytes allocates a buffer of the given size. Lock failure is
// not an error; the buffer still zeroes on Destroy.
func NewSecureBytes(size int) (*SecureBytes, error) {
	sb := &SecureBytes{data: make([]byte, size)}
	sb.locked = mlock(sb.data)

	// Finalizer covers callers that never reach Destroy.
	runtime.SetFinalizer(sb, func(s *SecureBytes) {
		s.Destroy()
	})
	return sb, nil
}

// SecureBytesFromSlice copies data into a fresh secure buffer. The
// caller still owns, and should zero, the original slice.
func SecureBytesFromSlice(data []byte) (*SecureBytes, error) {
	sb, err := NewSecureBytes(len(data))
	if err != nil {
		return nil, err
	}
	copy(sb.data, data)
	return sb, nil
}

// Bytes exposes the underlying slice, or nil after Destroy.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// IsLocked reports whether the buffer is mlocked.
func (s *SecureBytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Len reports the buffer length, zero after Destroy.
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Destroy zeroes and releases the buffer. Safe to call more than once.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return
	}

	for i := range s.data {
		s.data[i] = 0
	}
	if s.locked {
		munlock(s.data)
		s.locked = false
	}
	s.data = nil

	runtime.SetFinalizer(s, nil)
}
