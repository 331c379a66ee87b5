//go:build !windows

package crypto

import (
	"golang.org/x/sys/unix"
)

// mlock pins data's pages so they stay out of swap, reporting success.
func mlock(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return unix.Mlock(data) == nil
}

// munlock releases pages pinned by mlock.
func munlock(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Munlock(data)
}
