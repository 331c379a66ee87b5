//go:build windows

package crypto

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mlock pins data's pages with VirtualLock, reporting success.
func mlock(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return windows.VirtualLock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data))) == nil
}

// munlock releases pages pinned by mlock.
func munlock(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = windows.VirtualUnlock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}
