//go:build go1.22

package heap

import "unsafe"

func addrOfByte(p *byte) uintptr {
	return uintptr(unsafe.Pointer(p))
}
