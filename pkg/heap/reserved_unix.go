//go:build go1.22 && (linux || darwin)

package heap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Reserved is a Provider backed by a single large anonymous mmap reservation.
//
// Extend never actually calls into the kernel after construction: it just
// advances a high-water mark inside the reservation, which the OS has
// already zero-filled and which will not move or be reused by anything else
// in the process. This gives segalloc the address-stable, monotonically
// growing arena its boundary tags require, grounded on the mmap-backed
// buddy pool technique used elsewhere in the retrieved examples.
type Reserved struct {
	region []byte
	base   uintptr
	used   int
}

// NewReserved reserves maxBytes of address space. No physical memory is
// committed beyond what the OS lazily backs on first touch; maxBytes only
// bounds how far the arena can grow before Extend starts failing.
func NewReserved(maxBytes int) (*Reserved, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("heap: reservation size must be positive, got %d", maxBytes)
	}

	region, err := unix.Mmap(-1, 0, maxBytes, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("heap: mmap %d bytes: %w", maxBytes, err)
	}

	return &Reserved{
		region: region,
		base:   uintptr(unsafe.Pointer(&region[0])),
	}, nil
}

func (r *Reserved) Extend(n int) (uintptr, error) {
	if n < 0 || r.used+n > len(r.region) {
		return 0, &OutOfMemory{Requested: n}
	}

	base := r.base + uintptr(r.used)
	r.used += n
	return base, nil
}

func (r *Reserved) Low() uintptr  { return r.base }
func (r *Reserved) High() uintptr { return r.base + uintptr(r.used) }

// Close releases the reservation back to the OS. The arena and every pointer
// it ever returned become invalid; callers must not use them afterward.
func (r *Reserved) Close() error {
	if r.region == nil {
		return nil
	}
	err := unix.Munmap(r.region)
	r.region = nil
	return err
}
