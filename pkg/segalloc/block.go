//go:build go1.22

package segalloc

import (
	"github.com/segalloc/segalloc/pkg/xunsafe"
)

// bp is a block pointer: the address of a block's payload (or, for the
// prologue sentinel, the address immediately following its header). It is
// the same address the allocator hands back to callers of Allocate.
type bp = xunsafe.Addr[byte]

func loadWord(a bp) uint32 {
	return *xunsafe.Cast[uint32](a.AssertValid())
}

func storeWord(a bp, v uint32) {
	*xunsafe.Cast[uint32](a.AssertValid()) = v
}

func loadAddr(a bp) bp {
	return bp(*xunsafe.Cast[uintptr](a.AssertValid()))
}

func storeAddr(a bp, v bp) {
	*xunsafe.Cast[uintptr](a.AssertValid()) = uintptr(v)
}

// hdrp returns the address of b's header word.
func hdrp(b bp) bp { return b.ByteAdd(-wordSize) }

// sizeOf returns b's total size, including header and footer.
func sizeOf(b bp) int { return sizeOfWord(loadWord(hdrp(b))) }

// allocOf reports whether b is currently marked allocated.
func allocOf(b bp) bool { return allocOfWord(loadWord(hdrp(b))) }

// ftrp returns the address of b's footer word, given its current size.
func ftrp(b bp) bp { return b.ByteAdd(sizeOf(b) - dwordSize) }

// setBlock writes size and allocated into both b's header and footer. The
// footer address is derived from size directly, not from re-reading the
// (possibly stale) header, so this is safe to call before or after b's
// neighbors have been touched.
func setBlock(b bp, size int, allocated bool) {
	word := pack(size, allocated)
	storeWord(hdrp(b), word)
	storeWord(b.ByteAdd(size-dwordSize), word)
}

// nextBlock returns the block immediately following b in address order,
// using b's own header size. This is only well-defined because every real
// block is followed by either another real block or the epilogue sentinel.
func nextBlock(b bp) bp { return b.ByteAdd(sizeOf(b)) }

// prevBlock returns the block immediately preceding b in address order,
// using the footer word immediately before b's header. This is only
// well-defined because every real block is preceded by either another real
// block or the prologue sentinel.
func prevBlock(b bp) bp {
	prevSize := sizeOfWord(loadWord(b.ByteAdd(-dwordSize)))
	return b.ByteAdd(-prevSize)
}

// freePrev and freeNext read and write the doubly linked free-list pointers
// threaded through the first 16 bytes of a free block's payload.
func freePrev(b bp) bp       { return loadAddr(b) }
func setFreePrev(b, v bp)    { storeAddr(b, v) }
func freeNext(b bp) bp       { return loadAddr(b.ByteAdd(dwordSize)) }
func setFreeNext(b, v bp)    { storeAddr(b.ByteAdd(dwordSize), v) }

// aligned reports whether b's address is 8-byte aligned.
func aligned(b bp) bool { return uintptr(b)%dwordSize == 0 }
