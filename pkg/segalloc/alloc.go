//go:build go1.22

package segalloc

import (
	"github.com/segalloc/segalloc/pkg/xunsafe"
)

// Allocate returns a pointer to a newly allocated, uninitialized block of at
// least size bytes, or nil if size is 0 or the heap provider refuses to grow.
// The arena is initialized lazily on the first call from any entry point.
func (a *Arena) Allocate(size int) *byte {
	if size <= 0 {
		return nil
	}

	if err := a.ensureInit(); err != nil {
		a.Log("allocate", "init failed: %v", err)
		return nil
	}
	a.owner.check()

	asize := alignedSize(size)

	if b := a.findFit(asize); b != 0 {
		a.place(b, asize)
		a.Log("allocate", "size=%d asize=%d -> %v (fit)", size, asize, b)
		return b.AssertValid()
	}

	words := asize / wordSize
	if want := initialChunkWords; words < want {
		words = want
	}

	b, err := a.extend(words)
	if err != nil {
		a.Log("allocate", "size=%d asize=%d -> out of memory: %v", size, asize, err)
		return nil
	}
	a.place(b, asize)

	a.Log("allocate", "size=%d asize=%d -> %v (extended)", size, asize, b)
	return b.AssertValid()
}

// Free returns p, previously obtained from Allocate, Reallocate, or
// ZeroAllocate on the same Arena, to the arena's free lists. Freeing a nil
// pointer is a no-op. Freeing a pointer not obtained from this arena, or the
// same pointer twice, is undefined behavior and will corrupt the heap; this
// method does not defend against misuse.
func (a *Arena) Free(p *byte) {
	if p == nil {
		return
	}
	a.owner.check()

	b := xunsafe.AddrOf(p)
	size := sizeOf(b)
	setBlock(b, size, false)

	a.Log("free", "%v size=%d", b, size)

	a.coalesce(b)
}

// Reallocate resizes the allocation at p to size bytes, preserving the
// lesser of the old and new payload sizes' worth of contents. A nil p behaves
// like Allocate(size); a size of 0 behaves like Free(p) and returns nil.
func (a *Arena) Reallocate(p *byte, size int) *byte {
	if p == nil {
		return a.Allocate(size)
	}
	if size <= 0 {
		a.Free(p)
		return nil
	}
	a.owner.check()

	oldB := xunsafe.AddrOf(p)
	oldPayload := sizeOf(oldB) - overhead

	newP := a.Allocate(size)
	if newP == nil {
		return nil
	}

	n := oldPayload
	if size < n {
		n = size
	}
	if n > 0 {
		xunsafe.Copy(newP, p, n)
	}

	a.Free(p)
	return newP
}

// ZeroAllocate allocates space for nmemb elements of size bytes each,
// zero-initialized, as if by Allocate(nmemb*size) followed by clearing the
// result. It returns nil if nmemb*size overflows, if either is 0, or if the
// underlying Allocate fails.
func (a *Arena) ZeroAllocate(nmemb, size int) *byte {
	if nmemb <= 0 || size <= 0 {
		return nil
	}

	total := nmemb * size
	if total/nmemb != size {
		a.Log("zeroallocate", "nmemb=%d size=%d overflow", nmemb, size)
		return nil
	}

	p := a.Allocate(total)
	if p == nil {
		return nil
	}

	xunsafe.Clear(p, total)
	return p
}
