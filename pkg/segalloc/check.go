//go:build go1.22

package segalloc

import (
	"fmt"
	"strings"
)

// Check walks every block in address order and every free list, asserting
// the invariants the allocator depends on: alignment, every block lying
// inside the provider's range, header/footer agreement, allocated prologue
// and epilogue sentinels, no two physically adjacent free blocks, free-list
// prev links that mirror the next links, and free-list membership
// consistent with each block's allocated bit and size class.
// When verbose is true, it additionally logs each block and each free list
// as it walks them, reproducing the original allocator's checkheap(1) trace.
func (a *Arena) Check(verbose bool) error {
	if !a.inited {
		return fmt.Errorf("segalloc: check: arena not initialized")
	}
	a.owner.check()

	var errs []string
	note := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	inFree := make(map[bp]int)
	for idx := 0; idx < numClasses; idx++ {
		n := 0
		var prev bp
		for b := a.root(idx); b != 0; b = freeNext(b) {
			n++
			if !aligned(b) {
				note("free list %d: block %v not aligned", idx, b)
			}
			if allocOf(b) {
				note("free list %d: block %v marked allocated", idx, b)
			}
			if got := classOf(sizeOf(b)); got != idx {
				note("free list %d: block %v belongs in class %d (size %d)", idx, b, got, sizeOf(b))
			}
			if _, dup := inFree[b]; dup {
				note("free list %d: block %v listed more than once across all lists", idx, b)
			}
			inFree[b] = idx
			if got := freePrev(b); got != prev {
				note("free list %d: block %v has prev link %v, want %v", idx, b, got, prev)
			}
			prev = b

			if verbose {
				a.Log("check", "list[%d][%d] = %v size=%d", idx, n, b, sizeOf(b))
			}
		}
	}

	if !allocOf(a.heapListp) {
		note("prologue %v: not marked allocated", a.heapListp)
	}

	count := 0
	lastWasFree := false
	b := a.heapListp
	for ; sizeOf(b) > 0; b = nextBlock(b) {
		count++
		if !aligned(b) {
			note("block %v: not aligned", b)
		}
		if uintptr(hdrp(b)) < a.provider.Low() || uintptr(b)+uintptr(sizeOf(b)-wordSize) > a.provider.High() {
			note("block %v: lies outside the arena", b)
		}

		hdr := loadWord(hdrp(b))
		ftr := loadWord(ftrp(b))
		if hdr != ftr {
			note("block %v: header %#x != footer %#x", b, hdr, ftr)
		}

		allocated := allocOf(b)
		if !allocated {
			if _, ok := inFree[b]; !ok {
				note("block %v: free but not found in any free list", b)
			}
			if lastWasFree {
				note("block %v: adjacent to a preceding free block, should have coalesced", b)
			}
		}
		lastWasFree = !allocated

		if verbose {
			a.Log("check", "block[%d] = %v size=%d alloc=%v", count, b, sizeOf(b), allocated)
		}
	}
	if !allocOf(b) {
		note("epilogue %v: not marked allocated", b)
	}

	if len(errs) > 0 {
		return fmt.Errorf("segalloc: check: %d problem(s):\n%s", len(errs), strings.Join(errs, "\n"))
	}
	return nil
}
