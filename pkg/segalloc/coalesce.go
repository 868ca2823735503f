//go:build go1.22

package segalloc

// coalesce merges a just-freed (or just-extended) block with any free
// neighbors and reinserts the resulting block at the root of its new
// size class's free list. It returns the address of the (possibly merged)
// block.
//
// The previous-block lookup is always well-defined because of the prologue
// sentinel; the next-block lookup is always well-defined because of the
// epilogue sentinel. Neither lookup needs a bounds check.
func (a *Arena) coalesce(b bp) bp {
	size := sizeOf(b)
	prevAlloc := allocOfWord(loadWord(b.ByteAdd(-dwordSize)))
	nextAlloc := allocOf(nextBlock(b))

	switch {
	case prevAlloc && nextAlloc:
		a.insertAtRoot(classOf(size), b)
		return b

	case prevAlloc && !nextAlloc:
		next := nextBlock(b)
		nextSize := sizeOf(next)
		a.remove(classOf(nextSize), next)

		size += nextSize
		setBlock(b, size, false)
		a.insertAtRoot(classOf(size), b)
		return b

	case !prevAlloc && nextAlloc:
		prev := prevBlock(b)
		prevSize := sizeOf(prev)
		a.remove(classOf(prevSize), prev)

		size += prevSize
		setBlock(prev, size, false)
		a.insertAtRoot(classOf(size), prev)
		return prev

	default: // both free
		prev := prevBlock(b)
		next := nextBlock(b)
		prevSize := sizeOf(prev)
		nextSize := sizeOf(next)
		a.remove(classOf(prevSize), prev)
		a.remove(classOf(nextSize), next)

		size += prevSize + nextSize
		setBlock(prev, size, false)
		a.insertAtRoot(classOf(size), prev)
		return prev
	}
}
