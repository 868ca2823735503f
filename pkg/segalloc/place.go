//go:build go1.22

package segalloc

// place marks a free block found by findFit as allocated, splitting off the
// remainder as a new free block when it would be at least minBlock bytes.
func (a *Arena) place(b bp, asize int) {
	csize := sizeOf(b)
	a.remove(classOf(csize), b)

	if csize-asize >= minBlock {
		setBlock(b, asize, true)

		rem := b.ByteAdd(asize)
		remSize := csize - asize
		setBlock(rem, remSize, false)
		a.insertAtRoot(classOf(remSize), rem)
		return
	}

	setBlock(b, csize, true)
}
