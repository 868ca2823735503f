//go:build go1.22

package segalloc

// root returns the head of the free list for class idx, or the zero address
// if the list is empty.
func (a *Arena) root(idx int) bp {
	return loadAddr(a.slot(idx))
}

func (a *Arena) setRoot(idx int, b bp) {
	storeAddr(a.slot(idx), b)
}

// initList makes b the sole member of class idx's free list.
//
// Precondition: the list is empty.
func (a *Arena) initList(idx int, b bp) {
	setFreePrev(b, 0)
	setFreeNext(b, 0)
	a.setRoot(idx, b)
}

// insertAtRoot inserts b at the head of class idx's free list, which keeps
// the list in LIFO order: the most recently freed block in a class is the
// first one first fit will find.
func (a *Arena) insertAtRoot(idx int, b bp) {
	old := a.root(idx)
	if old == 0 {
		a.initList(idx, b)
		return
	}

	setFreePrev(old, b)
	setFreePrev(b, 0)
	setFreeNext(b, old)
	a.setRoot(idx, b)
}

// remove unlinks b from class idx's free list, wherever it sits.
func (a *Arena) remove(idx int, b bp) {
	root := a.root(idx)
	prev := freePrev(b)
	next := freeNext(b)

	if root == b {
		if next == 0 {
			a.setRoot(idx, 0)
			return
		}
		setFreePrev(next, 0)
		a.setRoot(idx, next)
		return
	}

	if prev != 0 {
		setFreeNext(prev, next)
	}
	if next != 0 {
		setFreePrev(next, prev)
	}
}
