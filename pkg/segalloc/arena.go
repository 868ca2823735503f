//go:build go1.22

package segalloc

import (
	"fmt"

	"github.com/segalloc/segalloc/internal/debug"
	"github.com/segalloc/segalloc/pkg/heap"
	"github.com/segalloc/segalloc/pkg/xunsafe"
)

// Arena is a segregated-free-list allocator over a single contiguous heap,
// grown on demand through a [heap.Provider].
//
// A zero Arena is not ready to use; construct one with [NewArena]. Allocate,
// Reallocate, and ZeroAllocate lazily call [Arena.Init] on first use if it
// has not already been initialized. Free does not initialize, and Check
// returns an error on an uninitialized arena.
type Arena struct {
	_ xunsafe.NoCopy

	provider heap.Provider

	classTable bp // start of the arena: the 11-slot class table
	heapListp  bp // payload pointer of the prologue sentinel
	inited     bool

	owner guard
}

// NewArena constructs an Arena over the given heap provider. The arena does
// not touch the provider until the first call to Init, Allocate, Free,
// Reallocate, or ZeroAllocate.
func NewArena(provider heap.Provider) *Arena {
	return &Arena{provider: provider}
}

// Init creates the initial arena: the class table, alignment padding, the
// prologue and epilogue sentinels, and a first free chunk. It is idempotent
// only in that later public entry points call it lazily when they observe an
// uninitialized arena; calling it directly a second time will corrupt the
// heap, matching the allocator's undefined-behavior-on-misuse contract.
func (a *Arena) Init() error {
	a.owner.bind()

	base, err := a.provider.Extend(classTableSize + 16)
	if err != nil {
		return fmt.Errorf("segalloc: init: %w", err)
	}

	a.classTable = bp(base)
	for i := 0; i < numClasses; i++ {
		a.setRoot(i, 0)
	}

	pad := a.classTable.ByteAdd(classTableSize)
	storeWord(pad, 0)

	prologueHdr := pad.ByteAdd(wordSize)
	prologueBp := prologueHdr.ByteAdd(wordSize)
	setBlock(prologueBp, overhead, true)

	epilogueHdr := prologueBp.ByteAdd(overhead - wordSize)
	storeWord(epilogueHdr, pack(0, true))

	a.heapListp = prologueBp
	a.inited = true

	a.Log("init", "classTable=%v heapListp=%v", a.classTable, a.heapListp)

	if _, err := a.extend(initialChunkWords); err != nil {
		return fmt.Errorf("segalloc: init: %w", err)
	}
	return nil
}

func (a *Arena) ensureInit() error {
	if a.inited {
		a.owner.check()
		return nil
	}
	return a.Init()
}

// extend grows the arena by roundUpWords(words)*wordSize bytes. The address
// the provider hands back is the old high-water mark, which is exactly where
// the previous epilogue header lived; that address becomes the new block's
// payload pointer, so its header overlays the old epilogue instead of
// consuming any of the freshly granted bytes. A fresh epilogue header is
// written at the new tail, and the new block is coalesced with its
// predecessor, if free.
func (a *Arena) extend(words int) (bp, error) {
	size := roundUpWords(words) * wordSize

	base, err := a.provider.Extend(size)
	if err != nil {
		return 0, err
	}

	block := bp(base)
	setBlock(block, size, false)

	newEpilogue := block.ByteAdd(size - wordSize)
	storeWord(newEpilogue, pack(0, true))

	a.Log("extend", "block=%v size=%d", block, size)

	return a.coalesce(block), nil
}

func (a *Arena) Log(op, format string, args ...any) {
	debug.Log(nil, op, format, args...)
}
