//go:build go1.22

// Package segalloc implements a segregated-free-list heap allocator over a
// single contiguous, growable memory arena.
//
// # Design
//
// The arena is laid out, from low to high address, as: an 11-slot size-class
// table, 4 bytes of alignment padding, an 8-byte prologue sentinel block, any
// number of data blocks, and a 0-payload epilogue sentinel header. Each data
// block carries a 4-byte header and a 4-byte footer packing its total size
// (a multiple of 8) and an allocated bit; a free block threads its first 16
// payload bytes into a doubly linked, LIFO free list for its size class.
//
// Size classes partition blocks by total size (not payload) into 11 power-of-
// two-ish bins, mirroring a classic segregated-fit allocator: small requests
// are served from small lists, so first fit never has to walk past blocks
// that could never be large enough.
//
// # Arena growth
//
// The arena never shrinks and never moves: every address it ever hands out,
// or stores in a header, footer, or free-list link, stays valid for the
// life of the [Arena]. New memory comes from a [github.com/segalloc/segalloc/pkg/heap.Provider],
// which segalloc treats as an opaque, monotonically growing byte range - the
// sbrk-style external collaborator described in the allocator's design.
//
// # Coalescing
//
// Freeing a block, and extending the arena, both immediately coalesce with
// any free neighbor, using the prologue/epilogue sentinels to make the
// previous- and next-block lookups unconditional. This keeps the invariant
// that no two adjacent free blocks ever coexist, which in turn keeps
// fragmentation bounded and the free lists short.
//
// # Thread safety
//
// An Arena is single-threaded and non-reentrant: every public method must be
// called from the same goroutine that called [Arena.Init] (directly or via
// lazy initialization on first use). Builds tagged "debug" assert this;
// release builds trust the caller, per the allocator's closed error set,
// which does not include concurrent-misuse detection.
package segalloc
