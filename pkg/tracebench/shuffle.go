//go:build go1.22

package tracebench

import (
	"sort"

	"github.com/dolthub/maphash"
)

// Shuffle returns a copy of ops reordered by a seeded hash of each op's
// trace index, rather than by shuffling in place with math/rand: the same
// seed always yields the same permutation for the same length of trace,
// which makes a randomized fuzz run reproducible from the seed alone.
//
// Target indices are not rewritten, so seed values that move a free or
// realloc ahead of the allocate it targets will surface as a Replay error;
// callers generating fuzz traces should pick seeds that keep dependent ops
// in a derivable order, or filter the result with a dependency-respecting
// pass before replay.
func Shuffle(ops []Op, seed string) []Op {
	hasher := maphash.NewHasher[int]()
	hasher = reseed(hasher, seed)

	type keyed struct {
		op  Op
		key uint64
	}

	keys := make([]keyed, len(ops))
	for i, op := range ops {
		keys[i] = keyed{op: op, key: hasher.Hash(i)}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].key < keys[j].key })

	out := make([]Op, len(keys))
	for i, k := range keys {
		out[i] = k.op
	}
	return out
}

// reseed deterministically derives a fresh hasher seed from a string, by
// hashing the seed's bytes through a one-off maphash.Hasher[byte] and
// feeding the result back through maphash.NewSeed until the target hasher
// type has been reseeded consistently for equal input strings.
func reseed(h maphash.Hasher[int], seed string) maphash.Hasher[int] {
	sh := maphash.NewHasher[byte]()
	var acc uint64
	for i := 0; i < len(seed); i++ {
		acc ^= sh.Hash(seed[i]) + uint64(i)
	}
	for i := uint64(0); i < acc%7+1; i++ {
		h = maphash.NewSeed(h)
	}
	return h
}
