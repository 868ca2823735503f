//go:build go1.22

// Package tracebench replays allocation traces against a [segalloc.Arena],
// recording operation counts, failed allocations, and the peak number of
// live payload bytes. Heap bytes committed are not recorded, so no
// utilization ratio is computed.
//
// A trace is a sequence of [Op] values: allocate a block, free a
// previously-allocated block by the index it was returned at, or reallocate
// one. Traces can be parsed from a small text format with [ParseTrace], or
// built programmatically and optionally randomized with [Shuffle].
package tracebench
