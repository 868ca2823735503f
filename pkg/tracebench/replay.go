//go:build go1.22

package tracebench

import (
	"fmt"

	"github.com/segalloc/segalloc/pkg/segalloc"
)

// Stats summarizes one trace replay.
type Stats struct {
	Allocates   int
	Frees       int
	Reallocates int
	Failures    int // allocate/reallocate calls that returned nil

	PeakPayload int // largest sum of live payload bytes observed at any point
}

// Replay runs ops against a in order, tracking which trace index produced
// each live pointer so that free and reallocate targets can be resolved, and
// returns aggregate Stats. A failed allocate or reallocate increments
// Failures but does not stop the replay; a free or reallocate whose target
// was never successfully allocated, or was already freed, is an error.
func Replay(a *segalloc.Arena, ops []Op) (Stats, error) {
	var stats Stats

	live := make(map[int]*byte)
	payload := make(map[int]int)
	total := 0

	resolve := func(idx int) (*byte, error) {
		p, ok := live[idx]
		if !ok {
			return nil, fmt.Errorf("tracebench: op targets index %d, which is not a live allocation", idx)
		}
		return p, nil
	}

	for i, op := range ops {
		switch op.Kind {
		case KindAllocate:
			p := a.Allocate(op.Size)
			stats.Allocates++
			if p == nil {
				stats.Failures++
				continue
			}
			live[i] = p
			payload[i] = op.Size
			total += op.Size

		case KindFree:
			idx, ok := op.Target.Value, op.Target.IsSome()
			if !ok {
				return stats, fmt.Errorf("tracebench: op %d: free without a target", i)
			}
			p, err := resolve(*idx)
			if err != nil {
				return stats, fmt.Errorf("tracebench: op %d: %w", i, err)
			}
			a.Free(p)
			total -= payload[*idx]
			delete(live, *idx)
			delete(payload, *idx)
			stats.Frees++

		case KindReallocate:
			idxPtr, ok := op.Target.Value, op.Target.IsSome()
			if !ok {
				return stats, fmt.Errorf("tracebench: op %d: realloc without a target", i)
			}
			idx := *idxPtr
			p, err := resolve(idx)
			if err != nil {
				return stats, fmt.Errorf("tracebench: op %d: %w", i, err)
			}

			q := a.Reallocate(p, op.Size)
			stats.Reallocates++
			total -= payload[idx]
			delete(live, idx)
			delete(payload, idx)

			if q == nil {
				stats.Failures++
				continue
			}
			live[i] = q
			payload[i] = op.Size
			total += op.Size

		default:
			return stats, fmt.Errorf("tracebench: op %d: unknown kind %v", i, op.Kind)
		}

		if total > stats.PeakPayload {
			stats.PeakPayload = total
		}
	}

	return stats, nil
}
