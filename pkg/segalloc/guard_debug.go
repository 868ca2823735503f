//go:build go1.22 && debug

package segalloc

import (
	"github.com/timandy/routine"

	"github.com/segalloc/segalloc/internal/debug"
)

// guard asserts that an Arena is only ever touched from the goroutine that
// initialized it. The allocator keeps no internal locks, so concurrent use
// from a second goroutine corrupts the heap silently; in debug builds this
// catches the mistake at the call site instead.
type guard struct {
	goid int64
	set  bool
}

func (g *guard) bind() {
	g.goid = routine.Goid()
	g.set = true
}

func (g *guard) check() {
	if !g.set {
		g.bind()
		return
	}
	debug.Assert(g.goid == routine.Goid(), "arena accessed from goroutine %d, bound to %d", routine.Goid(), g.goid)
}
