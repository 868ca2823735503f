//go:build go1.22 && !debug

package segalloc

// guard is a no-op outside debug builds: the single-owner-goroutine check
// has a real cost (a TLS lookup per call) that release builds skip.
type guard struct{}

func (g *guard) bind()  {}
func (g *guard) check() {}
