// Command segalloc-trace replays an allocation trace against a segalloc
// arena and reports utilization statistics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/segalloc/segalloc/pkg/heap"
	"github.com/segalloc/segalloc/pkg/segalloc"
	"github.com/segalloc/segalloc/pkg/tracebench"
	"github.com/segalloc/segalloc/pkg/xerrors"
)

func main() {
	heapSize := flag.Int("heap", 1<<24, "bytes to reserve for the arena")
	shuffleSeed := flag.String("shuffle", "", "if set, replay operations in the order produced by this shuffle seed")
	verbose := flag.Bool("verbose", false, "run the consistency checker verbosely after replay")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: segalloc-trace [flags] <trace-file>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *heapSize, *shuffleSeed, *verbose); err != nil {
		if oom, ok := xerrors.AsA[*heap.OutOfMemory](err); ok {
			fmt.Fprintf(os.Stderr, "segalloc-trace: heap exhausted requesting %d bytes; rerun with a larger -heap\n", oom.Requested)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "segalloc-trace:", err)
		os.Exit(1)
	}
}

func run(path string, heapSize int, shuffleSeed string, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ops, err := tracebench.ParseTrace(f)
	if err != nil {
		return err
	}
	if shuffleSeed != "" {
		ops = tracebench.Shuffle(ops, shuffleSeed)
	}

	provider, err := heap.NewReserved(heapSize)
	if err != nil {
		return fmt.Errorf("reserving heap: %w", err)
	}
	defer provider.Close()

	a := segalloc.NewArena(provider)
	if err := a.Init(); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	stats, err := tracebench.Replay(a, ops)
	if err != nil {
		return err
	}

	if err := a.Check(verbose); err != nil {
		return fmt.Errorf("post-replay check failed: %w", err)
	}

	fmt.Printf("ops: %d alloc, %d free, %d realloc, %d failed\n",
		stats.Allocates, stats.Frees, stats.Reallocates, stats.Failures)
	fmt.Printf("peak live payload: %d bytes\n", stats.PeakPayload)
	return nil
}
