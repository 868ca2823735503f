//go:build go1.22

package tracebench

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/segalloc/segalloc/pkg/opt"
)

// Kind distinguishes the operations a trace can replay.
type Kind int

const (
	KindAllocate Kind = iota
	KindFree
	KindReallocate
)

func (k Kind) String() string {
	switch k {
	case KindAllocate:
		return "alloc"
	case KindFree:
		return "free"
	case KindReallocate:
		return "realloc"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one operation in a trace.
//
// Target is the index, within this same trace, of the allocation a free or
// realloc acts on; it is None for an allocate. Size is the requested payload
// size for an allocate or realloc, and is ignored for a free.
type Op struct {
	Kind   Kind
	Size   int
	Target opt.Option[int]
}

// ParseTrace reads a trace in the line-oriented format:
//
//	a <size>        allocate <size> bytes, recorded at this op's index
//	f <index>       free the allocation made by op <index>
//	r <index> <size> reallocate the allocation made by op <index> to <size> bytes
//
// Blank lines and lines starting with # are ignored.
func ParseTrace(r io.Reader) ([]Op, error) {
	var ops []Op

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		switch fields[0] {
		case "a":
			if len(fields) != 2 {
				return nil, fmt.Errorf("tracebench: line %d: want \"a <size>\"", line)
			}
			size, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("tracebench: line %d: %w", line, err)
			}
			ops = append(ops, Op{Kind: KindAllocate, Size: size})

		case "f":
			if len(fields) != 2 {
				return nil, fmt.Errorf("tracebench: line %d: want \"f <index>\"", line)
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("tracebench: line %d: %w", line, err)
			}
			ops = append(ops, Op{Kind: KindFree, Target: opt.Some(idx)})

		case "r":
			if len(fields) != 3 {
				return nil, fmt.Errorf("tracebench: line %d: want \"r <index> <size>\"", line)
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("tracebench: line %d: %w", line, err)
			}
			size, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("tracebench: line %d: %w", line, err)
			}
			ops = append(ops, Op{Kind: KindReallocate, Size: size, Target: opt.Some(idx)})

		default:
			return nil, fmt.Errorf("tracebench: line %d: unknown op %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tracebench: %w", err)
	}

	return ops, nil
}
