//go:build go1.20

package xunsafe

import (
	"fmt"
	"unsafe"

	"github.com/segalloc/segalloc/pkg/xunsafe/layout"
)

// Addr is an untyped address, tagged with the element type it points to.
//
// Addr exists so that code which needs to store pointers in places the
// garbage collector cannot see (such as inside a manually managed byte
// arena) can do so as plain integers, and recover a real pointer only at the
// point of use via [Addr.AssertValid]. This is the "handle, translated at
// access" pattern: an Addr is not traced by the GC and carries no safety
// guarantee on its own.
type Addr[T any] int

// AddrOf returns the address of p as an [Addr].
func AddrOf[T any](p *T) Addr[T] {
	return Addr[T](uintptr(unsafe.Pointer(p)))
}

// EndOf returns the address one past the end of s.
func EndOf[S ~[]T, T any](s S) Addr[T] {
	size := layout.Size[T]()
	return Addr[T](uintptr(unsafe.Pointer(unsafe.SliceData(s)))).ByteAdd(size * len(s))
}

// AssertValid converts this address back into a pointer.
//
// The caller is asserting that the address is either zero (in which case nil
// is returned) or that it refers to live, correctly typed memory.
func (a Addr[T]) AssertValid() *T {
	if a == 0 {
		return nil
	}
	return (*T)(unsafe.Pointer(uintptr(a)))
}

// Add returns a + n*sizeof(T).
func (a Addr[T]) Add(n int) Addr[T] {
	return a.ByteAdd(n * layout.Size[T]())
}

// ByteAdd returns a + n, unscaled.
func (a Addr[T]) ByteAdd(n int) Addr[T] {
	return Addr[T](uintptr(a) + uintptr(n))
}

// Sub returns (a - b) / sizeof(T).
func (a Addr[T]) Sub(b Addr[T]) int {
	return int(uintptr(a)-uintptr(b)) / layout.Size[T]()
}

// ByteSub returns a - b, unscaled.
func (a Addr[T]) ByteSub(b Addr[T]) int {
	return int(uintptr(a) - uintptr(b))
}

// Padding returns how many bytes must be added to a to round it up to align.
func (a Addr[T]) Padding(align int) int {
	return layout.Padding(int(a), align)
}

// RoundUpTo rounds a up to the given power-of-two alignment.
func (a Addr[T]) RoundUpTo(align int) Addr[T] {
	return Addr[T](layout.RoundUp(int(a), align))
}

// SignBit returns the value of this address's top bit.
func (a Addr[T]) SignBit() bool {
	return int(a) < 0
}

// SignBitMask returns all-ones if [Addr.SignBit] is set, all-zeros otherwise.
func (a Addr[T]) SignBitMask() Addr[T] {
	return Addr[T](int(a) >> (unsafe.Sizeof(uintptr(0))*8 - 1))
}

// ClearSignBit returns a with its top bit cleared.
func (a Addr[T]) ClearSignBit() Addr[T] {
	return a &^ (-1 << (unsafe.Sizeof(uintptr(0))*8 - 1))
}

// String implements [fmt.Stringer].
func (a Addr[T]) String() string {
	return fmt.Sprintf("%#x", uintptr(a))
}

// Format implements [fmt.Formatter], so that %x prints the bare hex digits.
func (a Addr[T]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'x':
		fmt.Fprintf(s, "%x", uintptr(a))
	default:
		fmt.Fprintf(s, "%v", a.String())
	}
}
