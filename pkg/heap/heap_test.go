//go:build go1.22

package heap_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/segalloc/segalloc/pkg/heap"
)

func TestFixed(t *testing.T) {
	Convey("Given a Fixed provider over a 256-byte buffer", t, func() {
		p := NewFixed(make([]byte, 256))

		Convey("Low and High coincide on an empty heap", func() {
			So(p.Low(), ShouldEqual, p.High())
		})

		Convey("When extending by 64 bytes", func() {
			base, err := p.Extend(64)

			Convey("It succeeds and returns the prior High", func() {
				So(err, ShouldBeNil)
				So(base, ShouldEqual, p.Low())
				So(p.High(), ShouldEqual, base+64)
			})

			Convey("And a second extension starts where the first ended", func() {
				prevHigh := p.High()
				base2, err := p.Extend(32)
				So(err, ShouldBeNil)
				So(base2, ShouldEqual, prevHigh)
				So(p.High(), ShouldEqual, prevHigh+32)
			})
		})

		Convey("When extending past capacity", func() {
			_, err := p.Extend(1024)

			Convey("It fails with an OutOfMemory error", func() {
				So(err, ShouldNotBeNil)
				oom, ok := err.(*OutOfMemory)
				So(ok, ShouldBeTrue)
				So(oom.Requested, ShouldEqual, 1024)
			})
		})

		Convey("Extend(0) is a valid no-op", func() {
			before := p.High()
			base, err := p.Extend(0)
			So(err, ShouldBeNil)
			So(base, ShouldEqual, before)
			So(p.High(), ShouldEqual, before)
		})
	})
}
