package qubits

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveBits(t *testing.T) {
	Convey("Given bit qualifiers resolved against 4 qubits", t, func() {
		Convey("A single bit resolves to itself", func() {
			bits, err := resolveBits(Bit(2), 4)
			So(err, ShouldBeNil)
			So(bits, ShouldResemble, []int{2})
		})

		Convey("A range resolves in ascending order", func() {
			bits, err := resolveBits(Range(1, 3), 4)
			So(err, ShouldBeNil)
			So(bits, ShouldResemble, []int{1, 2, 3})
		})

		Convey("ALL resolves to every qubit", func() {
			bits, err := resolveBits(ALL, 4)
			So(err, ShouldBeNil)
			So(bits, ShouldResemble, []int{0, 1, 2, 3})
		})

		Convey("An explicit list keeps its order", func() {
			bits, err := resolveBits(Bits{3, 0}, 4)
			So(err, ShouldBeNil)
			So(bits, ShouldResemble, []int{3, 0})
		})

		Convey("Out of range bits are rejected", func() {
			_, err := resolveBits(Bit(4), 4)
			So(errors.Is(err, ErrInvalidBitQualifier), ShouldBeTrue)

			_, err = resolveBits(Bits{0, -1}, 4)
			So(errors.Is(err, ErrInvalidBitQualifier), ShouldBeTrue)
		})

		Convey("A reversed range is rejected", func() {
			_, err := resolveBits(Range(3, 1), 4)
			So(errors.Is(err, ErrInvalidBitQualifier), ShouldBeTrue)
		})

		Convey("A missing qualifier is rejected", func() {
			_, err := resolveBits(nil, 4)
			So(errors.Is(err, ErrInvalidBitQualifier), ShouldBeTrue)
		})

		Convey("An empty list is rejected", func() {
			_, err := resolveBits(Bits{}, 4)
			So(errors.Is(err, ErrInvalidBitQualifier), ShouldBeTrue)
		})
	})

	Convey("Given a qualifier that must be contiguous", t, func() {
		Convey("An explicit list is rejected", func() {
			_, err := resolveRange(Bits{0, 1}, 4)
			var invalid *InvalidBitQualifierError
			So(errors.As(err, &invalid), ShouldBeTrue)
			So(invalid.NumBits, ShouldEqual, 4)
		})

		Convey("ALL on a state without qubits is rejected", func() {
			_, err := resolveRange(ALL, 0)
			So(errors.Is(err, ErrInvalidBitQualifier), ShouldBeTrue)
		})
	})
}

func TestOverlaps(t *testing.T) {
	Convey("Given control and target lists", t, func() {
		So(overlaps([]int{0, 1}, []int{2, 3}), ShouldBeFalse)
		So(overlaps([]int{0, 2}, []int{2, 3}), ShouldBeTrue)
		So(bitMask([]int{0, 3}), ShouldEqual, uint64(0b1001))
	})
}
