package qubits

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a new state", t, func() {
		Convey("Without amplitudes it is the all-zero basis state", func() {
			state, err := New(1, nil)
			So(err, ShouldBeNil)
			So(state.String(), ShouldEqual, "|0>")
			So(state.NumBits(), ShouldEqual, 1)
		})

		Convey("With explicit amplitudes it keeps them", func() {
			state, err := New(2, map[int]Complex{0: SQRT1_2, 3: SQRT1_2})
			So(err, ShouldBeNil)
			So(state.String(), ShouldEqual, "(0.7071)|00> + (0.7071)|11>")
			So(state.Len(), ShouldEqual, 2)
		})

		Convey("Negligible amplitudes are dropped", func() {
			state, err := New(2, map[int]Complex{1: One, 2: RealOf(Epsilon / 10)})
			So(err, ShouldBeNil)
			So(state.Len(), ShouldEqual, 1)
		})

		Convey("An index that does not fit is rejected", func() {
			_, err := New(2, map[int]Complex{4: One})
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
		})

		Convey("Too many qubits are rejected", func() {
			_, err := New(MaxBits+1, nil)
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}

func TestFromBits(t *testing.T) {
	Convey("Given a ket literal", t, func() {
		Convey("It should parse with or without delimiters", func() {
			So(MustFromBits("|0101>").Eql(MustFromBits("0101")), ShouldBeTrue)
			So(MustFromBits("|0101>").Amplitude(5), ShouldResemble, One)
			So(MustFromBits("|0101>").NumBits(), ShouldEqual, 4)
		})

		Convey("It should reject characters other than 0 and 1", func() {
			_, err := FromBits("|012>")
			So(errors.Is(err, ErrInvalidKet), ShouldBeTrue)
		})

		Convey("It should reject an empty literal", func() {
			_, err := FromBits("|>")
			So(errors.Is(err, ErrInvalidKet), ShouldBeTrue)
		})

		Convey("MustFromBits should panic on a bad literal", func() {
			So(func() { MustFromBits("abc") }, ShouldPanic)
		})
	})
}

func TestAmplitudeAccess(t *testing.T) {
	Convey("Given a superposition", t, func() {
		state, err := MustFromBits("|00>").Hadamard(Bit(0))
		So(err, ShouldBeNil)

		Convey("Live amplitudes can be read by index or ket", func() {
			So(state.Amplitude(1).CloseTo(SQRT1_2), ShouldBeTrue)
			amplitude, err := state.AmplitudeOf("|01>")
			So(err, ShouldBeNil)
			So(amplitude.CloseTo(SQRT1_2), ShouldBeTrue)
		})

		Convey("Absent amplitudes are zero", func() {
			So(state.Amplitude(2), ShouldResemble, Zero)
			So(state.Amplitude(-1), ShouldResemble, Zero)
		})

		Convey("All yields the entries in ascending order", func() {
			var indices []int
			for index := range state.All() {
				indices = append(indices, index)
			}
			So(indices, ShouldResemble, []int{0, 1})
		})

		Convey("Each yields bit strings and stops early", func() {
			var seen []string
			state.Each(func(entry StateWithAmplitude) bool {
				seen = append(seen, entry.AsBitString())
				return false
			})
			So(seen, ShouldResemble, []string{"00"})
		})
	})
}

func TestStateArithmetic(t *testing.T) {
	Convey("Given two states over the same qubits", t, func() {
		a := MustFromBits("|00>")
		b := MustFromBits("|01>")

		Convey("Multiply scales every amplitude", func() {
			So(a.Multiply(NewComplex(0, 1)).String(), ShouldEqual, "(i)|00>")
		})

		Convey("Add sums the amplitudes", func() {
			sum, err := a.Add(b)
			So(err, ShouldBeNil)
			So(sum.String(), ShouldEqual, "|00> + |01>")
		})

		Convey("Subtracting a state from itself leaves nothing", func() {
			diff, err := a.Subtract(a)
			So(err, ShouldBeNil)
			So(diff.Len(), ShouldEqual, 0)
		})

		Convey("Subtract of a superposition", func() {
			minus, _ := MustFromBits("|01>").Hadamard(Bit(0))
			sum, err := minus.Add(MustFromBits("|00>"))
			So(err, ShouldBeNil)
			diff, err := sum.Subtract(MustFromBits("|01>"))
			So(err, ShouldBeNil)
			So(diff.String(), ShouldEqual, "(1.7071)|00> + (-1.7071)|01>")
		})

		Convey("Different qubit counts cannot be combined", func() {
			_, err := a.Add(MustFromBits("|0>"))
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
			_, err = a.Subtract(MustFromBits("|000>"))
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
		})

		Convey("Operations leave the operands untouched", func() {
			_, _ = a.Add(b)
			So(a.String(), ShouldEqual, "|00>")
			So(b.String(), ShouldEqual, "|01>")
		})
	})
}

func TestTensorProduct(t *testing.T) {
	Convey("Given two states", t, func() {
		Convey("The receiver holds the high bits", func() {
			product, err := MustFromBits("|01>").TensorProduct(MustFromBits("|1>"))
			So(err, ShouldBeNil)
			So(product.String(), ShouldEqual, "|011>")
		})

		Convey("Superpositions multiply out", func() {
			plus, _ := MustFromBits("|0>").Hadamard(ALL)
			product, err := plus.TensorProduct(MustFromBits("|1>"))
			So(err, ShouldBeNil)
			So(product.String(), ShouldEqual, "(0.7071)|01> + (0.7071)|11>")
		})

		Convey("Signs carry through the product", func() {
			q1, _ := MustFromBits("|01>").Hadamard(Bit(0))
			q2, _ := MustFromBits("|100>").Hadamard(Bit(2))
			product, err := q1.TensorProduct(q2)
			So(err, ShouldBeNil)
			So(product.Amplitude(0b00000).CloseTo(RealOf(0.5)), ShouldBeTrue)
			So(product.Amplitude(0b00100).CloseTo(RealOf(-0.5)), ShouldBeTrue)
			So(product.Amplitude(0b01000).CloseTo(RealOf(-0.5)), ShouldBeTrue)
			So(product.Amplitude(0b01100).CloseTo(RealOf(0.5)), ShouldBeTrue)
		})

		Convey("The result must fit in the maximum width", func() {
			wide, _ := New(MaxBits, nil)
			_, err := wide.TensorProduct(MustFromBits("|0>"))
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given an unnormalized state", t, func() {
		state, _ := New(1, map[int]Complex{0: RealOf(3), 1: RealOf(4)})

		Convey("Normalize scales it to unit length", func() {
			normalized, err := state.Normalize()
			So(err, ShouldBeNil)
			So(normalized.String(), ShouldEqual, "(0.6)|0> + (0.8)|1>")
		})

		Convey("Complex amplitudes scale by the full magnitude", func() {
			sum, _ := MustFromBits("|0>").Multiply(NewComplex(3, 4)).Add(MustFromBits("|1>").Multiply(NewComplex(0, 1)))
			normalized, err := sum.Normalize()
			So(err, ShouldBeNil)
			factor := 1 / math.Sqrt(26)
			So(normalized.Amplitude(1).CloseTo(NewComplex(0, factor)), ShouldBeTrue)
			So(normalized.Amplitude(0).CloseTo(NewComplex(3*factor, 4*factor)), ShouldBeTrue)
		})

		Convey("A zero state cannot be normalized", func() {
			empty, _ := New(1, map[int]Complex{})
			_, err := empty.Normalize()
			So(err, ShouldEqual, ErrZeroState)
		})
	})
}

func TestEql(t *testing.T) {
	Convey("Given states to compare", t, func() {
		So(MustFromBits("|01>").Eql(MustFromBits("|01>")), ShouldBeTrue)
		So(MustFromBits("|01>").Eql(MustFromBits("|10>")), ShouldBeFalse)
		So(MustFromBits("|01>").Eql(MustFromBits("|001>")), ShouldBeFalse)
		So(MustFromBits("|01>").Eql(nil), ShouldBeFalse)

		both, _ := MustFromBits("|01>").Add(MustFromBits("|10>"))
		So(both.Eql(MustFromBits("|01>")), ShouldBeFalse)
		So(MustFromBits("|01>").Eql(both), ShouldBeFalse)

		Convey("The same basis states with different amplitudes differ", func() {
			half := must(New(1, map[int]Complex{0: RealOf(0.5)}))
			more := must(New(1, map[int]Complex{0: RealOf(0.6)}))
			So(half.Eql(more), ShouldBeFalse)
			So(more.Eql(half), ShouldBeFalse)
			So(half.Eql(must(New(1, map[int]Complex{0: RealOf(0.5)}))), ShouldBeTrue)
		})

		Convey("Comparison is exact, with no tolerance", func() {
			state := must(New(2, map[int]Complex{1: RealOf(0.6), 2: NewComplex(0, 0.8)}))
			nudged := must(New(2, map[int]Complex{1: RealOf(0.6 + 1e-6), 2: NewComplex(0, 0.8)}))
			So(state.Eql(nudged), ShouldBeFalse)
			So(nudged.Eql(state), ShouldBeFalse)
			So(state.Amplitude(1).CloseTo(nudged.Amplitude(1)), ShouldBeTrue)
		})
	})
}

func TestStateString(t *testing.T) {
	Convey("Given the ket rendering of a state", t, func() {
		Convey("Unit amplitudes are omitted", func() {
			So(MustFromBits("|101>").String(), ShouldEqual, "|101>")
		})

		Convey("Complex amplitudes are parenthesized", func() {
			state, _ := New(1, map[int]Complex{0: NewComplex(-0.5, -0.5), 1: NewComplex(-0.5, -0.5)})
			So(state.String(), ShouldEqual, "(-0.5-0.5i)|0> + (-0.5-0.5i)|1>")
		})

		Convey("A state with nothing live renders empty", func() {
			empty, _ := New(2, map[int]Complex{})
			So(empty.String(), ShouldEqual, "")
		})

		Convey("GoString names the width", func() {
			So(MustFromBits("|1>").GoString(), ShouldEqual, "QState(1)[|1>]")
		})
	})
}
