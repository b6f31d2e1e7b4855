package qubits

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestComplex(t *testing.T) {
	Convey("Given complex arithmetic", t, func() {
		a := NewComplex(1, 2)
		b := NewComplex(3, -4)

		Convey("It should add and subtract componentwise", func() {
			So(a.Add(b), ShouldResemble, NewComplex(4, -2))
			So(a.Subtract(b), ShouldResemble, NewComplex(-2, 6))
		})

		Convey("It should multiply complex operands", func() {
			So(a.Multiply(b), ShouldResemble, NewComplex(11, 2))
		})

		Convey("It should accept a real operand", func() {
			So(a.Multiply(Real(2)), ShouldResemble, NewComplex(2, 4))
			So(a.Add(Real(1)), ShouldResemble, NewComplex(2, 2))
			So(a.Subtract(Real(1)), ShouldResemble, NewComplex(0, 2))
		})

		Convey("It should negate and conjugate", func() {
			So(a.Negate(), ShouldResemble, NewComplex(-1, -2))
			So(a.Conjugate(), ShouldResemble, NewComplex(1, -2))
		})

		Convey("It should compute magnitude and phase", func() {
			So(NewComplex(3, 4).Magnitude(), ShouldEqual, 5)
			So(NewComplex(0, 1).Phase(), ShouldAlmostEqual, math.Pi/2)
			So(NewComplex(-1, 0).Phase(), ShouldAlmostEqual, math.Pi)
		})

		Convey("It should leave the receiver untouched", func() {
			a.Add(b)
			So(a, ShouldResemble, NewComplex(1, 2))
		})
	})
}

func TestComplexComparison(t *testing.T) {
	Convey("Given two complex numbers", t, func() {
		Convey("Eql should be exact", func() {
			So(NewComplex(1, 1).Eql(NewComplex(1, 1)), ShouldBeTrue)
			So(NewComplex(1, 1).Eql(NewComplex(1, 1.00000001)), ShouldBeFalse)
		})

		Convey("CloseTo should tolerate small differences", func() {
			So(NewComplex(1, 1).CloseTo(NewComplex(1.00001, 0.99999)), ShouldBeTrue)
			So(NewComplex(1, 1).CloseTo(NewComplex(1.001, 1)), ShouldBeFalse)
			So(SQRT1_2.Multiply(SQRT2).CloseTo(One), ShouldBeTrue)
		})
	})
}

func TestComplexString(t *testing.T) {
	Convey("Given the string form of a complex number", t, func() {
		Convey("A zero imaginary part prints just the real part", func() {
			So(RealOf(-1.5).String(), ShouldEqual, "-1.5")
			So(Zero.String(), ShouldEqual, "0")
			So(One.String(), ShouldEqual, "1")
		})

		Convey("Unit imaginary parts print as i", func() {
			So(NewComplex(0, 1).String(), ShouldEqual, "i")
			So(NewComplex(0, -1).String(), ShouldEqual, "-i")
			So(NewComplex(2, 1).String(), ShouldEqual, "2+i")
			So(NewComplex(2, -1).String(), ShouldEqual, "2-i")
		})

		Convey("A zero real part is omitted", func() {
			So(NewComplex(0, 0.5).String(), ShouldEqual, "0.5i")
		})

		Convey("The sign comes from the imaginary part", func() {
			So(NewComplex(-0.5, -0.5).String(), ShouldEqual, "-0.5-0.5i")
			So(NewComplex(1, 2).String(), ShouldEqual, "1+2i")
		})

		Convey("Negative zero prints as zero", func() {
			So(RealOf(math.Copysign(0, -1)).String(), ShouldEqual, "0")
		})
	})

	Convey("Given rounding to a number of decimal places", t, func() {
		So(SQRT1_2.Format(4), ShouldEqual, "0.7071")
		So(NewComplex(0.25, 0.25).Format(4), ShouldEqual, "0.25+0.25i")
		So(NewComplex(0.00001, 0.99999).Format(4), ShouldEqual, "i")
		So(NewComplex(0.12345, 0).Format(-1), ShouldEqual, "0.12345")
		So(RealOf(0.99999999).Format(4), ShouldEqual, "1")
	})
}
