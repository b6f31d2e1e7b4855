package qubits

import (
	"math"
	"strconv"
)

// closeToTolerance bounds each component difference accepted by CloseTo.
const closeToTolerance = 0.0001

/*
Operand is the right hand side of a Complex binary operation. It is either
a Complex or a Real; no other type can satisfy it. A nil Operand panics.
*/
type Operand interface {
	operand() Complex
}

// Real is a bare real number used as an operand.
type Real float64

func (r Real) operand() Complex { return Complex{Real: float64(r)} }

/*
Complex is an immutable complex number. Every operation returns a new value.
*/
type Complex struct {
	Real      float64
	Imaginary float64
}

var (
	Zero    = Complex{}
	One     = Complex{Real: 1}
	SQRT2   = Complex{Real: math.Sqrt2}
	SQRT1_2 = Complex{Real: 1 / math.Sqrt2}
)

// NewComplex builds real + imaginary*i.
func NewComplex(real, imaginary float64) Complex {
	return Complex{Real: real, Imaginary: imaginary}
}

// RealOf builds a Complex with no imaginary part.
func RealOf(real float64) Complex {
	return Complex{Real: real}
}

func (c Complex) operand() Complex { return c }

// Add returns c + other; other must be non-nil, as for every binary operation.
func (c Complex) Add(other Operand) Complex {
	o := other.operand()
	return Complex{Real: c.Real + o.Real, Imaginary: c.Imaginary + o.Imaginary}
}

func (c Complex) Subtract(other Operand) Complex {
	o := other.operand()
	return Complex{Real: c.Real - o.Real, Imaginary: c.Imaginary - o.Imaginary}
}

// Multiply returns c * other; other must be non-nil.
func (c Complex) Multiply(other Operand) Complex {
	switch o := other.(type) {
	case Real:
		// Keeps a zero imaginary part exactly zero.
		return Complex{Real: c.Real * float64(o), Imaginary: c.Imaginary * float64(o)}
	default:
		v := o.operand()
		return Complex{
			Real:      c.Real*v.Real - c.Imaginary*v.Imaginary,
			Imaginary: c.Real*v.Imaginary + c.Imaginary*v.Real,
		}
	}
}

func (c Complex) Negate() Complex {
	return Complex{Real: -c.Real, Imaginary: -c.Imaginary}
}

func (c Complex) Conjugate() Complex {
	return Complex{Real: c.Real, Imaginary: -c.Imaginary}
}

func (c Complex) Magnitude() float64 {
	return math.Sqrt(c.Real*c.Real + c.Imaginary*c.Imaginary)
}

// Phase is atan2(imaginary, real).
func (c Complex) Phase() float64 {
	return math.Atan2(c.Imaginary, c.Real)
}

// Eql compares both fields exactly.
func (c Complex) Eql(other Complex) bool {
	return c.Real == other.Real && c.Imaginary == other.Imaginary
}

// CloseTo compares both fields within 1e-4.
func (c Complex) CloseTo(other Complex) bool {
	return math.Abs(c.Real-other.Real) < closeToTolerance &&
		math.Abs(c.Imaginary-other.Imaginary) < closeToTolerance
}

/*
Format renders the number with each component rounded half up to
decimalPlaces. A negative decimalPlaces disables rounding.
*/
func (c Complex) Format(decimalPlaces int) string {
	if decimalPlaces < 0 {
		return c.String()
	}
	magnitude := math.Pow(10, float64(decimalPlaces))
	return Complex{
		Real:      math.Floor(c.Real*magnitude+0.5) / magnitude,
		Imaginary: math.Floor(c.Imaginary*magnitude+0.5) / magnitude,
	}.String()
}

func (c Complex) String() string {
	if c.Imaginary == 0 {
		return formatNumber(c.Real)
	}

	var imaginary string
	switch c.Imaginary {
	case 1:
		imaginary = "i"
	case -1:
		imaginary = "-i"
	default:
		imaginary = formatNumber(c.Imaginary) + "i"
	}

	if c.Real == 0 {
		return imaginary
	}

	sign := "+"
	if c.Imaginary < 0 {
		sign = ""
	}
	return formatNumber(c.Real) + sign + imaginary
}

func formatNumber(v float64) string {
	if v == 0 {
		// -0 prints as 0
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
