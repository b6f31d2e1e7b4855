/*
Package qmath holds the classical number theory used around the quantum
parts of period finding, factoring and Simon's algorithm.
*/
package qmath

import (
	"math"
	"math/big"
)

// PowerMod returns base^exp mod m.
func PowerMod(base, exp, m int) int {
	if m == 1 {
		return 0
	}
	return int(new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(exp)), big.NewInt(int64(m))).Int64())
}

func approximatelyInteger(x float64) bool {
	return math.Abs(x-math.Round(x)) < 0.0000001
}

/*
PowerFactor returns x such that n = x^y for some y > 1, or 0 when n is not
a perfect power.
*/
func PowerFactor(n int) int {
	if n < 4 {
		return 0
	}
	log2n := math.Log2(float64(n))
	y := int(math.Floor(log2n))
	if log2n == float64(y) {
		return 2
	}
	for y--; y > 1; y-- {
		x := math.Pow(float64(n), 1/float64(y))
		if approximatelyInteger(x) {
			return int(math.Round(x))
		}
	}
	return 0
}

// GCD is the greatest common divisor; GCD(a, 0) is a.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM is the least common multiple.
func LCM(a, b int) int {
	return a * b / GCD(a, b)
}

/*
Fraction is a continued fraction expansion together with the rational
number it evaluates to.
*/
type Fraction struct {
	Quotients   []int
	Numerator   int
	Denominator int
}

/*
ContinuedFraction expands value until the convergent lies within precision
of it.
*/
func ContinuedFraction(value, precision float64) Fraction {
	first := 0
	remainder := value
	if math.Abs(value) >= 1 {
		first = int(math.Trunc(value))
		remainder = value - float64(first)
	}

	twoAgoNum, twoAgoDen := 1, 0
	oneAgoNum, oneAgoDen := first, 1
	quotients := []int{first}

	for math.Abs(value-float64(oneAgoNum)/float64(oneAgoDen)) > precision {
		reciprocal := 1 / remainder
		quotient := int(math.Trunc(reciprocal))
		remainder = reciprocal - float64(quotient)
		quotients = append(quotients, quotient)

		num := quotient*oneAgoNum + twoAgoNum
		den := quotient*oneAgoDen + twoAgoDen
		twoAgoNum, twoAgoDen = oneAgoNum, oneAgoDen
		oneAgoNum, oneAgoDen = num, den
	}

	if oneAgoDen < 0 {
		oneAgoNum, oneAgoDen = -oneAgoNum, -oneAgoDen
	}
	return Fraction{Quotients: quotients, Numerator: oneAgoNum, Denominator: oneAgoDen}
}
