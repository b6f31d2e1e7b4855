package algorithms

import (
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qubits"
	"github.com/theapemachine/qubits/qmath"
)

/*
periodCircuit is the register layout shared by period finding and order
finding: numOut output bits at the bottom, numIn input bits above them.
*/
type periodCircuit struct {
	numIn  int
	numOut int
	f      func(int) int
}

func newPeriodCircuit(algorithm string, f func(int) int, upperLimit, inputFactor int) (*periodCircuit, error) {
	numOut := bitsFor(upperLimit)
	if numOut < 1 {
		return nil, &InputError{Algorithm: algorithm, Reason: "upper limit must be at least 2"}
	}
	if numOut*(inputFactor+1) > qubits.MaxBits {
		return nil, &InputError{Algorithm: algorithm, Reason: "upper limit too large to simulate"}
	}
	return &periodCircuit{numIn: inputFactor * numOut, numOut: numOut, f: f}, nil
}

func (c *periodCircuit) inputBits() qubits.BitRange {
	return qubits.Range(c.numOut, c.numOut+c.numIn-1)
}

func (c *periodCircuit) outBits() qubits.BitRange {
	return qubits.Range(0, c.numOut-1)
}

func (c *periodCircuit) inputRange() int  { return 1 << uint(c.numIn) }
func (c *periodCircuit) outputRange() int { return 1 << uint(c.numOut) }

/*
determineFrequency returns the frequency of f, the number of times its
period fits into the input range, or an integer multiple of it. Measuring
the output bits before the QFT is not needed for correctness but shrinks
the state.
*/
func (c *periodCircuit) determineFrequency(rng qubits.Random) (int, error) {
	initial, err := zeros(c.numIn + c.numOut)
	if err != nil {
		return 0, err
	}
	state, err := run(initial,
		hadamard(c.inputBits()),
		oracle(c.inputBits(), c.outBits(), c.f),
	)
	if err != nil {
		return 0, err
	}

	collapsed, err := state.Measure(c.outBits(), rng)
	if err != nil {
		return 0, err
	}
	if state, err = collapsed.NewState.QFT(c.inputBits()); err != nil {
		return 0, err
	}

	m, err := state.Measure(c.inputBits(), rng)
	if err != nil {
		return 0, err
	}
	return m.Result, nil
}

// candidate turns a frequency sample into a divisor candidate for the period.
func (c *periodCircuit) candidate(sample int) int {
	accuracy := 1 / float64(2*c.outputRange()*c.outputRange())
	return qmath.ContinuedFraction(float64(sample)/float64(c.inputRange()), accuracy).Denominator
}

/*
FindPeriodSpecial finds r with f(x) = f(x+r) when r is a power of two no
larger than upperLimit. Every frequency sample is a multiple of 2^n/r, so
their gcd recovers r after a handful of runs.
*/
func FindPeriodSpecial(f func(int) int, upperLimit int, opts ...Option) (int, error) {
	c, err := newPeriodCircuit("FindPeriodSpecial", f, upperLimit, 1)
	if err != nil {
		return 0, err
	}
	o := newOptions(opts)

	samples, err := o.sample(o.attemptsOr(c.numOut), c.determineFrequency)
	if err != nil {
		return 0, err
	}

	gcd := 0
	for _, sample := range samples {
		gcd = qmath.GCD(gcd, sample)
	}
	if gcd == 0 {
		return 0, ErrNoPeriod
	}
	return c.inputRange() / gcd, nil
}

/*
FindPeriod finds r with f(x) = f(x+r) for any r up to upperLimit. Each
sample is rounded to a fraction with a continued fraction expansion; its
denominator is r or a divisor of r, and the lcm of the good candidates
converges on r.

When no true period is found the best effort is returned with ErrNoPeriod.
*/
func FindPeriod(f func(int) int, upperLimit int, opts ...Option) (int, error) {
	c, err := newPeriodCircuit("FindPeriod", f, upperLimit, 2)
	if err != nil {
		return 0, err
	}
	o := newOptions(opts)

	var (
		f0          = f(0)
		maxAttempts = o.attemptsOr(2 * c.numOut)
		attempts    = 0
		successes   = 0
		best        = 1
		isPeriod    = false
	)

	for successes < c.numOut && attempts < maxAttempts {
		batch, err := o.sample(min(c.numOut-successes, maxAttempts-attempts), c.determineFrequency)
		if err != nil {
			return 0, err
		}

		for _, sample := range batch {
			if successes >= c.numOut {
				break
			}
			attempts++

			divisor := c.candidate(sample)
			if divisor <= 1 || divisor > c.outputRange() {
				continue
			}

			if lcm := qmath.LCM(divisor, best); lcm <= c.outputRange() {
				best = lcm
				if f(best) == f0 {
					isPeriod = true
				}
				successes++
			} else if !isPeriod && f(divisor) == f0 {
				// The lcm so far was a dead end; start over from a true period.
				best = divisor
				isPeriod = true
				successes++
			}
		}

		errnie.Info("period: best %d after %d attempts, %d good candidates", best, attempts, successes)
	}

	if f(best) != f0 {
		return best, ErrNoPeriod
	}
	return best, nil
}

/*
ComputeOrder finds the order of a modulo n, the smallest r > 0 with
a^r = 1 (mod n). It relies on f(x) = a^x mod n repeating only at multiples
of r, so any candidate with f(candidate) = 1 is the order or a multiple.
*/
func ComputeOrder(a, n int, opts ...Option) (int, error) {
	return computeOrder(newOptions(opts), a, n)
}

func computeOrder(o *options, a, n int) (int, error) {
	f := func(x int) int { return qmath.PowerMod(a, x, n) }

	c, err := newPeriodCircuit("ComputeOrder", f, n, 2)
	if err != nil {
		return 0, err
	}

	f0 := f(0)
	best := 1
	maxAttempts := o.attemptsOr(2 * c.numOut)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if f(best) == f0 {
			errnie.Info("the period of %d^x mod %d is %d", a, n, best)
			return best, nil
		}

		samples, err := o.sample(1, c.determineFrequency)
		if err != nil {
			return 0, err
		}

		divisor := c.candidate(samples[0])
		if divisor <= 1 || divisor > c.outputRange() {
			continue
		}
		if f(divisor) == f0 {
			best = divisor
		} else if lcm := qmath.LCM(divisor, best); lcm <= c.outputRange() {
			best = lcm
		}
	}

	if f(best) == f0 {
		return best, nil
	}
	errnie.Info("giving up on the order of %d mod %d after %d attempts", a, n, maxAttempts)
	return 0, ErrNoPeriod
}
