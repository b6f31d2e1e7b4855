package algorithms

import (
	"errors"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qubits"
	"github.com/theapemachine/qubits/qmath"
)

const factorAttempts = 8

/*
Factor returns a non-trivial factor of n using Shor's algorithm. Even
numbers and perfect powers are settled classically; otherwise a random a
is chosen and the order r of a mod n yields gcd(a^(r/2) - 1, n) when r is
even.
*/
func Factor(n int, opts ...Option) (int, error) {
	if n < 3 {
		return 0, &InputError{Algorithm: "Factor", Reason: "n must be at least 3"}
	}
	if n%2 == 0 {
		return 2, nil
	}
	if p := qmath.PowerFactor(n); p > 1 {
		return p, nil
	}
	if 3*bitsFor(n) > qubits.MaxBits {
		return 0, &InputError{Algorithm: "Factor", Reason: "n too large to simulate"}
	}

	o := newOptions(opts)

	for attempt := 0; attempt < o.attemptsOr(factorAttempts); attempt++ {
		a := 2 + int(o.float64()*float64(n-2))
		if gcd := qmath.GCD(a, n); gcd > 1 {
			errnie.Info("lucky guess: %d and %d share the factor %d", n, a, gcd)
			return gcd, nil
		}

		r, err := computeOrder(o, a, n)
		switch {
		case errors.Is(err, ErrNoPeriod):
			continue
		case err != nil:
			return 0, err
		case r%2 != 0:
			errnie.Info("the period %d of %d is odd, trying again", r, a)
			continue
		}

		candidate := qmath.GCD(qmath.PowerMod(a, r/2, n)-1, n)
		errnie.Info("candidate factor from period %d: %d", r, candidate)
		if candidate > 1 && candidate < n && n%candidate == 0 {
			return candidate, nil
		}
	}

	return 0, ErrNoSolution
}
