package algorithms

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qubits"
	"github.com/theapemachine/qubits/qmath"
)

/*
Simon finds the secret s of a two-to-one f over numBits bits with
f(x) = f(x XOR s), or returns 0 when f is one-to-one.

Each run of the circuit yields a y with y.s = 0 mod 2. Distinct ys are
collected until the null space of the system has a single vector.
*/
func Simon(f func(int) int, numBits int, opts ...Option) (int, error) {
	if numBits < 1 || 2*numBits > qubits.MaxBits {
		return 0, &InputError{Algorithm: "Simon", Reason: "numBits out of range"}
	}
	o := newOptions(opts)

	solution, err := findPotentialSolution(o, f, numBits)
	if err != nil {
		return 0, err
	}
	if f(0) == f(solution) {
		return solution, nil
	}
	return 0, nil
}

func findPotentialSolution(o *options, f func(int) int, numBits int) (int, error) {
	inputBits := qubits.Range(numBits, 2*numBits-1)
	targetBits := qubits.Range(0, numBits-1)

	circuit := func(rng qubits.Random) (int, error) {
		initial, err := zeros(2 * numBits)
		if err != nil {
			return 0, err
		}
		state, err := run(initial,
			hadamard(inputBits),
			oracle(inputBits, targetBits, f),
			hadamard(inputBits),
		)
		if err != nil {
			return 0, err
		}
		m, err := state.Measure(inputBits, rng)
		if err != nil {
			return 0, err
		}
		return m.Result, nil
	}

	var (
		nullSpace []int
		results   []int
		seen      = roaring.New()
		estimated = 0
		budget    = o.attemptsOr(10 * numBits)
	)

	// Trials run in batches of numBits; results are consumed in order.
	for count := 0; count < budget; {
		batch, err := o.sample(min(numBits, budget-count), circuit)
		if err != nil {
			return 0, err
		}

		for _, result := range batch {
			count++
			if !seen.CheckedAdd(uint32(result)) {
				continue
			}
			results = append(results, result)
			estimated++

			if estimated == numBits-1 {
				nullSpace = qmath.FindNullSpaceMod2(results, numBits)
				if len(nullSpace) == 1 {
					errnie.Info("simon: solved after %d runs", count)
					return nullSpace[0], nil
				}
				estimated = numBits - len(nullSpace)
			}
		}
	}

	if nullSpace == nil {
		return 0, ErrNoSolution
	}
	return nullSpace[0], nil
}
