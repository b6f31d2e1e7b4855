package algorithms

import (
	"math"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qubits"
)

// groverAttempts bounds how many full searches run before giving up.
const groverAttempts = 6

/*
GroverSearch finds an x in [0, rangeSize) with f(x) = 1, where f is 1 for
exactly one x. Each attempt applies floor(sqrt(rangeSize)*pi/4) rounds of
amplitude amplification and measures; a wrong answer triggers a new
attempt.
*/
func GroverSearch(f func(int) int, rangeSize int, opts ...Option) (int, error) {
	numBits := bitsFor(rangeSize)
	if numBits < 1 || numBits >= qubits.MaxBits {
		return 0, &InputError{Algorithm: "GroverSearch", Reason: "range size out of bounds"}
	}
	o := newOptions(opts)

	inputBits := qubits.Range(1, numBits)
	amplifications := int(math.Floor(math.Sqrt(float64(rangeSize)) * math.Pi / 4))
	maxAttempts := o.attemptsOr(groverAttempts)

	result := 0
	for attempt := 0; f(result) != 1 && attempt < maxAttempts; attempt++ {
		inputs, err := zeros(numBits)
		if err != nil {
			return 0, err
		}
		state, err := inputs.TensorProduct(qubits.MustFromBits("|1>"))
		if err != nil {
			return 0, err
		}
		if state, err = state.Hadamard(qubits.ALL); err != nil {
			return 0, err
		}

		for range amplifications {
			if state, err = amplify(state, f, inputBits); err != nil {
				return 0, err
			}
		}

		m, err := state.Measure(inputBits, o.rng)
		if err != nil {
			return 0, err
		}
		result = m.Result
		errnie.Info("grover attempt %d measured %d", attempt+1, result)
	}

	if f(result) != 1 {
		return 0, ErrNoSolution
	}
	return result, nil
}

// amplify flips the phase of the marked state, then reflects about the mean.
func amplify(state *qubits.QState, f func(int) int, inputBits qubits.BitRange) (*qubits.QState, error) {
	return run(state,
		oracle(inputBits, qubits.Bit(0), f),
		hadamard(inputBits),
		oracle(inputBits, qubits.Bit(0), isZero),
		hadamard(inputBits),
	)
}

func isZero(x int) int {
	if x == 0 {
		return 1
	}
	return 0
}
