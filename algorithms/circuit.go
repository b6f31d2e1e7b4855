package algorithms

import (
	"math/bits"

	"github.com/theapemachine/qubits"
)

// step is one gate of a circuit.
type step func(*qubits.QState) (*qubits.QState, error)

// run applies steps in order and stops at the first error.
func run(state *qubits.QState, steps ...step) (*qubits.QState, error) {
	var err error
	for _, s := range steps {
		if state, err = s(state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func hadamard(target qubits.BitQualifier) step {
	return func(s *qubits.QState) (*qubits.QState, error) { return s.Hadamard(target) }
}

func pauliX(target qubits.BitQualifier) step {
	return func(s *qubits.QState) (*qubits.QState, error) { return s.X(target) }
}

func pauliZ(target qubits.BitQualifier) step {
	return func(s *qubits.QState) (*qubits.QState, error) { return s.Z(target) }
}

func cnot(control, target qubits.BitQualifier) step {
	return func(s *qubits.QState) (*qubits.QState, error) { return s.ControlledX(control, target) }
}

func controlledZ(control, target qubits.BitQualifier) step {
	return func(s *qubits.QState) (*qubits.QState, error) { return s.ControlledZ(control, target) }
}

func oracle(input, target qubits.BitQualifier, f func(int) int) step {
	return func(s *qubits.QState) (*qubits.QState, error) { return s.ApplyFunction(input, target, f) }
}

func qft(target qubits.BitQualifier) step {
	return func(s *qubits.QState) (*qubits.QState, error) { return s.QFT(target) }
}

// when applies s only if cond holds.
func when(cond bool, s step) step {
	if cond {
		return s
	}
	return func(state *qubits.QState) (*qubits.QState, error) { return state, nil }
}

// bitsFor is the number of bits needed to hold values below n, ceil(log2 n).
func bitsFor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// zeros is the all-zero basis state over numBits qubits.
func zeros(numBits int) (*qubits.QState, error) {
	return qubits.New(numBits, nil)
}
