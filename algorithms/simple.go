package algorithms

import (
	"math/bits"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qubits"
)

/*
Deutsch returns (f(0) + f(1)) mod 2 for a one bit function f, calling the
oracle once.
*/
func Deutsch(f func(int) int, opts ...Option) (int, error) {
	o := newOptions(opts)

	state, err := run(qubits.MustFromBits("|01>"),
		hadamard(qubits.ALL),
		oracle(qubits.Bit(1), qubits.Bit(0), f),
		hadamard(qubits.ALL),
	)
	if err != nil {
		return 0, err
	}

	m, err := state.Measure(qubits.Bit(1), o.rng)
	if err != nil {
		return 0, err
	}
	return m.Result, nil
}

/*
DeutschJozsa decides whether a function over three bits, promised to be
either constant or balanced, is constant.
*/
func DeutschJozsa(f func(int) int, opts ...Option) (bool, error) {
	o := newOptions(opts)
	inputBits := qubits.Range(1, 3)

	state, err := run(qubits.MustFromBits("|0001>"),
		hadamard(qubits.ALL),
		oracle(inputBits, qubits.Bit(0), f),
		hadamard(inputBits),
	)
	if err != nil {
		return false, err
	}

	m, err := state.Measure(inputBits, o.rng)
	if err != nil {
		return false, err
	}
	return m.Result == 0, nil
}

// DotProductOracle is f(x) = x.u mod 2, the oracle Bernstein-Vazirani expects.
func DotProductOracle(u int) func(int) int {
	return func(x int) int {
		return bits.OnesCount(uint(x&u)) % 2
	}
}

/*
BernsteinVazirani recovers the hidden string u of f(x) = x.u mod 2 over
numBits bits, returned most significant bit first.
*/
func BernsteinVazirani(f func(int) int, numBits int, opts ...Option) (string, error) {
	if numBits < 1 || numBits >= qubits.MaxBits {
		return "", &InputError{Algorithm: "BernsteinVazirani", Reason: "numBits out of range"}
	}
	o := newOptions(opts)

	minus, err := qubits.MustFromBits("|0>").Subtract(qubits.MustFromBits("|1>"))
	if err != nil {
		return "", err
	}
	if minus, err = minus.Normalize(); err != nil {
		return "", err
	}

	inputs, err := zeros(numBits)
	if err != nil {
		return "", err
	}
	initial, err := inputs.TensorProduct(minus)
	if err != nil {
		return "", err
	}

	inputBits := qubits.Range(1, numBits)
	state, err := run(initial,
		hadamard(inputBits),
		oracle(inputBits, qubits.Bit(0), f),
		hadamard(inputBits),
	)
	if err != nil {
		return "", err
	}

	m, err := state.Measure(inputBits, o.rng)
	if err != nil {
		return "", err
	}
	return m.AsBitString(), nil
}

/*
SimpleSearch finds the single x in 0..3 with f(x) = 1 using one call of
the oracle.
*/
func SimpleSearch(f func(int) int, opts ...Option) (int, error) {
	o := newOptions(opts)
	inputBits := qubits.Range(1, 2)

	state, err := run(qubits.MustFromBits("|001>"),
		hadamard(qubits.ALL),
		oracle(inputBits, qubits.Bit(0), f),
		hadamard(inputBits),
		pauliZ(inputBits),
		controlledZ(qubits.Bit(2), qubits.Bit(1)),
		hadamard(inputBits),
	)
	if err != nil {
		return 0, err
	}

	m, err := state.Measure(inputBits, o.rng)
	if err != nil {
		return 0, err
	}
	return m.Result, nil
}

/*
SuperDense sends two classical bits, such as "10", through one qubit of a
shared Bell pair and returns what the receiver decodes.
*/
func SuperDense(input string, opts ...Option) (string, error) {
	if len(input) != 2 || !isBinary(input) {
		return "", &InputError{Algorithm: "SuperDense", Reason: "input must be two binary digits"}
	}
	o := newOptions(opts)

	const (
		alice = qubits.Bit(1)
		bob   = qubits.Bit(0)
	)

	state, err := run(qubits.MustFromBits("|00>"),
		hadamard(bob),
		cnot(bob, alice),
		when(input[0] == '1', pauliZ(alice)),
		when(input[1] == '1', pauliX(alice)),
		cnot(alice, bob),
		hadamard(alice),
	)
	if err != nil {
		return "", err
	}

	m, err := state.Measure(qubits.ALL, o.rng)
	if err != nil {
		return "", err
	}
	return m.AsBitString(), nil
}

func isBinary(s string) bool {
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

/*
Teleport moves a one qubit message onto the receiver's half of a Bell
pair. The message becomes qubit 2 of a three qubit state, qubits 1 and 0
being the pair; after the protocol qubits 2 and 1 are measured and qubit 0
carries the message.
*/
func Teleport(message *qubits.QState, opts ...Option) (*qubits.QState, error) {
	if message == nil || message.NumBits() != 1 {
		return nil, &InputError{Algorithm: "Teleport", Reason: "message must be a single qubit"}
	}
	o := newOptions(opts)

	pair, err := run(qubits.MustFromBits("|00>"),
		hadamard(qubits.Bit(1)),
		cnot(qubits.Bit(1), qubits.Bit(0)),
	)
	if err != nil {
		return nil, err
	}

	state, err := message.TensorProduct(pair)
	if err != nil {
		return nil, err
	}

	state, err = run(state,
		cnot(qubits.Bit(2), qubits.Bit(1)),
		hadamard(qubits.Bit(2)),
	)
	if err != nil {
		return nil, err
	}

	m, err := state.Measure(qubits.Range(1, 2), o.rng)
	if err != nil {
		return nil, err
	}

	errnie.Info("teleport: sender measured %s", m.AsBitString())

	return run(m.NewState,
		when(m.Result&1 != 0, pauliX(qubits.Bit(0))),
		when(m.Result&2 != 0, pauliZ(qubits.Bit(0))),
	)
}
