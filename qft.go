package qubits

import "math"

/*
QFT applies the Quantum Fourier Transform to the target bits, taken in the
order given. For [b0, b1, ..., bk] the transform of [b1, ..., bk] is built
first, then b0 controls a phase rotation of 2*pi/2^(i+1) on each bi, then
b0 gets a Hadamard. The bit order is reversed at the end, since the
recursion leaves the amplitudes bit-reversed.
*/
func (s *QState) QFT(target BitQualifier) (*QState, error) {
	targets, err := resolveBits(target, s.numBits)
	if err != nil {
		return nil, err
	}

	logf("qft over bits %v of a %d qubit state", targets, s.numBits)

	state, err := qft(s, targets)
	if err != nil {
		return nil, err
	}
	return reverseBits(state, targets)
}

func qft(state *QState, targets []int) (*QState, error) {
	head := targets[0]
	if len(targets) > 1 {
		var err error
		if state, err = qft(state, targets[1:]); err != nil {
			return nil, err
		}
		for i := 1; i < len(targets); i++ {
			angle := 2 * math.Pi / float64(uint64(1)<<uint(i+1))
			if state, err = state.ControlledR(Bit(head), Bit(targets[i]), angle); err != nil {
				return nil, err
			}
		}
	}
	return state.Hadamard(Bit(head))
}

func reverseBits(state *QState, targets []int) (*QState, error) {
	var err error
	for lo, hi := 0, len(targets)-1; lo < hi; lo, hi = lo+1, hi-1 {
		if state, err = state.Swap(targets[lo], targets[hi]); err != nil {
			return nil, err
		}
	}
	return state, nil
}
