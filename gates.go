package qubits

import "math"

/*
Matrix is a single qubit operator. Column j is the image of basis state
|j>, so applying it to amplitude a of a state whose target bit is j
contributes m[0][j]*a to the target-clear index and m[1][j]*a to the
target-set index.
*/
type Matrix [2][2]Complex

var (
	hadamardMatrix = Matrix{
		{SQRT1_2, SQRT1_2},
		{SQRT1_2, SQRT1_2.Negate()},
	}
	xMatrix = Matrix{
		{Zero, One},
		{One, Zero},
	}
	yMatrix = Matrix{
		{Zero, NewComplex(0, -1)},
		{NewComplex(0, 1), Zero},
	}
	zMatrix = Matrix{
		{One, Zero},
		{Zero, One.Negate()},
	}
	sMatrix = Matrix{
		{One, Zero},
		{Zero, NewComplex(0, 1)},
	}
	tMatrix = Matrix{
		{One, Zero},
		{Zero, NewComplex(math.Sqrt2/2, math.Sqrt2/2)},
	}
)

// Apply returns the two contributions of amplitude for a target bit value.
func (m Matrix) Apply(bit int, amplitude Complex) (without Complex, with Complex) {
	return m[0][bit].Multiply(amplitude), m[1][bit].Multiply(amplitude)
}

/*
ControlledApplicationOfQubitOperator applies m to every target bit, one bit
after another, restricted to basis states whose control bits are all 1.
A nil control applies m unconditionally. Control and target bits must not
overlap.
*/
func (s *QState) ControlledApplicationOfQubitOperator(control, target BitQualifier, m Matrix) (*QState, error) {
	targets, err := resolveBits(target, s.numBits)
	if err != nil {
		return nil, err
	}

	var controlMask uint64
	if control != nil {
		controls, err := resolveBits(control, s.numBits)
		if err != nil {
			return nil, err
		}
		if overlaps(controls, targets) {
			return nil, &OverlappingBitsError{Control: controls, Target: targets}
		}
		controlMask = bitMask(controls)
	}

	// Operators on different bits are applied in sequence, never batched.
	result := s
	for _, t := range targets {
		result = result.applyToOneBit(controlMask, t, m)
	}
	return result, nil
}

func (s *QState) applyToOneBit(controlMask uint64, target int, m Matrix) *QState {
	targetMask := uint32(1) << uint(target)
	amps := newAmplitudes(s.amps.len() * 2)

	for index, amplitude := range s.amps.all() {
		if uint64(index)&controlMask != controlMask {
			amps.assign(index, amplitude)
			continue
		}

		bit := 0
		if index&targetMask != 0 {
			bit = 1
		}
		without, with := m.Apply(bit, amplitude)
		amps.add(index&^targetMask, without)
		amps.add(index|targetMask, with)
	}

	return s.newState(amps)
}

func (s *QState) Hadamard(target BitQualifier) (*QState, error) {
	return s.ControlledHadamard(nil, target)
}

func (s *QState) ControlledHadamard(control, target BitQualifier) (*QState, error) {
	return s.ControlledApplicationOfQubitOperator(control, target, hadamardMatrix)
}

// X is the Pauli X (NOT) gate.
func (s *QState) X(target BitQualifier) (*QState, error) {
	return s.ControlledX(nil, target)
}

// ControlledX is CNOT for one control bit and Toffoli for several.
func (s *QState) ControlledX(control, target BitQualifier) (*QState, error) {
	return s.ControlledApplicationOfQubitOperator(control, target, xMatrix)
}

func (s *QState) Y(target BitQualifier) (*QState, error) {
	return s.ControlledY(nil, target)
}

func (s *QState) ControlledY(control, target BitQualifier) (*QState, error) {
	return s.ControlledApplicationOfQubitOperator(control, target, yMatrix)
}

func (s *QState) Z(target BitQualifier) (*QState, error) {
	return s.ControlledZ(nil, target)
}

func (s *QState) ControlledZ(control, target BitQualifier) (*QState, error) {
	return s.ControlledApplicationOfQubitOperator(control, target, zMatrix)
}

// S multiplies the |1> amplitude by i.
func (s *QState) S(target BitQualifier) (*QState, error) {
	return s.ControlledS(nil, target)
}

func (s *QState) ControlledS(control, target BitQualifier) (*QState, error) {
	return s.ControlledApplicationOfQubitOperator(control, target, sMatrix)
}

// T multiplies the |1> amplitude by e^(i*pi/4).
func (s *QState) T(target BitQualifier) (*QState, error) {
	return s.ControlledT(nil, target)
}

func (s *QState) ControlledT(control, target BitQualifier) (*QState, error) {
	return s.ControlledApplicationOfQubitOperator(control, target, tMatrix)
}

func (s *QState) RotateX(target BitQualifier, angle float64) (*QState, error) {
	return s.ControlledXRotation(nil, target, angle)
}

func (s *QState) ControlledXRotation(control, target BitQualifier, angle float64) (*QState, error) {
	half := angle / 2
	cosine := RealOf(math.Cos(half))
	negativeISine := NewComplex(0, -math.Sin(half))
	return s.ControlledApplicationOfQubitOperator(control, target, Matrix{
		{cosine, negativeISine},
		{negativeISine, cosine},
	})
}

func (s *QState) RotateY(target BitQualifier, angle float64) (*QState, error) {
	return s.ControlledYRotation(nil, target, angle)
}

func (s *QState) ControlledYRotation(control, target BitQualifier, angle float64) (*QState, error) {
	half := angle / 2
	cosine := RealOf(math.Cos(half))
	sine := RealOf(math.Sin(half))
	return s.ControlledApplicationOfQubitOperator(control, target, Matrix{
		{cosine, sine.Negate()},
		{sine, cosine},
	})
}

func (s *QState) RotateZ(target BitQualifier, angle float64) (*QState, error) {
	return s.ControlledZRotation(nil, target, angle)
}

func (s *QState) ControlledZRotation(control, target BitQualifier, angle float64) (*QState, error) {
	half := angle / 2
	cosine := RealOf(math.Cos(half))
	iSine := NewComplex(0, math.Sin(half))
	return s.ControlledApplicationOfQubitOperator(control, target, Matrix{
		{cosine.Subtract(iSine), Zero},
		{Zero, cosine.Add(iSine)},
	})
}

// R shifts the phase of |1> by e^(i*angle).
func (s *QState) R(target BitQualifier, angle float64) (*QState, error) {
	return s.ControlledR(nil, target, angle)
}

func (s *QState) ControlledR(control, target BitQualifier, angle float64) (*QState, error) {
	return s.ControlledApplicationOfQubitOperator(control, target, Matrix{
		{One, Zero},
		{Zero, NewComplex(math.Cos(angle), math.Sin(angle))},
	})
}

/*
Toffoli flips the last bit given when every other bit given is 1. It needs
at least one control bit and the target.
*/
func (s *QState) Toffoli(bits ...int) (*QState, error) {
	if len(bits) < 2 {
		return nil, &WrongArityError{Operation: "Toffoli", Min: 2, Got: len(bits)}
	}
	controls := append(Bits(nil), bits[:len(bits)-1]...)
	return s.ControlledX(controls, Bit(bits[len(bits)-1]))
}

func (s *QState) Swap(bit1, bit2 int) (*QState, error) {
	return s.ControlledSwap(nil, bit1, bit2)
}

/*
ControlledSwap exchanges bit1 and bit2 of every basis state whose control
bits are all 1. It permutes indices rather than mixing amplitudes.
*/
func (s *QState) ControlledSwap(control BitQualifier, bit1, bit2 int) (*QState, error) {
	targets, err := resolveBits(Bits{bit1, bit2}, s.numBits)
	if err != nil {
		return nil, err
	}

	var controlMask uint64
	if control != nil {
		controls, err := resolveBits(control, s.numBits)
		if err != nil {
			return nil, err
		}
		if overlaps(controls, targets) {
			return nil, &OverlappingBitsError{Control: controls, Target: targets}
		}
		controlMask = bitMask(controls)
	}

	mask1 := uint32(1) << uint(bit1)
	mask2 := uint32(1) << uint(bit2)
	amps := newAmplitudes(s.amps.len())

	for index, amplitude := range s.amps.all() {
		swapped := index
		if uint64(index)&controlMask == controlMask {
			newBit2 := ((index & mask1) >> uint(bit1)) << uint(bit2)
			newBit1 := ((index & mask2) >> uint(bit2)) << uint(bit1)
			swapped = (index &^ mask1 &^ mask2) | newBit1 | newBit2
		}
		amps.assign(swapped, amplitude)
	}

	return s.newState(amps), nil
}
