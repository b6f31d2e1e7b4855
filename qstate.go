/*
Package qubits simulates quantum circuits on a classical machine. A state
keeps only its non-negligible amplitudes, so circuits with little
entanglement stay cheap even over many qubits.
*/
package qubits

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// MaxBits is the largest number of qubits a QState can hold.
const MaxBits = 32

// formatDecimalPlaces is the rounding used by QState.String.
const formatDecimalPlaces = 4

/*
QState is an n-qubit state held as a sparse map from basis state index to
amplitude. Qubit 0 is the least significant bit of the index.

A QState is immutable: every operation returns a new QState and leaves the
receiver untouched, so intermediate states can be kept and reused freely,
including from several goroutines at once.
*/
type QState struct {
	numBits int
	amps    *amplitudes
}

/*
New creates a state over numBits qubits from an explicit map of
amplitudes. A nil map gives the all-zero basis state |00...0>.
Negligible amplitudes are dropped.
*/
func New(numBits int, amplitudes map[int]Complex) (*QState, error) {
	if numBits < 0 || numBits > MaxBits {
		return nil, &DimensionMismatchError{Operation: "New", Expected: MaxBits, Actual: numBits}
	}

	if amplitudes == nil {
		amplitudes = map[int]Complex{0: One}
	}

	size := uint64(1) << uint(numBits)
	amps := newAmplitudes(len(amplitudes))
	for index, amplitude := range amplitudes {
		if index < 0 || uint64(index) >= size {
			return nil, &DimensionMismatchError{
				Operation: "New", Expected: numBits, Actual: bits.Len64(uint64(index)),
			}
		}
		amps.assign(uint32(index), amplitude)
	}

	return &QState{numBits: numBits, amps: amps}, nil
}

/*
FromBits parses a ket literal such as "|0101>" or "0101". The rightmost
character is qubit 0.
*/
func FromBits(ket string) (*QState, error) {
	value, length, err := parseBitString(ket)
	if err != nil {
		return nil, err
	}

	amps := newAmplitudes(1)
	amps.assign(uint32(value), One)
	return &QState{numBits: length, amps: amps}, nil
}

// MustFromBits is FromBits for literals known to be valid. It panics on error.
func MustFromBits(ket string) *QState {
	state, err := FromBits(ket)
	if err != nil {
		panic(err)
	}
	return state
}

func parseBitString(ket string) (uint64, int, error) {
	s := strings.TrimSuffix(strings.TrimPrefix(ket, "|"), ">")
	if s == "" {
		return 0, 0, &InvalidKetError{Literal: ket, Reason: "no bits"}
	}
	if len(s) > MaxBits {
		return 0, 0, &DimensionMismatchError{Operation: "FromBits", Expected: MaxBits, Actual: len(s)}
	}
	value, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, 0, &InvalidKetError{Literal: ket, Reason: "bits must be 0 or 1"}
	}
	return value, len(s), nil
}

// newState wraps a freshly built store.
func (s *QState) newState(amps *amplitudes) *QState {
	return &QState{numBits: s.numBits, amps: amps}
}

func (s *QState) NumBits() int {
	return s.numBits
}

// Len is the number of live (non-negligible) amplitudes.
func (s *QState) Len() int {
	return s.amps.len()
}

// Amplitude returns the amplitude of a basis state, Zero when absent.
func (s *QState) Amplitude(index int) Complex {
	if index < 0 || uint64(index) > math.MaxUint32 {
		return Zero
	}
	return s.amps.get(uint32(index))
}

// AmplitudeOf is Amplitude addressed by a ket literal.
func (s *QState) AmplitudeOf(ket string) (Complex, error) {
	value, _, err := parseBitString(ket)
	if err != nil {
		return Zero, err
	}
	return s.amps.get(uint32(value)), nil
}

/*
All yields the live amplitudes in ascending basis state order. Breaking out
of the range loop stops the iteration.
*/
func (s *QState) All() iter.Seq2[int, Complex] {
	return func(yield func(int, Complex) bool) {
		for index, amplitude := range s.amps.all() {
			if !yield(int(index), amplitude) {
				return
			}
		}
	}
}

/*
StateWithAmplitude is one live entry of a QState.
*/
type StateWithAmplitude struct {
	NumBits   int
	Index     int
	Amplitude Complex
}

// AsBitString renders Index as binary, zero padded to NumBits.
func (c StateWithAmplitude) AsBitString() string {
	return padBits(uint64(c.Index), c.NumBits)
}

// Each calls fn for every live entry until fn returns false.
func (s *QState) Each(fn func(StateWithAmplitude) bool) {
	for index, amplitude := range s.amps.all() {
		if !fn(StateWithAmplitude{NumBits: s.numBits, Index: int(index), Amplitude: amplitude}) {
			return
		}
	}
}

// Multiply scales every amplitude, such as a global phase.
func (s *QState) Multiply(amount Operand) *QState {
	amps := newAmplitudes(s.amps.len())
	for index, amplitude := range s.amps.all() {
		amps.assign(index, amplitude.Multiply(amount))
	}
	return s.newState(amps)
}

/*
Add sums two states over the same qubits. The result is generally not
normalized.
*/
func (s *QState) Add(other *QState) (*QState, error) {
	if err := s.sameDimension("Add", other); err != nil {
		return nil, err
	}

	amps := newAmplitudes(s.amps.len() + other.amps.len())
	for index, amplitude := range s.amps.all() {
		amps.assign(index, amplitude)
	}
	for index, amplitude := range other.amps.all() {
		amps.add(index, amplitude)
	}
	return s.newState(amps), nil
}

// Subtract is Add of other scaled by -1.
func (s *QState) Subtract(other *QState) (*QState, error) {
	if err := s.sameDimension("Subtract", other); err != nil {
		return nil, err
	}
	return s.Add(other.Multiply(Real(-1)))
}

func (s *QState) sameDimension(operation string, other *QState) error {
	if other == nil {
		return &DimensionMismatchError{Operation: operation, Expected: s.numBits, Actual: 0}
	}
	if other.numBits != s.numBits {
		return &DimensionMismatchError{Operation: operation, Expected: s.numBits, Actual: other.numBits}
	}
	return nil
}

/*
TensorProduct combines the receiver (high bits) with other (low bits):
index = (receiverIndex << other.NumBits()) + otherIndex.
*/
func (s *QState) TensorProduct(other *QState) (*QState, error) {
	if other == nil {
		return nil, &DimensionMismatchError{Operation: "TensorProduct", Expected: 1, Actual: 0}
	}
	numBits := s.numBits + other.numBits
	if numBits > MaxBits {
		return nil, &DimensionMismatchError{Operation: "TensorProduct", Expected: MaxBits, Actual: numBits}
	}

	amps := newAmplitudes(s.amps.len() * other.amps.len())
	for a, amplitudeA := range s.amps.all() {
		for b, amplitudeB := range other.amps.all() {
			index := uint64(a)<<uint(other.numBits) + uint64(b)
			amps.assign(uint32(index), amplitudeA.Multiply(amplitudeB))
		}
	}
	return &QState{numBits: numBits, amps: amps}, nil
}

/*
Normalize scales the state so the squared magnitudes sum to one. A state
with no live amplitudes cannot be normalized and yields ErrZeroState.
*/
func (s *QState) Normalize() (*QState, error) {
	sum := s.sumOfSquares()
	if sum == 0 {
		return nil, ErrZeroState
	}

	scale := Real(1 / math.Sqrt(sum))
	amps := newAmplitudes(s.amps.len())
	for index, amplitude := range s.amps.all() {
		amps.assign(index, amplitude.Multiply(scale))
	}
	return s.newState(amps), nil
}

func (s *QState) sumOfSquares() float64 {
	var sum float64
	for _, amplitude := range s.amps.all() {
		magnitude := amplitude.Magnitude()
		sum += magnitude * magnitude
	}
	return sum
}

/*
Eql is exact equality: same qubit count and identical amplitudes at every
index live in either state.
*/
func (s *QState) Eql(other *QState) bool {
	if other == nil || s.numBits != other.numBits {
		return false
	}
	return s.amplitudesMatch(other) && other.amplitudesMatch(s)
}

func (s *QState) amplitudesMatch(other *QState) bool {
	for index, amplitude := range s.amps.all() {
		if !amplitude.Eql(other.amps.get(index)) {
			return false
		}
	}
	return true
}

/*
String renders the state in ket notation, terms in ascending index order,
amplitudes rounded to four decimal places and omitted when exactly 1:

	(0.7071)|00> + (0.7071)|11>
*/
func (s *QState) String() string {
	var b strings.Builder
	for index, amplitude := range s.amps.all() {
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		if formatted := amplitude.Format(formatDecimalPlaces); formatted != "1" {
			b.WriteString("(")
			b.WriteString(formatted)
			b.WriteString(")")
		}
		b.WriteString("|")
		b.WriteString(padBits(uint64(index), s.numBits))
		b.WriteString(">")
	}
	return b.String()
}

// GoString keeps %#v readable in test failures.
func (s *QState) GoString() string {
	return fmt.Sprintf("QState(%d)[%s]", s.numBits, s.String())
}

func padBits(value uint64, width int) string {
	digits := strconv.FormatUint(value, 2)
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}
