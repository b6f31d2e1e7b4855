package qubits

import (
	"fmt"
	"math/bits"
	"math/rand/v2"
)

/*
Random is the source of the single uniform draw in [0, 1) a measurement
needs. *rand.Rand from math/rand/v2 satisfies it; tests inject fixed values
through RandomFunc.
*/
type Random interface {
	Float64() float64
}

// RandomFunc adapts a plain function to Random.
type RandomFunc func() float64

func (f RandomFunc) Float64() float64 { return f() }

// defaultRandom draws from the goroutine-safe top level math/rand/v2 source.
type defaultRandom struct{}

func (defaultRandom) Float64() float64 { return rand.Float64() }

/*
Measurement is the outcome of observing some qubits of a state: the value
read from the measured bits and the collapsed, normalized state.
*/
type Measurement struct {
	Width    int
	Result   int
	NewState *QState
}

// AsBitString renders Result as binary, zero padded to Width.
func (m *Measurement) AsBitString() string {
	return padBits(uint64(m.Result), m.Width)
}

func (m *Measurement) String() string {
	return fmt.Sprintf("{result: %d, newState: %s}", m.Result, m.NewState)
}

/*
Measure observes the qubits named by target. One value r is drawn from rng
(nil uses the default source) and the live amplitudes are walked in
ascending index order, accumulating squared magnitudes; the first basis
state whose running total exceeds r is chosen, or the last one when none
does. The state then collapses onto the basis states agreeing with the
chosen one on every measured bit.

Result holds the measured bits, highest measured position first.
*/
func (s *QState) Measure(target BitQualifier, rng Random) (*Measurement, error) {
	measured, err := resolveBits(target, s.numBits)
	if err != nil {
		return nil, err
	}
	if s.amps.len() == 0 {
		return nil, ErrZeroState
	}
	if rng == nil {
		rng = defaultRandom{}
	}

	r := rng.Float64()
	chosen := s.chooseBasisState(r)
	mask := bitMask(measured)
	maskedChosen := uint64(chosen) & mask

	result := 0
	for b := s.numBits - 1; b >= 0; b-- {
		position := uint64(1) << uint(b)
		if mask&position == 0 {
			continue
		}
		result <<= 1
		if uint64(chosen)&position != 0 {
			result++
		}
	}

	amps := newAmplitudes(s.amps.len())
	for index, amplitude := range s.amps.all() {
		if uint64(index)&mask == maskedChosen {
			amps.assign(index, amplitude)
		}
	}

	newState, err := s.newState(amps).Normalize()
	if err != nil {
		return nil, err
	}

	logf("measured bits %v with r=%v: result %d", measured, r, result)

	return &Measurement{
		Width:    bits.OnesCount64(mask),
		Result:   result,
		NewState: newState,
	}, nil
}

// chooseBasisState is inverse CDF sampling over the live amplitudes.
func (s *QState) chooseBasisState(r float64) uint32 {
	var (
		cumulative float64
		chosen     uint32
	)
	for index, amplitude := range s.amps.all() {
		magnitude := amplitude.Magnitude()
		cumulative += magnitude * magnitude
		chosen = index
		if cumulative > r {
			break
		}
	}
	return chosen
}
