package qubits

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Epsilon is the magnitude at or below which an amplitude is exact zero.
const Epsilon = 0.0000001

/*
amplitudes is the sparse store behind a QState. Only amplitudes with a
magnitude above Epsilon are kept. The live bitmap mirrors the keys of
values so iteration runs in ascending index order.

A store is written only while the QState that owns it is being built;
afterwards it is read-only.
*/
type amplitudes struct {
	values map[uint32]Complex
	live   *roaring.Bitmap
}

func newAmplitudes(sizeHint int) *amplitudes {
	return &amplitudes{
		values: make(map[uint32]Complex, sizeHint),
		live:   roaring.New(),
	}
}

// assign writes value at index unless it is negligible.
func (a *amplitudes) assign(index uint32, value Complex) {
	if value.Magnitude() > Epsilon {
		a.values[index] = value
		a.live.Add(index)
	}
}

// add merges value into index, dropping the slot when the sum cancels out.
func (a *amplitudes) add(index uint32, value Complex) {
	sum := a.get(index).Add(value)
	if sum.Magnitude() > Epsilon {
		a.values[index] = sum
		a.live.Add(index)
		return
	}
	delete(a.values, index)
	a.live.Remove(index)
}

func (a *amplitudes) get(index uint32) Complex {
	if v, ok := a.values[index]; ok {
		return v
	}
	return Zero
}

func (a *amplitudes) len() int {
	return len(a.values)
}

/*
all yields the live amplitudes in ascending index order. The sequence may
be ranged over any number of times and stops as soon as the consumer does.
*/
func (a *amplitudes) all() iter.Seq2[uint32, Complex] {
	return func(yield func(uint32, Complex) bool) {
		it := a.live.Iterator()
		for it.HasNext() {
			index := it.Next()
			if !yield(index, a.values[index]) {
				return
			}
		}
	}
}
