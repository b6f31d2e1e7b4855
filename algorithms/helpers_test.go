package algorithms

import (
	"math/rand/v2"

	"github.com/theapemachine/qubits"
)

func seeded(a, b uint64) qubits.Random {
	return rand.New(rand.NewPCG(a, b))
}

func constant(value int) func(int) int {
	return func(int) int { return value }
}

func identity(x int) int { return x }

func mapping(values ...int) func(int) int {
	return func(x int) int { return values[x] }
}
