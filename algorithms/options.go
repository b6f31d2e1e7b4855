/*
Package algorithms builds textbook quantum algorithms on top of the qubits
simulator: Deutsch, Deutsch-Jozsa, Bernstein-Vazirani, Grover, Simon,
super dense coding, teleportation, period finding and Shor factoring.
*/
package algorithms

import (
	"context"
	"math/rand/v2"

	"github.com/theapemachine/qubits"
	"github.com/theapemachine/qubits/pool"
)

// Option configures a single algorithm run.
type Option func(*options)

type options struct {
	ctx      context.Context
	rng      qubits.Random
	pool     *pool.Q
	attempts int
}

func newOptions(opts []Option) *options {
	o := &options{ctx: context.Background()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRandom fixes the source of measurement randomness.
func WithRandom(rng qubits.Random) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithPool runs independent trials concurrently on q.
func WithPool(q *pool.Q) Option {
	return func(o *options) {
		o.pool = q
	}
}

// WithAttempts overrides how many times a probabilistic algorithm retries.
func WithAttempts(n int) Option {
	return func(o *options) {
		o.attempts = n
	}
}

// WithContext bounds pooled trials by ctx.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

func (o *options) attemptsOr(fallback int) int {
	if o.attempts > 0 {
		return o.attempts
	}
	return fallback
}

// float64 draws a classical random number from the configured source.
func (o *options) float64() float64 {
	if o.rng == nil {
		return rand.Float64()
	}
	return o.rng.Float64()
}

/*
split derives one source per concurrent trial so that no two trials share
a generator. Without a configured source every trial uses the default,
which is already safe for concurrent use.
*/
func (o *options) split(n int) []qubits.Random {
	out := make([]qubits.Random, n)
	if o.rng == nil {
		return out
	}
	for i := range out {
		seed := uint64(o.rng.Float64() * (1 << 53))
		out[i] = rand.New(rand.NewPCG(seed, uint64(i)))
	}
	return out
}

// trial is one independent run of a circuit that ends in a measurement.
type trial func(rng qubits.Random) (int, error)

// sample runs n trials, on the pool when one is configured.
func (o *options) sample(n int, t trial) ([]int, error) {
	out := make([]int, n)

	if o.pool == nil {
		for i := range out {
			result, err := t(o.rng)
			if err != nil {
				return nil, err
			}
			out[i] = result
		}
		return out, nil
	}

	rngs := o.split(n)
	values, err := o.pool.Map(o.ctx, n, func(i int) (any, error) {
		return t(rngs[i])
	})
	if err != nil {
		return nil, err
	}
	for i, value := range values {
		out[i] = value.(int)
	}
	return out, nil
}
