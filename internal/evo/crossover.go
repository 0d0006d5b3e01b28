package evo

import (
	"fmt"
	"math/rand"

	"onemax/internal/bitstring"
)

// DefaultCrossoverThreshold gives recombination a 61/101 chance, about 0.6.
const DefaultCrossoverThreshold = 60

// Crossover produces exactly two children from two parents. Children never
// share storage with the parents.
type Crossover interface {
	Name() string
	Cross(rng *rand.Rand, p0, p1 bitstring.BitString) (bitstring.BitString, bitstring.BitString, error)
}

// UniformCrossover draws an integer in [0,100] and recombines when the draw
// is at or below Threshold; otherwise the children copy the parents in order.
// A negative Threshold disables recombination.
type UniformCrossover struct {
	Threshold int
}

func (UniformCrossover) Name() string {
	return "uniform"
}

func (c UniformCrossover) Validate(int) error {
	if c.Threshold > 100 {
		return fmt.Errorf("crossover threshold must be <= 100 (got %d)", c.Threshold)
	}
	return nil
}

func (c UniformCrossover) Cross(rng *rand.Rand, p0, p1 bitstring.BitString) (bitstring.BitString, bitstring.BitString, error) {
	if rng == nil {
		return bitstring.BitString{}, bitstring.BitString{}, fmt.Errorf("random source is required")
	}
	if p0.Len() != p1.Len() {
		return bitstring.BitString{}, bitstring.BitString{}, fmt.Errorf("parent length mismatch: %d vs %d", p0.Len(), p1.Len())
	}

	if rng.Intn(101) > c.Threshold {
		return p0.Clone(), p1.Clone(), nil
	}

	n := p0.Len()
	a := bitstring.New(n)
	b := bitstring.New(n)
	parents := [2]bitstring.BitString{p0, p1}
	for i := 0; i < n; i++ {
		pick := rng.Intn(2)
		a.CopyBit(parents[pick], i)
		b.CopyBit(parents[1-pick], i)
	}
	return a, b, nil
}
