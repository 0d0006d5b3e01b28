package evo

import (
	"math/rand"

	"golang.org/x/exp/slices"

	"onemax/internal/bitstring"
)

// Population is one generation of bit strings.
type Population []bitstring.BitString

// NewRandomPopulation fills size strings of length bits, drawing one
// uniform bit per position in individual-major order.
func NewRandomPopulation(rng *rand.Rand, size, length int) Population {
	pop := make(Population, size)
	for i := range pop {
		b := bitstring.New(length)
		for j := 0; j < length; j++ {
			if rng.Intn(2) == 1 {
				b.Set(j)
			}
		}
		pop[i] = b
	}
	return pop
}

func (p Population) Fitnesses() []float64 {
	out := make([]float64, len(p))
	for i, b := range p {
		out[i] = float64(b.Fitness())
	}
	return out
}

// BestIndex returns the index of the highest-fitness individual; the first
// occurrence wins ties. It returns -1 for an empty population.
func (p Population) BestIndex() int {
	best := -1
	bestFitness := -1
	for i, b := range p {
		if f := b.Fitness(); f > bestFitness {
			best = i
			bestFitness = f
		}
	}
	return best
}

// OptimumIndex returns the index of the first all-ones individual, or -1.
func (p Population) OptimumIndex() int {
	return slices.IndexFunc(p, func(b bitstring.BitString) bool {
		return b.IsOptimum()
	})
}

// Clone deep-copies every individual.
func (p Population) Clone() Population {
	out := slices.Clone(p)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}
