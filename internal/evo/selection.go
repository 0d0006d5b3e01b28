package evo

import (
	"fmt"
	"math/rand"

	"onemax/internal/bitstring"
)

// Selector chooses a parent from the current population. Implementations
// must not modify the population.
type Selector interface {
	Name() string
	PickParent(rng *rand.Rand, pop Population) (bitstring.BitString, error)
}

// TournamentSelector samples Size individuals with replacement and picks the
// fittest. Ties keep the earliest draw, so an individual can face itself.
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Name() string {
	return "tournament"
}

func (s TournamentSelector) Validate(int) error {
	if s.Size < 0 {
		return fmt.Errorf("tournament size must be >= 0 (got %d)", s.Size)
	}
	return nil
}

func (s TournamentSelector) PickParent(rng *rand.Rand, pop Population) (bitstring.BitString, error) {
	if rng == nil {
		return bitstring.BitString{}, fmt.Errorf("random source is required")
	}
	if len(pop) == 0 {
		return bitstring.BitString{}, fmt.Errorf("cannot select from empty population")
	}

	size := s.Size
	if size <= 0 {
		size = 2
	}

	best := pop[rng.Intn(len(pop))]
	bestFitness := best.Fitness()
	for i := 1; i < size; i++ {
		candidate := pop[rng.Intn(len(pop))]
		if f := candidate.Fitness(); f > bestFitness {
			best = candidate
			bestFitness = f
		}
	}
	return best, nil
}

// SelectParents runs two independent tournaments, one per parent slot.
func SelectParents(rng *rand.Rand, selector Selector, pop Population) (bitstring.BitString, bitstring.BitString, error) {
	p0, err := selector.PickParent(rng, pop)
	if err != nil {
		return bitstring.BitString{}, bitstring.BitString{}, fmt.Errorf("select first parent: %w", err)
	}
	p1, err := selector.PickParent(rng, pop)
	if err != nil {
		return bitstring.BitString{}, bitstring.BitString{}, fmt.Errorf("select second parent: %w", err)
	}
	return p0, p1, nil
}
