package evo

import (
	"fmt"
	"math/rand"

	"onemax/internal/bitstring"
)

// Mutator perturbs a child in place.
type Mutator interface {
	Name() string
	Mutate(rng *rand.Rand, child bitstring.BitString) (flipped int, err error)
}

// RateFunc maps a bit-string length to a per-bit flip probability.
type RateFunc func(length int) float64

// InverseLengthRate flips one bit per string on average.
func InverseLengthRate(length int) float64 {
	if length <= 0 {
		return 0
	}
	return 1 / float64(length)
}

// ConstantRate ignores the length.
func ConstantRate(p float64) RateFunc {
	return func(int) float64 { return p }
}

// BitFlipMutation flips each position independently with probability
// Rate(L). One Float64 draw is consumed per position whether or not it flips.
type BitFlipMutation struct {
	Rate RateFunc
}

func (BitFlipMutation) Name() string {
	return "bit_flip"
}

func (m BitFlipMutation) Validate(bitLength int) error {
	if m.Rate == nil {
		return nil
	}
	if p := m.Rate(bitLength); p < 0 || p > 1 {
		return fmt.Errorf("mutation rate must be in [0,1] (got %f)", p)
	}
	return nil
}

func (m BitFlipMutation) Mutate(rng *rand.Rand, child bitstring.BitString) (int, error) {
	if rng == nil {
		return 0, fmt.Errorf("random source is required")
	}
	rate := m.Rate
	if rate == nil {
		rate = InverseLengthRate
	}
	p := rate(child.Len())
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("mutation rate must be in [0,1] (got %f)", p)
	}

	flipped := 0
	for i := 0; i < child.Len(); i++ {
		if rng.Float64() < p {
			child.Flip(i)
			flipped++
		}
	}
	return flipped, nil
}
