package evo

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes one optimizer run. Nil operators fall back to the
// defaults: binary tournament, uniform crossover at DefaultCrossoverThreshold
// and 1/L bit-flip mutation.
type Config struct {
	PopulationSize int
	BitLength      int
	// MaxGenerations stops the run after that many completed generations.
	// Zero runs until optimum or stagnation.
	MaxGenerations int

	Selector  Selector
	Crossover Crossover
	Mutation  Mutator
}

// operatorValidator is implemented by operators with parameters that can be
// checked before the run starts. Value receivers make pointer operators
// satisfy it as well.
type operatorValidator interface {
	Validate(bitLength int) error
}

func (c Config) Validate() error {
	if err := ValidatePopulationSize(c.PopulationSize); err != nil {
		return err
	}
	if err := ValidateBitLength(c.BitLength); err != nil {
		return err
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("%w: max generations must be >= 0 (got %d)", ErrInvalidConfig, c.MaxGenerations)
	}
	for _, op := range []any{c.Selector, c.Crossover, c.Mutation} {
		v, ok := op.(operatorValidator)
		if !ok {
			continue
		}
		if err := v.Validate(c.BitLength); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ValidatePopulationSize rejects populations with no room for offspring
// next to the elite.
func ValidatePopulationSize(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: population size must be >= 2 (got %d)", ErrInvalidConfig, n)
	}
	return nil
}

func ValidateBitLength(l int) error {
	if l <= 0 {
		return fmt.Errorf("%w: bit length must be > 0 (got %d)", ErrInvalidConfig, l)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Selector == nil {
		c.Selector = TournamentSelector{Size: 2}
	}
	if c.Crossover == nil {
		c.Crossover = UniformCrossover{Threshold: DefaultCrossoverThreshold}
	}
	if c.Mutation == nil {
		c.Mutation = BitFlipMutation{Rate: InverseLengthRate}
	}
	return c
}
