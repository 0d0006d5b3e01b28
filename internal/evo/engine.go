package evo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"onemax/internal/bitstring"
	"onemax/internal/stats"
)

type RunResult struct {
	Outcome          Outcome
	Generations      []GenerationRecord
	BestByGeneration []float64
}

// Engine drives the generational loop. It is not safe for concurrent use;
// every random draw comes from the single rng passed to NewEngine.
type Engine struct {
	cfg Config
	rng *rand.Rand

	current     Population
	generation  int
	pastAverage float64
	hasPast     bool
}

func NewEngine(cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	return &Engine{cfg: cfg.withDefaults(), rng: rng}, nil
}

// Init creates the random initial population and resets the termination
// state. The returned outcome reports an optimum already present in it.
func (e *Engine) Init() Outcome {
	e.current = NewRandomPopulation(e.rng, e.cfg.PopulationSize, e.cfg.BitLength)
	e.generation = 1
	e.pastAverage = 0
	e.hasPast = false
	if i := e.current.OptimumIndex(); i >= 0 {
		return Outcome{Reason: ReasonOptimumFound, Optimum: e.current[i].Clone()}
	}
	return Outcome{}
}

// Current returns the current population. Callers must not modify it.
func (e *Engine) Current() Population {
	return e.current
}

// Generation returns the number of the generation the next Step builds.
func (e *Engine) Generation() int {
	return e.generation
}

// Step builds one generation. On a non-terminal outcome the next population
// replaces the current one and the record describes it. On stagnation the
// record is returned with the outcome and the current population is kept.
func (e *Engine) Step() (GenerationRecord, Outcome, error) {
	if e.current == nil {
		return GenerationRecord{}, Outcome{}, errors.New("engine is not initialized")
	}

	n := e.cfg.PopulationSize
	next := make(Population, 0, n)
	for len(next) < n-1 {
		a, b, outcome, err := e.mate()
		if err != nil {
			return GenerationRecord{}, Outcome{}, err
		}
		if outcome.Terminated() {
			return GenerationRecord{}, outcome, nil
		}
		next = append(next, a)
		// Only one slot left before the elite: the second child is dropped.
		if len(next) < n-1 {
			next = append(next, b)
		}
	}

	next = append(next, e.current[e.current.BestIndex()].Clone())

	summary, err := stats.Summarize(next.Fitnesses())
	if err != nil {
		return GenerationRecord{}, Outcome{}, err
	}
	record := GenerationRecord{
		Generation: e.generation,
		Best:       int(summary.Best),
		Worst:      int(summary.Worst),
		Average:    summary.Mean,
	}

	if e.hasPast && record.Average <= e.pastAverage {
		return record, Outcome{Reason: ReasonStagnation, Generation: e.generation, Record: &record}, nil
	}

	e.pastAverage = record.Average
	e.hasPast = true
	e.current = next
	e.generation++
	return record, Outcome{}, nil
}

// Run initializes the engine and steps until a terminal outcome. Completed
// generations are reported to obs in order. Context cancellation is checked
// between generations and returned as an error.
func (e *Engine) Run(ctx context.Context, obs Observer) (RunResult, error) {
	var result RunResult
	if outcome := e.Init(); outcome.Terminated() {
		result.Outcome = outcome
		return result, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		record, outcome, err := e.Step()
		if err != nil {
			return result, fmt.Errorf("generation %d: %w", e.generation, err)
		}
		if outcome.Terminated() {
			result.Outcome = outcome
			return result, nil
		}

		result.Generations = append(result.Generations, record)
		result.BestByGeneration = append(result.BestByGeneration, float64(record.Best))
		if obs != nil {
			obs.ObserveGeneration(record)
		}

		if e.cfg.MaxGenerations > 0 && record.Generation >= e.cfg.MaxGenerations {
			result.Outcome = Outcome{Reason: ReasonGenerationLimit, Generation: record.Generation, Record: &record}
			return result, nil
		}
	}
}

// mate runs one selection, crossover and mutation event. Both children are
// checked for the optimum before and after mutation.
func (e *Engine) mate() (bitstring.BitString, bitstring.BitString, Outcome, error) {
	var none bitstring.BitString

	p0, p1, err := SelectParents(e.rng, e.cfg.Selector, e.current)
	if err != nil {
		return none, none, Outcome{}, err
	}
	a, b, err := e.cfg.Crossover.Cross(e.rng, p0, p1)
	if err != nil {
		return none, none, Outcome{}, fmt.Errorf("%s crossover: %w", e.cfg.Crossover.Name(), err)
	}

	for _, child := range [2]bitstring.BitString{a, b} {
		if child.IsOptimum() {
			return none, none, e.optimumFound(child), nil
		}
		if _, err := e.cfg.Mutation.Mutate(e.rng, child); err != nil {
			return none, none, Outcome{}, fmt.Errorf("%s mutation: %w", e.cfg.Mutation.Name(), err)
		}
		if child.IsOptimum() {
			return none, none, e.optimumFound(child), nil
		}
	}
	return a, b, Outcome{}, nil
}

func (e *Engine) optimumFound(b bitstring.BitString) Outcome {
	return Outcome{Reason: ReasonOptimumFound, Generation: e.generation, Optimum: b.Clone()}
}
