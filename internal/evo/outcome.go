package evo

import "onemax/internal/bitstring"

// Reason tells why a run stopped.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonOptimumFound
	ReasonStagnation
	ReasonGenerationLimit
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "running"
	case ReasonOptimumFound:
		return "optimum_found"
	case ReasonStagnation:
		return "stagnation"
	case ReasonGenerationLimit:
		return "generation_limit"
	default:
		return "unknown"
	}
}

// GenerationRecord holds the statistics of one completed generation,
// computed over the full next population including the elite.
type GenerationRecord struct {
	Generation int     `json:"generation"`
	Best       int     `json:"best_fitness"`
	Worst      int     `json:"worst_fitness"`
	Average    float64 `json:"average_fitness"`
}

// Outcome is the terminal signal of a run. Every reason is a successful end
// state; failures are reported as errors instead.
type Outcome struct {
	Reason Reason
	// Generation is the generation under construction when the run stopped;
	// zero means the initial population.
	Generation int
	// Optimum is a copy of the all-ones string for ReasonOptimumFound.
	Optimum bitstring.BitString
	// Record is the generation that triggered stagnation or the limit.
	Record *GenerationRecord
}

func (o Outcome) Terminated() bool {
	return o.Reason != ReasonNone
}

// Message is the console line announcing the outcome.
func (o Outcome) Message() string {
	switch o.Reason {
	case ReasonOptimumFound:
		return "The global optimum was found"
	case ReasonStagnation:
		return "Average fitness did not improve compared to the previous generation."
	case ReasonGenerationLimit:
		return "Generation limit reached"
	default:
		return ""
	}
}

// Observer receives each completed generation in order.
type Observer interface {
	ObserveGeneration(record GenerationRecord)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(record GenerationRecord)

func (f ObserverFunc) ObserveGeneration(record GenerationRecord) {
	f(record)
}
