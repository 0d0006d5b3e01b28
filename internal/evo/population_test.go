package evo

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewRandomPopulationShapeAndDeterminism(t *testing.T) {
	a := NewRandomPopulation(rand.New(rand.NewSource(77)), 6, 13)
	b := NewRandomPopulation(rand.New(rand.NewSource(77)), 6, 13)
	if len(a) != 6 {
		t.Fatalf("unexpected population size: %d", len(a))
	}
	for i := range a {
		if a[i].Len() != 13 {
			t.Fatalf("individual %d has length %d", i, a[i].Len())
		}
		if !a[i].Equal(b[i]) {
			t.Fatalf("individual %d differs across equal seeds: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestPopulationBestIndexFirstOccurrenceWins(t *testing.T) {
	pop := parsePopulation(t, "010", "110", "011", "111", "111")
	if got := pop.BestIndex(); got != 3 {
		t.Fatalf("unexpected best index: got=%d want=3", got)
	}
	pop = parsePopulation(t, "100", "010", "001")
	if got := pop.BestIndex(); got != 0 {
		t.Fatalf("unexpected tie-break index: got=%d want=0", got)
	}
	if got := Population(nil).BestIndex(); got != -1 {
		t.Fatalf("expected -1 for empty population, got %d", got)
	}
}

func TestPopulationOptimumIndex(t *testing.T) {
	if got := parsePopulation(t, "10", "11", "11").OptimumIndex(); got != 1 {
		t.Fatalf("unexpected optimum index: got=%d want=1", got)
	}
	if got := parsePopulation(t, "10", "01").OptimumIndex(); got != -1 {
		t.Fatalf("expected no optimum, got %d", got)
	}
}

func TestPopulationCloneIsDeep(t *testing.T) {
	pop := parsePopulation(t, "00", "01")
	clone := pop.Clone()
	clone[0].Flip(0)
	if pop[0].String() != "00" {
		t.Fatalf("clone shares storage: %s", pop[0])
	}
}

func TestPopulationFitnesses(t *testing.T) {
	got := parsePopulation(t, "000", "101", "111").Fitnesses()
	want := []float64{0, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fitness %d: got=%f want=%f", i, got[i], want[i])
		}
	}
}

func TestConfigValidate(t *testing.T) {
	valid := []Config{
		{PopulationSize: 2, BitLength: 1},
		{PopulationSize: 10, BitLength: 20, MaxGenerations: 5},
		{PopulationSize: 3, BitLength: 4, Crossover: UniformCrossover{Threshold: -1}},
		{PopulationSize: 3, BitLength: 4, Crossover: &UniformCrossover{Threshold: 60}, Mutation: &BitFlipMutation{}},
	}
	for _, cfg := range valid {
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected %+v to be valid: %v", cfg, err)
		}
	}

	invalid := []Config{
		{PopulationSize: 0, BitLength: 5},
		{PopulationSize: 1, BitLength: 5},
		{PopulationSize: -4, BitLength: 5},
		{PopulationSize: 4, BitLength: 0},
		{PopulationSize: 4, BitLength: -1},
		{PopulationSize: 4, BitLength: 3, MaxGenerations: -1},
		{PopulationSize: 4, BitLength: 3, Crossover: UniformCrossover{Threshold: 101}},
		{PopulationSize: 4, BitLength: 3, Mutation: BitFlipMutation{Rate: ConstantRate(2)}},
		{PopulationSize: 4, BitLength: 3, Crossover: &UniformCrossover{Threshold: 500}},
		{PopulationSize: 4, BitLength: 3, Mutation: &BitFlipMutation{Rate: ConstantRate(-0.5)}},
		{PopulationSize: 4, BitLength: 3, Selector: &TournamentSelector{Size: -1}},
	}
	for _, cfg := range invalid {
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("expected %+v to be rejected", cfg)
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	}
}
