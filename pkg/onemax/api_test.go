package onemax

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"onemax/internal/evo"
)

func TestRunAssignsRunIDAndSeed(t *testing.T) {
	client := New(Options{})
	summary, err := client.Run(context.Background(), RunRequest{Population: 6, BitLength: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := uuid.Parse(summary.RunID); err != nil {
		t.Fatalf("expected uuid run id, got %q: %v", summary.RunID, err)
	}
	if summary.Seed == 0 {
		t.Fatal("expected generated seed")
	}
	if !summary.Outcome.Terminated() {
		t.Fatal("expected terminal outcome")
	}
}

func TestRunIsReproducibleForSeed(t *testing.T) {
	client := New(Options{})
	req := RunRequest{RunID: "fixed", Population: 10, BitLength: 20, Seed: 99}
	first, err := client.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := client.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Outcome.Reason != second.Outcome.Reason || first.FinalBestFitness != second.FinalBestFitness {
		t.Fatalf("runs differ: %v/%d vs %v/%d", first.Outcome.Reason, first.FinalBestFitness, second.Outcome.Reason, second.FinalBestFitness)
	}
	if len(first.Generations) != len(second.Generations) {
		t.Fatalf("generation counts differ: %d vs %d", len(first.Generations), len(second.Generations))
	}
}

func TestRunSingleBitReportsOptimumFitness(t *testing.T) {
	summary, err := New(Options{}).Run(context.Background(), RunRequest{Population: 4, BitLength: 1, Seed: 5})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Outcome.Reason != evo.ReasonOptimumFound {
		t.Fatalf("expected optimum, got %v", summary.Outcome.Reason)
	}
	if summary.FinalBestFitness != 1 {
		t.Fatalf("unexpected final best: %d", summary.FinalBestFitness)
	}
}

func TestRunForwardsGenerationsToObserver(t *testing.T) {
	var seen int
	summary, err := New(Options{}).Run(context.Background(), RunRequest{
		Population: 8,
		BitLength:  40,
		Seed:       3,
		Observer:   evo.ObserverFunc(func(evo.GenerationRecord) { seen++ }),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if seen != len(summary.Generations) {
		t.Fatalf("observer saw %d generations, summary has %d", seen, len(summary.Generations))
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	_, err := New(Options{}).Run(context.Background(), RunRequest{Population: 0, BitLength: 5})
	if !errors.Is(err, evo.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBenchmarkAggregatesRuns(t *testing.T) {
	summary, err := New(Options{}).Benchmark(context.Background(), BenchmarkRequest{
		Population: 10,
		BitLength:  20,
		Runs:       5,
		BaseSeed:   100,
	})
	if err != nil {
		t.Fatalf("benchmark: %v", err)
	}
	total := 0
	for _, count := range summary.Outcomes {
		total += count
	}
	if total != 5 {
		t.Fatalf("expected 5 outcomes, got %d (%v)", total, summary.Outcomes)
	}
	if summary.FinalBestFitness.Max > 20 || summary.FinalBestFitness.Min < 0 {
		t.Fatalf("final best outside [0,20]: %+v", summary.FinalBestFitness)
	}
	if summary.Generations.Min > summary.Generations.Max {
		t.Fatalf("inconsistent generation stats: %+v", summary.Generations)
	}
}

func TestBenchmarkIndependentOfWorkerCount(t *testing.T) {
	req := BenchmarkRequest{Population: 8, BitLength: 16, Runs: 6, BaseSeed: 3, Workers: 1}
	sequential, err := New(Options{}).Benchmark(context.Background(), req)
	if err != nil {
		t.Fatalf("sequential benchmark: %v", err)
	}
	req.Workers = 4
	parallel, err := New(Options{}).Benchmark(context.Background(), req)
	if err != nil {
		t.Fatalf("parallel benchmark: %v", err)
	}
	if sequential.Generations != parallel.Generations || sequential.FinalBestFitness != parallel.FinalBestFitness {
		t.Fatalf("worker count changed results: %+v vs %+v", sequential, parallel)
	}
	for reason, count := range sequential.Outcomes {
		if parallel.Outcomes[reason] != count {
			t.Fatalf("outcome %s: %d vs %d", reason, count, parallel.Outcomes[reason])
		}
	}
}

func TestBenchmarkCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Benchmark(ctx, BenchmarkRequest{Population: 10, BitLength: 20, Runs: 3})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
