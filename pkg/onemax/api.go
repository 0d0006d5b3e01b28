package onemax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"onemax/internal/evo"
	"onemax/internal/stats"
)

const (
	defaultBenchmarkRuns           = 30
	defaultBenchmarkMaxGenerations = 10000
)

type Options struct {
	Logger *slog.Logger
}

type Client struct {
	logger *slog.Logger
}

type RunRequest struct {
	RunID          string
	Population     int
	BitLength      int
	Seed           int64
	MaxGenerations int
	Observer       evo.Observer
}

type RunSummary struct {
	RunID            string
	Seed             int64
	Outcome          evo.Outcome
	Generations      []evo.GenerationRecord
	BestByGeneration []float64
	FinalBestFitness int
	Duration         time.Duration
}

type BenchmarkRequest struct {
	Population     int
	BitLength      int
	Runs           int
	BaseSeed       int64
	MaxGenerations int
	// Workers bounds how many runs evolve at once. Zero uses GOMAXPROCS.
	Workers int
}

type BenchmarkSummary struct {
	Population       int
	BitLength        int
	Runs             int
	BaseSeed         int64
	Outcomes         map[string]int
	Generations      stats.SeriesStats
	FinalBestFitness stats.SeriesStats
	FinalAverage     stats.SeriesStats
	Duration         time.Duration
}

func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{logger: logger}
}

// Run evolves one population until a terminal outcome. A zero seed is
// replaced by a time-based one and an empty run id by a random UUID.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	engine, err := evo.NewEngine(evo.Config{
		PopulationSize: req.Population,
		BitLength:      req.BitLength,
		MaxGenerations: req.MaxGenerations,
	}, rand.New(rand.NewSource(req.Seed)))
	if err != nil {
		return RunSummary{}, err
	}

	c.logger.Info("run started",
		"run_id", req.RunID,
		"population", req.Population,
		"bit_length", req.BitLength,
		"seed", req.Seed,
	)
	start := time.Now()
	result, err := engine.Run(ctx, req.Observer)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error("run failed", "run_id", req.RunID, "error", err)
		return RunSummary{}, fmt.Errorf("run %s: %w", req.RunID, err)
	}

	summary := RunSummary{
		RunID:            req.RunID,
		Seed:             req.Seed,
		Outcome:          result.Outcome,
		Generations:      result.Generations,
		BestByGeneration: result.BestByGeneration,
		FinalBestFitness: finalBestFitness(result, req.BitLength),
		Duration:         duration,
	}
	c.logger.Info("run finished",
		"run_id", req.RunID,
		"outcome", result.Outcome.Reason.String(),
		"generations", len(result.Generations),
		"final_best", summary.FinalBestFitness,
		"duration", duration,
	)
	return summary, nil
}

// Benchmark runs Runs independent optimizations on consecutive seeds
// starting at BaseSeed and aggregates their results.
func (c *Client) Benchmark(ctx context.Context, req BenchmarkRequest) (BenchmarkSummary, error) {
	if req.Runs <= 0 {
		req.Runs = defaultBenchmarkRuns
	}
	if req.BaseSeed == 0 {
		req.BaseSeed = 1
	}
	if req.MaxGenerations == 0 {
		req.MaxGenerations = defaultBenchmarkMaxGenerations
	}
	if req.MaxGenerations < 0 {
		return BenchmarkSummary{}, errors.New("benchmark max generations must be >= 0")
	}

	summary := BenchmarkSummary{
		Population: req.Population,
		BitLength:  req.BitLength,
		Runs:       req.Runs,
		BaseSeed:   req.BaseSeed,
		Outcomes:   make(map[string]int),
	}
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	runs := make([]RunSummary, req.Runs)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(workers)
	for i := range runs {
		i := i
		seed := req.BaseSeed + int64(i)
		p.Go(func(ctx context.Context) error {
			run, err := c.Run(ctx, RunRequest{
				RunID:          fmt.Sprintf("bench-%d", seed),
				Population:     req.Population,
				BitLength:      req.BitLength,
				Seed:           seed,
				MaxGenerations: req.MaxGenerations,
			})
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return BenchmarkSummary{}, err
	}

	generations := make([]float64, 0, req.Runs)
	finalBest := make([]float64, 0, req.Runs)
	finalAverage := make([]float64, 0, req.Runs)
	for _, run := range runs {
		summary.Outcomes[run.Outcome.Reason.String()]++
		generations = append(generations, float64(len(run.Generations)))
		finalBest = append(finalBest, float64(run.FinalBestFitness))
		finalAverage = append(finalAverage, finalAverageFitness(run))
	}
	summary.Duration = time.Since(start)
	summary.Generations = stats.DescribeSeries(generations)
	summary.FinalBestFitness = stats.DescribeSeries(finalBest)
	summary.FinalAverage = stats.DescribeSeries(finalAverage)
	return summary, nil
}

func finalBestFitness(result evo.RunResult, bitLength int) int {
	if result.Outcome.Reason == evo.ReasonOptimumFound {
		return bitLength
	}
	if result.Outcome.Record != nil {
		return result.Outcome.Record.Best
	}
	if n := len(result.Generations); n > 0 {
		return result.Generations[n-1].Best
	}
	return 0
}

func finalAverageFitness(run RunSummary) float64 {
	if run.Outcome.Record != nil {
		return run.Outcome.Record.Average
	}
	if n := len(run.Generations); n > 0 {
		return run.Generations[n-1].Average
	}
	return 0
}
