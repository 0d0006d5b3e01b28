package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slices"

	"onemax/internal/evo"
	"onemax/internal/monitor"
	onemaxapi "onemax/pkg/onemax"
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, s streams) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:], s)
	case "benchmark":
		return runBenchmark(ctx, args[1:], s)
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runRun(ctx context.Context, args []string, s streams) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(s.err)
	configPath := fs.String("config", "", "optional run config path (.json or .toml)")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	population := fs.Int("pop", 0, "population size (prompted when unset)")
	bitLength := fs.Int("len", 0, "bit-string length (prompted when unset)")
	seed := fs.Int64("seed", 0, "rng seed (0 picks a time-based seed)")
	maxGenerations := fs.Int("max-gens", 0, "stop after this many generations (0 disables)")
	interactive := fs.Bool("interactive", false, "prompt for population size and bit length")
	quiet := fs.Bool("quiet", false, "suppress per-generation statistics")
	logFormat := fs.String("log-format", "text", "log format: text|json")
	logLevel := fs.String("log-level", "info", "log level: debug|info|warn|error")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address during the run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	cfg, err := loadOrDefaultRunConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.applyFlags(setFlags, runConfig{
		RunID:          *runID,
		Population:     *population,
		BitLength:      *bitLength,
		Seed:           *seed,
		MaxGenerations: *maxGenerations,
		Quiet:          *quiet,
		LogFormat:      *logFormat,
		LogLevel:       *logLevel,
		MetricsAddr:    *metricsAddr,
	})

	if *interactive || cfg.Population == 0 || cfg.BitLength == 0 {
		scanner := bufio.NewScanner(s.in)
		if *interactive || cfg.Population == 0 {
			cfg.Population, err = promptInt(scanner, s.out, "Enter the population size: ", evo.ValidatePopulationSize)
			if err != nil {
				return fmt.Errorf("read population size: %w", err)
			}
		}
		if *interactive || cfg.BitLength == 0 {
			cfg.BitLength, err = promptInt(scanner, s.out, "Enter the length of the bit strings: ", evo.ValidateBitLength)
			if err != nil {
				return fmt.Errorf("read bit length: %w", err)
			}
		}
		fmt.Fprintln(s.out)
	}

	logger, err := newLogger(s.err, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}

	// Observers log the run id, so resolve it before the client would.
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}

	var observers []evo.Observer
	if !cfg.Quiet {
		observers = append(observers, monitor.ConsoleObserver{W: s.out})
	}
	observers = append(observers, monitor.LogObserver{Logger: logger, RunID: cfg.RunID})

	var prom *monitor.PrometheusObserver
	var metricsDone chan error
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		prom, err = monitor.NewPrometheusObserver(reg)
		if err != nil {
			return err
		}
		observers = append(observers, prom)

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		metricsDone = make(chan error, 1)
		metricsCtx := ctx
		go func() {
			metricsDone <- monitor.ServeMetrics(metricsCtx, cfg.MetricsAddr, monitor.NewMetricsHandler(reg), logger)
		}()
		defer func() {
			cancel()
			if err := <-metricsDone; err != nil {
				logger.Error("metrics server", "error", err)
			}
		}()
	}

	client := onemaxapi.New(onemaxapi.Options{Logger: logger})
	summary, err := client.Run(ctx, onemaxapi.RunRequest{
		RunID:          cfg.RunID,
		Population:     cfg.Population,
		BitLength:      cfg.BitLength,
		Seed:           cfg.Seed,
		MaxGenerations: cfg.MaxGenerations,
		Observer:       monitor.Fanout(observers...),
	})
	if err != nil {
		return err
	}
	if prom != nil {
		prom.ObserveOutcome(summary.Outcome)
	}

	monitor.PrintOutcome(s.out, summary.Outcome)
	return nil
}

func runBenchmark(ctx context.Context, args []string, s streams) error {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	fs.SetOutput(s.err)
	population := fs.Int("pop", 10, "population size")
	bitLength := fs.Int("len", 20, "bit-string length")
	runs := fs.Int("runs", 30, "number of runs on consecutive seeds")
	seed := fs.Int64("seed", 1, "seed of the first run")
	maxGenerations := fs.Int("max-gens", 10000, "per-run generation cap")
	logFormat := fs.String("log-format", "text", "log format: text|json")
	logLevel := fs.String("log-level", "warn", "log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runs <= 0 {
		return errors.New("runs must be > 0")
	}

	logger, err := newLogger(s.err, *logFormat, *logLevel)
	if err != nil {
		return err
	}

	summary, err := onemaxapi.New(onemaxapi.Options{Logger: logger}).Benchmark(ctx, onemaxapi.BenchmarkRequest{
		Population:     *population,
		BitLength:      *bitLength,
		Runs:           *runs,
		BaseSeed:       *seed,
		MaxGenerations: *maxGenerations,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "benchmark population=%d bit_length=%d runs=%d base_seed=%d duration=%s\n",
		summary.Population, summary.BitLength, summary.Runs, summary.BaseSeed, summary.Duration)
	reasons := make([]string, 0, len(summary.Outcomes))
	for reason := range summary.Outcomes {
		reasons = append(reasons, reason)
	}
	slices.Sort(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(s.out, "outcome %s=%d\n", reason, summary.Outcomes[reason])
	}
	fmt.Fprintf(s.out, "generations mean=%.3f std=%.3f min=%.0f max=%.0f\n",
		summary.Generations.Mean, summary.Generations.Std, summary.Generations.Min, summary.Generations.Max)
	fmt.Fprintf(s.out, "final_best mean=%.3f std=%.3f min=%.0f max=%.0f\n",
		summary.FinalBestFitness.Mean, summary.FinalBestFitness.Std, summary.FinalBestFitness.Min, summary.FinalBestFitness.Max)
	fmt.Fprintf(s.out, "final_average mean=%.3f std=%.3f min=%.3f max=%.3f\n",
		summary.FinalAverage.Mean, summary.FinalAverage.Std, summary.FinalAverage.Min, summary.FinalAverage.Max)
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: onemaxctl <run|benchmark> [flags]", msg)
}
