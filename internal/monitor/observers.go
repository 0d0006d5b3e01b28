// Package monitor reports generation records to consoles, logs and metrics.
package monitor

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"onemax/internal/evo"
)

// ConsoleObserver prints one statistics block per generation.
type ConsoleObserver struct {
	W io.Writer
}

func (c ConsoleObserver) ObserveGeneration(record evo.GenerationRecord) {
	fmt.Fprintf(c.W, "Generation Number: %d\n", record.Generation)
	fmt.Fprintf(c.W, "Average Fitness: %s\n", strconv.FormatFloat(record.Average, 'f', -1, 64))
	fmt.Fprintf(c.W, "Best Fitness: %d\n", record.Best)
	fmt.Fprintf(c.W, "Worst Fitness: %d\n\n", record.Worst)
}

// PrintOutcome writes the terminal message of a run.
func PrintOutcome(w io.Writer, outcome evo.Outcome) {
	if msg := outcome.Message(); msg != "" {
		fmt.Fprintln(w, msg)
	}
}

// LogObserver logs each generation at debug level.
type LogObserver struct {
	Logger *slog.Logger
	RunID  string
}

func (l LogObserver) ObserveGeneration(record evo.GenerationRecord) {
	l.Logger.Debug("generation completed",
		"run_id", l.RunID,
		"generation", record.Generation,
		"best", record.Best,
		"worst", record.Worst,
		"average", record.Average,
	)
}

// Fanout delivers every record to each non-nil observer in order.
func Fanout(observers ...evo.Observer) evo.Observer {
	kept := make([]evo.Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}
	return evo.ObserverFunc(func(record evo.GenerationRecord) {
		for _, o := range kept {
			o.ObserveGeneration(record)
		}
	})
}
