package stats

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FitnessSummary is the best, worst and mean fitness of one population.
type FitnessSummary struct {
	Best  float64 `json:"best"`
	Worst float64 `json:"worst"`
	Mean  float64 `json:"mean"`
}

// Summarize computes best, worst and mean over a non-empty set of fitness values.
func Summarize(values []float64) (FitnessSummary, error) {
	if len(values) == 0 {
		return FitnessSummary{}, errors.New("cannot summarize empty fitness set")
	}
	return FitnessSummary{
		Best:  floats.Max(values),
		Worst: floats.Min(values),
		Mean:  stat.Mean(values, nil),
	}, nil
}

// SeriesStats describes a series of per-run values, e.g. generations to
// termination across benchmark seeds. Std is the population standard deviation.
type SeriesStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

// DescribeSeries returns zero stats for an empty series.
func DescribeSeries(values []float64) SeriesStats {
	if len(values) == 0 {
		return SeriesStats{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	return SeriesStats{
		Mean: mean,
		Std:  std,
		Max:  floats.Max(values),
		Min:  floats.Min(values),
	}
}

// NonDecreasing reports whether every value is >= its predecessor.
func NonDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}
