package simulation

import (
	"gonum.org/v1/gonum/floats"

	"github.com/seenimoa/valuekit/internal/stats"
	"github.com/seenimoa/valuekit/pkg/models"
)

// Summarize describes the distribution of terminal values across paths.
func Summarize(paths []models.RatePath) (models.PathSummary, error) {
	if len(paths) == 0 {
		return models.PathSummary{}, models.Errorf("simulation.Summarize", models.ErrInsufficientData, "no paths")
	}
	terminal := make([]float64, len(paths))
	for i, p := range paths {
		terminal[i] = p.Terminal()
	}

	sum := models.PathSummary{
		Paths: len(paths),
		Min:   floats.Min(terminal),
		Max:   floats.Max(terminal),
	}
	var err error
	if sum.Mean, err = stats.Mean(terminal); err != nil {
		return models.PathSummary{}, err
	}
	if sum.Std, err = stats.StdDev(terminal); err != nil {
		return models.PathSummary{}, err
	}
	for _, q := range []struct {
		p   float64
		dst *float64
	}{{0.05, &sum.P5}, {0.50, &sum.P50}, {0.95, &sum.P95}} {
		if *q.dst, err = stats.Percentile(terminal, q.p); err != nil {
			return models.PathSummary{}, err
		}
	}
	return sum, nil
}
