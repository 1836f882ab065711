// Package stats provides the statistical estimators shared by the
// calculators. Variance and covariance use population formulas (divide by
// n) throughout, so ratios such as beta stay consistent.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/seenimoa/valuekit/pkg/models"
)

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, models.Errorf("stats.Mean", models.ErrInvalidInput, "empty series")
	}
	return stat.Mean(xs, nil), nil
}

// Variance returns the population variance of xs.
func Variance(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, models.Errorf("stats.Variance", models.ErrInvalidInput, "empty series")
	}
	return covariance(xs, xs), nil
}

// StdDev returns the population standard deviation of xs.
func StdDev(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Covariance returns the population covariance of the paired series.
func Covariance(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, models.Errorf("stats.Covariance", models.ErrInvalidInput,
			"length mismatch: %d vs %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return 0, models.Errorf("stats.Covariance", models.ErrInvalidInput, "empty series")
	}
	return covariance(xs, ys), nil
}

// covariance assumes equal, non-zero lengths. Variance goes through the
// same path so that Covariance(x, x) == Variance(x) bit for bit.
func covariance(xs, ys []float64) float64 {
	dx := deviations(xs)
	dy := deviations(ys)
	return floats.Dot(dx, dy) / float64(len(xs))
}

func deviations(xs []float64) []float64 {
	d := make([]float64, len(xs))
	copy(d, xs)
	floats.AddConst(-stat.Mean(xs, nil), d)
	return d
}

// Sorted returns an ascending copy of xs.
func Sorted(xs []float64) []float64 {
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	return s
}

// Percentile returns the empirical p-quantile (p in [0, 1]) of xs.
func Percentile(xs []float64, p float64) (float64, error) {
	if len(xs) == 0 {
		return 0, models.Errorf("stats.Percentile", models.ErrInvalidInput, "empty series")
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, models.Errorf("stats.Percentile", models.ErrInvalidInput, "p must be in [0, 1], got %v", p)
	}
	return stat.Quantile(p, stat.Empirical, Sorted(xs), nil), nil
}

// Median returns the middle value of xs, averaging the two central values
// for even lengths.
func Median(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, models.Errorf("stats.Median", models.ErrInvalidInput, "empty series")
	}
	s := Sorted(xs)
	n := len(s)
	if n%2 == 0 {
		return (s[n/2-1] + s[n/2]) / 2, nil
	}
	return s[n/2], nil
}
