// Package irr solves for internal rates of return.
//
// Two solvers coexist: Newton is the general cash-flow solver; IncrementSearch
// is the fixed-step search used for capital budgeting projects, kept because
// its best-effort results differ from Newton's on the same inputs.
package irr

import (
	"math"

	"github.com/seenimoa/valuekit/pkg/models"
)

const (
	// MaxIterations bounds both solvers.
	MaxIterations = 1000

	newtonGuess     = 0.1
	newtonTolerance = 1e-5

	searchStep      = 0.001
	searchTolerance = 1e-6
)

// NPV discounts flows at rate; flows[0] is undiscounted.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for i, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(i))
	}
	return npv
}

// NPVDerivative is d NPV / d rate.
func NPVDerivative(rate float64, flows []float64) float64 {
	d := 0.0
	for i, cf := range flows {
		d += -float64(i) * cf / math.Pow(1+rate, float64(i+1))
	}
	return d
}

// Newton finds the IRR of flows by Newton-Raphson starting at 10%.
func Newton(flows []float64) (models.IRRResult, error) {
	const op = "irr.Newton"
	if err := validateFlows(op, flows); err != nil {
		return models.IRRResult{}, err
	}

	rate := newtonGuess
	for i := 1; i <= MaxIterations; i++ {
		npv := NPV(rate, flows)
		if math.Abs(npv) < newtonTolerance {
			return newtonResult(rate, i), nil
		}
		d := NPVDerivative(rate, flows)
		if math.Abs(d) < newtonTolerance {
			return models.IRRResult{}, models.Errorf(op, models.ErrNoConvergence,
				"derivative %.3g at rate %.6f is a stationary point", d, rate)
		}
		next := rate - npv/d
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			return models.IRRResult{}, models.Errorf(op, models.ErrNoConvergence,
				"iteration %d left the domain (rate %v)", i, next)
		}
		if math.Abs(next-rate) < newtonTolerance {
			return newtonResult(next, i), nil
		}
		rate = next
	}
	return models.IRRResult{}, models.Errorf(op, models.ErrNoConvergence,
		"no solution within %d iterations", MaxIterations)
}

func newtonResult(rate float64, iterations int) models.IRRResult {
	return models.IRRResult{
		RatePct:    rate * 100,
		Iterations: iterations,
		Converged:  true,
		Method:     "newton",
	}
}

// IncrementSearch walks the rate from 0 in steps of 0.1% toward the sign
// of the project's NPV. It returns the rate reached after at most
// MaxIterations steps even when the tolerance was not met; Converged says
// which case applies.
func IncrementSearch(initialInvestment float64, flows []float64) (models.IRRResult, error) {
	const op = "irr.IncrementSearch"
	if err := models.ValidateFinite(op, models.F("initial_investment", initialInvestment)); err != nil {
		return models.IRRResult{}, err
	}
	if err := models.ValidateSeries(op, "cash_flows", flows); err != nil {
		return models.IRRResult{}, err
	}
	if len(flows) == 0 {
		return models.IRRResult{}, models.Errorf(op, models.ErrInsufficientData, "no cash flows")
	}

	rate := 0.0
	i := 0
	for ; i < MaxIterations; i++ {
		npv := projectNPV(rate, initialInvestment, flows)
		if math.Abs(npv) < searchTolerance {
			return models.IRRResult{RatePct: rate * 100, Iterations: i, Converged: true, Method: "increment"}, nil
		}
		if npv > 0 {
			rate += searchStep
		} else {
			rate -= searchStep
		}
	}
	return models.IRRResult{RatePct: rate * 100, Iterations: i, Method: "increment"}, nil
}

// ProjectNPV is the NPV of a project whose first cash flow arrives one
// period after the initial investment.
func ProjectNPV(rate, initialInvestment float64, flows []float64) float64 {
	return projectNPV(rate, initialInvestment, flows)
}

func projectNPV(rate, initialInvestment float64, flows []float64) float64 {
	npv := -initialInvestment
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t+1))
	}
	return npv
}

func validateFlows(op string, flows []float64) error {
	if err := models.ValidateSeries(op, "cash_flows", flows); err != nil {
		return err
	}
	if len(flows) < 2 {
		return models.Errorf(op, models.ErrInsufficientData, "need at least 2 cash flows, got %d", len(flows))
	}
	pos, neg := false, false
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		} else if cf < 0 {
			neg = true
		}
	}
	if !pos || !neg {
		return models.Errorf(op, models.ErrInvalidInput, "cash flows need at least one sign change")
	}
	return nil
}
