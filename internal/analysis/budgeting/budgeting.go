// Package budgeting evaluates capital projects: NPV, IRR, payback and
// profitability index.
package budgeting

import (
	"math"

	"github.com/seenimoa/valuekit/internal/irr"
	"github.com/seenimoa/valuekit/pkg/models"
)

// Never is reported for a payback period the project does not reach.
const Never = -1

// Evaluate summarizes a project that pays InitialInvestment today and
// receives CashFlows at the end of periods 1..n.
func Evaluate(p models.CapitalProject) (models.BudgetResult, error) {
	const op = "budgeting.Evaluate"
	if err := models.ValidateFinite(op,
		models.F("initial_investment", p.InitialInvestment),
		models.F("discount_rate", p.DiscountRate),
	); err != nil {
		return models.BudgetResult{}, err
	}
	if err := models.ValidateSeries(op, "cash_flows", p.CashFlows); err != nil {
		return models.BudgetResult{}, err
	}
	switch {
	case p.InitialInvestment <= 0:
		return models.BudgetResult{}, models.Errorf(op, models.ErrInvalidInput,
			"initial investment must be positive, got %v", p.InitialInvestment)
	case len(p.CashFlows) == 0:
		return models.BudgetResult{}, models.Errorf(op, models.ErrInsufficientData, "no cash flows")
	case p.DiscountRate <= -1:
		return models.BudgetResult{}, models.Errorf(op, models.ErrInvalidInput, "discount rate must exceed -100%%")
	}

	rate, err := irr.IncrementSearch(p.InitialInvestment, p.CashFlows)
	if err != nil {
		return models.BudgetResult{}, err
	}

	npv := irr.ProjectNPV(p.DiscountRate, p.InitialInvestment, p.CashFlows)
	discounted := make([]float64, len(p.CashFlows))
	for i, cf := range p.CashFlows {
		discounted[i] = cf / math.Pow(1+p.DiscountRate, float64(i+1))
	}

	return models.BudgetResult{
		NPV:                npv,
		IRRPct:             rate.RatePct,
		IRRConverged:       rate.Converged,
		PaybackPeriod:      Payback(p.InitialInvestment, p.CashFlows),
		DiscountedPayback:  Payback(p.InitialInvestment, discounted),
		ProfitabilityIndex: (npv + p.InitialInvestment) / p.InitialInvestment,
	}, nil
}

// Payback returns the fractional number of periods until cumulative flows
// recover investment, interpolating linearly within the recovery period,
// or Never.
func Payback(investment float64, flows []float64) float64 {
	remaining := investment
	for i, cf := range flows {
		if cf > 0 && cf >= remaining {
			return float64(i) + remaining/cf
		}
		remaining -= cf
	}
	return Never
}
