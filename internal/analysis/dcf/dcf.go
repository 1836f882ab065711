// Package dcf projects free cash flows and values a business by
// discounting them, with a Gordon-growth terminal value.
package dcf

import (
	"math"

	"github.com/seenimoa/valuekit/pkg/models"
)

// Project runs the DCF projection over a.Years (default 5) years.
func Project(a models.DCFAssumptions) (models.DCFResult, error) {
	const op = "dcf.Project"
	if err := validate(op, a); err != nil {
		return models.DCFResult{}, err
	}

	years := a.Years
	if years == 0 {
		years = models.DefaultProjectionYears
	}

	res := models.DCFResult{Rows: make([]models.DCFProjectionRow, 0, years)}
	prevRevenue := a.InitialRevenue

	for y := 1; y <= years; y++ {
		revenue := prevRevenue * (1 + a.GrowthRate)
		operatingIncome := revenue * a.OperatingMargin
		tax := operatingIncome * a.TaxRate
		wcChange := (revenue - prevRevenue) * a.WorkingCapitalPercent
		capex := revenue * a.CapexPercent
		fcf := operatingIncome - tax - wcChange - capex

		discount := math.Pow(1+a.DiscountRate, float64(y))
		dcf := fcf / discount
		res.PVFreeCashFlows += dcf

		row := models.DCFProjectionRow{
			Year:                 y,
			Revenue:              revenue,
			OperatingIncome:      operatingIncome,
			Tax:                  tax,
			WorkingCapitalChange: wcChange,
			Capex:                capex,
			FreeCashFlow:         fcf,
			DiscountedCashFlow:   dcf,
			EnterpriseValue:      res.PVFreeCashFlows,
		}

		if y == years {
			tv := fcf * (1 + a.TerminalGrowthRate) / (a.DiscountRate - a.TerminalGrowthRate)
			row.TerminalValue = tv
			res.TerminalValue = tv
			res.PVTerminalValue = tv / discount
			row.EnterpriseValue += res.PVTerminalValue
		}

		res.Rows = append(res.Rows, row)
		prevRevenue = revenue
	}

	res.EnterpriseValue = res.PVFreeCashFlows + res.PVTerminalValue
	if res.EnterpriseValue != 0 {
		res.TerminalValueShare = res.PVTerminalValue / res.EnterpriseValue
	}
	res.EquityValue = res.EnterpriseValue - a.NetDebt
	if a.SharesOutstanding > 0 {
		res.ValuePerShare = res.EquityValue / a.SharesOutstanding
	}
	if cagr, ok := HistoricalCAGR(a.HistoricalRevenue); ok {
		res.HistoricalCAGR = cagr
	}

	if err := models.ValidateFinite(op,
		models.F("enterprise_value", res.EnterpriseValue),
		models.F("terminal_value", res.TerminalValue),
	); err != nil {
		return models.DCFResult{}, models.Errorf(op, models.ErrInvalidResult, "projection overflowed")
	}
	return res, nil
}

// Sensitivity re-runs the projection for each (discount rate, terminal
// growth) pair and returns the final-year enterprise values.
func Sensitivity(a models.DCFAssumptions, discountRates, growthRates []float64) (models.SensitivityGrid, error) {
	const op = "dcf.Sensitivity"
	if len(discountRates) == 0 || len(growthRates) == 0 {
		return models.SensitivityGrid{}, models.Errorf(op, models.ErrInsufficientData,
			"need at least one discount rate and one growth rate")
	}

	grid := models.SensitivityGrid{
		DiscountRates: discountRates,
		GrowthRates:   growthRates,
		Values:        make([][]float64, len(discountRates)),
	}
	for i, r := range discountRates {
		grid.Values[i] = make([]float64, len(growthRates))
		for j, g := range growthRates {
			scenario := a
			scenario.DiscountRate = r
			scenario.TerminalGrowthRate = g
			res, err := Project(scenario)
			if err != nil {
				return models.SensitivityGrid{}, err
			}
			grid.Values[i][j] = res.Rows[len(res.Rows)-1].EnterpriseValue
		}
	}
	return grid, nil
}

// SensitivityAxis builds a symmetric axis of 2*half+1 values around
// center spaced by step, e.g. (0.10, 0.01, 2) → [0.08 0.09 0.10 0.11 0.12].
func SensitivityAxis(center, step float64, half int) []float64 {
	axis := make([]float64, 0, 2*half+1)
	for k := -half; k <= half; k++ {
		axis = append(axis, center+float64(k)*step)
	}
	return axis
}

// HistoricalCAGR is the compound annual growth of an oldest-first revenue
// series. ok is false when the series is too short or not positive.
func HistoricalCAGR(revenue []float64) (float64, bool) {
	if len(revenue) < 2 {
		return 0, false
	}
	first, last := revenue[0], revenue[len(revenue)-1]
	if first <= 0 || last <= 0 {
		return 0, false
	}
	periods := float64(len(revenue) - 1)
	return math.Pow(last/first, 1/periods) - 1, true
}

func validate(op string, a models.DCFAssumptions) error {
	if err := models.ValidateFinite(op,
		models.F("initial_revenue", a.InitialRevenue),
		models.F("growth_rate", a.GrowthRate),
		models.F("operating_margin", a.OperatingMargin),
		models.F("tax_rate", a.TaxRate),
		models.F("discount_rate", a.DiscountRate),
		models.F("working_capital_percent", a.WorkingCapitalPercent),
		models.F("capex_percent", a.CapexPercent),
		models.F("terminal_growth_rate", a.TerminalGrowthRate),
		models.F("net_debt", a.NetDebt),
		models.F("shares_outstanding", a.SharesOutstanding),
	); err != nil {
		return err
	}
	if err := models.ValidateSeries(op, "historical_revenue", a.HistoricalRevenue); err != nil {
		return err
	}
	if a.InitialRevenue <= 0 {
		return models.Errorf(op, models.ErrInvalidInput, "initial revenue must be positive, got %v", a.InitialRevenue)
	}
	if a.Years < 0 {
		return models.Errorf(op, models.ErrInvalidInput, "years must be positive, got %d", a.Years)
	}
	if a.DiscountRate <= -1 {
		return models.Errorf(op, models.ErrInvalidInput, "discount rate must exceed -100%%, got %v", a.DiscountRate)
	}
	if a.DiscountRate == a.TerminalGrowthRate {
		return models.Errorf(op, models.ErrInvalidAssumption,
			"discount rate equals terminal growth rate (%v); terminal value is undefined", a.DiscountRate)
	}
	if a.DiscountRate < a.TerminalGrowthRate {
		return models.Errorf(op, models.ErrInvalidAssumption,
			"discount rate %v is below terminal growth rate %v", a.DiscountRate, a.TerminalGrowthRate)
	}
	return nil
}
