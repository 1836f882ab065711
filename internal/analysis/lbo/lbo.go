// Package lbo models a leveraged buyout with a straight-line debt schedule
// and an exit at a multiple of final-year EBITDA.
package lbo

import (
	"math"

	"github.com/seenimoa/valuekit/pkg/models"
)

// Project builds the year-by-year buyout schedule and the sponsor's
// return. When the exit equity is negative the IRR is undefined: the
// schedule is still returned, together with an ErrInvalidResult error.
func Project(a models.LBOAssumptions) (models.LBOResult, error) {
	const op = "lbo.Project"
	if err := validate(op, a); err != nil {
		return models.LBOResult{}, err
	}

	years := a.LoanTerm
	principal := a.DebtAmount / float64(years)

	res := models.LBOResult{
		Rows:           make([]models.LBOProjectionRow, 0, years),
		SourcesUsesGap: a.PurchasePrice - a.EquityContribution - a.DebtAmount,
	}
	prevRevenue := a.InitialRevenue
	balance := a.DebtAmount

	for y := 1; y <= years; y++ {
		revenue := prevRevenue * (1 + a.RevenueGrowth)
		ebitda := revenue * a.EBITDAMargin
		wcChange := (revenue - prevRevenue) * a.WorkingCapitalPercent
		capex := revenue * a.CapexPercent

		// Interest accrues on the opening balance.
		interest := balance * a.InterestRate
		// Closing balance is computed from the schedule, not by repeated
		// subtraction, so it lands on zero at the end of the term.
		balance = math.Max(0, a.DebtAmount-principal*float64(y))

		fcf := ebitda - wcChange - capex - interest - principal
		res.TotalInterest += interest

		row := models.LBOProjectionRow{
			Year:                 y,
			Revenue:              revenue,
			EBITDA:               ebitda,
			WorkingCapitalChange: wcChange,
			Capex:                capex,
			InterestPayment:      interest,
			PrincipalPayment:     principal,
			DebtBalance:          balance,
			FreeCashFlow:         fcf,
			EquityValue:          ebitda*a.ExitMultiple - balance,
		}

		if y == years {
			row.ExitValue = ebitda * a.ExitMultiple
			res.ExitValue = row.ExitValue
			res.EquityValue = row.EquityValue
		}

		res.Rows = append(res.Rows, row)
		prevRevenue = revenue
	}

	res.MOIC = res.EquityValue / a.EquityContribution
	if err := checkOutputs(op, res); err != nil {
		return models.LBOResult{}, err
	}
	if res.EquityValue < 0 {
		return res, models.Errorf(op, models.ErrInvalidResult,
			"exit equity value %.2f is negative; IRR is undefined", res.EquityValue)
	}

	res.IRR = math.Pow(res.EquityValue/a.EquityContribution, 1/float64(years)) - 1
	if err := models.ValidateResult(op, models.F("irr", res.IRR)); err != nil {
		return models.LBOResult{}, err
	}
	res.Rows[len(res.Rows)-1].IRR = res.IRR
	return res, nil
}

// checkOutputs rejects a schedule that overflowed float64 somewhere on the
// way to the exit.
func checkOutputs(op string, res models.LBOResult) error {
	if err := models.ValidateResult(op,
		models.F("exit_value", res.ExitValue),
		models.F("equity_value", res.EquityValue),
		models.F("total_interest", res.TotalInterest),
		models.F("moic", res.MOIC),
	); err != nil {
		return err
	}
	for _, row := range res.Rows {
		if err := models.ValidateResult(op,
			models.F("revenue", row.Revenue),
			models.F("free_cash_flow", row.FreeCashFlow),
		); err != nil {
			return err
		}
	}
	return nil
}

func validate(op string, a models.LBOAssumptions) error {
	if err := models.ValidateFinite(op,
		models.F("purchase_price", a.PurchasePrice),
		models.F("equity_contribution", a.EquityContribution),
		models.F("debt_amount", a.DebtAmount),
		models.F("interest_rate", a.InterestRate),
		models.F("exit_multiple", a.ExitMultiple),
		models.F("initial_revenue", a.InitialRevenue),
		models.F("revenue_growth", a.RevenueGrowth),
		models.F("ebitda_margin", a.EBITDAMargin),
		models.F("working_capital_percent", a.WorkingCapitalPercent),
		models.F("capex_percent", a.CapexPercent),
	); err != nil {
		return err
	}
	switch {
	case a.LoanTerm <= 0:
		return models.Errorf(op, models.ErrInvalidInput, "loan term must be positive, got %d", a.LoanTerm)
	case a.EquityContribution <= 0:
		return models.Errorf(op, models.ErrInvalidInput, "equity contribution must be positive, got %v", a.EquityContribution)
	case a.DebtAmount < 0:
		return models.Errorf(op, models.ErrInvalidInput, "debt amount must be non-negative, got %v", a.DebtAmount)
	case a.InitialRevenue <= 0:
		return models.Errorf(op, models.ErrInvalidInput, "initial revenue must be positive, got %v", a.InitialRevenue)
	}
	return nil
}
