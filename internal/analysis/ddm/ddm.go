// Package ddm values equity as the present value of its dividends.
package ddm

import (
	"math"

	"github.com/seenimoa/valuekit/pkg/models"
)

// Project grows the current dividend for in.Years years (default 5),
// discounts each payment at the required return and adds a Gordon-growth
// terminal value at the end of the horizon.
func Project(in models.DDMInputs) (models.DDMResult, error) {
	const op = "ddm.Project"
	if err := models.ValidateFinite(op,
		models.F("current_dividend", in.CurrentDividend),
		models.F("dividend_growth_rate", in.DividendGrowthRate),
		models.F("required_return", in.RequiredReturn),
		models.F("terminal_growth_rate", in.TerminalGrowthRate),
		models.F("payout_ratio", in.PayoutRatio),
		models.F("return_on_equity", in.ReturnOnEquity),
	); err != nil {
		return models.DDMResult{}, err
	}
	if in.CurrentDividend < 0 {
		return models.DDMResult{}, models.Errorf(op, models.ErrInvalidInput, "current dividend must be non-negative")
	}
	if in.Years < 0 {
		return models.DDMResult{}, models.Errorf(op, models.ErrInvalidInput, "years must be positive, got %d", in.Years)
	}
	if in.RequiredReturn <= -1 {
		return models.DDMResult{}, models.Errorf(op, models.ErrInvalidInput, "required return must exceed -100%%")
	}
	if in.RequiredReturn <= in.TerminalGrowthRate {
		return models.DDMResult{}, models.Errorf(op, models.ErrInvalidAssumption,
			"required return %v must exceed terminal growth %v", in.RequiredReturn, in.TerminalGrowthRate)
	}

	years := in.Years
	if years == 0 {
		years = models.DefaultProjectionYears
	}

	res := models.DDMResult{Rows: make([]models.DDMProjectionRow, 0, years)}
	div := in.CurrentDividend
	for y := 1; y <= years; y++ {
		div *= 1 + in.DividendGrowthRate
		discount := math.Pow(1+in.RequiredReturn, float64(y))
		row := models.DDMProjectionRow{
			Year:         y,
			Dividend:     div,
			PresentValue: div / discount,
		}
		res.PVDividends += row.PresentValue

		if y == years {
			row.TerminalValue = div * (1 + in.TerminalGrowthRate) / (in.RequiredReturn - in.TerminalGrowthRate)
			res.TerminalValue = row.TerminalValue
			res.PVTerminalValue = row.TerminalValue / discount
		}
		res.Rows = append(res.Rows, row)
	}
	res.IntrinsicValue = res.PVDividends + res.PVTerminalValue
	if err := models.ValidateResult(op,
		models.F("pv_dividends", res.PVDividends),
		models.F("terminal_value", res.TerminalValue),
		models.F("intrinsic_value", res.IntrinsicValue),
	); err != nil {
		return models.DDMResult{}, err
	}

	if in.PayoutRatio != 0 || in.ReturnOnEquity != 0 {
		g, err := SustainableGrowth(in.ReturnOnEquity, in.PayoutRatio)
		if err != nil {
			return models.DDMResult{}, err
		}
		res.SustainableGrowth = g
	}
	return res, nil
}

// GordonGrowth is the single-stage value D0(1+g)/(r-g).
func GordonGrowth(d0, r, g float64) (float64, error) {
	const op = "ddm.GordonGrowth"
	if err := models.ValidateFinite(op, models.F("d0", d0), models.F("r", r), models.F("g", g)); err != nil {
		return 0, err
	}
	if r <= g {
		return 0, models.Errorf(op, models.ErrInvalidAssumption, "required return %v must exceed growth %v", r, g)
	}
	v := d0 * (1 + g) / (r - g)
	if err := models.ValidateResult(op, models.F("value", v)); err != nil {
		return 0, err
	}
	return v, nil
}

// SustainableGrowth is the growth an equity base can fund from retained
// earnings: ROE × (1 − payout).
func SustainableGrowth(roe, payout float64) (float64, error) {
	const op = "ddm.SustainableGrowth"
	if err := models.ValidateFinite(op, models.F("roe", roe), models.F("payout", payout)); err != nil {
		return 0, err
	}
	if payout < 0 || payout > 1 {
		return 0, models.Errorf(op, models.ErrInvalidInput, "payout ratio must be in [0, 1], got %v", payout)
	}
	return roe * (1 - payout), nil
}
