// Package ratios computes liquidity, leverage, profitability, efficiency
// and valuation ratios from a single set of financial statements.
package ratios

import (
	"math"

	"github.com/seenimoa/valuekit/pkg/models"
)

// report accumulates ratios, recording the names it could not compute.
type report struct {
	models.RatioReport
}

func (r *report) set(family map[string]float64, name string, num, den float64) {
	if den == 0 {
		r.Unavailable = append(r.Unavailable, name)
		return
	}
	family[name] = num / den
}

func (r *report) pct(family map[string]float64, name string, num, den float64) {
	r.set(family, name, num*100, den)
}

// Compute derives every ratio the statement supports. Ratios that need a
// share price are unavailable when SharePrice is zero.
func Compute(fs models.FinancialStatement) (models.RatioReport, error) {
	const op = "ratios.Compute"
	if err := models.ValidateFinite(op,
		models.F("revenue", fs.Revenue),
		models.F("gross_profit", fs.GrossProfit),
		models.F("operating_income", fs.OperatingIncome),
		models.F("ebitda", fs.EBITDA),
		models.F("net_income", fs.NetIncome),
		models.F("interest_expense", fs.InterestExpense),
		models.F("total_assets", fs.TotalAssets),
		models.F("total_equity", fs.TotalEquity),
		models.F("total_debt", fs.TotalDebt),
		models.F("current_assets", fs.CurrentAssets),
		models.F("current_liabilities", fs.CurrentLiabilities),
		models.F("inventory", fs.Inventory),
		models.F("cash", fs.Cash),
		models.F("shares_outstanding", fs.SharesOutstanding),
		models.F("share_price", fs.SharePrice),
	); err != nil {
		return models.RatioReport{}, err
	}
	if fs.SharesOutstanding < 0 || fs.SharePrice < 0 {
		return models.RatioReport{}, models.Errorf(op, models.ErrInvalidInput, "shares and share price must be non-negative")
	}

	r := &report{models.RatioReport{
		Liquidity:     map[string]float64{},
		Leverage:      map[string]float64{},
		Profitability: map[string]float64{},
		Efficiency:    map[string]float64{},
		Valuation:     map[string]float64{},
	}}

	// Liquidity
	r.set(r.Liquidity, "current_ratio", fs.CurrentAssets, fs.CurrentLiabilities)
	r.set(r.Liquidity, "quick_ratio", fs.CurrentAssets-fs.Inventory, fs.CurrentLiabilities)
	r.set(r.Liquidity, "cash_ratio", fs.Cash, fs.CurrentLiabilities)

	// Leverage
	r.set(r.Leverage, "debt_to_equity", fs.TotalDebt, fs.TotalEquity)
	r.set(r.Leverage, "debt_ratio", fs.TotalDebt, fs.TotalAssets)
	r.set(r.Leverage, "interest_coverage", fs.OperatingIncome, fs.InterestExpense)

	// Profitability
	r.pct(r.Profitability, "gross_margin", fs.GrossProfit, fs.Revenue)
	r.pct(r.Profitability, "operating_margin", fs.OperatingIncome, fs.Revenue)
	r.pct(r.Profitability, "net_margin", fs.NetIncome, fs.Revenue)
	r.pct(r.Profitability, "roa", fs.NetIncome, fs.TotalAssets)
	r.pct(r.Profitability, "roe", fs.NetIncome, fs.TotalEquity)
	// ROCE = EBIT / (Total Assets - Current Liabilities)
	r.pct(r.Profitability, "roce", fs.OperatingIncome, fs.TotalAssets-fs.CurrentLiabilities)

	// Efficiency
	r.set(r.Efficiency, "asset_turnover", fs.Revenue, fs.TotalAssets)

	// Valuation
	r.set(r.Valuation, "eps", fs.NetIncome, fs.SharesOutstanding)
	r.set(r.Valuation, "book_value_per_share", fs.TotalEquity, fs.SharesOutstanding)
	eps, hasEPS := r.Valuation["eps"]
	bvps, hasBV := r.Valuation["book_value_per_share"]

	if fs.SharePrice == 0 {
		r.Unavailable = append(r.Unavailable, "pe", "pb", "ev_ebitda")
	} else {
		r.set(r.Valuation, "pe", fs.SharePrice, eps)
		r.set(r.Valuation, "pb", fs.SharePrice, bvps)
		ev := fs.SharePrice*fs.SharesOutstanding + fs.TotalDebt - fs.Cash
		r.set(r.Valuation, "ev_ebitda", ev, fs.EBITDA)
	}

	// Graham Number = sqrt(22.5 * EPS * BookValue)
	if hasEPS && hasBV && eps > 0 && bvps > 0 {
		r.Valuation["graham_number"] = math.Sqrt(22.5 * eps * bvps)
	} else {
		r.Unavailable = append(r.Unavailable, "graham_number")
	}

	return r.RatioReport, nil
}
