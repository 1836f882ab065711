package dcf

import "github.com/seenimoa/valuekit/pkg/models"

// WACC blends a CAPM cost of equity with the after-tax cost of debt using
// market-value weights.
func WACC(in models.WACCInputs) (models.WACCResult, error) {
	const op = "dcf.WACC"
	if err := models.ValidateFinite(op,
		models.F("risk_free_rate", in.RiskFreeRate),
		models.F("beta", in.Beta),
		models.F("market_risk_premium", in.MarketRiskPremium),
		models.F("pre_tax_cost_of_debt", in.PreTaxCostOfDebt),
		models.F("tax_rate", in.TaxRate),
		models.F("equity_value", in.EquityValue),
		models.F("debt_value", in.DebtValue),
	); err != nil {
		return models.WACCResult{}, err
	}
	if in.EquityValue < 0 || in.DebtValue < 0 {
		return models.WACCResult{}, models.Errorf(op, models.ErrInvalidInput, "capital values must be non-negative")
	}
	total := in.EquityValue + in.DebtValue
	if total == 0 {
		return models.WACCResult{}, models.Errorf(op, models.ErrDivisionByZero, "equity and debt values are both zero")
	}

	r := models.WACCResult{
		CostOfEquity:       in.RiskFreeRate + in.Beta*in.MarketRiskPremium,
		AfterTaxCostOfDebt: in.PreTaxCostOfDebt * (1 - in.TaxRate),
		EquityWeight:       in.EquityValue / total,
		DebtWeight:         in.DebtValue / total,
	}
	r.WACC = r.EquityWeight*r.CostOfEquity + r.DebtWeight*r.AfterTaxCostOfDebt
	return r, nil
}
