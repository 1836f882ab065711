// Package models defines the inputs, results and errors shared by the
// valuekit calculators, the CLI and the HTTP API.
package models

// DCFAssumptions are the inputs of a discounted cash flow projection.
// Rates are decimal fractions (0.10 = 10%).
type DCFAssumptions struct {
	InitialRevenue        float64   `json:"initial_revenue"         mapstructure:"initial_revenue"`
	GrowthRate            float64   `json:"growth_rate"             mapstructure:"growth_rate"`
	OperatingMargin       float64   `json:"operating_margin"        mapstructure:"operating_margin"`
	TaxRate               float64   `json:"tax_rate"                mapstructure:"tax_rate"`
	DiscountRate          float64   `json:"discount_rate"           mapstructure:"discount_rate"`
	WorkingCapitalPercent float64   `json:"working_capital_percent" mapstructure:"working_capital_percent"` // of revenue change
	CapexPercent          float64   `json:"capex_percent"           mapstructure:"capex_percent"`           // of revenue
	TerminalGrowthRate    float64   `json:"terminal_growth_rate"    mapstructure:"terminal_growth_rate"`
	Years                 int       `json:"years,omitempty"         mapstructure:"years"` // 0 means DefaultProjectionYears
	HistoricalRevenue     []float64 `json:"historical_revenue,omitempty" mapstructure:"historical_revenue"` // oldest first
	NetDebt               float64   `json:"net_debt,omitempty"           mapstructure:"net_debt"`
	SharesOutstanding     float64   `json:"shares_outstanding,omitempty" mapstructure:"shares_outstanding"`
}

// DefaultProjectionYears is the explicit horizon used when none is given.
const DefaultProjectionYears = 5

// DCFProjectionRow is one projected year.
type DCFProjectionRow struct {
	Year                 int     `json:"year"                   csv:"year"`
	Revenue              float64 `json:"revenue"                csv:"revenue"`
	OperatingIncome      float64 `json:"operating_income"       csv:"operating_income"`
	Tax                  float64 `json:"tax"                    csv:"tax"`
	WorkingCapitalChange float64 `json:"working_capital_change" csv:"working_capital_change"`
	Capex                float64 `json:"capex"                  csv:"capex"`
	FreeCashFlow         float64 `json:"free_cash_flow"         csv:"free_cash_flow"`
	DiscountedCashFlow   float64 `json:"discounted_cash_flow"   csv:"discounted_cash_flow"`
	TerminalValue        float64 `json:"terminal_value,omitempty" csv:"terminal_value"` // final year only
	EnterpriseValue      float64 `json:"enterprise_value"       csv:"enterprise_value"` // cumulative through this year
}

// DCFResult is the output of a DCF projection.
type DCFResult struct {
	Rows               []DCFProjectionRow `json:"rows"`
	EnterpriseValue    float64            `json:"enterprise_value"`
	PVFreeCashFlows    float64            `json:"pv_free_cash_flows"`
	TerminalValue      float64            `json:"terminal_value"`
	PVTerminalValue    float64            `json:"pv_terminal_value"`
	TerminalValueShare float64            `json:"terminal_value_share"` // PV(TV) / EV
	EquityValue        float64            `json:"equity_value,omitempty"`
	ValuePerShare      float64            `json:"value_per_share,omitempty"`
	HistoricalCAGR     float64            `json:"historical_cagr,omitempty"`
}

// SensitivityGrid holds final-year enterprise values for each
// (discount rate, terminal growth) pair. Values[i][j] pairs
// DiscountRates[i] with GrowthRates[j].
type SensitivityGrid struct {
	DiscountRates []float64   `json:"discount_rates"`
	GrowthRates   []float64   `json:"growth_rates"`
	Values        [][]float64 `json:"values"`
}

// WACCInputs are the inputs of a weighted average cost of capital estimate.
type WACCInputs struct {
	RiskFreeRate      float64 `json:"risk_free_rate"       mapstructure:"risk_free_rate"`
	Beta              float64 `json:"beta"                 mapstructure:"beta"`
	MarketRiskPremium float64 `json:"market_risk_premium"  mapstructure:"market_risk_premium"`
	PreTaxCostOfDebt  float64 `json:"pre_tax_cost_of_debt" mapstructure:"pre_tax_cost_of_debt"`
	TaxRate           float64 `json:"tax_rate"             mapstructure:"tax_rate"`
	EquityValue       float64 `json:"equity_value"         mapstructure:"equity_value"` // market value
	DebtValue         float64 `json:"debt_value"           mapstructure:"debt_value"`
}

// WACCResult is the output of a WACC estimate.
type WACCResult struct {
	CostOfEquity        float64 `json:"cost_of_equity"`
	AfterTaxCostOfDebt  float64 `json:"after_tax_cost_of_debt"`
	EquityWeight        float64 `json:"equity_weight"`
	DebtWeight          float64 `json:"debt_weight"`
	WACC                float64 `json:"wacc"`
}

// LBOAssumptions are the inputs of a leveraged buyout model.
type LBOAssumptions struct {
	PurchasePrice         float64 `json:"purchase_price"          mapstructure:"purchase_price"`
	EquityContribution    float64 `json:"equity_contribution"     mapstructure:"equity_contribution"`
	DebtAmount            float64 `json:"debt_amount"             mapstructure:"debt_amount"`
	InterestRate          float64 `json:"interest_rate"           mapstructure:"interest_rate"`
	LoanTerm              int     `json:"loan_term"               mapstructure:"loan_term"` // years
	ExitMultiple          float64 `json:"exit_multiple"           mapstructure:"exit_multiple"` // EV / EBITDA
	InitialRevenue        float64 `json:"initial_revenue"         mapstructure:"initial_revenue"`
	RevenueGrowth         float64 `json:"revenue_growth"          mapstructure:"revenue_growth"`
	EBITDAMargin          float64 `json:"ebitda_margin"           mapstructure:"ebitda_margin"`
	WorkingCapitalPercent float64 `json:"working_capital_percent" mapstructure:"working_capital_percent"`
	CapexPercent          float64 `json:"capex_percent"           mapstructure:"capex_percent"`
}

// LBOProjectionRow is one year of the buyout holding period.
type LBOProjectionRow struct {
	Year                 int     `json:"year"                   csv:"year"`
	Revenue              float64 `json:"revenue"                csv:"revenue"`
	EBITDA               float64 `json:"ebitda"                 csv:"ebitda"`
	WorkingCapitalChange float64 `json:"working_capital_change" csv:"working_capital_change"`
	Capex                float64 `json:"capex"                  csv:"capex"`
	InterestPayment      float64 `json:"interest_payment"       csv:"interest_payment"`
	PrincipalPayment     float64 `json:"principal_payment"      csv:"principal_payment"`
	DebtBalance          float64 `json:"debt_balance"           csv:"debt_balance"` // closing balance
	FreeCashFlow         float64 `json:"free_cash_flow"         csv:"free_cash_flow"`
	ExitValue            float64 `json:"exit_value,omitempty"   csv:"exit_value"` // final year only
	EquityValue          float64 `json:"equity_value"           csv:"equity_value"`
	IRR                  float64 `json:"irr,omitempty"          csv:"irr"` // final year only, decimal
}

// LBOResult is the output of an LBO model.
type LBOResult struct {
	Rows           []LBOProjectionRow `json:"rows"`
	ExitValue      float64            `json:"exit_value"`
	EquityValue    float64            `json:"equity_value"`
	IRR            float64            `json:"irr"`  // annualized, decimal
	MOIC           float64            `json:"moic"` // exit equity / invested equity
	TotalInterest  float64            `json:"total_interest"`
	SourcesUsesGap float64            `json:"sources_uses_gap"` // purchase price - equity - debt
}

// DDMInputs are the inputs of a dividend discount model.
type DDMInputs struct {
	CurrentDividend    float64 `json:"current_dividend"      mapstructure:"current_dividend"` // D0
	DividendGrowthRate float64 `json:"dividend_growth_rate"  mapstructure:"dividend_growth_rate"`
	RequiredReturn     float64 `json:"required_return"       mapstructure:"required_return"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate"  mapstructure:"terminal_growth_rate"`
	Years              int     `json:"years,omitempty"       mapstructure:"years"`
	PayoutRatio        float64 `json:"payout_ratio,omitempty"     mapstructure:"payout_ratio"`
	ReturnOnEquity     float64 `json:"return_on_equity,omitempty" mapstructure:"return_on_equity"`
}

// DDMProjectionRow is one projected dividend year.
type DDMProjectionRow struct {
	Year          int     `json:"year"                     csv:"year"`
	Dividend      float64 `json:"dividend"                 csv:"dividend"`
	PresentValue  float64 `json:"present_value"            csv:"present_value"`
	TerminalValue float64 `json:"terminal_value,omitempty" csv:"terminal_value"` // final year only
}

// DDMResult is the output of a dividend discount model.
type DDMResult struct {
	Rows              []DDMProjectionRow `json:"rows"`
	PVDividends       float64            `json:"pv_dividends"`
	TerminalValue     float64            `json:"terminal_value"`
	PVTerminalValue   float64            `json:"pv_terminal_value"`
	IntrinsicValue    float64            `json:"intrinsic_value"`
	SustainableGrowth float64            `json:"sustainable_growth,omitempty"`
}
