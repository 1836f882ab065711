package models

// CapitalProject is a project with an explicit initial investment
// followed by periodic cash flows.
type CapitalProject struct {
	InitialInvestment float64   `json:"initial_investment" mapstructure:"initial_investment"` // positive outlay
	CashFlows         []float64 `json:"cash_flows"         mapstructure:"cash_flows"`         // periods 1..n
	DiscountRate      float64   `json:"discount_rate"      mapstructure:"discount_rate"`
}

// BudgetResult is the capital budgeting summary of a project.
type BudgetResult struct {
	NPV                float64 `json:"npv"`
	IRRPct             float64 `json:"irr_pct"`
	IRRConverged       bool    `json:"irr_converged"`
	PaybackPeriod      float64 `json:"payback_period"`            // years, -1 if never recovered
	DiscountedPayback  float64 `json:"discounted_payback_period"` // years, -1 if never recovered
	ProfitabilityIndex float64 `json:"profitability_index"`
}

// IRRResult is an internal rate of return expressed in percent.
type IRRResult struct {
	RatePct    float64 `json:"rate_pct"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Method     string  `json:"method"`
}
