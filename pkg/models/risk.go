package models

// BetaResult is a regression of stock returns on market returns.
type BetaResult struct {
	Beta         float64 `json:"beta"`
	Alpha        float64 `json:"alpha"` // intercept per period
	RSquared     float64 `json:"r_squared"`
	Observations int     `json:"observations"`
}

// SharpeResult is a risk-adjusted excess return.
type SharpeResult struct {
	MeanReturn   float64 `json:"mean_return"`
	StdDev       float64 `json:"std_dev"`
	ExcessReturn float64 `json:"excess_return"`
	Sharpe       float64 `json:"sharpe"`
	Annualized   float64 `json:"annualized,omitempty"`
}

// SortinoResult penalizes only downside volatility.
type SortinoResult struct {
	MeanExcess        float64 `json:"mean_excess"`
	DownsideDeviation float64 `json:"downside_deviation"`
	Sortino           float64 `json:"sortino"`
	Annualized        float64 `json:"annualized,omitempty"`
}

// DrawdownResult is the largest peak-to-trough decline of a value series.
type DrawdownResult struct {
	MaxDrawdown    float64 `json:"max_drawdown"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	PeakIndex      int     `json:"peak_index"`
	TroughIndex    int     `json:"trough_index"`
}

// VaRResult is a historical value-at-risk estimate. Losses are positive.
type VaRResult struct {
	Confidence     float64 `json:"confidence"` // percent
	Index          int     `json:"index"`      // position in the sorted returns
	Return         float64 `json:"return"`     // the selected return
	VaR            float64 `json:"var"`
	CVaR           float64 `json:"cvar"`
	PortfolioValue float64 `json:"portfolio_value"`
}

// RiskInputs bundle the series used by the risk endpoints and commands.
type RiskInputs struct {
	Returns        []float64 `json:"returns"                   mapstructure:"returns"`
	MarketReturns  []float64 `json:"market_returns,omitempty"  mapstructure:"market_returns"`
	RiskFreeRate   float64   `json:"risk_free_rate,omitempty"  mapstructure:"risk_free_rate"` // per period
	PeriodsPerYear int       `json:"periods_per_year,omitempty" mapstructure:"periods_per_year"`
	Confidence     float64   `json:"confidence,omitempty"      mapstructure:"confidence"` // percent
	PortfolioValue float64   `json:"portfolio_value,omitempty" mapstructure:"portfolio_value"`
	Values         []float64 `json:"values,omitempty"          mapstructure:"values"` // portfolio values for drawdown
}
