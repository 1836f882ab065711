package models

// OptionType is the right conveyed by an option.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// OptionInputs are the Black-Scholes inputs. Rates and volatility are
// annualized decimals; TimeToExpiry is in years.
type OptionInputs struct {
	SpotPrice     float64    `json:"spot_price"     mapstructure:"spot_price"`
	StrikePrice   float64    `json:"strike_price"   mapstructure:"strike_price"`
	TimeToExpiry  float64    `json:"time_to_expiry" mapstructure:"time_to_expiry"`
	RiskFreeRate  float64    `json:"risk_free_rate" mapstructure:"risk_free_rate"`
	Volatility    float64    `json:"volatility"     mapstructure:"volatility"`
	OptionType    OptionType `json:"option_type"    mapstructure:"option_type"`
	DividendYield float64    `json:"dividend_yield" mapstructure:"dividend_yield"`
}

// OptionResult is a priced option with its Greeks.
type OptionResult struct {
	Price       float64          `json:"price"`
	Delta       float64          `json:"delta"`
	Gamma       float64          `json:"gamma"`
	Theta       float64          `json:"theta"` // per calendar day
	Vega        float64          `json:"vega"`  // per 1 vol point
	Rho         float64          `json:"rho"`   // per 1 rate point
	D1          float64          `json:"d1"`
	D2          float64          `json:"d2"`
	Sensitivity []SpotPricePoint `json:"sensitivity"`
}

// SpotPricePoint is one point of a price-vs-spot sweep.
type SpotPricePoint struct {
	SpotPrice   float64 `json:"spot_price"   csv:"spot_price"`
	OptionPrice float64 `json:"option_price" csv:"option_price"`
}

// ImpliedVolResult is the outcome of an implied volatility solve.
type ImpliedVolResult struct {
	Volatility float64 `json:"volatility"`
	Iterations int     `json:"iterations"`
}
