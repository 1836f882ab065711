package models

// FinancialStatement is the subset of statement lines used in ratio analysis.
type FinancialStatement struct {
	Revenue            float64 `json:"revenue"             mapstructure:"revenue"`
	GrossProfit        float64 `json:"gross_profit"        mapstructure:"gross_profit"`
	OperatingIncome    float64 `json:"operating_income"    mapstructure:"operating_income"` // EBIT
	EBITDA             float64 `json:"ebitda"              mapstructure:"ebitda"`
	NetIncome          float64 `json:"net_income"          mapstructure:"net_income"`
	InterestExpense    float64 `json:"interest_expense"    mapstructure:"interest_expense"`
	TotalAssets        float64 `json:"total_assets"        mapstructure:"total_assets"`
	TotalEquity        float64 `json:"total_equity"        mapstructure:"total_equity"`
	TotalDebt          float64 `json:"total_debt"          mapstructure:"total_debt"`
	CurrentAssets      float64 `json:"current_assets"      mapstructure:"current_assets"`
	CurrentLiabilities float64 `json:"current_liabilities" mapstructure:"current_liabilities"`
	Inventory          float64 `json:"inventory"           mapstructure:"inventory"`
	Cash               float64 `json:"cash"                mapstructure:"cash"`
	SharesOutstanding  float64 `json:"shares_outstanding"  mapstructure:"shares_outstanding"`
	SharePrice         float64 `json:"share_price"         mapstructure:"share_price"`
}

// RatioReport groups computed ratios by family. Margins and returns are
// percentages; a ratio whose denominator is zero is left out of its map
// and named in Unavailable.
type RatioReport struct {
	Liquidity     map[string]float64 `json:"liquidity"`
	Leverage      map[string]float64 `json:"leverage"`
	Profitability map[string]float64 `json:"profitability"`
	Efficiency    map[string]float64 `json:"efficiency"`
	Valuation     map[string]float64 `json:"valuation"`
	Unavailable   []string           `json:"unavailable,omitempty"`
}

// IPOInputs are the inputs of a comparables-based IPO pricing.
type IPOInputs struct {
	NetIncome       float64   `json:"net_income"       mapstructure:"net_income"`
	PeerPE          []float64 `json:"peer_pe"          mapstructure:"peer_pe"`
	PreMoneyShares  float64   `json:"pre_money_shares" mapstructure:"pre_money_shares"`
	PrimaryShares   float64   `json:"primary_shares"   mapstructure:"primary_shares"`   // newly issued
	SecondaryShares float64   `json:"secondary_shares" mapstructure:"secondary_shares"` // sold by existing holders
	IPODiscount     float64   `json:"ipo_discount"     mapstructure:"ipo_discount"`     // decimal below fair value
	RangeWidth      float64   `json:"range_width"      mapstructure:"range_width"`      // decimal, full width of the range
}

// IPOResult is the outcome of an IPO pricing.
type IPOResult struct {
	MedianPeerPE      float64 `json:"median_peer_pe"`
	FairEquityValue   float64 `json:"fair_equity_value"`
	PostMoneyShares   float64 `json:"post_money_shares"`
	FairValuePerShare float64 `json:"fair_value_per_share"`
	OfferPrice        float64 `json:"offer_price"`
	RangeLow          float64 `json:"range_low"`
	RangeHigh         float64 `json:"range_high"`
	PrimaryProceeds   float64 `json:"primary_proceeds"`
	GrossProceeds     float64 `json:"gross_proceeds"`
	MarketCapAtOffer  float64 `json:"market_cap_at_offer"`
	DilutionPct       float64 `json:"dilution_pct"`
	OfferPE           float64 `json:"offer_pe"`
}
