package models

// CompanyProfile describes one side of a merger.
type CompanyProfile struct {
	EPS        float64 `json:"eps"                   mapstructure:"eps"`
	Shares     float64 `json:"shares"                mapstructure:"shares"`
	PE         float64 `json:"pe"                    mapstructure:"pe"`
	SharePrice float64 `json:"share_price,omitempty" mapstructure:"share_price"`
}

// NetIncome is EPS times shares outstanding.
func (c CompanyProfile) NetIncome() float64 { return c.EPS * c.Shares }

// MergerInputs are the inputs of an accretion/dilution analysis.
type MergerInputs struct {
	Acquirer          CompanyProfile `json:"acquirer"            mapstructure:"acquirer"`
	Target            CompanyProfile `json:"target"              mapstructure:"target"`
	Premium           float64        `json:"premium"             mapstructure:"premium"` // decimal over target market cap
	CashConsideration float64        `json:"cash_consideration"  mapstructure:"cash_consideration"`
	DebtFinanced      float64        `json:"debt_financed"       mapstructure:"debt_financed"` // part of the cash raised as new debt
	DebtInterestRate  float64        `json:"debt_interest_rate"  mapstructure:"debt_interest_rate"`
	CashYield         float64        `json:"cash_yield"          mapstructure:"cash_yield"` // forgone on balance-sheet cash
	TaxRate           float64        `json:"tax_rate"            mapstructure:"tax_rate"`
	Synergies         float64        `json:"synergies"           mapstructure:"synergies"`
	IntegrationCosts  float64        `json:"integration_costs"   mapstructure:"integration_costs"`
}

// MergerResult is the pro forma outcome of a deal.
type MergerResult struct {
	Premium              float64 `json:"premium"`
	DealValue            float64 `json:"deal_value"`
	StockConsideration   float64 `json:"stock_consideration"`
	IssuePrice           float64 `json:"issue_price"`
	NewShares            float64 `json:"new_shares"`
	ProFormaShares       float64 `json:"pro_forma_shares"`
	InterestExpense      float64 `json:"interest_expense"`
	ForgoneInterest      float64 `json:"forgone_interest"`
	CombinedEarnings     float64 `json:"combined_earnings"`
	ProFormaEPS          float64 `json:"pro_forma_eps"`
	AccretionDilutionPct float64 `json:"accretion_dilution_pct"`
	Accretive            bool    `json:"accretive"`
	BreakevenSynergies   float64 `json:"breakeven_synergies"` // pre-tax synergies for 0% accretion
}

// PremiumPoint is one row of a premium sensitivity sweep.
type PremiumPoint struct {
	PremiumPct           float64 `json:"premium_pct"            csv:"premium_pct"`
	ProFormaEPS          float64 `json:"pro_forma_eps"          csv:"pro_forma_eps"`
	AccretionDilutionPct float64 `json:"accretion_dilution_pct" csv:"accretion_dilution_pct"`
}
