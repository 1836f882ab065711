// Package mna computes the pro forma EPS impact of an acquisition.
package mna

import (
	"github.com/seenimoa/valuekit/pkg/models"
)

// DefaultPremiumDeltas are the percentage-point shifts used by
// PremiumSensitivity when the caller supplies none.
var DefaultPremiumDeltas = []float64{-10, -5, 0, 5, 10}

// IssuePricer decides the price at which the acquirer issues new shares.
type IssuePricer interface {
	Name() string
	IssuePrice(acquirer models.CompanyProfile) (float64, error)
}

// ImpliedValuePricer issues at the acquirer's implied value per share,
// EPS × P/E.
type ImpliedValuePricer struct{}

func (ImpliedValuePricer) Name() string { return "implied" }

func (ImpliedValuePricer) IssuePrice(acq models.CompanyProfile) (float64, error) {
	p := acq.EPS * acq.PE
	if p <= 0 {
		return 0, models.Errorf("mna.ImpliedValuePricer", models.ErrInvalidInput,
			"implied acquirer price must be positive, got %v", p)
	}
	return p, nil
}

// MarketPricePricer issues at the acquirer's quoted share price.
type MarketPricePricer struct{}

func (MarketPricePricer) Name() string { return "market" }

func (MarketPricePricer) IssuePrice(acq models.CompanyProfile) (float64, error) {
	if acq.SharePrice <= 0 {
		return 0, models.Errorf("mna.MarketPricePricer", models.ErrInvalidInput,
			"acquirer share price must be positive, got %v", acq.SharePrice)
	}
	return acq.SharePrice, nil
}

// PricerByName resolves "implied" (the default for "") or "market".
func PricerByName(name string) (IssuePricer, error) {
	switch name {
	case "", "implied":
		return ImpliedValuePricer{}, nil
	case "market":
		return MarketPricePricer{}, nil
	default:
		return nil, models.Errorf("mna.PricerByName", models.ErrInvalidInput, "unknown issue pricer %q", name)
	}
}

// Analyze runs the accretion/dilution math for one deal structure.
func Analyze(in models.MergerInputs, pricer IssuePricer) (models.MergerResult, error) {
	const op = "mna.Analyze"
	if err := validate(op, in); err != nil {
		return models.MergerResult{}, err
	}
	if pricer == nil {
		pricer = ImpliedValuePricer{}
	}

	targetCap := in.Target.EPS * in.Target.PE * in.Target.Shares
	dealValue := targetCap * (1 + in.Premium)
	if in.CashConsideration > dealValue {
		return models.MergerResult{}, models.Errorf(op, models.ErrInvalidInput,
			"cash consideration %v exceeds deal value %v", in.CashConsideration, dealValue)
	}

	issuePrice, err := pricer.IssuePrice(in.Acquirer)
	if err != nil {
		return models.MergerResult{}, err
	}

	res := models.MergerResult{
		Premium:            in.Premium,
		DealValue:          dealValue,
		StockConsideration: dealValue - in.CashConsideration,
		IssuePrice:         issuePrice,
		InterestExpense:    in.DebtFinanced * in.DebtInterestRate,
		ForgoneInterest:    (in.CashConsideration - in.DebtFinanced) * in.CashYield,
	}
	res.NewShares = res.StockConsideration / issuePrice
	res.ProFormaShares = in.Acquirer.Shares + res.NewShares

	standalone := in.Acquirer.NetIncome() + in.Target.NetIncome()
	fixedCosts := in.IntegrationCosts + res.InterestExpense + res.ForgoneInterest
	res.CombinedEarnings = standalone + (in.Synergies-fixedCosts)*(1-in.TaxRate)
	res.ProFormaEPS = res.CombinedEarnings / res.ProFormaShares
	res.AccretionDilutionPct = (res.ProFormaEPS/in.Acquirer.EPS - 1) * 100
	res.Accretive = res.AccretionDilutionPct > 0

	// Pre-tax synergies that leave pro forma EPS equal to the acquirer's.
	res.BreakevenSynergies = (in.Acquirer.EPS*res.ProFormaShares-standalone)/(1-in.TaxRate) + fixedCosts
	if err := models.ValidateResult(op,
		models.F("deal_value", res.DealValue),
		models.F("new_shares", res.NewShares),
		models.F("combined_earnings", res.CombinedEarnings),
		models.F("pro_forma_eps", res.ProFormaEPS),
		models.F("accretion_dilution_pct", res.AccretionDilutionPct),
		models.F("breakeven_synergies", res.BreakevenSynergies),
	); err != nil {
		return models.MergerResult{}, err
	}
	return res, nil
}

// PremiumSensitivity re-runs Analyze with the premium shifted by each delta
// (in percentage points). Nil deltas means DefaultPremiumDeltas.
func PremiumSensitivity(in models.MergerInputs, pricer IssuePricer, deltasPct []float64) ([]models.PremiumPoint, error) {
	if deltasPct == nil {
		deltasPct = DefaultPremiumDeltas
	}
	if len(deltasPct) == 0 {
		return nil, models.Errorf("mna.PremiumSensitivity", models.ErrInsufficientData, "no premium deltas")
	}

	points := make([]models.PremiumPoint, 0, len(deltasPct))
	for _, d := range deltasPct {
		shifted := in
		shifted.Premium = in.Premium + d/100
		res, err := Analyze(shifted, pricer)
		if err != nil {
			return nil, err
		}
		points = append(points, models.PremiumPoint{
			PremiumPct:           shifted.Premium * 100,
			ProFormaEPS:          res.ProFormaEPS,
			AccretionDilutionPct: res.AccretionDilutionPct,
		})
	}
	return points, nil
}

func validate(op string, in models.MergerInputs) error {
	if err := models.ValidateFinite(op,
		models.F("acquirer.eps", in.Acquirer.EPS),
		models.F("acquirer.shares", in.Acquirer.Shares),
		models.F("acquirer.pe", in.Acquirer.PE),
		models.F("acquirer.share_price", in.Acquirer.SharePrice),
		models.F("target.eps", in.Target.EPS),
		models.F("target.shares", in.Target.Shares),
		models.F("target.pe", in.Target.PE),
		models.F("premium", in.Premium),
		models.F("cash_consideration", in.CashConsideration),
		models.F("debt_financed", in.DebtFinanced),
		models.F("debt_interest_rate", in.DebtInterestRate),
		models.F("cash_yield", in.CashYield),
		models.F("tax_rate", in.TaxRate),
		models.F("synergies", in.Synergies),
		models.F("integration_costs", in.IntegrationCosts),
	); err != nil {
		return err
	}

	switch {
	case in.Acquirer.EPS == 0:
		return models.Errorf(op, models.ErrDivisionByZero, "acquirer EPS is zero")
	case in.Acquirer.Shares <= 0 || in.Target.Shares <= 0:
		return models.Errorf(op, models.ErrInvalidInput, "share counts must be positive")
	case in.Premium <= -1:
		return models.Errorf(op, models.ErrInvalidInput, "premium must exceed -100%%, got %v", in.Premium)
	case in.CashConsideration < 0 || in.DebtFinanced < 0:
		return models.Errorf(op, models.ErrInvalidInput, "cash and debt must be non-negative")
	case in.DebtFinanced > in.CashConsideration:
		return models.Errorf(op, models.ErrInvalidInput,
			"debt financed %v exceeds cash consideration %v", in.DebtFinanced, in.CashConsideration)
	case in.TaxRate < 0 || in.TaxRate >= 1:
		return models.Errorf(op, models.ErrInvalidInput, "tax rate must be in [0, 1), got %v", in.TaxRate)
	}
	return nil
}
