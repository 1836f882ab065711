package calc

import (
	"github.com/seenimoa/valuekit/internal/analysis/budgeting"
	"github.com/seenimoa/valuekit/internal/analysis/dcf"
	"github.com/seenimoa/valuekit/internal/analysis/ddm"
	"github.com/seenimoa/valuekit/internal/analysis/derivatives"
	"github.com/seenimoa/valuekit/internal/analysis/ipo"
	"github.com/seenimoa/valuekit/internal/analysis/lbo"
	"github.com/seenimoa/valuekit/internal/analysis/mna"
	"github.com/seenimoa/valuekit/internal/analysis/ratios"
	"github.com/seenimoa/valuekit/internal/analysis/risk"
	"github.com/seenimoa/valuekit/internal/irr"
	"github.com/seenimoa/valuekit/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Request types that wrap a model input with calculator options
// ════════════════════════════════════════════════════════════════════

// DCFSensitivityRequest asks for a discount-rate × terminal-growth grid.
// Empty axes are built around the base case with Step (default 1%) and
// Half (default 2) points either side.
type DCFSensitivityRequest struct {
	models.DCFAssumptions `mapstructure:",squash"`
	DiscountRates         []float64 `json:"discount_rates,omitempty" mapstructure:"discount_rates"`
	GrowthRates           []float64 `json:"growth_rates,omitempty"   mapstructure:"growth_rates"`
	Step                  float64   `json:"step,omitempty"           mapstructure:"step"`
	Half                  int       `json:"half,omitempty"           mapstructure:"half"`
}

// MergerRequest selects the share issuance variant, "implied" (default) or
// "market".
type MergerRequest struct {
	models.MergerInputs `mapstructure:",squash"`
	Issuance            string    `json:"issuance,omitempty"       mapstructure:"issuance"`
	PremiumDeltas       []float64 `json:"premium_deltas,omitempty" mapstructure:"premium_deltas"` // sensitivity only
}

// OptionRequest prices an option with a spot sweep of SweepSteps steps.
type OptionRequest struct {
	models.OptionInputs `mapstructure:",squash"`
	SweepSteps          int `json:"sweep_steps,omitempty" mapstructure:"sweep_steps"`
}

// ImpliedVolRequest solves for the volatility matching MarketPrice.
type ImpliedVolRequest struct {
	models.OptionInputs `mapstructure:",squash"`
	MarketPrice         float64 `json:"market_price" mapstructure:"market_price"`
}

// IRRRequest holds a cash flow series with the initial outlay first.
// Method is "newton" (default) or "increment".
type IRRRequest struct {
	CashFlows []float64 `json:"cash_flows"       mapstructure:"cash_flows"`
	Method    string    `json:"method,omitempty" mapstructure:"method"`
}

// NPVRequest discounts CashFlows at Rate; CashFlows[0] is undiscounted.
type NPVRequest struct {
	Rate      float64   `json:"rate"       mapstructure:"rate"`
	CashFlows []float64 `json:"cash_flows" mapstructure:"cash_flows"`
}

// NPVResult is the response of the npv calculator.
type NPVResult struct {
	NPV float64 `json:"npv"`
}

// GordonRequest values a dividend stream growing at GrowthRate forever.
type GordonRequest struct {
	CurrentDividend float64 `json:"current_dividend" mapstructure:"current_dividend"`
	RequiredReturn  float64 `json:"required_return"  mapstructure:"required_return"`
	GrowthRate      float64 `json:"growth_rate"      mapstructure:"growth_rate"`
}

// GordonResult is the response of the ddm/gordon calculator.
type GordonResult struct {
	Value float64 `json:"value"`
}

// ParityResult is the response of the options/parity calculator.
type ParityResult struct {
	Gap float64 `json:"gap"` // C - P - (S e^{-qT} - K e^{-rT})
}

const (
	defaultAxisStep = 0.01
	defaultAxisHalf = 2
)

func init() {
	register(
		define("dcf", "Discounted cash flow projection", func(d Defaults, a models.DCFAssumptions) (any, error) {
			if a.Years == 0 {
				a.Years = d.ProjectionYears
			}
			return dcf.Project(a)
		}),
		define("dcf/sensitivity", "DCF enterprise value grid over discount and terminal growth rates", func(d Defaults, req DCFSensitivityRequest) (any, error) {
			a := req.DCFAssumptions
			if a.Years == 0 {
				a.Years = d.ProjectionYears
			}
			step, half := req.Step, req.Half
			if step == 0 {
				step = defaultAxisStep
			}
			if half == 0 {
				half = defaultAxisHalf
			}
			rates, growth := req.DiscountRates, req.GrowthRates
			if len(rates) == 0 {
				rates = dcf.SensitivityAxis(a.DiscountRate, step, half)
			}
			if len(growth) == 0 {
				growth = dcf.SensitivityAxis(a.TerminalGrowthRate, step/2, half)
			}
			return dcf.Sensitivity(a, rates, growth)
		}),
		define("wacc", "Weighted average cost of capital", func(_ Defaults, in models.WACCInputs) (any, error) {
			return dcf.WACC(in)
		}),
		define("lbo", "Leveraged buyout projection, exit value and IRR", func(_ Defaults, a models.LBOAssumptions) (any, error) {
			return lbo.Project(a)
		}),
		define("ddm", "Multi-stage dividend discount model", func(d Defaults, in models.DDMInputs) (any, error) {
			if in.Years == 0 {
				in.Years = d.ProjectionYears
			}
			return ddm.Project(in)
		}),
		define("ddm/gordon", "Single-stage Gordon growth value", func(_ Defaults, req GordonRequest) (any, error) {
			v, err := ddm.GordonGrowth(req.CurrentDividend, req.RequiredReturn, req.GrowthRate)
			if err != nil {
				return nil, err
			}
			return GordonResult{Value: v}, nil
		}),
		define("mna", "Merger accretion/dilution analysis", func(_ Defaults, req MergerRequest) (any, error) {
			pricer, err := mna.PricerByName(req.Issuance)
			if err != nil {
				return nil, err
			}
			return mna.Analyze(req.MergerInputs, pricer)
		}),
		define("mna/sensitivity", "Accretion/dilution across offer premiums", func(d Defaults, req MergerRequest) (any, error) {
			pricer, err := mna.PricerByName(req.Issuance)
			if err != nil {
				return nil, err
			}
			deltas := req.PremiumDeltas
			if deltas == nil {
				deltas = d.PremiumDeltas
			}
			return mna.PremiumSensitivity(req.MergerInputs, pricer, deltas)
		}),
		define("options", "Black-Scholes price, Greeks and spot sweep", func(d Defaults, req OptionRequest) (any, error) {
			steps := req.SweepSteps
			if steps == 0 {
				steps = d.SweepSteps
			}
			return derivatives.Price(req.OptionInputs, steps)
		}),
		define("options/implied-vol", "Implied volatility from a market price", func(_ Defaults, req ImpliedVolRequest) (any, error) {
			return derivatives.ImpliedVolatility(req.OptionInputs, req.MarketPrice)
		}),
		define("options/parity", "Put-call parity residual", func(_ Defaults, in models.OptionInputs) (any, error) {
			gap, err := derivatives.ParityGap(in)
			if err != nil {
				return nil, err
			}
			return ParityResult{Gap: gap}, nil
		}),
		define("irr", "Internal rate of return of a cash flow series", func(_ Defaults, req IRRRequest) (any, error) {
			return solveIRR(req)
		}),
		define("npv", "Net present value of a cash flow series", func(_ Defaults, req NPVRequest) (any, error) {
			if err := models.ValidateFinite("calc.npv", models.F("rate", req.Rate)); err != nil {
				return nil, err
			}
			if err := models.ValidateSeries("calc.npv", "cash_flows", req.CashFlows); err != nil {
				return nil, err
			}
			if req.Rate <= -1 {
				return nil, models.Errorf("calc.npv", models.ErrInvalidInput, "rate must be above -100%%, got %v", req.Rate)
			}
			return NPVResult{NPV: irr.NPV(req.Rate, req.CashFlows)}, nil
		}),
		define("budget", "Capital budgeting: NPV, IRR, payback, profitability index", func(_ Defaults, p models.CapitalProject) (any, error) {
			return budgeting.Evaluate(p)
		}),
		define("risk/beta", "Beta, alpha and R² against a market series", func(_ Defaults, in models.RiskInputs) (any, error) {
			return risk.Beta(in.Returns, in.MarketReturns)
		}),
		define("risk/sharpe", "Sharpe ratio", func(_ Defaults, in models.RiskInputs) (any, error) {
			return risk.Sharpe(in.Returns, in.RiskFreeRate, in.PeriodsPerYear)
		}),
		define("risk/sortino", "Sortino ratio", func(_ Defaults, in models.RiskInputs) (any, error) {
			return risk.Sortino(in.Returns, in.RiskFreeRate, in.PeriodsPerYear)
		}),
		define("risk/drawdown", "Maximum drawdown of a value series", func(_ Defaults, in models.RiskInputs) (any, error) {
			return risk.MaxDrawdown(in.Values)
		}),
		define("risk/var", "Historical value at risk and CVaR", func(_ Defaults, in models.RiskInputs) (any, error) {
			return risk.ValueAtRisk(in.Returns, in.Confidence, in.PortfolioValue)
		}),
		define("ratios", "Financial ratio analysis", func(_ Defaults, fs models.FinancialStatement) (any, error) {
			return ratios.Compute(fs)
		}),
		define("ipo", "IPO pricing from peer multiples", func(_ Defaults, in models.IPOInputs) (any, error) {
			return ipo.Price(in)
		}),
	)
}

func solveIRR(req IRRRequest) (models.IRRResult, error) {
	const op = "calc.irr"
	switch req.Method {
	case "", "newton":
		return irr.Newton(req.CashFlows)
	case "increment":
		if len(req.CashFlows) < 2 {
			return models.IRRResult{}, models.Errorf(op, models.ErrInsufficientData,
				"need an initial outlay and at least one cash flow, got %d values", len(req.CashFlows))
		}
		return irr.IncrementSearch(-req.CashFlows[0], req.CashFlows[1:])
	default:
		return models.IRRResult{}, models.Errorf(op, models.ErrInvalidInput, "unknown method %q", req.Method)
	}
}
