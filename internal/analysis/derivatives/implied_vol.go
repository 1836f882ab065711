package derivatives

import (
	"math"

	"github.com/seenimoa/valuekit/pkg/models"
)

const (
	ivMaxIterations = 100
	ivTolerance     = 1e-8
	ivMinVol        = 1e-4
	ivMaxVol        = 10.0
	ivMinVega       = 1e-10
)

// ImpliedVolatility solves for the volatility that reproduces marketPrice
// by Newton iteration on vega. in.Volatility is ignored.
func ImpliedVolatility(in models.OptionInputs, marketPrice float64) (models.ImpliedVolResult, error) {
	const op = "derivatives.ImpliedVolatility"
	in.Volatility = 0.5
	in, err := normalize(op, in)
	if err != nil {
		return models.ImpliedVolResult{}, err
	}
	if err := models.ValidateFinite(op, models.F("market_price", marketPrice)); err != nil {
		return models.ImpliedVolResult{}, err
	}

	lower, upper := priceBounds(in)
	if marketPrice <= lower || marketPrice >= upper {
		return models.ImpliedVolResult{}, models.Errorf(op, models.ErrInvalidInput,
			"market price %v outside no-arbitrage bounds (%v, %v)", marketPrice, lower, upper)
	}

	sigma := in.Volatility
	for i := 1; i <= ivMaxIterations; i++ {
		diff := value(in, sigma) - marketPrice
		if math.Abs(diff) < ivTolerance {
			return models.ImpliedVolResult{Volatility: sigma, Iterations: i}, nil
		}
		vega := rawVega(in, sigma)
		if vega < ivMinVega {
			return models.ImpliedVolResult{}, models.Errorf(op, models.ErrNoConvergence,
				"vega vanished at sigma %v", sigma)
		}
		sigma = math.Min(math.Max(sigma-diff/vega, ivMinVol), ivMaxVol)
	}
	return models.ImpliedVolResult{}, models.Errorf(op, models.ErrNoConvergence,
		"no convergence after %d iterations", ivMaxIterations)
}

func priceBounds(in models.OptionInputs) (float64, float64) {
	spotDisc := in.SpotPrice * math.Exp(-in.DividendYield*in.TimeToExpiry)
	strikeDisc := in.StrikePrice * math.Exp(-in.RiskFreeRate*in.TimeToExpiry)
	if in.OptionType == models.Put {
		return math.Max(0, strikeDisc-spotDisc), strikeDisc
	}
	return math.Max(0, spotDisc-strikeDisc), spotDisc
}
