// Package derivatives prices European options with Black-Scholes and
// reports their Greeks.
package derivatives

import (
	"math"

	"github.com/seenimoa/valuekit/internal/stats"
	"github.com/seenimoa/valuekit/pkg/models"
)

// DefaultSweepSteps is the number of intervals in the spot-price sweep.
const DefaultSweepSteps = 10

const daysPerYear = 365

// Price values the option, computes its Greeks and sweeps the price over
// spot prices from 0.5S to 1.5S in sweepSteps intervals (0 means default).
func Price(in models.OptionInputs, sweepSteps int) (models.OptionResult, error) {
	const op = "derivatives.Price"
	in, err := normalize(op, in)
	if err != nil {
		return models.OptionResult{}, err
	}

	res := greeks(in)
	res.Sensitivity, err = Sweep(in, sweepSteps)
	if err != nil {
		return models.OptionResult{}, err
	}
	return res, nil
}

// Sweep reprices the option across [0.5S, 1.5S] in steps equal intervals.
func Sweep(in models.OptionInputs, steps int) ([]models.SpotPricePoint, error) {
	in, err := normalize("derivatives.Sweep", in)
	if err != nil {
		return nil, err
	}
	if steps < 0 {
		return nil, models.Errorf("derivatives.Sweep", models.ErrInvalidInput, "sweep steps must be positive, got %d", steps)
	}
	if steps == 0 {
		steps = DefaultSweepSteps
	}

	lo, hi := in.SpotPrice*0.5, in.SpotPrice*1.5
	width := (hi - lo) / float64(steps)
	points := make([]models.SpotPricePoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		shifted := in
		shifted.SpotPrice = lo + float64(i)*width
		points = append(points, models.SpotPricePoint{
			SpotPrice:   shifted.SpotPrice,
			OptionPrice: value(shifted, shifted.Volatility),
		})
	}
	return points, nil
}

// ParityGap returns call − put − (S·e^{−qT} − K·e^{−rT}), which is zero for
// prices consistent with put-call parity.
func ParityGap(in models.OptionInputs) (float64, error) {
	in, err := normalize("derivatives.ParityGap", in)
	if err != nil {
		return 0, err
	}
	call, put := in, in
	call.OptionType, put.OptionType = models.Call, models.Put
	forward := in.SpotPrice*math.Exp(-in.DividendYield*in.TimeToExpiry) -
		in.StrikePrice*math.Exp(-in.RiskFreeRate*in.TimeToExpiry)
	return value(call, in.Volatility) - value(put, in.Volatility) - forward, nil
}

func d1d2(in models.OptionInputs, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(in.TimeToExpiry)
	d1 := (math.Log(in.SpotPrice/in.StrikePrice) +
		(in.RiskFreeRate-in.DividendYield+sigma*sigma/2)*in.TimeToExpiry) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

func value(in models.OptionInputs, sigma float64) float64 {
	d1, d2 := d1d2(in, sigma)
	spotDisc := in.SpotPrice * math.Exp(-in.DividendYield*in.TimeToExpiry)
	strikeDisc := in.StrikePrice * math.Exp(-in.RiskFreeRate*in.TimeToExpiry)
	if in.OptionType == models.Put {
		return strikeDisc*(1-stats.NormCDF(d2)) - spotDisc*(1-stats.NormCDF(d1))
	}
	return spotDisc*stats.NormCDF(d1) - strikeDisc*stats.NormCDF(d2)
}

// rawVega is ∂price/∂σ without the per-point scaling.
func rawVega(in models.OptionInputs, sigma float64) float64 {
	d1, _ := d1d2(in, sigma)
	return in.SpotPrice * math.Exp(-in.DividendYield*in.TimeToExpiry) * stats.NormPDF(d1) * math.Sqrt(in.TimeToExpiry)
}

func greeks(in models.OptionInputs) models.OptionResult {
	sigma, T := in.Volatility, in.TimeToExpiry
	sqrtT := math.Sqrt(T)
	d1, d2 := d1d2(in, sigma)
	qDisc := math.Exp(-in.DividendYield * T)
	rDisc := math.Exp(-in.RiskFreeRate * T)
	nd1, nd2 := stats.NormCDF(d1), stats.NormCDF(d2)
	pdf := stats.NormPDF(d1)

	res := models.OptionResult{
		Price: value(in, sigma),
		Gamma: qDisc * pdf / (in.SpotPrice * sigma * sqrtT),
		Vega:  rawVega(in, sigma) / 100,
		D1:    d1,
		D2:    d2,
	}

	decay := -in.SpotPrice * qDisc * pdf * sigma / (2 * sqrtT)
	if in.OptionType == models.Put {
		res.Delta = qDisc * (nd1 - 1)
		res.Theta = (decay + in.RiskFreeRate*in.StrikePrice*rDisc*(1-nd2) -
			in.DividendYield*in.SpotPrice*qDisc*(1-nd1)) / daysPerYear
		res.Rho = -in.StrikePrice * T * rDisc * (1 - nd2) / 100
	} else {
		res.Delta = qDisc * nd1
		res.Theta = (decay - in.RiskFreeRate*in.StrikePrice*rDisc*nd2 +
			in.DividendYield*in.SpotPrice*qDisc*nd1) / daysPerYear
		res.Rho = in.StrikePrice * T * rDisc * nd2 / 100
	}
	return res
}

func normalize(op string, in models.OptionInputs) (models.OptionInputs, error) {
	if err := models.ValidateFinite(op,
		models.F("spot_price", in.SpotPrice),
		models.F("strike_price", in.StrikePrice),
		models.F("time_to_expiry", in.TimeToExpiry),
		models.F("risk_free_rate", in.RiskFreeRate),
		models.F("volatility", in.Volatility),
		models.F("dividend_yield", in.DividendYield),
	); err != nil {
		return in, err
	}
	switch {
	case in.SpotPrice <= 0 || in.StrikePrice <= 0:
		return in, models.Errorf(op, models.ErrInvalidInput, "spot and strike must be positive")
	case in.TimeToExpiry <= 0:
		return in, models.Errorf(op, models.ErrInvalidInput, "time to expiry must be positive, got %v", in.TimeToExpiry)
	case in.Volatility <= 0:
		return in, models.Errorf(op, models.ErrInvalidInput, "volatility must be positive, got %v", in.Volatility)
	}
	switch in.OptionType {
	case "":
		in.OptionType = models.Call
	case models.Call, models.Put:
	default:
		return in, models.Errorf(op, models.ErrInvalidInput, "unknown option type %q", in.OptionType)
	}
	return in, nil
}
