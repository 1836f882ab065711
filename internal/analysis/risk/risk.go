// Package risk computes return-series risk measures: beta, Sharpe and
// Sortino ratios, drawdown and historical value at risk.
package risk

import (
	"math"

	"github.com/seenimoa/valuekit/internal/stats"
	"github.com/seenimoa/valuekit/pkg/models"
)

const minObservations = 2

// ────────────────────────────────────────────────────────────────────
// Beta
// ────────────────────────────────────────────────────────────────────

// Beta regresses stock returns on market returns. R² compares the fitted
// line stockMean + β(market − marketMean) with the observed returns; it is
// 0 when the stock series has no variance.
func Beta(stock, market []float64) (models.BetaResult, error) {
	const op = "risk.Beta"
	if len(stock) != len(market) {
		return models.BetaResult{}, models.Errorf(op, models.ErrInsufficientData,
			"series lengths differ: %d stock vs %d market", len(stock), len(market))
	}
	if len(stock) < minObservations {
		return models.BetaResult{}, models.Errorf(op, models.ErrInsufficientData,
			"need at least %d paired observations, got %d", minObservations, len(stock))
	}
	if err := models.ValidateSeries(op, "stock", stock); err != nil {
		return models.BetaResult{}, err
	}
	if err := models.ValidateSeries(op, "market", market); err != nil {
		return models.BetaResult{}, err
	}

	marketVar, _ := stats.Variance(market)
	if marketVar == 0 {
		return models.BetaResult{}, models.Errorf(op, models.ErrInvalidAssumption, "market returns have zero variance")
	}
	cov, _ := stats.Covariance(stock, market)
	beta := cov / marketVar

	stockMean, _ := stats.Mean(stock)
	marketMean, _ := stats.Mean(market)

	var ssRes, ssTot float64
	for i := range stock {
		fitted := stockMean + beta*(market[i]-marketMean)
		ssRes += (stock[i] - fitted) * (stock[i] - fitted)
		ssTot += (stock[i] - stockMean) * (stock[i] - stockMean)
	}
	var r2 float64
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return models.BetaResult{
		Beta:         beta,
		Alpha:        stockMean - beta*marketMean,
		RSquared:     r2,
		Observations: len(stock),
	}, nil
}

// ────────────────────────────────────────────────────────────────────
// Sharpe / Sortino
// ────────────────────────────────────────────────────────────────────

// Sharpe is (mean − rf)/σ with rf per period. A positive periodsPerYear
// also reports the ratio scaled by √periodsPerYear.
func Sharpe(returns []float64, riskFree float64, periodsPerYear int) (models.SharpeResult, error) {
	const op = "risk.Sharpe"
	if err := checkReturns(op, returns); err != nil {
		return models.SharpeResult{}, err
	}
	if err := models.ValidateFinite(op, models.F("risk_free_rate", riskFree)); err != nil {
		return models.SharpeResult{}, err
	}
	if periodsPerYear < 0 {
		return models.SharpeResult{}, models.Errorf(op, models.ErrInvalidInput, "periods per year must be non-negative")
	}

	mean, _ := stats.Mean(returns)
	sd, _ := stats.StdDev(returns)
	if sd == 0 {
		return models.SharpeResult{}, models.Errorf(op, models.ErrDivisionByZero, "returns have zero standard deviation")
	}

	res := models.SharpeResult{
		MeanReturn:   mean,
		StdDev:       sd,
		ExcessReturn: mean - riskFree,
	}
	res.Sharpe = res.ExcessReturn / sd
	if periodsPerYear > 0 {
		res.Annualized = res.Sharpe * math.Sqrt(float64(periodsPerYear))
	}
	return res, nil
}

// Sortino divides the mean excess return by the downside deviation, the
// root mean square of negative excess returns over all observations.
func Sortino(returns []float64, riskFree float64, periodsPerYear int) (models.SortinoResult, error) {
	const op = "risk.Sortino"
	if err := checkReturns(op, returns); err != nil {
		return models.SortinoResult{}, err
	}
	if err := models.ValidateFinite(op, models.F("risk_free_rate", riskFree)); err != nil {
		return models.SortinoResult{}, err
	}

	var sum, downsideSq float64
	for _, r := range returns {
		excess := r - riskFree
		sum += excess
		if excess < 0 {
			downsideSq += excess * excess
		}
	}
	dd := math.Sqrt(downsideSq / float64(len(returns)))
	if dd == 0 {
		return models.SortinoResult{}, models.Errorf(op, models.ErrDivisionByZero, "no returns below the risk-free rate")
	}

	res := models.SortinoResult{
		MeanExcess:        sum / float64(len(returns)),
		DownsideDeviation: dd,
	}
	res.Sortino = res.MeanExcess / dd
	if periodsPerYear > 0 {
		res.Annualized = res.Sortino * math.Sqrt(float64(periodsPerYear))
	}
	return res, nil
}

// ────────────────────────────────────────────────────────────────────
// Drawdown
// ────────────────────────────────────────────────────────────────────

// MaxDrawdown finds the largest decline from a running peak in values.
func MaxDrawdown(values []float64) (models.DrawdownResult, error) {
	const op = "risk.MaxDrawdown"
	if err := checkReturns(op, values); err != nil {
		return models.DrawdownResult{}, err
	}

	var res models.DrawdownResult
	peak, peakIdx := values[0], 0
	for i, v := range values {
		if v > peak {
			peak, peakIdx = v, i
		}
		if dd := peak - v; dd > res.MaxDrawdown {
			res.MaxDrawdown = dd
			res.PeakIndex, res.TroughIndex = peakIdx, i
			if peak > 0 {
				res.MaxDrawdownPct = dd / peak * 100
			}
		}
	}
	return res, nil
}

// ────────────────────────────────────────────────────────────────────
// Value at risk
// ────────────────────────────────────────────────────────────────────

// ValueAtRisk is historical VaR: the return at index
// floor((100 − confidence)/100 × n) of the ascending returns, as a positive
// loss on portfolioValue. CVaR averages the returns up to that index.
func ValueAtRisk(returns []float64, confidencePct, portfolioValue float64) (models.VaRResult, error) {
	const op = "risk.ValueAtRisk"
	if err := checkReturns(op, returns); err != nil {
		return models.VaRResult{}, err
	}
	if err := models.ValidateFinite(op,
		models.F("confidence", confidencePct),
		models.F("portfolio_value", portfolioValue),
	); err != nil {
		return models.VaRResult{}, err
	}
	if confidencePct <= 0 || confidencePct >= 100 {
		return models.VaRResult{}, models.Errorf(op, models.ErrInvalidInput,
			"confidence must be in (0, 100), got %v", confidencePct)
	}

	sorted := stats.Sorted(returns)
	n := len(sorted)
	// The epsilon keeps e.g. 0.1×10 from flooring to 0 after rounding.
	idx := int(math.Floor((100-confidencePct)/100*float64(n) + 1e-9))
	if idx >= n {
		idx = n - 1
	}

	tail, _ := stats.Mean(sorted[:idx+1])
	return models.VaRResult{
		Confidence:     confidencePct,
		Index:          idx,
		Return:         sorted[idx],
		VaR:            -sorted[idx] * portfolioValue,
		CVaR:           -tail * portfolioValue,
		PortfolioValue: portfolioValue,
	}, nil
}

func checkReturns(op string, xs []float64) error {
	if len(xs) < minObservations {
		return models.Errorf(op, models.ErrInsufficientData,
			"need at least %d observations, got %d", minObservations, len(xs))
	}
	return models.ValidateSeries(op, "returns", xs)
}
