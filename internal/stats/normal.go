package stats

import "math"

// Abramowitz & Stegun 26.2.17 coefficients. Existing callers depend on this
// exact approximation, so NormCDF must not be replaced by math.Erf.
const (
	asP  = 0.2316419
	asD  = 0.3989423
	asB1 = 0.3193815
	asB2 = -0.3565638
	asB3 = 1.781478
	asB4 = -1.821256
	asB5 = 1.330274
)

// NormCDF approximates the standard normal cumulative distribution.
func NormCDF(x float64) float64 {
	t := 1 / (1 + asP*math.Abs(x))
	d := asD * math.Exp(-x*x/2)
	tail := d * t * (asB1 + t*(asB2+t*(asB3+t*(asB4+t*asB5))))
	if x > 0 {
		return 1 - tail
	}
	return tail
}

// NormPDF is the standard normal density.
func NormPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
