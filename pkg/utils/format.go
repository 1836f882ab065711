// Package utils renders calculator output (currency, percentages, compact
// magnitudes) for the CLI table view and report text.
package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = "USD"

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

// Money formats amounts in one currency. INR uses lakh/crore grouping,
// everything else uses thousands grouping.
type Money struct {
	Code   string
	ac     accounting.Accounting
	indian bool
}

// NewMoney returns a formatter for an ISO currency code. Unknown codes are
// rendered with the code itself as prefix ("CHF 10.00").
func NewMoney(code string) Money {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	sym, ok := symbols[code]
	if !ok {
		sym = code + " "
	}
	return Money{
		Code: code,
		ac: accounting.Accounting{
			Symbol:         sym,
			Precision:      2,
			Thousand:       ",",
			Decimal:        ".",
			Format:         "%s%v",
			FormatNegative: "-%s%v",
			FormatZero:     "%s%v",
		},
		indian: code == "INR",
	}
}

// Format renders an amount rounded half away from zero to two places.
// e.g. USD 1234567.891 → "$1,234,567.89", INR 1234567 → "₹12,34,567.00"
func (m Money) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(amount).Round(2)
	if m.indian {
		return m.formatIndian(d)
	}
	f, _ := d.Float64()
	return m.ac.FormatMoney(f)
}

// Compact renders large magnitudes with a unit suffix.
// e.g. USD 2.5e9 → "$2.50B", INR 1927345 → "₹19.27 L"
func (m Money) Compact(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)
	prefix := sign + m.ac.Symbol

	if m.indian {
		switch {
		case abs >= 1e12:
			return prefix + trimDecimals(abs/1e12) + " L Cr"
		case abs >= 1e7:
			return prefix + trimDecimals(abs/1e7) + " Cr"
		case abs >= 1e5:
			return prefix + trimDecimals(abs/1e5) + " L"
		}
	} else {
		switch {
		case abs >= 1e12:
			return prefix + fixed(abs/1e12) + "T"
		case abs >= 1e9:
			return prefix + fixed(abs/1e9) + "B"
		case abs >= 1e6:
			return prefix + fixed(abs/1e6) + "M"
		}
	}
	if abs >= 1e3 {
		return prefix + fixed(abs/1e3) + "K"
	}
	return m.Format(amount)
}

func (m Money) formatIndian(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := m.ac.Symbol + groupIndian(intPart) + "." + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// groupIndian groups a digit string as the last three digits, then pairs.
func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}
	result := s[len(s)-3:]
	rest := s[:len(s)-3]
	for len(rest) > 2 {
		result = rest[len(rest)-2:] + "," + result
		rest = rest[:len(rest)-2]
	}
	if rest != "" {
		result = rest + "," + result
	}
	return result
}

// FormatPct formats a value already in percent units with an explicit sign.
// e.g. 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatRate formats a decimal fraction as a percentage: 0.125 → "12.50%".
func FormatRate(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

// FormatNumber renders a plain number with thousands separators.
func FormatNumber(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return accounting.FormatNumber(Round(v, int32(precision)), precision, ",", ".")
}

// Round rounds half away from zero on the decimal representation, so
// Round(2.675, 2) is 2.68 rather than the binary-float 2.67.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// trimDecimals renders up to two places without trailing zeros.
func trimDecimals(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
