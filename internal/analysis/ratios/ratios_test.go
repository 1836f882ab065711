package ratios

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/seenimoa/valuekit/pkg/models"
)

func sampleStatement() models.FinancialStatement {
	return models.FinancialStatement{
		Revenue:            1000,
		GrossProfit:        400,
		OperatingIncome:    200,
		EBITDA:             250,
		NetIncome:          120,
		InterestExpense:    20,
		TotalAssets:        2000,
		TotalEquity:        800,
		TotalDebt:          600,
		CurrentAssets:      500,
		CurrentLiabilities: 250,
		Inventory:          100,
		Cash:               150,
		SharesOutstanding:  100,
		SharePrice:         18,
	}
}

func TestCompute(t *testing.T) {
	r, err := Compute(sampleStatement())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		family map[string]float64
		name   string
		want   float64
	}{
		{r.Liquidity, "current_ratio", 2},
		{r.Liquidity, "quick_ratio", 1.6},
		{r.Liquidity, "cash_ratio", 0.6},
		{r.Leverage, "debt_to_equity", 0.75},
		{r.Leverage, "debt_ratio", 0.3},
		{r.Leverage, "interest_coverage", 10},
		{r.Profitability, "gross_margin", 40},
		{r.Profitability, "operating_margin", 20},
		{r.Profitability, "net_margin", 12},
		{r.Profitability, "roa", 6},
		{r.Profitability, "roe", 15},
		{r.Profitability, "roce", 200.0 / 1750 * 100},
		{r.Efficiency, "asset_turnover", 0.5},
		{r.Valuation, "eps", 1.2},
		{r.Valuation, "book_value_per_share", 8},
		{r.Valuation, "pe", 15},
		{r.Valuation, "pb", 2.25},
		{r.Valuation, "ev_ebitda", (1800 + 600 - 150) / 250.0},
		{r.Valuation, "graham_number", math.Sqrt(22.5 * 1.2 * 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.family[tt.name]
			if !ok {
				t.Fatalf("%s missing", tt.name)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
	if len(r.Unavailable) != 0 {
		t.Errorf("unexpected unavailable ratios: %v", r.Unavailable)
	}
}

func TestZeroDenominatorsAreUnavailable(t *testing.T) {
	fs := sampleStatement()
	fs.CurrentLiabilities = 0
	fs.InterestExpense = 0
	fs.SharePrice = 0

	r, err := Compute(fs)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"current_ratio", "quick_ratio", "cash_ratio", "interest_coverage", "pe", "pb", "ev_ebitda"} {
		if !slices.Contains(r.Unavailable, name) {
			t.Errorf("%s should be unavailable, got %v", name, r.Unavailable)
		}
	}
	if _, ok := r.Liquidity["current_ratio"]; ok {
		t.Error("current_ratio should be omitted")
	}
	for _, v := range r.Profitability {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Errorf("non-finite ratio %v", v)
		}
	}
}

func TestGrahamNumberNeedsPositiveEarnings(t *testing.T) {
	fs := sampleStatement()
	fs.NetIncome = -50
	r, err := Compute(fs)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Valuation["graham_number"]; ok {
		t.Error("graham number should be unavailable for a loss")
	}
	if r.Valuation["pe"] >= 0 {
		t.Errorf("pe = %v, expected negative for a loss", r.Valuation["pe"])
	}
}

func TestComputeErrors(t *testing.T) {
	fs := sampleStatement()
	fs.Cash = math.NaN()
	if _, err := Compute(fs); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	fs = sampleStatement()
	fs.SharesOutstanding = -1
	if _, err := Compute(fs); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
