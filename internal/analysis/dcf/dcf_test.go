package dcf

import (
	"errors"
	"math"
	"testing"

	"github.com/seenimoa/valuekit/pkg/models"
)

func baseAssumptions() models.DCFAssumptions {
	return models.DCFAssumptions{
		InitialRevenue:        1_000_000,
		GrowthRate:            0.10,
		OperatingMargin:       0.20,
		TaxRate:               0.25,
		DiscountRate:          0.10,
		WorkingCapitalPercent: 0.10,
		CapexPercent:          0.05,
		TerminalGrowthRate:    0.02,
	}
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// ════════════════════════════════════════════════════════════════════
// Projection
// ════════════════════════════════════════════════════════════════════

func TestProjectScenario(t *testing.T) {
	res, err := Project(baseAssumptions())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(res.Rows) != models.DefaultProjectionYears {
		t.Fatalf("rows = %d, want %d", len(res.Rows), models.DefaultProjectionYears)
	}

	y1 := res.Rows[0]
	if y1.Revenue != 1_100_000 {
		t.Errorf("year-1 revenue = %v, want exactly 1100000", y1.Revenue)
	}
	if !near(y1.OperatingIncome, 220_000, 1e-6) {
		t.Errorf("operating income = %v, want 220000", y1.OperatingIncome)
	}
	if !near(y1.WorkingCapitalChange, 10_000, 1e-6) {
		t.Errorf("working capital change = %v, want 10000", y1.WorkingCapitalChange)
	}
	if !near(y1.FreeCashFlow, 100_000, 1e-6) {
		t.Errorf("FCF = %v, want 100000", y1.FreeCashFlow)
	}
	if y1.TerminalValue != 0 {
		t.Error("terminal value must only be set on the final year")
	}

	last := res.Rows[len(res.Rows)-1]
	if !near(last.TerminalValue, 1_866_727.5, 1e-3) {
		t.Errorf("terminal value = %v, want 1866727.5", last.TerminalValue)
	}
	if !near(res.EnterpriseValue, 1_613_636.3636, 1e-3) {
		t.Errorf("EV = %v, want ≈1613636.36", res.EnterpriseValue)
	}
	if last.EnterpriseValue != res.EnterpriseValue {
		t.Errorf("final row EV %v must equal total EV %v", last.EnterpriseValue, res.EnterpriseValue)
	}
	if !near(res.TerminalValueShare, res.PVTerminalValue/res.EnterpriseValue, 1e-15) {
		t.Error("terminal share mismatch")
	}
}

func TestProjectRowsOrderedAndCumulative(t *testing.T) {
	res, _ := Project(baseAssumptions())
	running := 0.0
	for i, row := range res.Rows {
		if row.Year != i+1 {
			t.Errorf("row %d has year %d", i, row.Year)
		}
		running += row.DiscountedCashFlow
		if i < len(res.Rows)-1 && !near(row.EnterpriseValue, running, 1e-6) {
			t.Errorf("year %d EV %v, want running PV %v", row.Year, row.EnterpriseValue, running)
		}
	}
}

func TestProjectFinitePositive(t *testing.T) {
	tests := []struct {
		name string
		r, g float64
	}{
		{"wide spread", 0.15, 0.01},
		{"narrow spread", 0.031, 0.03},
		{"negative growth", 0.08, -0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseAssumptions()
			a.DiscountRate, a.TerminalGrowthRate = tt.r, tt.g
			res, err := Project(a)
			if err != nil {
				t.Fatal(err)
			}
			if !(res.TerminalValue > 0) || math.IsInf(res.TerminalValue, 0) {
				t.Errorf("terminal value %v not finite positive", res.TerminalValue)
			}
			if !(res.EnterpriseValue > 0) || math.IsInf(res.EnterpriseValue, 0) {
				t.Errorf("EV %v not finite positive", res.EnterpriseValue)
			}
		})
	}
}

func TestProjectYearsAndEquity(t *testing.T) {
	a := baseAssumptions()
	a.Years = 10
	a.NetDebt = 100_000
	a.SharesOutstanding = 1000
	a.HistoricalRevenue = []float64{800_000, 900_000, 1_000_000}

	res, err := Project(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 10 {
		t.Errorf("rows = %d, want 10", len(res.Rows))
	}
	if !near(res.EquityValue, res.EnterpriseValue-100_000, 1e-9) {
		t.Errorf("equity value = %v", res.EquityValue)
	}
	if !near(res.ValuePerShare, res.EquityValue/1000, 1e-9) {
		t.Errorf("value per share = %v", res.ValuePerShare)
	}
	if !near(res.HistoricalCAGR, math.Sqrt(1.25)-1, 1e-12) {
		t.Errorf("historical CAGR = %v", res.HistoricalCAGR)
	}
}

func TestProjectIdempotent(t *testing.T) {
	a, _ := Project(baseAssumptions())
	b, _ := Project(baseAssumptions())
	if a.EnterpriseValue != b.EnterpriseValue || a.TerminalValue != b.TerminalValue {
		t.Error("repeated projections differ")
	}
	for i := range a.Rows {
		if a.Rows[i] != b.Rows[i] {
			t.Errorf("row %d differs", i)
		}
	}
}

func TestProjectErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.DCFAssumptions)
		kind   error
	}{
		{"equal rates", func(a *models.DCFAssumptions) { a.TerminalGrowthRate = a.DiscountRate }, models.ErrInvalidAssumption},
		{"growth above discount", func(a *models.DCFAssumptions) { a.TerminalGrowthRate = 0.12 }, models.ErrInvalidAssumption},
		{"zero revenue", func(a *models.DCFAssumptions) { a.InitialRevenue = 0 }, models.ErrInvalidInput},
		{"nan margin", func(a *models.DCFAssumptions) { a.OperatingMargin = math.NaN() }, models.ErrInvalidInput},
		{"inf growth", func(a *models.DCFAssumptions) { a.GrowthRate = math.Inf(1) }, models.ErrInvalidInput},
		{"negative years", func(a *models.DCFAssumptions) { a.Years = -1 }, models.ErrInvalidInput},
		{"nan history", func(a *models.DCFAssumptions) { a.HistoricalRevenue = []float64{1, math.NaN()} }, models.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseAssumptions()
			tt.mutate(&a)
			if _, err := Project(a); !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// Sensitivity
// ════════════════════════════════════════════════════════════════════

func TestSensitivity(t *testing.T) {
	rates := []float64{0.08, 0.10, 0.12}
	growth := []float64{0.01, 0.02, 0.03}

	grid, err := Sensitivity(baseAssumptions(), rates, growth)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.Values) != 3 || len(grid.Values[0]) != 3 {
		t.Fatalf("grid shape %dx%d", len(grid.Values), len(grid.Values[0]))
	}

	base, _ := Project(baseAssumptions())
	if grid.Values[1][1] != base.EnterpriseValue {
		t.Errorf("center cell %v, want base EV %v", grid.Values[1][1], base.EnterpriseValue)
	}
	// EV falls as the discount rate rises and rises with terminal growth.
	for j := range growth {
		if !(grid.Values[0][j] > grid.Values[1][j] && grid.Values[1][j] > grid.Values[2][j]) {
			t.Errorf("column %d not decreasing in discount rate", j)
		}
	}
	for i := range rates {
		if !(grid.Values[i][0] < grid.Values[i][1] && grid.Values[i][1] < grid.Values[i][2]) {
			t.Errorf("row %d not increasing in growth", i)
		}
	}
}

func TestSensitivityInvalidPair(t *testing.T) {
	_, err := Sensitivity(baseAssumptions(), []float64{0.05, 0.10}, []float64{0.02, 0.05})
	if !errors.Is(err, models.ErrInvalidAssumption) {
		t.Errorf("expected ErrInvalidAssumption, got %v", err)
	}
	_, err = Sensitivity(baseAssumptions(), nil, []float64{0.02})
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestSensitivityAxis(t *testing.T) {
	axis := SensitivityAxis(0.10, 0.01, 2)
	want := []float64{0.08, 0.09, 0.10, 0.11, 0.12}
	if len(axis) != len(want) {
		t.Fatalf("len = %d", len(axis))
	}
	for i := range want {
		if !near(axis[i], want[i], 1e-12) {
			t.Errorf("axis[%d] = %v, want %v", i, axis[i], want[i])
		}
	}
}

func TestHistoricalCAGR(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   float64
		ok     bool
	}{
		{"doubling over one year", []float64{100, 200}, 1, true},
		{"flat", []float64{100, 100, 100}, 0, true},
		{"too short", []float64{100}, 0, false},
		{"non-positive start", []float64{0, 100}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HistoricalCAGR(tt.series)
			if ok != tt.ok || !near(got, tt.want, 1e-12) {
				t.Errorf("got (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// WACC
// ════════════════════════════════════════════════════════════════════

func TestWACC(t *testing.T) {
	r, err := WACC(models.WACCInputs{
		RiskFreeRate:      0.04,
		Beta:              1.2,
		MarketRiskPremium: 0.05,
		PreTaxCostOfDebt:  0.06,
		TaxRate:           0.25,
		EquityValue:       600,
		DebtValue:         400,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !near(r.CostOfEquity, 0.10, 1e-12) {
		t.Errorf("cost of equity = %v", r.CostOfEquity)
	}
	if !near(r.AfterTaxCostOfDebt, 0.045, 1e-12) {
		t.Errorf("after-tax debt = %v", r.AfterTaxCostOfDebt)
	}
	if !near(r.WACC, 0.6*0.10+0.4*0.045, 1e-12) {
		t.Errorf("WACC = %v", r.WACC)
	}
}

func TestWACCErrors(t *testing.T) {
	if _, err := WACC(models.WACCInputs{}); !errors.Is(err, models.ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := WACC(models.WACCInputs{EquityValue: -1, DebtValue: 2}); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
