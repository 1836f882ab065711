package lbo

import (
	"errors"
	"math"
	"testing"

	"github.com/seenimoa/valuekit/pkg/models"
)

func sampleDeal() models.LBOAssumptions {
	return models.LBOAssumptions{
		PurchasePrice:         1000,
		EquityContribution:    400,
		DebtAmount:            600,
		InterestRate:          0.08,
		LoanTerm:              5,
		ExitMultiple:          8,
		InitialRevenue:        1000,
		RevenueGrowth:         0.05,
		EBITDAMargin:          0.20,
		WorkingCapitalPercent: 0.10,
		CapexPercent:          0.03,
	}
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestProject(t *testing.T) {
	res, err := Project(sampleDeal())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(res.Rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(res.Rows))
	}

	y1 := res.Rows[0]
	if !near(y1.Revenue, 1050, 1e-9) || !near(y1.EBITDA, 210, 1e-9) {
		t.Errorf("year 1 revenue/EBITDA = %v/%v", y1.Revenue, y1.EBITDA)
	}
	if !near(y1.InterestPayment, 48, 1e-9) {
		t.Errorf("year 1 interest = %v, want 48 (on opening balance)", y1.InterestPayment)
	}
	if !near(y1.FreeCashFlow, 5.5, 1e-9) {
		t.Errorf("year 1 FCF = %v, want 5.5", y1.FreeCashFlow)
	}
	if y1.ExitValue != 0 || y1.IRR != 0 {
		t.Error("exit value and IRR belong to the final year only")
	}

	if !near(res.ExitValue, 2042.0505, 1e-6) {
		t.Errorf("exit value = %v", res.ExitValue)
	}
	if !near(res.EquityValue, 2042.0505, 1e-6) {
		t.Errorf("equity value = %v", res.EquityValue)
	}
	if !near(res.IRR, 0.385483, 1e-5) {
		t.Errorf("IRR = %v, want ≈0.3855", res.IRR)
	}
	if res.Rows[4].IRR != res.IRR {
		t.Error("final row must carry the IRR")
	}
	if !near(res.MOIC, 5.10513, 1e-5) {
		t.Errorf("MOIC = %v", res.MOIC)
	}
	if !near(res.TotalInterest, 48+38.4+28.8+19.2+9.6, 1e-9) {
		t.Errorf("total interest = %v", res.TotalInterest)
	}
	if res.SourcesUsesGap != 0 {
		t.Errorf("sources/uses gap = %v", res.SourcesUsesGap)
	}
}

func TestDebtScheduleStraightLine(t *testing.T) {
	tests := []struct {
		name string
		debt float64
		term int
	}{
		{"even", 600, 5},
		{"repeating fraction", 1000, 3},
		{"long", 750, 7},
		{"no debt", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sampleDeal()
			a.DebtAmount, a.LoanTerm = tt.debt, tt.term
			a.PurchasePrice = a.EquityContribution + tt.debt

			res, err := Project(a)
			if err != nil {
				t.Fatal(err)
			}

			prev := tt.debt
			paid := 0.0
			for _, row := range res.Rows {
				if row.DebtBalance > prev {
					t.Errorf("year %d balance %v increased from %v", row.Year, row.DebtBalance, prev)
				}
				if row.DebtBalance < 0 {
					t.Errorf("year %d balance %v negative", row.Year, row.DebtBalance)
				}
				if !near(row.PrincipalPayment, tt.debt/float64(tt.term), 1e-12) {
					t.Errorf("year %d principal %v", row.Year, row.PrincipalPayment)
				}
				paid += row.PrincipalPayment
				prev = row.DebtBalance
			}
			final := res.Rows[len(res.Rows)-1].DebtBalance
			if !near(final, tt.debt-paid, 1e-9) {
				t.Errorf("final balance %v, want initial - Σprincipal = %v", final, tt.debt-paid)
			}
		})
	}
}

func TestNegativeEquityIsInvalidResult(t *testing.T) {
	a := sampleDeal()
	a.ExitMultiple = -1

	res, err := Project(a)
	if !errors.Is(err, models.ErrInvalidResult) {
		t.Fatalf("expected ErrInvalidResult, got %v", err)
	}
	if len(res.Rows) != 5 {
		t.Errorf("schedule should still be returned, got %d rows", len(res.Rows))
	}
	if res.EquityValue >= 0 {
		t.Errorf("equity value = %v, want negative", res.EquityValue)
	}
	if res.IRR != 0 || math.IsNaN(res.Rows[4].IRR) {
		t.Errorf("IRR must be left unset, got %v", res.IRR)
	}
}

func TestOverflowIsInvalidResult(t *testing.T) {
	tests := []struct {
		name string
		edit func(*models.LBOAssumptions)
	}{
		{"revenue overflows", func(a *models.LBOAssumptions) { a.InitialRevenue, a.RevenueGrowth = 1e308, 1 }},
		{"exit multiple overflows", func(a *models.LBOAssumptions) { a.ExitMultiple = 1e307 }},
		{"moic overflows", func(a *models.LBOAssumptions) { a.ExitMultiple, a.EquityContribution, a.LoanTerm = 1e300, 1e-300, 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sampleDeal()
			tt.edit(&a)
			res, err := Project(a)
			if !errors.Is(err, models.ErrInvalidResult) {
				t.Fatalf("err = %v, want ErrInvalidResult", err)
			}
			if len(res.Rows) != 0 {
				t.Errorf("overflowed schedule returned with %d rows", len(res.Rows))
			}
		})
	}
}

func TestProjectErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.LBOAssumptions)
	}{
		{"zero term", func(a *models.LBOAssumptions) { a.LoanTerm = 0 }},
		{"zero equity", func(a *models.LBOAssumptions) { a.EquityContribution = 0 }},
		{"negative debt", func(a *models.LBOAssumptions) { a.DebtAmount = -1 }},
		{"zero revenue", func(a *models.LBOAssumptions) { a.InitialRevenue = 0 }},
		{"nan rate", func(a *models.LBOAssumptions) { a.InterestRate = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sampleDeal()
			tt.mutate(&a)
			if _, err := Project(a); !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
