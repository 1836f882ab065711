package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/seenimoa/valuekit/pkg/models"
)

const returnsTable = `
<html><body>
<table id="other"><tr><th>Name</th></tr><tr><td>x</td></tr></table>
<table>
  <thead><tr><th>Date</th><th>Close</th><th> Return </th></tr></thead>
  <tbody>
    <tr><td>2024-01</td><td>1,010.50</td><td>1.05%</td></tr>
    <tr><td>2024-02</td><td>990</td><td>(2.0)</td></tr>
    <tr><td>2024-03</td><td>—</td><td>0.5</td></tr>
  </tbody>
</table>
</body></html>`

const statementTable = `
<table>
  <tr><th></th><th>Mar 2021</th><th>Mar 2022</th><th>Mar 2023</th></tr>
  <tr><td>Sales +</td><td>1,200</td><td>1,350</td><td>1,500</td></tr>
  <tr><td>Net Profit</td><td>₹ 120 Cr</td><td>-</td><td>150</td></tr>
</table>`

func TestReadColumn(t *testing.T) {
	tests := []struct {
		column string
		want   []float64
	}{
		{"Close", []float64{1010.5, 990}},
		{"return", []float64{1.05, -2.0, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := ReadColumn(strings.NewReader(returnsTable), tt.column)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadColumnWithoutThead(t *testing.T) {
	got, err := ReadColumn(strings.NewReader(statementTable), "Mar 2022")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 1350 {
		t.Errorf("got %v, want [1350]", got)
	}
}

func TestReadRow(t *testing.T) {
	sales, err := ReadRow(strings.NewReader(statementTable), "sales")
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 3 || sales[0] != 1200 || sales[2] != 1500 {
		t.Errorf("sales = %v", sales)
	}

	profit, err := ReadRow(strings.NewReader(statementTable), "Net Profit")
	if err != nil {
		t.Fatal(err)
	}
	if len(profit) != 2 || profit[0] != 120e7 || profit[1] != 150 {
		t.Errorf("profit = %v", profit)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		kind error
	}{
		{"missing column", func() error { _, err := ReadColumn(strings.NewReader(returnsTable), "Volume"); return err }, models.ErrInvalidInput},
		{"missing row", func() error { _, err := ReadRow(strings.NewReader(statementTable), "EBITDA"); return err }, models.ErrInvalidInput},
		{"no numbers", func() error {
			_, err := ReadColumn(strings.NewReader(`<table><tr><th>A</th></tr><tr><td>-</td></tr></table>`), "A")
			return err
		}, models.ErrInsufficientData},
		{"garbage cell", func() error {
			_, err := ReadColumn(strings.NewReader(`<table><tr><th>A</th></tr><tr><td>abc</td></tr></table>`), "A")
			return err
		}, models.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234.5", 1234.5, true},
		{"$ 12", 12, true},
		{"(300)", -300, true},
		{"12.5%", 12.5, true},
		{"2.5 Cr", 2.5e7, true},
		{"3L", 3e5, true},
		{"3B", 3e9, true},
		{"-4", -4, true},
		{"", 0, false},
		{"—", 0, false},
	}
	for _, tt := range tests {
		got, ok, err := parseNumber(tt.in)
		if err != nil || ok != tt.ok || got != tt.want {
			t.Errorf("parseNumber(%q) = %v, %v, %v; want %v, %v", tt.in, got, ok, err, tt.want, tt.ok)
		}
	}
}
