package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/seenimoa/valuekit/pkg/models"
)

// simulationPathsShown caps how many paths a simulation chart draws.
const simulationPathsShown = 25

// Field is one labelled scalar of a result, already formatted.
type Field struct {
	Name  string
	Value string
}

// Table is a formatted row series such as a projection schedule.
type Table struct {
	Header []string
	Rows   [][]string
}

// Report is everything the HTML page shows for one result.
type Report struct {
	Title     string
	Generated time.Time
	Fields    []Field
	Table     *Table
	Charts    []template.HTML
}

var page = template.Must(template.New("report").Parse(pageTemplate))

// Render writes r as a standalone HTML document.
func Render(w io.Writer, r Report) error {
	if r.Generated.IsZero() {
		r.Generated = time.Now()
	}
	if err := page.Execute(w, r); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════
// Charts per result type
// ════════════════════════════════════════════════════════════════════

// ChartsFor returns the SVG charts that suit a calculator result. Results
// without a natural series get none.
func ChartsFor(result any) []template.HTML {
	var svgs []string
	switch res := result.(type) {
	case models.DCFResult:
		fcf, dcf, labels := make([]float64, len(res.Rows)), make([]float64, len(res.Rows)), yearLabels(len(res.Rows))
		for i, row := range res.Rows {
			fcf[i], dcf[i] = row.FreeCashFlow, row.DiscountedCashFlow
		}
		svgs = append(svgs, LineChart([]Series{
			{Name: "Free cash flow", Values: fcf},
			{Name: "Discounted cash flow", Values: dcf},
		}, labels, titled("Projected cash flows")))

	case models.LBOResult:
		debt, equity := make([]float64, len(res.Rows)), make([]float64, len(res.Rows))
		for i, row := range res.Rows {
			debt[i], equity[i] = row.DebtBalance, row.EquityValue
		}
		svgs = append(svgs, LineChart([]Series{
			{Name: "Debt balance", Values: debt},
			{Name: "Equity value", Values: equity},
		}, yearLabels(len(res.Rows)), titled("Deleveraging")))

	case models.DDMResult:
		div, pv := make([]float64, len(res.Rows)), make([]float64, len(res.Rows))
		for i, row := range res.Rows {
			div[i], pv[i] = row.Dividend, row.PresentValue
		}
		svgs = append(svgs, LineChart([]Series{
			{Name: "Dividend", Values: div},
			{Name: "Present value", Values: pv},
		}, yearLabels(len(res.Rows)), titled("Dividend schedule")))

	case models.SensitivityGrid:
		labels := make([]string, len(res.DiscountRates))
		for i, r := range res.DiscountRates {
			labels[i] = pct(r)
		}
		series := make([]Series, len(res.GrowthRates))
		for j, g := range res.GrowthRates {
			vals := make([]float64, len(res.DiscountRates))
			for i := range res.DiscountRates {
				vals[i] = res.Values[i][j]
			}
			series[j] = Series{Name: "g = " + pct(g), Values: vals}
		}
		svgs = append(svgs, LineChart(series, labels, titled("Enterprise value by discount rate")))

	case models.OptionResult:
		if len(res.Sensitivity) > 0 {
			vals, labels := make([]float64, len(res.Sensitivity)), make([]string, len(res.Sensitivity))
			for i, p := range res.Sensitivity {
				vals[i], labels[i] = p.OptionPrice, tick(p.SpotPrice)
			}
			svgs = append(svgs, LineChart([]Series{{Name: "Option price", Values: vals}}, labels, titled("Price by spot")))
		}
		svgs = append(svgs, BarChart([]Bar{
			{"Delta", res.Delta}, {"Gamma", res.Gamma}, {"Theta", res.Theta}, {"Vega", res.Vega}, {"Rho", res.Rho},
		}, titled("Greeks")))

	case []models.PremiumPoint:
		vals, labels := make([]float64, len(res)), make([]string, len(res))
		for i, p := range res {
			vals[i], labels[i] = p.AccretionDilutionPct, tick(p.PremiumPct)+"%"
		}
		svgs = append(svgs, LineChart([]Series{{Name: "Accretion / dilution %", Values: vals}}, labels, titled("EPS impact by premium")))

	case models.SimulationResult:
		svgs = append(svgs, simulationChart(res))

	case models.RatioReport:
		svgs = append(svgs, BarChart(bars(res.Profitability), titled("Profitability")))
		svgs = append(svgs, BarChart(bars(res.Leverage), titled("Leverage")))
	}

	out := make([]template.HTML, len(svgs))
	for i, s := range svgs {
		// Chart text passes through escapeXML.
		out[i] = template.HTML(s)
	}
	return out
}

func simulationChart(res models.SimulationResult) string {
	n := min(len(res.Paths), simulationPathsShown)
	series := make([]Series, n)
	var labels []string
	for i := 0; i < n; i++ {
		pts := res.Paths[i].Points
		vals := make([]float64, len(pts))
		for j, p := range pts {
			vals[j] = p.Value
		}
		series[i] = Series{Values: vals, Color: palette[i%len(palette)]}
		if labels == nil {
			labels = make([]string, len(pts))
			for j, p := range pts {
				labels[j] = tick(p.Time)
			}
		}
	}
	title := fmt.Sprintf("%s paths (%d of %d shown)", res.Model, n, len(res.Paths))
	return LineChart(series, labels, titled(title))
}

func bars(m map[string]float64) []Bar {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Bar, len(keys))
	for i, k := range keys {
		out[i] = Bar{Label: k, Value: m[k]}
	}
	return out
}

func titled(title string) ChartConfig {
	cfg := DefaultChartConfig()
	cfg.Title = title
	return cfg
}

func yearLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "Y" + strconv.Itoa(i+1)
	}
	return out
}

func pct(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 2, 64) + "%"
}
