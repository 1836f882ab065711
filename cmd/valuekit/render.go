package main

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"

	"github.com/seenimoa/valuekit/internal/report"
	"github.com/seenimoa/valuekit/pkg/models"
	"github.com/seenimoa/valuekit/pkg/utils"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
	formatHTML  = "html"
)

// renderer writes a calculator result in the selected format.
type renderer struct {
	format  string
	title   string
	money   utils.Money
	compact bool // money as $2.50B rather than $2,500,000,000.00
	w       io.Writer
}

func newRenderer(w io.Writer, format, currency string) (renderer, error) {
	switch format {
	case formatTable, formatJSON, formatCSV, formatHTML:
	default:
		return renderer{}, fmt.Errorf("unknown format %q (want table, json, csv or html)", format)
	}
	return renderer{format: format, title: "valuekit", money: utils.NewMoney(currency), w: w}, nil
}

func (r renderer) render(v any) error {
	switch r.format {
	case formatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatCSV:
		return r.csv(v)
	case formatHTML:
		return r.html(v)
	default:
		return r.table(v)
	}
}

// ════════════════════════════════════════════════════════════════════
// CSV
// ════════════════════════════════════════════════════════════════════

// pathPoint flattens simulated paths into one CSV row per point.
type pathPoint struct {
	Path  int     `csv:"path"`
	Time  float64 `csv:"time"`
	Value float64 `csv:"value"`
}

// fieldValue is the CSV shape of results without a row series.
type fieldValue struct {
	Field string `csv:"field"`
	Value string `csv:"value"`
}

func (r renderer) csv(v any) error {
	rows := csvRows(v)
	if rows == nil {
		var kv []fieldValue
		for _, f := range flatten("", reflect.ValueOf(v)) {
			kv = append(kv, fieldValue{Field: f.name, Value: fmt.Sprint(f.value)})
		}
		rows = kv
	}
	return gocsv.Marshal(rows, r.w)
}

// csvRows picks the row series of results that have one.
func csvRows(v any) any {
	switch res := v.(type) {
	case models.DCFResult:
		return res.Rows
	case models.LBOResult:
		return res.Rows
	case models.DDMResult:
		return res.Rows
	case models.OptionResult:
		return res.Sensitivity
	case []models.PremiumPoint:
		return res
	case models.SimulationResult:
		var pts []pathPoint
		for _, p := range res.Paths {
			for _, pt := range p.Points {
				pts = append(pts, pathPoint{Path: p.Index, Time: pt.Time, Value: pt.Value})
			}
		}
		return pts
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════
// Table
// ════════════════════════════════════════════════════════════════════

func (r renderer) table(v any) error {
	tw := tabwriter.NewWriter(r.w, 0, 2, 2, ' ', 0)

	if g, ok := v.(models.SensitivityGrid); ok {
		header, cells := r.grid(g)
		writeLines(tw, header, cells)
		return tw.Flush()
	}

	v = withoutPaths(v)
	for _, f := range flatten("", reflect.ValueOf(v)) {
		fmt.Fprintf(tw, "%s\t%s\n", f.name, r.cell(f.name, f.value))
	}
	if header, cells := r.schedule(v); header != nil {
		fmt.Fprintln(tw)
		writeLines(tw, header, cells)
	}
	return tw.Flush()
}

// withoutPaths drops simulated paths, which are too long for a terminal
// or a report table; the summary is what matters.
func withoutPaths(v any) any {
	if res, ok := v.(models.SimulationResult); ok {
		res.Paths = nil
		return res
	}
	return v
}

func writeLines(w io.Writer, header []string, cells [][]string) {
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, line := range cells {
		fmt.Fprintln(w, strings.Join(line, "\t"))
	}
}

func (r renderer) grid(g models.SensitivityGrid) ([]string, [][]string) {
	header := []string{"discount \\ growth"}
	for _, gr := range g.GrowthRates {
		header = append(header, utils.FormatRate(gr))
	}
	cells := make([][]string, len(g.DiscountRates))
	for i, dr := range g.DiscountRates {
		line := []string{utils.FormatRate(dr)}
		for _, ev := range g.Values[i] {
			line = append(line, r.amount(ev))
		}
		cells[i] = line
	}
	return header, cells
}

// schedule formats the row series of v as columns named by their csv tags.
// It returns a nil header when v has no rows.
func (r renderer) schedule(v any) ([]string, [][]string) {
	rows := reflect.ValueOf(csvRows(v))
	if !rows.IsValid() || rows.Len() == 0 {
		return nil, nil
	}
	t := rows.Type().Elem()
	var names []string
	for i := 0; i < t.NumField(); i++ {
		names = append(names, t.Field(i).Tag.Get("csv"))
	}
	cells := make([][]string, rows.Len())
	for i := range cells {
		row := rows.Index(i)
		line := make([]string, row.NumField())
		for j := range line {
			line[j] = r.cell(names[j], row.Field(j).Interface())
		}
		cells[i] = line
	}
	return names, cells
}

// ════════════════════════════════════════════════════════════════════
// HTML
// ════════════════════════════════════════════════════════════════════

func (r renderer) html(v any) error {
	rep := report.Report{Title: r.title, Charts: report.ChartsFor(v)}

	if g, ok := v.(models.SensitivityGrid); ok {
		header, cells := r.grid(g)
		rep.Table = &report.Table{Header: header, Rows: cells}
		return report.Render(r.w, rep)
	}

	v = withoutPaths(v)
	for _, f := range flatten("", reflect.ValueOf(v)) {
		rep.Fields = append(rep.Fields, report.Field{Name: f.name, Value: r.cell(f.name, f.value)})
	}
	if header, cells := r.schedule(v); header != nil {
		rep.Table = &report.Table{Header: header, Rows: cells}
	}
	return report.Render(r.w, rep)
}

// rateFields are decimal fractions shown as percentages.
var rateFields = map[string]bool{
	"irr": true, "wacc": true, "cost_of_equity": true, "after_tax_cost_of_debt": true,
	"equity_weight": true, "debt_weight": true, "sustainable_growth": true,
	"terminal_value_share": true, "historical_cagr": true, "volatility": true,
	"premium": true,
}

var moneyWords = []string{
	"value", "price", "revenue", "income", "cash", "debt", "ebitda", "capex",
	"earnings", "npv", "synergies", "interest", "proceeds", "consideration",
	"flow", "tax", "dividend", "payment", "balance", "var", "cvar", "cap", "capital",
}

func (r renderer) cell(name string, v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	base := name[strings.LastIndex(name, ".")+1:]
	switch {
	case strings.HasSuffix(base, "_pct"):
		return utils.FormatPct(f)
	case rateFields[base]:
		return utils.FormatRate(f)
	case isMoney(base):
		return r.amount(f)
	default:
		return utils.FormatNumber(f, 4)
	}
}

func (r renderer) amount(f float64) string {
	if r.compact {
		return r.money.Compact(f)
	}
	return r.money.Format(f)
}

func isMoney(name string) bool {
	for _, w := range moneyWords {
		if name == w || strings.HasPrefix(name, w+"_") || strings.HasSuffix(name, "_"+w) || strings.Contains(name, "_"+w+"_") {
			return true
		}
	}
	return false
}

type field struct {
	name  string
	value any
}

// flatten lists the scalar fields of a result by json name, descending
// into nested structs and maps. Slices of structs are left to rows.
func flatten(prefix string, v reflect.Value) []field {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	var out []field
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" || !sf.IsExported() {
				continue
			}
			if name == "" {
				name = strings.ToLower(sf.Name)
			}
			out = append(out, flatten(join(prefix, name), v.Field(i))...)
		}
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, fmt.Sprint(k.Interface()))
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, flatten(join(prefix, k), v.MapIndex(reflect.ValueOf(k)))...)
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Struct || v.Len() == 0 {
			return nil
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		out = append(out, field{name: prefix, value: strings.Join(parts, ", ")})
	default:
		out = append(out, field{name: prefix, value: v.Interface()})
	}
	return out
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
