// Package report renders calculator results as a standalone HTML page with
// inline SVG charts.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ════════════════════════════════════════════════════════════════════
// SVG Charts
// ════════════════════════════════════════════════════════════════════

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	BgColor      string
	GridColor    string
	TextColor    string
	FontSize     int
	Title        string
}

// DefaultChartConfig returns the chart size and palette used by reports.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        760,
		Height:       360,
		MarginTop:    40,
		MarginRight:  30,
		MarginBottom: 45,
		MarginLeft:   80,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

var palette = []string{"#2563eb", "#ea580c", "#16a34a", "#db2777", "#7c3aed", "#0891b2"}

// Series is one line of a LineChart.
type Series struct {
	Name   string
	Values []float64
	Color  string // auto-assigned when empty
}

// ────────────────────────────────────────────────────────────────────
// Line Chart
// ────────────────────────────────────────────────────────────────────

// LineChart draws one or more series against shared x labels. NaN and
// infinite values leave a gap in their series.
func LineChart(series []Series, labels []string, cfg ChartConfig) string {
	if cfg.Width == 0 {
		title := cfg.Title
		cfg = DefaultChartConfig()
		cfg.Title = title
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
		for _, v := range s.Values {
			if finite(v) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	if n == 0 || math.IsInf(lo, 1) {
		return emptySVG(cfg, "No data")
	}
	lo, hi = pad(lo, hi)

	px, py, pw, ph := cfg.plotArea()
	xAt := func(i int) float64 {
		if n == 1 {
			return float64(px) + float64(pw)/2
		}
		return float64(px) + float64(i)*float64(pw)/float64(n-1)
	}
	yAt := func(v float64) float64 {
		return float64(py+ph) - (v-lo)/(hi-lo)*float64(ph)
	}

	var sb strings.Builder
	writeFrame(&sb, cfg)
	writeYGrid(&sb, cfg, lo, hi)

	for si, s := range series {
		color := s.Color
		if color == "" {
			color = palette[si%len(palette)]
		}
		var d []string
		move := true
		for i, v := range s.Values {
			if !finite(v) {
				move = true
				continue
			}
			cmd := "L"
			if move {
				cmd, move = "M", false
			}
			d = append(d, fmt.Sprintf("%s%.1f,%.1f", cmd, xAt(i), yAt(v)))
		}
		if len(d) > 0 {
			fmt.Fprintf(&sb, `<path d="%s" fill="none" stroke="%s" stroke-width="1.8"/>`, strings.Join(d, " "), color)
		}
		if s.Name != "" && len(series) <= len(palette) {
			ly := py + 10 + si*16
			fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`,
				px+10, ly, px+30, ly, color)
			fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="10" fill="%s">%s</text>`,
				px+35, ly+4, cfg.TextColor, escapeXML(s.Name))
		}
	}

	if len(labels) > 0 {
		every := max(1, n/8)
		for i := 0; i < len(labels) && i < n; i += every {
			fmt.Fprintf(&sb, `<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
				xAt(i), py+ph+18, cfg.FontSize-1, cfg.TextColor, escapeXML(labels[i]))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ────────────────────────────────────────────────────────────────────
// Bar Chart
// ────────────────────────────────────────────────────────────────────

// Bar is one bar of a BarChart.
type Bar struct {
	Label string
	Value float64
}

// BarChart draws horizontal bars around a zero line; negative values
// extend left in red.
func BarChart(bars []Bar, cfg ChartConfig) string {
	if cfg.Width == 0 {
		title := cfg.Title
		cfg = DefaultChartConfig()
		cfg.Title = title
	}
	cfg.MarginLeft = 150

	lo, hi := 0.0, 0.0
	var shown []Bar
	for _, b := range bars {
		if !finite(b.Value) {
			continue
		}
		shown = append(shown, b)
		lo, hi = math.Min(lo, b.Value), math.Max(hi, b.Value)
	}
	if len(shown) == 0 {
		return emptySVG(cfg, "No data")
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	px, py, pw, ph := cfg.plotArea()
	zeroX := float64(px) + (-lo/span)*float64(pw)
	barH := math.Min(24, float64(ph)/float64(len(shown))*0.7)
	gap := (float64(ph) - barH*float64(len(shown))) / float64(len(shown)+1)

	var sb strings.Builder
	writeFrame(&sb, cfg)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="#999" stroke-width="1"/>`,
		zeroX, py, zeroX, py+ph)

	for i, b := range shown {
		by := float64(py) + gap + float64(i)*(barH+gap)
		w := math.Abs(b.Value) / span * float64(pw)
		bx, color := zeroX, "#16a34a"
		if b.Value < 0 {
			bx, color = zeroX-w, "#dc2626"
		}
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"/>`,
			bx, by, w, barH, color)
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-6, by+barH/2+4, cfg.FontSize, cfg.TextColor, escapeXML(b.Label))
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%s</text>`,
			bx+w+4, by+barH/2+4, cfg.FontSize, cfg.TextColor, tick(b.Value))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ────────────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────────────

func writeFrame(sb *strings.Builder, cfg ChartConfig) {
	sb.WriteString(svgHeader(cfg))
	fmt.Fprintf(sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, cfg.Width, cfg.Height, cfg.BgColor)
	if cfg.Title != "" {
		fmt.Fprintf(sb, `<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title))
	}
}

func writeYGrid(sb *strings.Builder, cfg ChartConfig, lo, hi float64) {
	const lines = 5
	px, py, pw, ph := cfg.plotArea()
	for i := 0; i <= lines; i++ {
		v := lo + (hi-lo)*float64(i)/lines
		y := py + ph - ph*i/lines
		fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor)
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, y+4, cfg.FontSize, cfg.TextColor, tick(v))
	}
}

// pad widens [lo, hi] by 5% each side, or to a unit band when flat.
func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	return lo - span*0.05, hi + span*0.05
}

// tick formats an axis value compactly for both rates and amounts.
func tick(v float64) string {
	if math.Abs(v) >= 1e4 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
