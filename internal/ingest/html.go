// Package ingest reads numeric series out of HTML tables, such as a
// financial statement saved from a browser, so they can feed the
// calculators.
package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/valuekit/pkg/models"
)

// ReadColumn returns the numeric cells under the header named column in
// the first table that has one. Header matching ignores case and
// surrounding space; blank and dash cells are skipped.
func ReadColumn(r io.Reader, column string) ([]float64, error) {
	const op = "ingest.ReadColumn"
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var (
		values []float64
		found  bool
		perr   error
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		idx := headerIndex(table, column)
		if idx < 0 {
			return true
		}
		found = true
		bodyRows(table).Each(func(row int, tr *goquery.Selection) {
			if perr != nil {
				return
			}
			cell := tr.Find("td, th").Eq(idx)
			if cell.Length() == 0 {
				return
			}
			v, ok, err := parseNumber(cell.Text())
			if err != nil {
				perr = models.Errorf(op, models.ErrInvalidInput, "row %d of %q: %v", row+1, column, err)
				return
			}
			if ok {
				values = append(values, v)
			}
		})
		return false
	})

	if perr != nil {
		return nil, perr
	}
	if !found {
		return nil, models.Errorf(op, models.ErrInvalidInput, "no table has a %q column", column)
	}
	if len(values) == 0 {
		return nil, models.Errorf(op, models.ErrInsufficientData, "column %q has no numeric values", column)
	}
	return values, nil
}

// ReadRow returns the numeric cells of the first row whose leading cell
// contains label, the layout statement pages use with one period per
// column.
func ReadRow(r io.Reader, label string) ([]float64, error) {
	const op = "ingest.ReadRow"
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	want := strings.ToLower(strings.TrimSpace(label))
	var (
		values []float64
		found  bool
		perr   error
	)
	doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td, th")
		if cells.Length() < 2 || !strings.Contains(strings.ToLower(cells.First().Text()), want) {
			return true
		}
		found = true
		cells.Slice(1, cells.Length()).Each(func(i int, cell *goquery.Selection) {
			if perr != nil {
				return
			}
			v, ok, err := parseNumber(cell.Text())
			if err != nil {
				perr = models.Errorf(op, models.ErrInvalidInput, "column %d of %q: %v", i+2, label, err)
				return
			}
			if ok {
				values = append(values, v)
			}
		})
		return false
	})

	if perr != nil {
		return nil, perr
	}
	if !found {
		return nil, models.Errorf(op, models.ErrInvalidInput, "no row labelled %q", label)
	}
	if len(values) == 0 {
		return nil, models.Errorf(op, models.ErrInsufficientData, "row %q has no numeric values", label)
	}
	return values, nil
}

// headerIndex finds column in the table's thead, or its first row when
// there is no thead.
func headerIndex(table *goquery.Selection, column string) int {
	header := table.Find("thead tr").First()
	if header.Length() == 0 {
		header = table.Find("tr").First()
	}
	want := strings.ToLower(strings.TrimSpace(column))
	idx := -1
	header.Find("th, td").EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if strings.ToLower(strings.TrimSpace(cell.Text())) == want {
			idx = i
			return false
		}
		return true
	})
	return idx
}

func bodyRows(table *goquery.Selection) *goquery.Selection {
	if rows := table.Find("tbody tr"); table.Find("thead").Length() > 0 && rows.Length() > 0 {
		return rows
	}
	// No thead: the first row is the header.
	return table.Find("tr").Slice(1, goquery.ToEnd)
}

// parseNumber understands thousands separators, currency signs, percent
// signs, accounting negatives "(1,200)" and Cr/L/K/M/B magnitude suffixes.
// ok is false for blank or dash cells.
func parseNumber(raw string) (v float64, ok bool, err error) {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "-", "—", "–", "n/a", "N/A", "NA":
		return 0, false, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer(",", "", "%", "", "₹", "", "$", "", "€", "", "£", "", "\u00a0", "", " ", "").Replace(s)

	multiplier := 1.0
	for _, suf := range []struct {
		text string
		mult float64
	}{
		{"Cr.", 1e7}, {"Cr", 1e7}, {"Lakh", 1e5}, {"L", 1e5},
		{"K", 1e3}, {"M", 1e6}, {"B", 1e9}, {"bn", 1e9}, {"mm", 1e6},
	} {
		if strings.HasSuffix(s, suf.text) {
			s = strings.TrimSuffix(s, suf.text)
			multiplier = suf.mult
			break
		}
	}

	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", strings.TrimSpace(raw))
	}
	if negative {
		v = -v
	}
	return v * multiplier, true, nil
}
