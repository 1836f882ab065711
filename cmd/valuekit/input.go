package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seenimoa/valuekit/internal/calc"
	"github.com/seenimoa/valuekit/internal/ingest"
)

// commandName turns a calculator name into a subcommand: "risk/var" → "risk-var".
func commandName(name string) string {
	return strings.ReplaceAll(name, "/", "-")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "input file (.yaml, .yml or .json)")
	cmd.Flags().StringArray("set", nil, "override an input key, e.g. --set discount_rate=0.09 (repeatable; lists are comma separated)")
	cmd.Flags().String("html", "", "read a numeric series from an HTML table in this file")
	cmd.Flags().String("column", "", "HTML table column to read (with --html)")
	cmd.Flags().String("row", "", "HTML table row label to read instead of a column (with --html)")
	cmd.Flags().String("into", "", "input key that receives the HTML series, e.g. returns")
}

// inputDecoder layers the input sources onto one viper instance: the input
// file first, then the HTML series, then --set overrides.
func inputDecoder(cmd *cobra.Command) (calc.DecodeFunc, error) {
	v := viper.New()

	if path, _ := cmd.Flags().GetString("input"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read input %s: %w", path, err)
		}
	}

	if path, _ := cmd.Flags().GetString("html"); path != "" {
		key, series, err := readHTMLSeries(cmd, path)
		if err != nil {
			return nil, err
		}
		v.Set(key, series)
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	for _, kv := range sets {
		key, val, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: want key=value", kv)
		}
		v.Set(key, strings.TrimSpace(val))
	}

	return func(target any) error { return v.Unmarshal(target) }, nil
}

func readHTMLSeries(cmd *cobra.Command, path string) (string, []float64, error) {
	column, _ := cmd.Flags().GetString("column")
	row, _ := cmd.Flags().GetString("row")
	into, _ := cmd.Flags().GetString("into")
	if into == "" {
		return "", nil, fmt.Errorf("--html needs --into to name the input key")
	}
	if (column == "") == (row == "") {
		return "", nil, fmt.Errorf("--html needs exactly one of --column or --row")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var series []float64
	if column != "" {
		series, err = ingest.ReadColumn(f, column)
	} else {
		series, err = ingest.ReadRow(f, row)
	}
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return into, series, nil
}
