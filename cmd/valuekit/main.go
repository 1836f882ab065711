// Command valuekit runs financial valuation and risk calculators.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seenimoa/valuekit/api"
	"github.com/seenimoa/valuekit/internal/calc"
	"github.com/seenimoa/valuekit/internal/config"
	"github.com/seenimoa/valuekit/internal/simulation"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "valuekit",
		Short: "valuekit — valuation, derivatives and risk calculators",
		Long: `valuekit runs corporate finance calculators (DCF, LBO, DDM, M&A,
capital budgeting, ratios, IPO pricing), prices options, simulates short
rates and asset prices, and measures portfolio risk.

Inputs come from a YAML or JSON file (--input), key=value overrides (--set)
and HTML tables (--html). Results print as a table, JSON, CSV or an HTML
report with charts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			configFile, _ := cmd.Flags().GetString("config")
			if configFile != "" {
				cfg, err = config.LoadFromFile(configFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Logging.Level = level
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringP("format", "f", formatTable, "output format: table, json, csv or html")
	root.PersistentFlags().String("currency", "USD", "currency code for money columns")
	root.PersistentFlags().Bool("compact", false, "abbreviate money in tables and reports ($2.50B, ₹19.27 L)")

	for _, c := range calc.All() {
		root.AddCommand(calcCmd(c))
	}
	root.AddCommand(simulateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(versionCmd())
	return root
}

// --- Calculator Commands ---

func calcCmd(c calc.Calculator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   commandName(c.Name),
		Short: c.Summary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decode, err := inputDecoder(cmd)
			if err != nil {
				return err
			}
			out, err := c.Run(calc.DefaultsFrom(cfg), decode)
			if calc.Partial(out, err) {
				if rerr := renderTo(cmd, out); rerr != nil {
					return rerr
				}
				return err
			}
			if err != nil {
				return err
			}
			return renderTo(cmd, out)
		},
	}
	addInputFlags(cmd)
	return cmd
}

// --- Simulate Command ---

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [model]",
		Short: "Run a Monte Carlo simulation (vasicek, hull-white, gbm)",
		Long: `Run a Monte Carlo simulation. Table output shows the terminal value
distribution; CSV output lists every point of every path.

Examples:
  valuekit simulate vasicek --input rates.yaml
  valuekit simulate gbm --set initial_value=100 --set drift=0.05 \
      --set volatility=0.2 --set horizon=1 --set paths=500 --set seed=7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, ok := calc.LookupSimulation(args[0])
			if !ok {
				return fmt.Errorf("unknown model %q (want vasicek, hull-white or gbm)", args[0])
			}
			decode, err := inputDecoder(cmd)
			if err != nil {
				return err
			}
			sim := simulation.New(cfg.Simulation.Workers, cfg.Simulation.MaxPaths, cfg.Simulation.MaxSteps)
			res, err := sm.Run(cmd.Context(), sim, calc.DefaultsFrom(cfg), decode, nil)
			if err != nil {
				return err
			}
			return renderTo(cmd, res)
		},
	}
	addInputFlags(cmd)
	return cmd
}

// --- Serve Command (API Server) ---

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetInt("port"); port > 0 {
				cfg.API.Port = port
			}
			srv := api.NewServer(cfg)
			srv.SetVersion(version)
			return srv.ListenAndServe(cfg.Addr())
		},
	}
	cmd.Flags().Int("port", 0, "listen port (overrides api.port)")
	return cmd
}

// --- Status Command ---

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show effective configuration and where each value came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "═══════════════════════════════════════")
			fmt.Fprintln(w, "  valuekit — Status")
			fmt.Fprintln(w, "═══════════════════════════════════════")
			fmt.Fprintf(w, "  Version:     %s (%s)\n", version, commit)
			fmt.Fprintf(w, "  API Server:  %s\n", cfg.Addr())
			fmt.Fprintf(w, "  Calculators: %d, simulations: %d\n", len(calc.All()), len(calc.Simulations()))
			fmt.Fprintln(w)

			fmt.Fprintln(w, "  Configuration:")
			for _, s := range config.Describe(cfg) {
				label := string(s.Source)
				if s.Source == config.SourceEnv {
					label += " " + config.EnvVar(s.Key)
				}
				fmt.Fprintf(w, "    %-30s %-12s (%s)\n", s.Key+":", s.Value, label)
			}
			fmt.Fprintln(w, "═══════════════════════════════════════")
			return nil
		},
	}
}

// --- Version Command ---

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "valuekit %s\n", version)
			fmt.Fprintf(w, "  commit:  %s\n", commit)
			fmt.Fprintf(w, "  built:   %s\n", date)
		},
	}
}

func renderTo(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("format")
	currency, _ := cmd.Flags().GetString("currency")
	r, err := newRenderer(cmd.OutOrStdout(), format, currency)
	if err != nil {
		return err
	}
	r.title = cmd.CommandPath()
	r.compact, _ = cmd.Flags().GetBool("compact")
	return r.render(v)
}
