// Package calc is the registry of calculators shared by the CLI and the
// HTTP API. Each entry knows its name, how to decode its request and which
// configured defaults apply to it.
package calc

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/seenimoa/valuekit/internal/config"
	"github.com/seenimoa/valuekit/pkg/models"
)

// DecodeFunc fills target (a pointer to a request struct) from the
// caller's input: a JSON body for the API, a viper input file for the CLI.
type DecodeFunc func(target any) error

// Defaults are the configured fallbacks applied to zero request fields.
type Defaults struct {
	ProjectionYears int
	SweepSteps      int
	PremiumDeltas   []float64
	Steps           int
	Paths           int
	Shock           models.ShockKind
}

// DefaultsFrom extracts calculator defaults from the configuration.
func DefaultsFrom(cfg *config.Config) Defaults {
	return Defaults{
		ProjectionYears: cfg.Valuation.ProjectionYears,
		SweepSteps:      cfg.Valuation.SweepSteps,
		PremiumDeltas:   cfg.Valuation.PremiumDeltas,
		Steps:           cfg.Simulation.DefaultSteps,
		Paths:           cfg.Simulation.DefaultPaths,
		Shock:           models.ShockKind(cfg.Simulation.Shock),
	}
}

// Calculator is one deterministic calculation. Identical input always
// yields identical output, so results may be cached.
type Calculator struct {
	Name    string // API route suffix, e.g. "dcf/sensitivity"
	Summary string
	run     func(Defaults, DecodeFunc) (any, error)
}

// Run decodes the request and evaluates it.
func (c Calculator) Run(d Defaults, decode DecodeFunc) (any, error) {
	return c.run(d, decode)
}

// Partial reports whether a failed Run still produced output worth showing,
// such as an LBO schedule whose exit equity left the IRR undefined. Only
// ErrInvalidResult failures carry one; overflowed results come back zero.
func Partial(v any, err error) bool {
	if v == nil || !errors.Is(err, models.ErrInvalidResult) {
		return false
	}
	return !reflect.ValueOf(v).IsZero()
}

// define binds a typed calculation to the untyped registry.
func define[In any](name, summary string, fn func(Defaults, In) (any, error)) Calculator {
	return Calculator{
		Name:    name,
		Summary: summary,
		run: func(d Defaults, decode DecodeFunc) (any, error) {
			var in In
			if err := decode(&in); err != nil {
				return nil, models.Errorf("calc."+name, models.ErrInvalidInput, "decode request: %v", err)
			}
			return fn(d, in)
		},
	}
}

var registry = map[string]Calculator{}

func register(cs ...Calculator) {
	for _, c := range cs {
		if _, dup := registry[c.Name]; dup {
			panic(fmt.Sprintf("calc: duplicate calculator %q", c.Name))
		}
		registry[c.Name] = c
	}
}

// All returns every registered calculator ordered by name.
func All() []Calculator {
	out := make([]Calculator, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a calculator by name.
func Lookup(name string) (Calculator, bool) {
	c, ok := registry[name]
	return c, ok
}
