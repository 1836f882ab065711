package calc

import (
	"context"
	"sort"

	"github.com/seenimoa/valuekit/internal/simulation"
	"github.com/seenimoa/valuekit/pkg/models"
)

// Simulation is one Monte Carlo model. Results depend on the seed, so
// they are never cached.
type Simulation struct {
	Name    string // "vasicek", "hull-white" or "gbm"
	Summary string
	run     func(ctx context.Context, sim *simulation.Simulator, d Defaults, decode DecodeFunc, onPath simulation.PathFunc) (models.SimulationResult, error)
}

// Run decodes the request, fills zero steps, paths and shock from d and
// runs the model. onPath may be nil.
func (s Simulation) Run(ctx context.Context, sim *simulation.Simulator, d Defaults, decode DecodeFunc, onPath simulation.PathFunc) (models.SimulationResult, error) {
	return s.run(ctx, sim, d, decode, onPath)
}

type rateModel func(*simulation.Simulator, context.Context, models.RateSimulationInputs, simulation.PathFunc) (models.SimulationResult, error)

func rateSimulation(name, summary string, model rateModel) Simulation {
	return Simulation{
		Name:    name,
		Summary: summary,
		run: func(ctx context.Context, sim *simulation.Simulator, d Defaults, decode DecodeFunc, onPath simulation.PathFunc) (models.SimulationResult, error) {
			var in models.RateSimulationInputs
			if err := decode(&in); err != nil {
				return models.SimulationResult{}, models.Errorf("calc."+name, models.ErrInvalidInput, "decode request: %v", err)
			}
			in.Steps, in.Paths, in.Shock = d.fill(in.Steps, in.Paths, in.Shock)
			return model(sim, ctx, in, onPath)
		},
	}
}

func (d Defaults) fill(steps, paths int, shock models.ShockKind) (int, int, models.ShockKind) {
	if steps == 0 {
		steps = d.Steps
	}
	if paths == 0 {
		paths = d.Paths
	}
	if shock == "" {
		shock = d.Shock
	}
	return steps, paths, shock
}

var simulations = map[string]Simulation{
	"vasicek":    rateSimulation("vasicek", "Vasicek mean-reverting short rate", (*simulation.Simulator).Vasicek),
	"hull-white": rateSimulation("hull-white", "Hull-White short rate with a time-dependent mean", (*simulation.Simulator).HullWhite),
	"gbm": {
		Name:    "gbm",
		Summary: "Geometric Brownian motion asset price",
		run: func(ctx context.Context, sim *simulation.Simulator, d Defaults, decode DecodeFunc, onPath simulation.PathFunc) (models.SimulationResult, error) {
			var in models.GBMInputs
			if err := decode(&in); err != nil {
				return models.SimulationResult{}, models.Errorf("calc.gbm", models.ErrInvalidInput, "decode request: %v", err)
			}
			in.Steps, in.Paths, in.Shock = d.fill(in.Steps, in.Paths, in.Shock)
			return sim.GBM(ctx, in, onPath)
		},
	},
}

// Simulations returns every simulation model ordered by name.
func Simulations() []Simulation {
	out := make([]Simulation, 0, len(simulations))
	for _, s := range simulations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupSimulation finds a simulation model by name.
func LookupSimulation(name string) (Simulation, bool) {
	s, ok := simulations[name]
	return s, ok
}
