// Package simulation runs Euler–Maruyama Monte Carlo simulations of short
// rates (Vasicek, Hull-White) and asset prices (GBM).
package simulation

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/valuekit/pkg/models"
)

const (
	DefaultWorkers  = 8
	DefaultMaxPaths = 10000
	DefaultMaxSteps = 10000
)

// maxStableDecay bounds κ·dt: beyond it each Euler step overshoots the
// mean by more than the previous gap and the path diverges.
const maxStableDecay = 2

// PathFunc receives each path as soon as it is finished. Calls are
// serialized but arrive in completion order, not index order.
type PathFunc func(models.RatePath) error

// Simulator fans paths out over a bounded number of goroutines.
// Every path holds steps+1 points, so both sizes are capped.
type Simulator struct {
	workers  int
	maxPaths int
	maxSteps int
}

// New creates a simulator. Non-positive arguments select the defaults.
func New(workers, maxPaths, maxSteps int) *Simulator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Simulator{workers: workers, maxPaths: maxPaths, maxSteps: maxSteps}
}

// stepper advances one path from its initial value using shock.
type stepper func(shock Shock) []models.RatePoint

type runSpec struct {
	model string
	paths int
	seed  *uint64
	shock models.ShockKind
	step  stepper
}

// Vasicek simulates r_{t+1} = r_t + κ(θ − r_t)dt + σ√dt·Z.
func (s *Simulator) Vasicek(ctx context.Context, in models.RateSimulationInputs, onPath PathFunc) (models.SimulationResult, error) {
	if err := s.validateRate("simulation.Vasicek", in); err != nil {
		return models.SimulationResult{}, err
	}
	return s.run(ctx, runSpec{
		model: "vasicek",
		paths: in.Paths,
		seed:  in.Seed,
		shock: in.Shock,
		step:  meanReverting(in, func(int) float64 { return in.LongRunMean }),
	}, onPath)
}

// HullWhite is Vasicek with a time-dependent mean: step t reverts towards
// ThetaCurve[t], or LongRunMean once the curve runs out.
func (s *Simulator) HullWhite(ctx context.Context, in models.RateSimulationInputs, onPath PathFunc) (models.SimulationResult, error) {
	const op = "simulation.HullWhite"
	if err := s.validateRate(op, in); err != nil {
		return models.SimulationResult{}, err
	}
	if err := models.ValidateSeries(op, "theta_curve", in.ThetaCurve); err != nil {
		return models.SimulationResult{}, err
	}
	theta := func(t int) float64 {
		if t < len(in.ThetaCurve) {
			return in.ThetaCurve[t]
		}
		return in.LongRunMean
	}
	return s.run(ctx, runSpec{
		model: "hull-white",
		paths: in.Paths,
		seed:  in.Seed,
		shock: in.Shock,
		step:  meanReverting(in, theta),
	}, onPath)
}

// GBM simulates S_{t+1} = S_t·exp(μ·dt + σ√dt·Z).
func (s *Simulator) GBM(ctx context.Context, in models.GBMInputs, onPath PathFunc) (models.SimulationResult, error) {
	const op = "simulation.GBM"
	if err := models.ValidateFinite(op,
		models.F("initial_value", in.InitialValue),
		models.F("drift", in.Drift),
		models.F("volatility", in.Volatility),
		models.F("horizon", in.Horizon),
	); err != nil {
		return models.SimulationResult{}, err
	}
	if in.InitialValue <= 0 {
		return models.SimulationResult{}, models.Errorf(op, models.ErrInvalidInput, "initial value must be positive, got %v", in.InitialValue)
	}
	if err := s.validateGrid(op, in.Horizon, in.Steps, in.Volatility); err != nil {
		return models.SimulationResult{}, err
	}

	dt := in.Horizon / float64(in.Steps)
	sqrtDt := math.Sqrt(dt)
	step := func(shock Shock) []models.RatePoint {
		pts := make([]models.RatePoint, in.Steps+1)
		pts[0] = models.RatePoint{Time: 0, Value: in.InitialValue}
		v := in.InitialValue
		for t := 1; t <= in.Steps; t++ {
			v *= math.Exp(in.Drift*dt + in.Volatility*sqrtDt*shock.Rand())
			pts[t] = models.RatePoint{Time: float64(t) * dt, Value: v}
		}
		return pts
	}
	return s.run(ctx, runSpec{model: "gbm", paths: in.Paths, seed: in.Seed, shock: in.Shock, step: step}, onPath)
}

func meanReverting(in models.RateSimulationInputs, theta func(int) float64) stepper {
	dt := in.Horizon / float64(in.Steps)
	sqrtDt := math.Sqrt(dt)
	return func(shock Shock) []models.RatePoint {
		pts := make([]models.RatePoint, in.Steps+1)
		pts[0] = models.RatePoint{Time: 0, Value: in.InitialRate}
		r := in.InitialRate
		for t := 1; t <= in.Steps; t++ {
			r += in.MeanReversionSpeed*(theta(t-1)-r)*dt + in.Volatility*sqrtDt*shock.Rand()
			pts[t] = models.RatePoint{Time: float64(t) * dt, Value: r}
		}
		return pts
	}
}

func (s *Simulator) run(ctx context.Context, spec runSpec, onPath PathFunc) (models.SimulationResult, error) {
	op := "simulation." + spec.model
	paths := spec.paths
	switch {
	case paths < 0:
		return models.SimulationResult{}, models.Errorf(op, models.ErrInvalidInput, "paths must be positive, got %d", paths)
	case paths == 0:
		paths = 1
	case paths > s.maxPaths:
		return models.SimulationResult{}, models.Errorf(op, models.ErrInvalidInput, "paths %d exceeds limit %d", paths, s.maxPaths)
	}
	kind := shockKind(spec.shock)
	if _, err := NewShock(kind, 0); err != nil {
		return models.SimulationResult{}, err
	}

	var seed uint64
	if spec.seed != nil {
		seed = *spec.seed
	} else {
		seed = uint64(time.Now().UnixNano())
	}

	out := make([]models.RatePath, paths)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for p := 0; p < paths; p++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Path p always uses seed+p so a run can be replayed path by path.
			shock, err := NewShock(kind, seed+uint64(p))
			if err != nil {
				return err
			}
			path := models.RatePath{Index: p, Points: spec.step(shock)}
			if err := checkPath(op, path); err != nil {
				return err
			}
			out[p] = path
			if onPath == nil {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			return onPath(path)
		})
	}
	if err := g.Wait(); err != nil {
		return models.SimulationResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.SimulationResult{}, err
	}

	summary, err := Summarize(out)
	if err != nil {
		return models.SimulationResult{}, err
	}
	return models.SimulationResult{
		RunID:   uuid.NewString(),
		Model:   spec.model,
		Seed:    seed,
		Shock:   kind,
		Paths:   out,
		Summary: summary,
	}, nil
}

// checkPath rejects a path that overflowed float64.
func checkPath(op string, path models.RatePath) error {
	for _, pt := range path.Points {
		if math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
			return models.Errorf(op, models.ErrInvalidResult,
				"path %d overflowed to %v at t=%v", path.Index, pt.Value, pt.Time)
		}
	}
	return nil
}

func (s *Simulator) validateRate(op string, in models.RateSimulationInputs) error {
	if err := models.ValidateFinite(op,
		models.F("initial_rate", in.InitialRate),
		models.F("mean_reversion_speed", in.MeanReversionSpeed),
		models.F("long_run_mean", in.LongRunMean),
		models.F("volatility", in.Volatility),
		models.F("horizon", in.Horizon),
	); err != nil {
		return err
	}
	if in.MeanReversionSpeed < 0 {
		return models.Errorf(op, models.ErrInvalidInput, "mean reversion speed must be non-negative, got %v", in.MeanReversionSpeed)
	}
	if err := s.validateGrid(op, in.Horizon, in.Steps, in.Volatility); err != nil {
		return err
	}
	if decay := in.MeanReversionSpeed * in.Horizon / float64(in.Steps); decay > maxStableDecay {
		return models.Errorf(op, models.ErrInvalidAssumption,
			"mean reversion speed × dt = %v exceeds %v; the Euler scheme diverges, use more steps", decay, maxStableDecay)
	}
	return nil
}

func (s *Simulator) validateGrid(op string, horizon float64, steps int, vol float64) error {
	switch {
	case horizon <= 0:
		return models.Errorf(op, models.ErrInvalidInput, "horizon must be positive, got %v", horizon)
	case steps <= 0:
		return models.Errorf(op, models.ErrInvalidInput, "steps must be positive, got %d", steps)
	case steps > s.maxSteps:
		return models.Errorf(op, models.ErrInvalidInput, "steps %d exceeds limit %d", steps, s.maxSteps)
	case vol < 0:
		return models.Errorf(op, models.ErrInvalidInput, "volatility must be non-negative, got %v", vol)
	}
	return nil
}
