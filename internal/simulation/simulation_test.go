package simulation

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/seenimoa/valuekit/pkg/models"
)

func seed(v uint64) *uint64 { return &v }

func sampleRate() models.RateSimulationInputs {
	return models.RateSimulationInputs{
		InitialRate:        0.03,
		MeanReversionSpeed: 0.5,
		LongRunMean:        0.05,
		Volatility:         0.01,
		Horizon:            1,
		Steps:              10,
		Seed:               seed(42),
	}
}

// ════════════════════════════════════════════════════════════════════
// Path shape and reproducibility
// ════════════════════════════════════════════════════════════════════

func TestPathShape(t *testing.T) {
	sim := New(2, 100, 0)
	ctx := context.Background()

	in := sampleRate()
	in.Paths = 3
	runs := map[string]func() (models.SimulationResult, error){
		"vasicek":    func() (models.SimulationResult, error) { return sim.Vasicek(ctx, in, nil) },
		"hull-white": func() (models.SimulationResult, error) { return sim.HullWhite(ctx, in, nil) },
		"gbm": func() (models.SimulationResult, error) {
			return sim.GBM(ctx, models.GBMInputs{InitialValue: 100, Drift: 0.05, Volatility: 0.2, Horizon: 1, Steps: 10, Paths: 3, Seed: seed(1)}, nil)
		},
	}
	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			res, err := run()
			if err != nil {
				t.Fatal(err)
			}
			if res.Model != name {
				t.Errorf("model = %q", res.Model)
			}
			if len(res.Paths) != 3 || res.Summary.Paths != 3 {
				t.Fatalf("paths = %d", len(res.Paths))
			}
			if res.RunID == "" || res.Shock != models.ShockUniform {
				t.Errorf("run id %q shock %q", res.RunID, res.Shock)
			}
			for i, p := range res.Paths {
				if p.Index != i || len(p.Points) != 11 {
					t.Errorf("path %d: index %d, %d points", i, p.Index, len(p.Points))
				}
				if p.Points[0].Time != 0 {
					t.Errorf("path %d starts at t=%v", i, p.Points[0].Time)
				}
				if math.Abs(p.Points[10].Time-1) > 1e-12 {
					t.Errorf("path %d ends at t=%v", i, p.Points[10].Time)
				}
			}
		})
	}
}

func TestStartsAtInitialValue(t *testing.T) {
	res, err := New(0, 0, 0).Vasicek(context.Background(), sampleRate(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Paths[0].Points[0].Value != 0.03 {
		t.Errorf("first point = %v, want 0.03", res.Paths[0].Points[0].Value)
	}
	if len(res.Paths) != 1 {
		t.Errorf("default paths = %d, want 1", len(res.Paths))
	}
}

func TestSeededRunsReproduce(t *testing.T) {
	sim := New(4, 100, 0)
	in := sampleRate()
	in.Paths = 8
	in.Shock = models.ShockGaussian

	a, err := sim.Vasicek(context.Background(), in, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := sim.Vasicek(context.Background(), in, nil)
	if err != nil {
		t.Fatal(err)
	}
	for p := range a.Paths {
		for i := range a.Paths[p].Points {
			if a.Paths[p].Points[i] != b.Paths[p].Points[i] {
				t.Fatalf("path %d point %d differs between seeded runs", p, i)
			}
		}
	}
	if a.RunID == b.RunID {
		t.Error("each run should get its own id")
	}
	if a.Seed != 42 {
		t.Errorf("seed = %d, want 42", a.Seed)
	}
}

func TestPathSeedOffset(t *testing.T) {
	// Path p of a run seeded s replays path 0 of a run seeded s+p.
	sim := New(2, 100, 0)
	in := sampleRate()
	in.Paths = 2
	two, _ := sim.Vasicek(context.Background(), in, nil)

	in.Paths = 1
	in.Seed = seed(43)
	one, _ := sim.Vasicek(context.Background(), in, nil)

	for i, pt := range one.Paths[0].Points {
		if two.Paths[1].Points[i] != pt {
			t.Fatalf("point %d: %v vs %v", i, two.Paths[1].Points[i], pt)
		}
	}
	if two.Paths[0].Terminal() == two.Paths[1].Terminal() {
		t.Error("paths with different seeds should differ")
	}
}

func TestUnseededRunReportsSeed(t *testing.T) {
	in := sampleRate()
	in.Seed = nil
	res, err := New(0, 0, 0).Vasicek(context.Background(), in, nil)
	if err != nil {
		t.Fatal(err)
	}
	in.Seed = seed(res.Seed)
	replay, _ := New(0, 0, 0).Vasicek(context.Background(), in, nil)
	if replay.Paths[0].Terminal() != res.Paths[0].Terminal() {
		t.Error("replaying the reported seed should reproduce the run")
	}
}

// ════════════════════════════════════════════════════════════════════
// Dynamics
// ════════════════════════════════════════════════════════════════════

func TestVasicekWithoutNoise(t *testing.T) {
	in := sampleRate()
	in.Volatility = 0
	res, err := New(0, 0, 0).Vasicek(context.Background(), in, nil)
	if err != nil {
		t.Fatal(err)
	}
	// r_n = θ + (r0 − θ)(1 − κdt)^n
	for n, pt := range res.Paths[0].Points {
		want := 0.05 + (0.03-0.05)*math.Pow(1-0.5*0.1, float64(n))
		if math.Abs(pt.Value-want) > 1e-12 {
			t.Errorf("step %d: %v, want %v", n, pt.Value, want)
		}
	}
}

func TestHullWhiteFollowsThetaCurve(t *testing.T) {
	in := sampleRate()
	in.Volatility = 0
	in.MeanReversionSpeed = 10 // κ·dt = 1: each step jumps straight to θ_t
	in.ThetaCurve = []float64{0.01, 0.02, 0.04}
	res, err := New(0, 0, 0).HullWhite(context.Background(), in, nil)
	if err != nil {
		t.Fatal(err)
	}
	pts := res.Paths[0].Points
	want := []float64{0.03, 0.01, 0.02, 0.04, 0.05, 0.05}
	for i, w := range want {
		if math.Abs(pts[i].Value-w) > 1e-12 {
			t.Errorf("step %d: %v, want %v", i, pts[i].Value, w)
		}
	}
}

func TestUniformShockIsBounded(t *testing.T) {
	in := sampleRate()
	in.MeanReversionSpeed = 0
	in.Steps = 500
	res, err := New(0, 0, 0).Vasicek(context.Background(), in, nil)
	if err != nil {
		t.Fatal(err)
	}
	limit := in.Volatility * math.Sqrt(in.Horizon/float64(in.Steps))
	pts := res.Paths[0].Points
	for i := 1; i < len(pts); i++ {
		if d := math.Abs(pts[i].Value - pts[i-1].Value); d > limit+1e-15 {
			t.Fatalf("step %d moved %v, limit %v", i, d, limit)
		}
	}
}

func TestGBMWithoutNoise(t *testing.T) {
	res, err := New(0, 0, 0).GBM(context.Background(),
		models.GBMInputs{InitialValue: 100, Drift: 0.08, Horizon: 2, Steps: 24, Seed: seed(3)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res.Paths[0].Terminal(), 100*math.Exp(0.16); math.Abs(got-want) > 1e-9 {
		t.Errorf("terminal = %v, want %v", got, want)
	}
}

func TestGaussianShockMoments(t *testing.T) {
	s, err := NewShock(models.ShockGaussian, 9)
	if err != nil {
		t.Fatal(err)
	}
	const n = 20000
	var sum, sq float64
	for i := 0; i < n; i++ {
		z := s.Rand()
		sum += z
		sq += z * z
	}
	mean := sum / n
	if math.Abs(mean) > 0.05 || math.Abs(sq/n-mean*mean-1) > 0.05 {
		t.Errorf("gaussian moments: mean %v var %v", mean, sq/n-mean*mean)
	}
}

// ════════════════════════════════════════════════════════════════════
// Streaming, cancellation and limits
// ════════════════════════════════════════════════════════════════════

func TestCallbackSeesEveryPath(t *testing.T) {
	in := sampleRate()
	in.Paths = 25
	var calls atomic.Int32
	seen := make(map[int]bool)
	_, err := New(4, 100, 0).Vasicek(context.Background(), in, func(p models.RatePath) error {
		calls.Add(1)
		seen[p.Index] = true // callbacks are serialized
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 25 || len(seen) != 25 {
		t.Errorf("calls = %d, distinct = %d", calls.Load(), len(seen))
	}
}

func TestCallbackErrorStopsRun(t *testing.T) {
	in := sampleRate()
	in.Paths = 50
	stop := errors.New("client gone")
	_, err := New(2, 100, 0).Vasicek(context.Background(), in, func(models.RatePath) error { return stop })
	if !errors.Is(err, stop) {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := sampleRate()
	in.Paths = 10
	if _, err := New(0, 0, 0).Vasicek(ctx, in, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInputErrors(t *testing.T) {
	sim := New(0, 5, 0)
	tests := []struct {
		name   string
		mutate func(*models.RateSimulationInputs)
	}{
		{"zero steps", func(in *models.RateSimulationInputs) { in.Steps = 0 }},
		{"zero horizon", func(in *models.RateSimulationInputs) { in.Horizon = 0 }},
		{"negative vol", func(in *models.RateSimulationInputs) { in.Volatility = -1 }},
		{"nan rate", func(in *models.RateSimulationInputs) { in.InitialRate = math.NaN() }},
		{"too many paths", func(in *models.RateSimulationInputs) { in.Paths = 6 }},
		{"negative paths", func(in *models.RateSimulationInputs) { in.Paths = -1 }},
		{"unknown shock", func(in *models.RateSimulationInputs) { in.Shock = "cauchy" }},
		{"inf theta", func(in *models.RateSimulationInputs) { in.ThetaCurve = []float64{math.Inf(1)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleRate()
			tt.mutate(&in)
			if _, err := sim.HullWhite(context.Background(), in, nil); !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if _, err := sim.GBM(context.Background(), models.GBMInputs{InitialValue: 0, Horizon: 1, Steps: 1}, nil); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("GBM zero initial value: got %v", err)
	}
}

func TestTooManySteps(t *testing.T) {
	sim := New(0, 5, 100)
	in := sampleRate()
	in.Steps = 101
	if _, err := sim.Vasicek(context.Background(), in, nil); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Vasicek: expected ErrInvalidInput, got %v", err)
	}
	gbm := models.GBMInputs{InitialValue: 100, Horizon: 1, Steps: 101}
	if _, err := sim.GBM(context.Background(), gbm, nil); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("GBM: expected ErrInvalidInput, got %v", err)
	}
	in.Steps = 100
	if _, err := sim.Vasicek(context.Background(), in, nil); err != nil {
		t.Errorf("steps at the limit rejected: %v", err)
	}
}

func TestUnstableEulerStepIsRejected(t *testing.T) {
	in := sampleRate()
	in.MeanReversionSpeed, in.Horizon, in.Steps = 5, 252, 252 // κ·dt = 5
	if _, err := New(0, 0, 0).Vasicek(context.Background(), in, nil); !errors.Is(err, models.ErrInvalidAssumption) {
		t.Errorf("Vasicek: expected ErrInvalidAssumption, got %v", err)
	}
	if _, err := New(0, 0, 0).HullWhite(context.Background(), in, nil); !errors.Is(err, models.ErrInvalidAssumption) {
		t.Errorf("HullWhite: expected ErrInvalidAssumption, got %v", err)
	}
}

func TestOverflowIsInvalidResult(t *testing.T) {
	sim := New(0, 0, 0)

	rate := sampleRate()
	rate.InitialRate, rate.LongRunMean = -1e308, 1e308
	rate.MeanReversionSpeed, rate.Volatility, rate.Horizon, rate.Steps = 2, 0, 1, 1
	if _, err := sim.Vasicek(context.Background(), rate, nil); !errors.Is(err, models.ErrInvalidResult) {
		t.Errorf("Vasicek: expected ErrInvalidResult, got %v", err)
	}

	gbm := models.GBMInputs{InitialValue: 100, Drift: 1e306, Horizon: 1, Steps: 1, Seed: seed(1)}
	called := false
	_, err := sim.GBM(context.Background(), gbm, func(models.RatePath) error { called = true; return nil })
	if !errors.Is(err, models.ErrInvalidResult) {
		t.Errorf("GBM: expected ErrInvalidResult, got %v", err)
	}
	if called {
		t.Error("overflowed path reached the callback")
	}
}

func TestSummarize(t *testing.T) {
	var paths []models.RatePath
	for i := 1; i <= 5; i++ {
		paths = append(paths, models.RatePath{Index: i - 1, Points: []models.RatePoint{{Value: 0}, {Time: 1, Value: float64(i)}}})
	}
	s, err := Summarize(paths)
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 3 || s.Min != 1 || s.Max != 5 || s.P50 != 3 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.Std-math.Sqrt(2)) > 1e-12 {
		t.Errorf("std = %v, want sqrt(2)", s.Std)
	}
	if _, err := Summarize(nil); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
