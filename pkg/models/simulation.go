package models

// ShockKind selects the distribution of the random increments.
type ShockKind string

const (
	ShockUniform  ShockKind = "uniform"  // U(-1, 1)
	ShockGaussian ShockKind = "gaussian" // N(0, 1)
)

// RateSimulationInputs parameterize a mean-reverting short-rate simulation.
type RateSimulationInputs struct {
	InitialRate        float64   `json:"initial_rate"         mapstructure:"initial_rate"`
	MeanReversionSpeed float64   `json:"mean_reversion_speed" mapstructure:"mean_reversion_speed"` // kappa
	LongRunMean        float64   `json:"long_run_mean"        mapstructure:"long_run_mean"`        // theta
	Volatility         float64   `json:"volatility"           mapstructure:"volatility"`
	Horizon            float64   `json:"horizon"              mapstructure:"horizon"` // years
	Steps              int       `json:"steps"                mapstructure:"steps"`
	Paths              int       `json:"paths,omitempty"      mapstructure:"paths"`
	Shock              ShockKind `json:"shock,omitempty"      mapstructure:"shock"`
	Seed               *uint64   `json:"seed,omitempty"       mapstructure:"seed"`
	// ThetaCurve is the time-dependent mean used by Hull-White, one entry
	// per step. Missing entries fall back to LongRunMean.
	ThetaCurve []float64 `json:"theta_curve,omitempty" mapstructure:"theta_curve"`
}

// GBMInputs parameterize a geometric Brownian motion Monte Carlo run.
type GBMInputs struct {
	InitialValue float64   `json:"initial_value"   mapstructure:"initial_value"`
	Drift        float64   `json:"drift"           mapstructure:"drift"`
	Volatility   float64   `json:"volatility"      mapstructure:"volatility"`
	Horizon      float64   `json:"horizon"         mapstructure:"horizon"`
	Steps        int       `json:"steps"           mapstructure:"steps"`
	Paths        int       `json:"paths,omitempty" mapstructure:"paths"`
	Shock        ShockKind `json:"shock,omitempty" mapstructure:"shock"`
	Seed         *uint64   `json:"seed,omitempty"  mapstructure:"seed"`
}

// RatePoint is one (time, value) observation on a simulated path.
type RatePoint struct {
	Time  float64 `json:"time"  csv:"time"`
	Value float64 `json:"value" csv:"value"`
}

// RatePath is one simulated trajectory; Points has Steps+1 entries and
// starts at the initial value.
type RatePath struct {
	Index  int         `json:"index"`
	Points []RatePoint `json:"points"`
}

// Terminal returns the last value on the path.
func (p RatePath) Terminal() float64 {
	if len(p.Points) == 0 {
		return 0
	}
	return p.Points[len(p.Points)-1].Value
}

// PathSummary describes the distribution of terminal values across paths.
type PathSummary struct {
	Paths int     `json:"paths"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	P5    float64 `json:"p5"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
}

// SimulationResult is the output of any simulator.
type SimulationResult struct {
	RunID   string      `json:"run_id"`
	Model   string      `json:"model"`
	Seed    uint64      `json:"seed"`
	Shock   ShockKind   `json:"shock"`
	Paths   []RatePath  `json:"paths"`
	Summary PathSummary `json:"summary"`
}
