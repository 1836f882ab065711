package simulation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/seenimoa/valuekit/pkg/models"
)

// Shock draws the random increment Z applied at each step.
// distuv.Uniform and distuv.Normal both satisfy it.
type Shock interface {
	Rand() float64
}

// NewShock returns a seeded shock source of the given kind. The empty kind
// selects the uniform U(−1, 1) shock.
func NewShock(kind models.ShockKind, seed uint64) (Shock, error) {
	src := rand.NewSource(seed)
	switch kind {
	case "", models.ShockUniform:
		return distuv.Uniform{Min: -1, Max: 1, Src: src}, nil
	case models.ShockGaussian:
		return distuv.Normal{Mu: 0, Sigma: 1, Src: src}, nil
	default:
		return nil, models.Errorf("simulation.NewShock", models.ErrInvalidInput, "unknown shock kind %q", kind)
	}
}

func shockKind(kind models.ShockKind) models.ShockKind {
	if kind == "" {
		return models.ShockUniform
	}
	return kind
}
