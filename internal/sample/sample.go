// Package sample draws independent parameter realizations from declared
// marginal distributions. Gaussian is the only supported family; the
// distribution kind is carried explicitly so engines can select matching
// polynomial bases.
package sample

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kind identifies a distribution family.
type Kind string

const Gaussian Kind = "gaussian"

// Distribution is the declarative spec for one uncertain parameter.
type Distribution struct {
	Kind   Kind
	Mean   float64
	StdDev float64
}

// Normal returns a Gaussian spec.
func Normal(mean, stddev float64) Distribution {
	return Distribution{Kind: Gaussian, Mean: mean, StdDev: stddev}
}

func (d Distribution) Validate() error {
	if d.Kind != Gaussian {
		return fmt.Errorf("unsupported distribution kind %q", d.Kind)
	}
	if d.StdDev < 0 {
		return fmt.Errorf("stddev must be non-negative, got %f", d.StdDev)
	}
	return nil
}

// Sampler draws i.i.d. realizations of one uncertain parameter.
type Sampler struct {
	dist   Distribution
	normal distuv.Normal
}

// New returns a seeded sampler. The same seed reproduces the same sequence.
func New(dist Distribution, seed uint64) *Sampler {
	return &Sampler{
		dist: dist,
		normal: distuv.Normal{
			Mu:    dist.Mean,
			Sigma: dist.StdDev,
			Src:   rand.NewSource(seed),
		},
	}
}

// NewAuto returns a sampler seeded from the wall clock, so results vary run
// to run.
func NewAuto(dist Distribution) *Sampler {
	return New(dist, uint64(time.Now().UnixNano()))
}

// Draw returns one realization. A zero-stddev spec always returns the mean.
func (s *Sampler) Draw() float64 {
	if s.dist.StdDev == 0 {
		return s.dist.Mean
	}
	return s.normal.Rand()
}

// DrawN returns exactly n realizations.
func (s *Sampler) DrawN(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Draw()
	}
	return out
}
