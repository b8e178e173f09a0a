package chaos

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/nmetrology/uqsim/internal/sample"
)

// Basis is a family of polynomials orthogonal under the measure of the input
// distribution. Orthogonality is what lets the engine read the output mean
// and variance straight off the expansion coefficients.
type Basis interface {
	// Eval returns the degree-k polynomial at the standardized variable xi.
	Eval(k int, xi float64) float64
	// NormSq is E[P_k(xi)^2] under the basis measure.
	NormSq(k int) float64
	Name() string
}

// ForDistribution selects the basis matching the distribution's measure.
// Only Gaussian inputs (Hermite polynomials) are supported; other families
// are an extension point, not a silent fallback.
func ForDistribution(kind sample.Kind) (Basis, error) {
	if kind == sample.Gaussian {
		return HermiteBasis{}, nil
	}
	return nil, fmt.Errorf("no orthogonal basis for distribution kind %q", kind)
}

// HermiteBasis is the probabilists' Hermite family He_k, orthogonal under
// the standard normal measure with E[He_k^2] = k!.
type HermiteBasis struct{}

func (HermiteBasis) Name() string { return "hermite" }

func (HermiteBasis) Eval(k int, xi float64) float64 {
	// Recurrence He_{k+1} = xi*He_k - k*He_{k-1}.
	prev, cur := 1.0, xi
	if k == 0 {
		return prev
	}
	for i := 1; i < k; i++ {
		prev, cur = cur, xi*cur-float64(i)*prev
	}
	return cur
}

func (HermiteBasis) NormSq(k int) float64 {
	f := 1.0
	for i := 2; i <= k; i++ {
		f *= float64(i)
	}
	return f
}

// GaussHermite returns n quadrature nodes in the standardized Gaussian
// variable and their probability weights, so that
//
//	E[g(xi)] ~= sum_i w[i] * g(x[i])   for xi ~ N(0,1),
//
// exact for polynomial g up to degree 2n-1.
func GaussHermite(n int) (nodes, weights []float64) {
	nodes = make([]float64, n)
	weights = make([]float64, n)
	quad.Hermite{}.FixedLocations(nodes, weights, math.Inf(-1), math.Inf(1))

	// Physicists' rule integrates against exp(-x^2); rescale to the
	// standard normal measure.
	for i := range nodes {
		nodes[i] *= math.Sqrt2
		weights[i] /= math.Sqrt(math.Pi)
	}
	return nodes, weights
}
