// Package pca re-expresses correlated observation variables as uncorrelated
// components ordered by explained variance.
//
// Analysis always uses the covariance matrix, never the correlation matrix;
// callers with incommensurately scaled columns should standardize before
// calling.
package pca

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Result holds the eigenstructure of the observation covariance.
type Result struct {
	// Eigenvalues in descending order, clamped at zero.
	Eigenvalues []float64
	// Eigenvectors[j][k] is component k's loading on variable j.
	Eigenvectors [][]float64
	// ExplainedVarianceRatio[k] = eigenvalue k / sum of eigenvalues.
	ExplainedVarianceRatio []float64
	CumulativeVariance     []float64
	// Scores is the mean-centered data projected onto the components.
	Scores [][]float64
	// Mean holds the column means subtracted before projection.
	Mean []float64
	// Degenerate marks a zero covariance matrix (all observations
	// identical): valid output with all eigenvalues zero.
	Degenerate bool

	Observations int
	Variables    int
}

// Analyze centers data column-wise, eigendecomposes its covariance matrix
// and projects the centered observations onto the eigenvector basis.
//
// Rank-deficient input (collinear columns, P > N) produces eigenvalues at or
// near zero and is valid; only malformed input is rejected.
func Analyze(data [][]float64) (*Result, error) {
	n := len(data)
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 observations, got %d", n)
	}
	p := len(data[0])
	if p < 1 {
		return nil, fmt.Errorf("need at least 1 variable, got 0")
	}
	for i, row := range data {
		if len(row) != p {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), p)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d column %d is not finite", i, j)
			}
		}
	}

	x := mat.NewDense(n, p, nil)
	mean := make([]float64, p)
	for j := 0; j < p; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += data[i][j]
		}
		mean[j] = sum / float64(n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			x.Set(i, j, data[i][j]-mean[j])
		}
	}

	cov := mat.NewSymDense(p, nil)
	stat.CovarianceMatrix(cov, x, nil)

	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return nil, fmt.Errorf("eigendecomposition failed")
	}

	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	// EigenSym returns ascending order; reverse to descending, reordering
	// vectors to match, and clamp FP-noise negatives on the PSD matrix.
	order := make([]int, p)
	for k := range order {
		order[k] = p - 1 - k
	}

	eigenvalues := make([]float64, p)
	eigenvectors := make([][]float64, p)
	for j := range eigenvectors {
		eigenvectors[j] = make([]float64, p)
	}
	var total float64
	for k, src := range order {
		v := values[src]
		if v < 0 {
			v = 0
		}
		eigenvalues[k] = v
		total += v
		for j := 0; j < p; j++ {
			eigenvectors[j][k] = vectors.At(j, src)
		}
	}

	ratios := make([]float64, p)
	cumulative := make([]float64, p)
	if total > 0 {
		var run float64
		for k, v := range eigenvalues {
			ratios[k] = v / total
			run += ratios[k]
			cumulative[k] = run
		}
	}

	basis := mat.NewDense(p, p, nil)
	for j := 0; j < p; j++ {
		for k := 0; k < p; k++ {
			basis.Set(j, k, eigenvectors[j][k])
		}
	}
	var proj mat.Dense
	proj.Mul(x, basis)

	scores := make([][]float64, n)
	for i := 0; i < n; i++ {
		scores[i] = make([]float64, p)
		for k := 0; k < p; k++ {
			scores[i][k] = proj.At(i, k)
		}
	}

	return &Result{
		Eigenvalues:            eigenvalues,
		Eigenvectors:           eigenvectors,
		ExplainedVarianceRatio: ratios,
		CumulativeVariance:     cumulative,
		Scores:                 scores,
		Mean:                   mean,
		Degenerate:             total == 0,
		Observations:           n,
		Variables:              p,
	}, nil
}

// VariableCorrelations returns, for each of the first min(3, P) components,
// the correlation of every original variable with that component.
func (r *Result) VariableCorrelations(data [][]float64) [][]float64 {
	nc := r.Variables
	if nc > 3 {
		nc = 3
	}

	out := make([][]float64, nc)
	for k := 0; k < nc; k++ {
		out[k] = make([]float64, r.Variables)
		for j := 0; j < r.Variables; j++ {
			var sumSq float64
			for i := range data {
				d := data[i][j] - r.Mean[j]
				sumSq += d * d
			}
			std := math.Sqrt(sumSq / float64(len(data)))
			if std > 0 && r.Eigenvalues[k] > 0 {
				out[k][j] = r.Eigenvectors[j][k] * math.Sqrt(r.Eigenvalues[k]) / std
			}
		}
	}
	return out
}
