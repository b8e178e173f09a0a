// Package engine exposes the computation core through a request/response
// payload contract. Each operation validates its request fully before any
// work starts, runs the corresponding engine, and returns a JSON-taggable
// result; the transport wrapping these calls is a caller concern.
package engine

import (
	"context"
	"time"

	"github.com/nmetrology/uqsim/internal/chaos"
	"github.com/nmetrology/uqsim/internal/montecarlo"
	"github.com/nmetrology/uqsim/internal/pca"
	"github.com/nmetrology/uqsim/internal/physics"
	"github.com/nmetrology/uqsim/internal/sample"
	"github.com/nmetrology/uqsim/internal/taguchi"
)

// MonteCarloResult mirrors the rod-mesh Monte Carlo payload.
type MonteCarloResult struct {
	Frequencies      []float64 `json:"frequencies"`
	Mean             []float64 `json:"mean_transfer_function"`
	Std              []float64 `json:"std_transfer_function"`
	UpperBound       []float64 `json:"upper_bound"`
	LowerBound       []float64 `json:"lower_bound"`
	NumSamples       int       `json:"num_samples"`
	ComputationTimeS float64   `json:"computation_time_s"`
	E0               float64   `json:"E0"`
	SigmaE           float64   `json:"sigma_E"`
	Damping          float64   `json:"damping"`
}

// RunMonteCarlo propagates the modulus uncertainty through the rod-mesh
// model by sampling.
func RunMonteCarlo(ctx context.Context, req MonteCarloRequest) (*MonteCarloResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	eng := montecarlo.New(physics.NewRodMesh(req.E0, req.Damping))
	freqs := physics.Grid(0, req.FreqMax, req.NumFreqPoints)
	dists := []sample.Distribution{sample.Normal(req.E0, req.SigmaE)}

	res, err := eng.Run(ctx, dists, req.NumSamples, freqs, seedOrNow(req.Seed))
	if err != nil {
		return nil, err
	}

	return &MonteCarloResult{
		Frequencies:      res.Freqs,
		Mean:             res.Mean,
		Std:              res.Std,
		UpperBound:       res.Upper,
		LowerBound:       res.Lower,
		NumSamples:       res.Samples,
		ComputationTimeS: res.Elapsed.Seconds(),
		E0:               req.E0,
		SigmaE:           req.SigmaE,
		Damping:          req.Damping,
	}, nil
}

// ChaosResult mirrors the polynomial chaos payload.
type ChaosResult struct {
	Frequencies      []float64 `json:"frequencies"`
	Mean             []float64 `json:"mean_transfer_function"`
	Std              []float64 `json:"std_transfer_function"`
	ChaosOrder       int       `json:"chaos_order"`
	NumEvaluations   int       `json:"num_evaluations"`
	ComputationTimeS float64   `json:"computation_time_s"`
	E0               float64   `json:"E0"`
	SigmaE           float64   `json:"sigma_E"`
	Damping          float64   `json:"damping"`
}

// RunChaos builds the Hermite surrogate of the rod-mesh response and reads
// the output moments off its coefficients.
func RunChaos(ctx context.Context, req ChaosRequest) (*ChaosResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	eng := chaos.New(physics.NewRodMesh(req.E0, req.Damping))
	eng.Order = req.Order
	freqs := physics.Grid(0, req.FreqMax, req.NumFreqPoints)

	res, err := eng.Run(ctx, sample.Normal(req.E0, req.SigmaE), freqs)
	if err != nil {
		return nil, err
	}

	return &ChaosResult{
		Frequencies:      res.Freqs,
		Mean:             res.Mean,
		Std:              res.Std,
		ChaosOrder:       res.Order,
		NumEvaluations:   res.Evaluations,
		ComputationTimeS: res.Elapsed.Seconds(),
		E0:               req.E0,
		SigmaE:           req.SigmaE,
		Damping:          req.Damping,
	}, nil
}

// TaguchiResult mirrors the orthogonal-array payload.
type TaguchiResult struct {
	OrthogonalArray [][]int                         `json:"orthogonal_array"`
	Experiments     []map[string]float64            `json:"experiments"`
	FactorNames     []string                        `json:"factor_names"`
	FactorLevels    map[string][]float64            `json:"factor_levels"`
	NumExperiments  int                             `json:"num_experiments"`
	EffectGroups    map[string][]taguchi.LevelGroup `json:"effect_groups"`
}

// RunTaguchi generates the L9 design for the requested factors.
func RunTaguchi(_ context.Context, req TaguchiRequest) (*TaguchiResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	factors := make([]taguchi.Factor, len(req.Factors))
	for i, f := range req.Factors {
		factors[i] = taguchi.Factor{Name: f.Name, Levels: [3]float64{f.Levels[0], f.Levels[1], f.Levels[2]}}
	}

	arr, err := taguchi.Design(factors)
	if err != nil {
		return nil, invalidParam("factors", "%v", err)
	}

	rows := make([][]int, len(arr.Rows))
	names := make([]string, len(factors))
	levels := make(map[string][]float64, len(factors))
	for i := range arr.Rows {
		rows[i] = arr.Rows[i]
	}
	for i, f := range factors {
		names[i] = f.Name
		levels[f.Name] = f.Levels[:]
	}

	return &TaguchiResult{
		OrthogonalArray: rows,
		Experiments:     arr.Experiments(),
		FactorNames:     names,
		FactorLevels:    levels,
		NumExperiments:  len(rows),
		EffectGroups:    arr.EffectGroups(),
	}, nil
}

// MethodCurve is one estimator's dispersion curve with its cost.
type MethodCurve struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
	// Samples is the model evaluation count behind the estimate.
	Samples int     `json:"samples,omitempty"`
	Points  int     `json:"points,omitempty"`
	TimeS   float64 `json:"time_s"`
}

// OscillatorResult carries the deterministic response plus the Monte Carlo
// and orthogonal-array dispersion estimates side by side.
type OscillatorResult struct {
	Frequencies   []float64          `json:"frequencies"`
	Deterministic []float64          `json:"deterministic_response"`
	MonteCarlo    MethodCurve        `json:"monte_carlo"`
	Taguchi       MethodCurve        `json:"taguchi"`
	Parameters    map[string]float64 `json:"parameters"`
}

// RunOscillator evaluates the damped oscillator deterministically at the
// nominal parameters, then estimates the output dispersion twice: by Monte
// Carlo and by the 9-point orthogonal-array design.
func RunOscillator(ctx context.Context, req OscillatorRequest) (*OscillatorResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := physics.NewOscillator(req.FAmplitude)
	freqs := physics.Grid(req.FreqMin, req.FreqMax, req.NumFreqPoints)
	dists := [2]sample.Distribution{
		sample.Normal(req.Xi0, req.SigmaXi),
		sample.Normal(req.Omega0, req.SigmaOmega),
	}

	deterministic := model.Response([]float64{req.Xi0, req.Omega0}, freqs)

	mcRes, err := montecarlo.New(model).Run(ctx, dists[:], req.MCSamples, freqs, seedOrNow(req.Seed))
	if err != nil {
		return nil, err
	}

	tagRes, err := taguchi.DispersionEstimate(ctx, model, dists, freqs)
	if err != nil {
		return nil, err
	}

	return &OscillatorResult{
		Frequencies:   freqs,
		Deterministic: deterministic,
		MonteCarlo: MethodCurve{
			Mean:    mcRes.Mean,
			Std:     mcRes.Std,
			Samples: mcRes.Samples,
			TimeS:   mcRes.Elapsed.Seconds(),
		},
		Taguchi: MethodCurve{
			Mean:   tagRes.Mean,
			Std:    tagRes.Std,
			Points: tagRes.Points,
			TimeS:  tagRes.Elapsed.Seconds(),
		},
		Parameters: map[string]float64{
			"xi0":         req.Xi0,
			"omega0":      req.Omega0,
			"sigma_xi":    req.SigmaXi,
			"sigma_omega": req.SigmaOmega,
			"f_amplitude": req.FAmplitude,
		},
	}, nil
}

// PCAResult mirrors the principal-component payload.
type PCAResult struct {
	Eigenvalues            []float64   `json:"eigenvalues"`
	Eigenvectors           [][]float64 `json:"eigenvectors"`
	ExplainedVarianceRatio []float64   `json:"explained_variance_ratio"`
	CumulativeVariance     []float64   `json:"cumulative_variance"`
	Scores                 [][]float64 `json:"scores"`
	Correlations           [][]float64 `json:"correlations"`
	Mean                   []float64   `json:"mean"`
	Degenerate             bool        `json:"degenerate"`
	NObservations          int         `json:"n_observations"`
	NVariables             int         `json:"n_variables"`
}

// RunPCA eigendecomposes the observation covariance and projects the data
// onto the principal axes.
func RunPCA(_ context.Context, req PCARequest) (*PCAResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res, err := pca.Analyze(req.DataMatrix)
	if err != nil {
		return nil, malformedMatrix("%v", err)
	}

	return &PCAResult{
		Eigenvalues:            res.Eigenvalues,
		Eigenvectors:           res.Eigenvectors,
		ExplainedVarianceRatio: res.ExplainedVarianceRatio,
		CumulativeVariance:     res.CumulativeVariance,
		Scores:                 res.Scores,
		Correlations:           res.VariableCorrelations(req.DataMatrix),
		Mean:                   res.Mean,
		Degenerate:             res.Degenerate,
		NObservations:          res.Observations,
		NVariables:             res.Variables,
	}, nil
}

func seedOrNow(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}
