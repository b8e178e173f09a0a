package engine

// Default parameter values: the book's steel-rod and oscillator cases.
// Requests leaving a field zero get these applied during validation.
const (
	DefaultE0         = 2.1e11 // Young's modulus of steel, Pa
	DefaultSigmaE     = 2.1e9  // 1% of E0
	DefaultDamping    = 0.04
	DefaultSamples    = 2000
	DefaultFreqPoints = 401
	DefaultFreqMax    = 200.0

	DefaultXi0        = 0.05
	DefaultOmega0     = 1.0
	DefaultSigmaXi    = 0.05
	DefaultSigmaOmega = 0.05
	DefaultFAmplitude = 1.0
	DefaultOscSamples = 10000
	DefaultOscPoints  = 300
	DefaultOscFreqMin = 0.01
	DefaultOscFreqMax = 3.0
)

// MonteCarloRequest parameterizes a rod-mesh Monte Carlo run.
type MonteCarloRequest struct {
	E0            float64 `json:"E0"`
	SigmaE        float64 `json:"sigma_E"`
	Damping       float64 `json:"damping"`
	NumSamples    int     `json:"num_samples"`
	NumFreqPoints int     `json:"num_freq_points"`
	FreqMax       float64 `json:"freq_max"`
	// Seed fixes the random sequence; zero draws a time-based seed.
	Seed uint64 `json:"seed,omitempty"`
}

func (r *MonteCarloRequest) Validate() error {
	applyDefault(&r.E0, DefaultE0)
	applyDefault(&r.Damping, DefaultDamping)
	applyDefaultInt(&r.NumSamples, DefaultSamples)
	applyDefaultInt(&r.NumFreqPoints, DefaultFreqPoints)
	applyDefault(&r.FreqMax, DefaultFreqMax)

	if r.E0 <= 0 {
		return invalidParam("E0", "must be positive, got %g", r.E0)
	}
	if r.SigmaE < 0 {
		return invalidParam("sigma_E", "must be non-negative, got %g", r.SigmaE)
	}
	if r.Damping < 0 {
		return invalidParam("damping", "must be non-negative, got %g", r.Damping)
	}
	if r.NumSamples <= 0 {
		return invalidParam("num_samples", "must be positive, got %d", r.NumSamples)
	}
	if r.NumFreqPoints < 2 {
		return invalidParam("num_freq_points", "need at least 2 points, got %d", r.NumFreqPoints)
	}
	if r.FreqMax <= 0 {
		return invalidParam("freq_max", "must be positive, got %g", r.FreqMax)
	}
	return nil
}

// ChaosRequest parameterizes a rod-mesh polynomial chaos run. No sample
// count: the expansion's node count is fixed by the order.
type ChaosRequest struct {
	E0            float64 `json:"E0"`
	SigmaE        float64 `json:"sigma_E"`
	Damping       float64 `json:"damping"`
	Order         int     `json:"order"`
	NumFreqPoints int     `json:"num_freq_points"`
	FreqMax       float64 `json:"freq_max"`
}

func (r *ChaosRequest) Validate() error {
	applyDefault(&r.E0, DefaultE0)
	applyDefault(&r.Damping, DefaultDamping)
	applyDefaultInt(&r.Order, 2)
	applyDefaultInt(&r.NumFreqPoints, DefaultFreqPoints)
	applyDefault(&r.FreqMax, DefaultFreqMax)

	if r.E0 <= 0 {
		return invalidParam("E0", "must be positive, got %g", r.E0)
	}
	if r.SigmaE < 0 {
		return invalidParam("sigma_E", "must be non-negative, got %g", r.SigmaE)
	}
	if r.Damping < 0 {
		return invalidParam("damping", "must be non-negative, got %g", r.Damping)
	}
	if r.Order < 1 {
		return invalidParam("order", "must be at least 1, got %d", r.Order)
	}
	if r.NumFreqPoints < 2 {
		return invalidParam("num_freq_points", "need at least 2 points, got %d", r.NumFreqPoints)
	}
	if r.FreqMax <= 0 {
		return invalidParam("freq_max", "must be positive, got %g", r.FreqMax)
	}
	return nil
}

// FactorSpec is one orthogonal-array factor as supplied by the caller.
type FactorSpec struct {
	Name   string    `json:"name"`
	Levels []float64 `json:"levels"`
}

// TaguchiRequest asks for an L9 design over the given factors.
type TaguchiRequest struct {
	Factors []FactorSpec `json:"factors"`
}

func (r *TaguchiRequest) Validate() error {
	if len(r.Factors) < 1 || len(r.Factors) > 4 {
		return invalidParam("factors", "factor count must be in [1,4], got %d", len(r.Factors))
	}
	for i, f := range r.Factors {
		if f.Name == "" {
			return invalidParam("factors", "factor %d has an empty name", i)
		}
		if len(f.Levels) != 3 {
			return invalidParam("factors", "factor %q has %d levels, exactly 3 required", f.Name, len(f.Levels))
		}
	}
	return nil
}

// OscillatorRequest runs the damped-oscillator uncertainty comparison:
// deterministic response, Monte Carlo band and the 9-point orthogonal-array
// estimate from the same nominal parameters.
type OscillatorRequest struct {
	Xi0           float64 `json:"xi0"`
	Omega0        float64 `json:"omega0"`
	SigmaXi       float64 `json:"sigma_xi"`
	SigmaOmega    float64 `json:"sigma_omega"`
	FAmplitude    float64 `json:"f_amplitude"`
	MCSamples     int     `json:"mc_samples"`
	NumFreqPoints int     `json:"num_freq_points"`
	FreqMin       float64 `json:"freq_min"`
	FreqMax       float64 `json:"freq_max"`
	Seed          uint64  `json:"seed,omitempty"`
}

func (r *OscillatorRequest) Validate() error {
	applyDefault(&r.Xi0, DefaultXi0)
	applyDefault(&r.Omega0, DefaultOmega0)
	applyDefault(&r.FAmplitude, DefaultFAmplitude)
	applyDefaultInt(&r.MCSamples, DefaultOscSamples)
	applyDefaultInt(&r.NumFreqPoints, DefaultOscPoints)
	applyDefault(&r.FreqMin, DefaultOscFreqMin)
	applyDefault(&r.FreqMax, DefaultOscFreqMax)

	if r.Xi0 <= 0 {
		return invalidParam("xi0", "must be positive, got %g", r.Xi0)
	}
	if r.Omega0 <= 0 {
		return invalidParam("omega0", "must be positive, got %g", r.Omega0)
	}
	if r.SigmaXi < 0 {
		return invalidParam("sigma_xi", "must be non-negative, got %g", r.SigmaXi)
	}
	if r.SigmaOmega < 0 {
		return invalidParam("sigma_omega", "must be non-negative, got %g", r.SigmaOmega)
	}
	if r.FAmplitude <= 0 {
		return invalidParam("f_amplitude", "must be positive, got %g", r.FAmplitude)
	}
	if r.MCSamples <= 0 {
		return invalidParam("mc_samples", "must be positive, got %d", r.MCSamples)
	}
	if r.NumFreqPoints < 2 {
		return invalidParam("num_freq_points", "need at least 2 points, got %d", r.NumFreqPoints)
	}
	if r.FreqMin <= 0 || r.FreqMax <= r.FreqMin {
		return invalidParam("freq_max", "need 0 < freq_min < freq_max, got [%g, %g]", r.FreqMin, r.FreqMax)
	}
	return nil
}

// PCARequest carries the observation matrix, N rows by P columns.
type PCARequest struct {
	DataMatrix [][]float64 `json:"data_matrix"`
}

func (r *PCARequest) Validate() error {
	if len(r.DataMatrix) < 2 {
		return malformedMatrix("need at least 2 observations, got %d", len(r.DataMatrix))
	}
	p := len(r.DataMatrix[0])
	if p < 1 {
		return malformedMatrix("need at least 1 variable, got 0")
	}
	for i, row := range r.DataMatrix {
		if len(row) != p {
			return malformedMatrix("row %d has %d values, expected %d", i, len(row), p)
		}
	}
	return nil
}

func applyDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func applyDefaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
