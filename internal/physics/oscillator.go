package physics

import "math"

// Oscillator parameter clamps. Gaussian draws can produce nonphysical
// negative damping or natural frequency; they are truncated at a small
// positive floor so the amplitude formula stays defined.
const (
	paramFloor = 1e-3
	denomFloor = 1e-15
)

// Oscillator is the damped linear oscillator
//
//	x'' + 2*xi*omega0*x' + omega0^2*x = f*sin(omega_f*t)
//
// evaluated at steady state across a swept forcing frequency. Parameters are
// [xi, omega0]; frequencies are in rad/s.
type Oscillator struct {
	// Amplitude is the forcing amplitude f.
	Amplitude float64
}

func NewOscillator(amplitude float64) *Oscillator {
	return &Oscillator{Amplitude: amplitude}
}

func (o *Oscillator) Name() string  { return "linear_oscillator" }
func (o *Oscillator) ParamDim() int { return 2 }

// Response returns the steady-state amplitude
//
//	|H(wf)| = f / sqrt((omega0^2 - wf^2)^2 + (2*xi*omega0*wf)^2)
//
// for xi = params[0], omega0 = params[1], truncated to positive values.
func (o *Oscillator) Response(params []float64, freqs []float64) []float64 {
	xi := math.Max(params[0], paramFloor)
	w0 := math.Max(params[1], paramFloor)

	out := make([]float64, len(freqs))
	for i, wf := range freqs {
		a := w0*w0 - wf*wf
		b := 2 * xi * w0 * wf
		denom := math.Sqrt(a*a + b*b)
		out[i] = o.Amplitude / math.Max(denom, denomFloor)
	}
	return out
}
