package physics

import (
	"math"
	"math/cmplx"
)

// RodMesh is a two-degree-of-freedom rod mesh with normalized masses,
// stiffness proportional to the Young's modulus E and stiffness-proportional
// damping. The single model parameter is E; the response is the magnitude of
// the first transfer-function component |H1(omega)| with a unit force applied
// at the first node.
//
// Frequencies are in Hz; omega = 2*pi*f.
type RodMesh struct {
	// E0 is the nominal modulus the damping matrix is scaled against.
	E0 float64
	// Damping is the dimensionless loss factor eta, C = eta * K / E0.
	Damping float64
}

func NewRodMesh(e0, damping float64) *RodMesh {
	return &RodMesh{E0: e0, Damping: damping}
}

func (r *RodMesh) Name() string  { return "rod_mesh" }
func (r *RodMesh) ParamDim() int { return 1 }

// Response evaluates |H1| across freqs for the modulus params[0].
//
// The system is [K - omega^2*M + j*omega*C] H = F with
//
//	M = [2 1; 1 2]   K = [2E -E; -E 2E]   C = eta*K/E0   F = [1 0]^T
//
// solved in closed form per frequency bin. A singular impedance (which only
// occurs at exact undamped resonance with eta = 0) yields 0 at that bin.
func (r *RodMesh) Response(params []float64, freqs []float64) []float64 {
	e := params[0]
	out := make([]float64, len(freqs))

	// Stiffness entries scale linearly with E; damping uses the nominal E0.
	kd := 2 * e
	ko := -e
	cd := r.Damping * 2 * e / r.E0
	co := r.Damping * -e / r.E0

	for i, f := range freqs {
		w := 2 * math.Pi * f

		// Z = K - w^2 M + j w C, with M = [2 1; 1 2].
		z11 := complex(kd-w*w*2, w*cd)
		z12 := complex(ko-w*w, w*co)
		// Symmetric system: z21 = z12, z22 = z11.

		det := z11*z11 - z12*z12
		if det == 0 {
			out[i] = 0
			continue
		}
		// Cramer's rule for Z H = [1 0]^T: H1 = z22 / det.
		out[i] = cmplx.Abs(z11 / det)
	}
	return out
}

// Nominal evaluates the model at the nominal modulus E0.
func (r *RodMesh) Nominal(freqs []float64) []float64 {
	return r.Response([]float64{r.E0}, freqs)
}
