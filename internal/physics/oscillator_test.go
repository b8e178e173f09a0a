package physics

import (
	"math"
	"testing"
)

func TestOscillatorResonance(t *testing.T) {
	o := NewOscillator(1.0)
	freqs := Grid(0.01, 3.0, 300)

	curve := o.Response([]float64{0.05, 1.0}, freqs)

	peak := 0
	for i, v := range curve {
		if v > curve[peak] {
			peak = i
		}
	}

	// Lightly damped: peak close to omega0 = 1 rad/s.
	if math.Abs(freqs[peak]-1.0) > 0.05 {
		t.Errorf("peak at %f rad/s, expected near 1.0", freqs[peak])
	}

	// Peak amplitude for small xi approaches 1/(2*xi*omega0^2) = 10.
	if curve[peak] < 8 || curve[peak] > 12 {
		t.Errorf("peak amplitude %f, expected near 10", curve[peak])
	}
}

func TestOscillatorStaticGain(t *testing.T) {
	o := NewOscillator(2.0)
	got := o.Response([]float64{0.1, 2.0}, []float64{0.01})[0]

	// Near-static: amplitude ~ f/omega0^2.
	want := 2.0 / 4.0
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("static gain: expected %f, got %f", want, got)
	}
}

func TestOscillatorClampsNonphysicalDraws(t *testing.T) {
	o := NewOscillator(1.0)
	freqs := []float64{0.5, 1.0, 1.5}

	neg := o.Response([]float64{-0.3, -2.0}, freqs)
	floor := o.Response([]float64{paramFloor, paramFloor}, freqs)

	for i := range neg {
		if neg[i] != floor[i] {
			t.Fatalf("negative draw not clamped to floor at bin %d", i)
		}
		if math.IsNaN(neg[i]) || math.IsInf(neg[i], 0) {
			t.Fatalf("invalid amplitude at bin %d", i)
		}
	}
}

func TestOscillatorTableCases(t *testing.T) {
	o := NewOscillator(1.0)

	tests := []struct {
		name string
		xi   float64
		w0   float64
		wf   float64
		want float64
	}{
		{"at resonance", 0.5, 1.0, 1.0, 1.0}, // denom = 2*xi*w0*wf = 1
		{"far above resonance", 0.05, 1.0, 10.0, 1.0 / math.Sqrt(99.0*99.0+1.0)},
		{"heavy damping", 1.0, 1.0, 1.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.Response([]float64{tt.xi, tt.w0}, []float64{tt.wf})[0]
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}
