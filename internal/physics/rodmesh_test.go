package physics

import (
	"math"
	"testing"
)

func TestGrid(t *testing.T) {
	g := Grid(0, 200, 401)

	if len(g) != 401 {
		t.Fatalf("expected 401 points, got %d", len(g))
	}
	if g[0] != 0 || g[400] != 200 {
		t.Errorf("expected endpoints 0 and 200, got %f and %f", g[0], g[400])
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			t.Fatalf("grid not monotone at index %d", i)
		}
	}
}

func TestGridSinglePoint(t *testing.T) {
	g := Grid(5, 10, 1)
	if len(g) != 1 || g[0] != 5 {
		t.Errorf("expected [5], got %v", g)
	}
}

func TestRodMeshDeterministic(t *testing.T) {
	m := NewRodMesh(2.1e11, 0.04)
	freqs := Grid(0, 200, 101)

	a := m.Response([]float64{2.1e11}, freqs)
	b := m.Response([]float64{2.1e11}, freqs)

	if len(a) != len(freqs) {
		t.Fatalf("expected %d points, got %d", len(freqs), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic response at bin %d", i)
		}
	}
}

func TestRodMeshStaticResponse(t *testing.T) {
	m := NewRodMesh(2.1e11, 0.04)
	got := m.Response([]float64{2.1e11}, []float64{0})[0]

	// At omega = 0 the system reduces to K H = F, H1 = 2/(3E).
	want := 2.0 / (3.0 * 2.1e11)
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("static response: expected %e, got %e", want, got)
	}
}

func TestRodMeshResonancePeak(t *testing.T) {
	e0 := 2.1e11
	m := NewRodMesh(e0, 0.04)

	// First undamped natural frequency of the 2-DOF system: sqrt(E/3) rad/s.
	f1 := math.Sqrt(e0/3.0) / (2 * math.Pi)
	freqs := Grid(0, 2*f1, 801)

	curve := m.Nominal(freqs)

	peak := 0
	for i, v := range curve {
		if v > curve[peak] {
			peak = i
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("invalid response at bin %d", i)
		}
	}

	df := freqs[1] - freqs[0]
	if math.Abs(freqs[peak]-f1) > 2*df {
		t.Errorf("peak at %f Hz, expected near %f Hz", freqs[peak], f1)
	}
}

func TestRodMeshModulusShiftsResonance(t *testing.T) {
	m := NewRodMesh(2.1e11, 0.04)
	f1 := math.Sqrt(2.1e11/3.0) / (2 * math.Pi)
	freqs := Grid(0.5*f1, 1.5*f1, 401)

	argmax := func(c []float64) int {
		best := 0
		for i, v := range c {
			if v > c[best] {
				best = i
			}
		}
		return best
	}

	low := argmax(m.Response([]float64{1.9e11}, freqs))
	high := argmax(m.Response([]float64{2.3e11}, freqs))

	if freqs[low] >= freqs[high] {
		t.Errorf("stiffer rod should resonate higher: %f >= %f", freqs[low], freqs[high])
	}
}
