package taguchi

import (
	"context"
	"math"
	"testing"

	"github.com/nmetrology/uqsim/internal/physics"
	"github.com/nmetrology/uqsim/internal/sample"
)

// bilinearModel is y = a + 2*a*b + b^2, polynomial in both parameters, so
// the nine-point estimate must reproduce the Gaussian moments exactly.
type bilinearModel struct{}

func (bilinearModel) Name() string  { return "bilinear" }
func (bilinearModel) ParamDim() int { return 2 }

func (bilinearModel) Response(params []float64, freqs []float64) []float64 {
	a, b := params[0], params[1]
	y := a + 2*a*b + b*b
	out := make([]float64, len(freqs))
	for i := range out {
		out[i] = y
	}
	return out
}

func TestDispersionExactForPolynomialResponse(t *testing.T) {
	muA, sigA := 1.5, 0.3
	muB, sigB := -0.5, 0.2
	dists := [2]sample.Distribution{sample.Normal(muA, sigA), sample.Normal(muB, sigB)}

	res, err := DispersionEstimate(context.Background(), bilinearModel{}, dists, []float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Points != 9 {
		t.Fatalf("expected 9 points, got %d", res.Points)
	}

	// E[y] = muA + 2*muA*muB + muB^2 + sigB^2 for independent Gaussians.
	wantMean := muA + 2*muA*muB + muB*muB + sigB*sigB

	// Var via independent moments of a and b.
	ea2 := muA*muA + sigA*sigA
	eb2 := muB*muB + sigB*sigB
	eb3 := muB*muB*muB + 3*muB*sigB*sigB
	eb4 := muB*muB*muB*muB + 6*muB*muB*sigB*sigB + 3*sigB*sigB*sigB*sigB
	ey2 := ea2 + 4*ea2*eb2 + eb4 + 4*ea2*muB + 2*muA*eb2 + 4*muA*eb3
	wantStd := math.Sqrt(ey2 - wantMean*wantMean)

	for i := range res.Mean {
		if math.Abs(res.Mean[i]-wantMean) > 1e-9 {
			t.Errorf("bin %d: mean %f, expected %f", i, res.Mean[i], wantMean)
		}
		if math.Abs(res.Std[i]-wantStd) > 1e-9 {
			t.Errorf("bin %d: std %f, expected %f", i, res.Std[i], wantStd)
		}
	}
}

func TestDispersionOscillator(t *testing.T) {
	dists := [2]sample.Distribution{sample.Normal(0.05, 0.01), sample.Normal(1.0, 0.02)}
	freqs := physics.Grid(0.01, 3.0, 300)

	res, err := DispersionEstimate(context.Background(), physics.NewOscillator(1.0), dists, freqs)
	if err != nil {
		t.Fatal(err)
	}

	if res.Points != 9 {
		t.Errorf("expected 9 design points, got %d", res.Points)
	}
	if len(res.Mean) != 300 || len(res.Std) != 300 {
		t.Fatalf("curve length mismatch: %d/%d", len(res.Mean), len(res.Std))
	}
	for i := range res.Mean {
		if res.Mean[i] <= 0 || math.IsNaN(res.Mean[i]) {
			t.Fatalf("invalid mean at bin %d: %f", i, res.Mean[i])
		}
		if res.Std[i] < 0 || math.IsNaN(res.Std[i]) {
			t.Fatalf("invalid std at bin %d: %f", i, res.Std[i])
		}
	}
}

func TestDispersionValidation(t *testing.T) {
	ctx := context.Background()
	freqs := []float64{1}
	good := [2]sample.Distribution{sample.Normal(0.05, 0.01), sample.Normal(1, 0.05)}

	if _, err := DispersionEstimate(ctx, physics.NewRodMesh(2.1e11, 0.04), good, freqs); err == nil {
		t.Error("expected error for one-parameter model")
	}
	if _, err := DispersionEstimate(ctx, physics.NewOscillator(1), good, nil); err == nil {
		t.Error("expected error for empty grid")
	}
	bad := [2]sample.Distribution{sample.Normal(0.05, -1), sample.Normal(1, 0.05)}
	if _, err := DispersionEstimate(ctx, physics.NewOscillator(1), bad, freqs); err == nil {
		t.Error("expected error for negative stddev")
	}
}
