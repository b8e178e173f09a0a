package montecarlo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmetrology/uqsim/internal/physics"
	"github.com/nmetrology/uqsim/internal/sample"
)

func TestRunRejectsBadInput(t *testing.T) {
	e := New(physics.NewRodMesh(2.1e11, 0.04))
	freqs := physics.Grid(0, 200, 11)
	dists := []sample.Distribution{sample.Normal(2.1e11, 2.1e9)}

	tests := []struct {
		name  string
		dists []sample.Distribution
		n     int
		freqs []float64
	}{
		{"zero samples", dists, 0, freqs},
		{"negative samples", dists, -5, freqs},
		{"empty grid", dists, 100, nil},
		{"wrong param count", []sample.Distribution{sample.Normal(0, 1), sample.Normal(0, 1)}, 100, freqs},
		{"negative stddev", []sample.Distribution{sample.Normal(2.1e11, -1)}, 100, freqs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Run(context.Background(), tt.dists, tt.n, tt.freqs, 1)
			require.Error(t, err)
		})
	}
}

func TestZeroStdDevCollapsesToNominal(t *testing.T) {
	model := physics.NewRodMesh(2.1e11, 0.04)
	e := New(model)
	freqs := physics.Grid(0, 200, 101)

	res, err := e.Run(context.Background(), []sample.Distribution{sample.Normal(2.1e11, 0)}, 500, freqs, 1)
	require.NoError(t, err)

	nominal := model.Nominal(freqs)
	for i := range freqs {
		assert.InDelta(t, nominal[i], res.Mean[i], math.Abs(nominal[i])*1e-12)
		assert.InDelta(t, res.Mean[i], res.Lower[i], math.Abs(nominal[i])*1e-9)
		assert.InDelta(t, res.Mean[i], res.Upper[i], math.Abs(nominal[i])*1e-9)
	}
}

func TestSingleSampleZeroWidthBand(t *testing.T) {
	e := New(physics.NewOscillator(1.0))
	freqs := physics.Grid(0.01, 3.0, 50)
	dists := []sample.Distribution{sample.Normal(0.05, 0.01), sample.Normal(1.0, 0.05)}

	res, err := e.Run(context.Background(), dists, 1, freqs, 9)
	require.NoError(t, err)
	require.Equal(t, 1, res.Samples)

	for i := range freqs {
		assert.Equal(t, res.Mean[i], res.Lower[i])
		assert.Equal(t, res.Mean[i], res.Upper[i])
	}
}

func TestBoundsBracketMean(t *testing.T) {
	e := New(physics.NewRodMesh(2.1e11, 0.04))
	freqs := physics.Grid(0, 200, 401)
	dists := []sample.Distribution{sample.Normal(2.1e11, 2.1e9)}

	res, err := e.Run(context.Background(), dists, 2000, freqs, 3)
	require.NoError(t, err)
	require.Len(t, res.Mean, 401)
	require.Equal(t, 2000, res.Samples)

	for i := range freqs {
		assert.LessOrEqual(t, res.Lower[i], res.Mean[i])
		assert.GreaterOrEqual(t, res.Upper[i], res.Mean[i])
		require.False(t, math.IsNaN(res.Mean[i]))
	}
}

func TestSeedReproducibleWithFixedWorkers(t *testing.T) {
	e := New(physics.NewOscillator(1.0))
	e.Workers = 4
	freqs := physics.Grid(0.01, 3.0, 60)
	dists := []sample.Distribution{sample.Normal(0.05, 0.05), sample.Normal(1.0, 0.05)}

	a, err := e.Run(context.Background(), dists, 1000, freqs, 77)
	require.NoError(t, err)
	b, err := e.Run(context.Background(), dists, 1000, freqs, 77)
	require.NoError(t, err)

	assert.Equal(t, a.Mean, b.Mean)
	assert.Equal(t, a.Std, b.Std)
}

func TestCancelledContext(t *testing.T) {
	e := New(physics.NewRodMesh(2.1e11, 0.04))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, []sample.Distribution{sample.Normal(2.1e11, 2.1e9)}, 10000, physics.Grid(0, 200, 401), 1)
	require.ErrorIs(t, err, context.Canceled)
}
