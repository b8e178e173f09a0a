// Package montecarlo propagates parameter uncertainty through a response
// model by repeated evaluation over random draws, reducing the population of
// curves to a pointwise mean and dispersion band.
package montecarlo

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/nmetrology/uqsim/internal/physics"
	"github.com/nmetrology/uqsim/internal/sample"
	"github.com/nmetrology/uqsim/internal/stats"
)

// Engine evaluates Model once per joint parameter draw. Evaluations are
// partitioned across Workers goroutines, each with its own seeded sampler
// and streaming accumulator; partial accumulators are merged after the last
// worker finishes, so no lock sits in the evaluation loop.
type Engine struct {
	Model physics.ResponseModel
	// Workers caps the evaluation goroutines. Zero means GOMAXPROCS.
	Workers int
}

func New(model physics.ResponseModel) *Engine {
	return &Engine{Model: model}
}

// Result is the reduced output of one run.
type Result struct {
	Freqs   []float64
	Mean    []float64
	Std     []float64
	Lower   []float64
	Upper   []float64
	Samples int
	Elapsed time.Duration
}

// Run draws n joint realizations from dists and reduces the model responses
// to a mean +/- 2*std band over freqs. The same seed reproduces the same
// band for a fixed worker count.
func (e *Engine) Run(ctx context.Context, dists []sample.Distribution, n int, freqs []float64, seed uint64) (*Result, error) {
	if err := e.validate(dists, n, freqs); err != nil {
		return nil, err
	}
	start := time.Now()

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	accs := make([]*stats.CurveAccumulator, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			// Even partition; the first n%workers workers take one extra.
			count := n / workers
			if w < n%workers {
				count++
			}

			samplers := make([]*sample.Sampler, len(dists))
			for p, d := range dists {
				samplers[p] = sample.New(d, seed+uint64(w*len(dists)+p))
			}

			acc := stats.NewCurveAccumulator(len(freqs))
			params := make([]float64, len(dists))

			for i := 0; i < count; i++ {
				select {
				case <-ctx.Done():
					errs[w] = ctx.Err()
					return
				default:
				}

				for p, s := range samplers {
					params[p] = s.Draw()
				}
				acc.AddCurve(e.Model.Response(params, freqs))
			}
			accs[w] = acc
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	total := accs[0]
	for _, acc := range accs[1:] {
		total.Merge(acc)
	}

	band := total.Band(stats.BandK)
	return &Result{
		Freqs:   freqs,
		Mean:    band.Mean,
		Std:     band.Std,
		Lower:   band.Lower,
		Upper:   band.Upper,
		Samples: n,
		Elapsed: time.Since(start),
	}, nil
}

func (e *Engine) validate(dists []sample.Distribution, n int, freqs []float64) error {
	if n <= 0 {
		return fmt.Errorf("sample count must be positive, got %d", n)
	}
	if len(freqs) == 0 {
		return fmt.Errorf("frequency grid must not be empty")
	}
	if len(dists) != e.Model.ParamDim() {
		return fmt.Errorf("model %s expects %d parameters, got %d distributions",
			e.Model.Name(), e.Model.ParamDim(), len(dists))
	}
	for i, d := range dists {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("distribution %d: %w", i, err)
		}
	}
	return nil
}
