package physics

import "gonum.org/v1/gonum/floats"

// ResponseModel maps a parameter vector and a frequency grid to a real-valued
// response curve of the same length as the grid.
type ResponseModel interface {
	// Response evaluates the model at the given parameter vector. The
	// returned slice is freshly allocated and aligned 1:1 with freqs.
	Response(params []float64, freqs []float64) []float64
	// ParamDim is the number of parameters Response expects.
	ParamDim() int
	Name() string
}

// Grid returns n frequencies spaced evenly over [min, max], inclusive.
func Grid(min, max float64, n int) []float64 {
	if n == 1 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}
