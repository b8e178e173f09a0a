// Package stats provides single-pass moment accumulators for streaming
// reduction of response curves. Standard deviations are population
// deviations (divide by n).
package stats

import "math"

// Accumulator tracks mean and variance online (Welford). The zero value is
// ready to use.
type Accumulator struct {
	n    int
	mean float64
	m2   float64
}

func (a *Accumulator) Add(x float64) {
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

func (a *Accumulator) Count() int { return a.n }

func (a *Accumulator) Mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.mean
}

// Var returns the population variance.
func (a *Accumulator) Var() float64 {
	if a.n == 0 {
		return 0
	}
	return a.m2 / float64(a.n)
}

func (a *Accumulator) Std() float64 { return math.Sqrt(a.Var()) }

func (a *Accumulator) Reset() {
	a.n = 0
	a.mean = 0
	a.m2 = 0
}

// Merge folds another accumulator into this one (Chan et al. pairwise
// update). Summation order only affects results at floating-point rounding
// level.
func (a *Accumulator) Merge(b *Accumulator) {
	if b.n == 0 {
		return
	}
	if a.n == 0 {
		*a = *b
		return
	}
	na, nb := float64(a.n), float64(b.n)
	delta := b.mean - a.mean
	total := na + nb

	a.mean += delta * nb / total
	a.m2 += b.m2 + delta*delta*na*nb/total
	a.n += b.n
}
