package stats

// CurveAccumulator reduces response curves pointwise, one Accumulator per
// frequency bin. Memory stays O(bins) regardless of how many curves are
// added.
type CurveAccumulator struct {
	bins []Accumulator
}

func NewCurveAccumulator(bins int) *CurveAccumulator {
	return &CurveAccumulator{bins: make([]Accumulator, bins)}
}

func (c *CurveAccumulator) Bins() int { return len(c.bins) }

func (c *CurveAccumulator) Count() int {
	if len(c.bins) == 0 {
		return 0
	}
	return c.bins[0].Count()
}

// AddCurve folds one curve into the accumulator. The curve length must equal
// the bin count.
func (c *CurveAccumulator) AddCurve(curve []float64) {
	for i, v := range curve {
		c.bins[i].Add(v)
	}
}

func (c *CurveAccumulator) MeanCurve() []float64 {
	out := make([]float64, len(c.bins))
	for i := range c.bins {
		out[i] = c.bins[i].Mean()
	}
	return out
}

func (c *CurveAccumulator) StdCurve() []float64 {
	out := make([]float64, len(c.bins))
	for i := range c.bins {
		out[i] = c.bins[i].Std()
	}
	return out
}

func (c *CurveAccumulator) Merge(other *CurveAccumulator) {
	for i := range c.bins {
		c.bins[i].Merge(&other.bins[i])
	}
}

// Band is a per-frequency (mean, lower, upper) envelope with bounds at
// mean +/- k*std.
type Band struct {
	Mean  []float64
	Std   []float64
	Lower []float64
	Upper []float64
}

// BandK is the conventional envelope half-width in standard deviations.
const BandK = 2.0

func (c *CurveAccumulator) Band(k float64) *Band {
	mean := c.MeanCurve()
	std := c.StdCurve()

	b := &Band{
		Mean:  mean,
		Std:   std,
		Lower: make([]float64, len(mean)),
		Upper: make([]float64, len(mean)),
	}
	for i := range mean {
		b.Lower[i] = mean[i] - k*std[i]
		b.Upper[i] = mean[i] + k*std[i]
	}
	return b
}
