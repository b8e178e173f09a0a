// Package taguchi generates L9 orthogonal experimental designs and uses
// their design points as a cheap estimator of output dispersion.
package taguchi

import "fmt"

// NumRuns is the row count of the L9 design.
const NumRuns = 9

// MaxFactors is the column count of the L9 design.
const MaxFactors = 4

// LevelsPerFactor is fixed by the L9(3^4) shape.
const LevelsPerFactor = 3

// l9 is the standard L9(3^4) array of level indices. Every column holds each
// level three times, and any two columns pair every level combination exactly
// once.
var l9 = [NumRuns][MaxFactors]int{
	{0, 0, 0, 0},
	{0, 1, 1, 1},
	{0, 2, 2, 2},
	{1, 0, 1, 2},
	{1, 1, 2, 0},
	{1, 2, 0, 1},
	{2, 0, 2, 1},
	{2, 1, 0, 2},
	{2, 2, 1, 0},
}

// Factor is one design variable with its three candidate levels.
type Factor struct {
	Name   string
	Levels [LevelsPerFactor]float64
}

// Array is a generated design: 9 rows of level indices over the requested
// factors, in the order they were given.
type Array struct {
	Factors []Factor
	// Rows[r][f] is the level index of factor f in run r.
	Rows [NumRuns][]int
}

// Design builds the L9 design for 1 to 4 factors. Orthogonality is a
// property of the index structure and holds for any level values.
func Design(factors []Factor) (*Array, error) {
	if len(factors) < 1 || len(factors) > MaxFactors {
		return nil, fmt.Errorf("factor count must be in [1,%d], got %d", MaxFactors, len(factors))
	}
	seen := make(map[string]bool, len(factors))
	for i, f := range factors {
		if f.Name == "" {
			return nil, fmt.Errorf("factor %d has an empty name", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate factor name %q", f.Name)
		}
		seen[f.Name] = true
	}

	a := &Array{Factors: factors}
	for r := 0; r < NumRuns; r++ {
		row := make([]int, len(factors))
		for f := range factors {
			row[f] = l9[r][f]
		}
		a.Rows[r] = row
	}
	return a, nil
}

// Experiments maps each run's level indices to the factor level values.
func (a *Array) Experiments() []map[string]float64 {
	out := make([]map[string]float64, NumRuns)
	for r, row := range a.Rows {
		exp := make(map[string]float64, len(a.Factors))
		for f, factor := range a.Factors {
			exp[factor.Name] = factor.Levels[row[f]]
		}
		out[r] = exp
	}
	return out
}

// LevelGroup lists the runs in which a factor sits at one level.
type LevelGroup struct {
	Level float64 `json:"level"`
	Runs  []int   `json:"experiments"`
}

// EffectGroups returns, per factor, the run indices grouped by level. Each
// group has exactly three runs; averaging a response over a group isolates
// that factor's main effect.
func (a *Array) EffectGroups() map[string][]LevelGroup {
	out := make(map[string][]LevelGroup, len(a.Factors))
	for f, factor := range a.Factors {
		groups := make([]LevelGroup, LevelsPerFactor)
		for lvl := 0; lvl < LevelsPerFactor; lvl++ {
			groups[lvl].Level = factor.Levels[lvl]
			for r, row := range a.Rows {
				if row[f] == lvl {
					groups[lvl].Runs = append(groups[lvl].Runs, r)
				}
			}
		}
		out[factor.Name] = groups
	}
	return out
}
