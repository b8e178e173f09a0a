package taguchi

import (
	"fmt"
	"testing"
)

func testFactors(n int) []Factor {
	all := []Factor{
		{Name: "E_modulus", Levels: [3]float64{2.0e11, 2.1e11, 2.2e11}},
		{Name: "damping", Levels: [3]float64{0.02, 0.04, 0.06}},
		{Name: "density", Levels: [3]float64{7700, 7850, 8000}},
		{Name: "length", Levels: [3]float64{0.9, 1.0, 1.1}},
	}
	return all[:n]
}

func TestDesignShape(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("%d_factors", n), func(t *testing.T) {
			a, err := Design(testFactors(n))
			if err != nil {
				t.Fatalf("design failed: %v", err)
			}
			if len(a.Rows) != 9 {
				t.Fatalf("expected 9 rows, got %d", len(a.Rows))
			}
			for r, row := range a.Rows {
				if len(row) != n {
					t.Fatalf("row %d: expected %d columns, got %d", r, n, len(row))
				}
			}
		})
	}
}

func TestDesignRejectsBadShapes(t *testing.T) {
	if _, err := Design(nil); err == nil {
		t.Error("expected error for zero factors")
	}

	five := append(testFactors(4), Factor{Name: "extra", Levels: [3]float64{1, 2, 3}})
	if _, err := Design(five); err == nil {
		t.Error("expected error for five factors")
	}

	if _, err := Design([]Factor{{Name: "", Levels: [3]float64{1, 2, 3}}}); err == nil {
		t.Error("expected error for empty factor name")
	}

	dup := []Factor{
		{Name: "x", Levels: [3]float64{1, 2, 3}},
		{Name: "x", Levels: [3]float64{4, 5, 6}},
	}
	if _, err := Design(dup); err == nil {
		t.Error("expected error for duplicate factor name")
	}
}

func TestLevelBalance(t *testing.T) {
	a, err := Design(testFactors(4))
	if err != nil {
		t.Fatal(err)
	}

	for f := 0; f < 4; f++ {
		counts := make(map[int]int)
		for _, row := range a.Rows {
			counts[row[f]]++
		}
		for lvl := 0; lvl < 3; lvl++ {
			if counts[lvl] != 3 {
				t.Errorf("factor %d level %d appears %d times, expected 3", f, lvl, counts[lvl])
			}
		}
	}
}

func TestPairwiseOrthogonality(t *testing.T) {
	a, err := Design(testFactors(4))
	if err != nil {
		t.Fatal(err)
	}

	// Every (level, level) pair across any two columns must appear equally
	// often: 9 rows / 9 combinations = exactly once.
	for f1 := 0; f1 < 4; f1++ {
		for f2 := f1 + 1; f2 < 4; f2++ {
			pairs := make(map[[2]int]int)
			for _, row := range a.Rows {
				pairs[[2]int{row[f1], row[f2]}]++
			}
			if len(pairs) != 9 {
				t.Fatalf("columns %d,%d: expected 9 distinct pairs, got %d", f1, f2, len(pairs))
			}
			for pair, count := range pairs {
				if count != 1 {
					t.Errorf("columns %d,%d: pair %v appears %d times", f1, f2, pair, count)
				}
			}
		}
	}
}

func TestExperiments(t *testing.T) {
	a, err := Design(testFactors(3))
	if err != nil {
		t.Fatal(err)
	}

	exps := a.Experiments()
	if len(exps) != 9 {
		t.Fatalf("expected 9 experiments, got %d", len(exps))
	}

	distinct := make(map[string]bool)
	for _, exp := range exps {
		if len(exp) != 3 {
			t.Fatalf("expected 3 factors per experiment, got %d", len(exp))
		}
		key := fmt.Sprintf("%v|%v|%v", exp["E_modulus"], exp["damping"], exp["density"])
		distinct[key] = true
	}
	if len(distinct) != 9 {
		t.Errorf("expected 9 distinct combinations, got %d", len(distinct))
	}
}

func TestEffectGroups(t *testing.T) {
	a, err := Design(testFactors(2))
	if err != nil {
		t.Fatal(err)
	}

	groups := a.EffectGroups()
	if len(groups) != 2 {
		t.Fatalf("expected groups for 2 factors, got %d", len(groups))
	}
	for name, lvls := range groups {
		if len(lvls) != 3 {
			t.Fatalf("factor %s: expected 3 level groups, got %d", name, len(lvls))
		}
		for _, g := range lvls {
			if len(g.Runs) != 3 {
				t.Errorf("factor %s level %v: expected 3 runs, got %d", name, g.Level, len(g.Runs))
			}
		}
	}
}
