package batch

import (
	"cmp"
	"fmt"
)

// Complexity is a coarse cost estimate for a set of runs. Estimates are
// totally ordered (Units first, then Weight) and combine by pairwise sum, so
// the estimate of a batch is the sum of the estimates of its sub-batches.
// Weights are integral cost units, which keeps that sum exact in any order.
type Complexity struct {
	// Units is the number of independent runs.
	Units int `json:"units" yaml:"units"`
	// Weight is the summed per-run cost, in cost units.
	Weight int64 `json:"weight" yaml:"weight"`
}

// Add returns the pairwise sum of c and o.
func (c Complexity) Add(o Complexity) Complexity {
	return Complexity{Units: c.Units + o.Units, Weight: c.Weight + o.Weight}
}

// Compare returns -1, 0 or +1 ordering c and o lexicographically.
func (c Complexity) Compare(o Complexity) int {
	if r := cmp.Compare(c.Units, o.Units); r != 0 {
		return r
	}
	return cmp.Compare(c.Weight, o.Weight)
}

// Less reports whether c orders before o.
func (c Complexity) Less(o Complexity) bool { return c.Compare(o) < 0 }

func (c Complexity) String() string { return fmt.Sprintf("Complexity{units=%d, weight=%d}", c.Units, c.Weight) }

// SumComplexities folds estimates with Add.
func SumComplexities(cs ...Complexity) Complexity {
	var total Complexity
	for _, c := range cs {
		total = total.Add(c)
	}
	return total
}
