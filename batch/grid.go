package batch

import (
	"maps"
	"slices"
)

// ExpandGrid builds the cartesian product of seeds and variable values. Runs
// are ordered by variable combination (variable names sorted, last name
// varying fastest) and then by seed. A nil or empty seeds slice yields one
// run per combination with seed 0.
func ExpandGrid(seeds []int64, vars map[string][]float64) []SimulationConfig {
	if len(seeds) == 0 {
		seeds = []int64{0}
	}

	names := slices.Sorted(maps.Keys(vars))
	combos := []map[string]float64{{}}

	for _, name := range names {
		values := vars[name]
		if len(values) == 0 {
			continue
		}

		next := make([]map[string]float64, 0, len(combos)*len(values))
		for _, c := range combos {
			for _, v := range values {
				m := maps.Clone(c)
				m[name] = v
				next = append(next, m)
			}
		}
		combos = next
	}

	runs := make([]SimulationConfig, 0, len(combos)*len(seeds))
	for _, c := range combos {
		for _, seed := range seeds {
			runs = append(runs, SimulationConfig{Seed: seed, Variables: maps.Clone(c)})
		}
	}

	return runs
}

// NewGridSet expands a grid and wraps it in a SimulationsSet.
func NewGridSet(general GeneralSimulationConfig, seeds []int64, vars map[string][]float64, optFns ...func(o *Options)) (*SimulationsSet, error) {
	return NewSimulationsSet(general, ExpandGrid(seeds, vars), optFns...)
}
