package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandGrid(t *testing.T) {
	runs := ExpandGrid([]int64{1, 2}, map[string][]float64{
		"rate": {0.1, 0.2},
		"k":    {3},
	})
	require.Len(t, runs, 4)
	assert.Equal(t, SimulationConfig{Seed: 1, Variables: map[string]float64{"k": 3, "rate": 0.1}}, runs[0])
	assert.Equal(t, SimulationConfig{Seed: 2, Variables: map[string]float64{"k": 3, "rate": 0.1}}, runs[1])
	assert.Equal(t, SimulationConfig{Seed: 1, Variables: map[string]float64{"k": 3, "rate": 0.2}}, runs[2])

	runs[0].Variables["k"] = 9
	assert.Equal(t, 3.0, runs[1].Variables["k"])
}

func TestExpandGrid_Degenerate(t *testing.T) {
	runs := ExpandGrid(nil, nil)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(0), runs[0].Seed)
	assert.Empty(t, runs[0].Variables)

	runs = ExpandGrid([]int64{7}, map[string][]float64{"empty": nil})
	require.Len(t, runs, 1)
	assert.Empty(t, runs[0].Variables)
}

func TestNewGridSet(t *testing.T) {
	s, err := NewGridSet(GeneralSimulationConfig{Model: "m"}, []int64{1, 2, 3}, map[string][]float64{"x": {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, Complexity{Units: 6, Weight: 6}, s.ComputeComplexity())
}
