package node

import (
	"sync"

	"github.com/hupe1980/agentsim/core"
)

// attributes is the molecule bag of a node. It is safe for concurrent
// access.
//
// Contract:
//   - Snapshot returns a deep copy so callers cannot mutate internal state
//   - Clone performs deep copies of maps/slices for safe divergence
type attributes struct {
	mu    sync.RWMutex
	state map[core.Molecule]any
}

func newAttributes() *attributes {
	return &attributes{state: map[core.Molecule]any{}}
}

func (a *attributes) get(m core.Molecule) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.state[m]
	return v, ok
}

func (a *attributes) set(m core.Molecule, v any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state[m] = v
}

func (a *attributes) remove(m core.Molecule) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.state[m]
	delete(a.state, m)
	return ok
}

func (a *attributes) len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.state)
}

// snapshot returns a deep copy of the bag.
func (a *attributes) snapshot() map[core.Molecule]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[core.Molecule]any, len(a.state))
	for k, v := range a.state {
		out[k] = deepCopy(v)
	}
	return out
}

func (a *attributes) clone() *attributes {
	return &attributes{state: a.snapshot()}
}

// deepCopy copies the container shapes molecules commonly hold. Other values
// (numbers, strings, positions) are immutable and returned as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case []float64:
		return append([]float64(nil), t...)
	case []int:
		return append([]int(nil), t...)
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case map[string]float64:
		out := make(map[string]float64, len(t))
		for k, e := range t {
			out[k] = e
		}
		return out
	default:
		return v
	}
}
