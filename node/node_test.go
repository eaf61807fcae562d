package node

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ core.Node        = (*GenericNode)(nil)
	_ core.Node        = (*CellNode)(nil)
	_ core.Polarizable = (*CellNode)(nil)
)

// recordingAction is a lightweight action that remembers the node it is bound to.
type recordingAction struct {
	node    core.Node
	failErr error
}

func (a *recordingAction) Execute(context.Context) error { return nil }
func (a *recordingAction) Context() core.Context         { return core.ContextLocal }
func (a *recordingAction) Node() core.Node               { return a.node }
func (a *recordingAction) CloneOnNewNode(dest core.Node) (core.Action, error) {
	if a.failErr != nil {
		return nil, a.failErr
	}
	return &recordingAction{node: dest}, nil
}

type recordingStrategy struct{ node core.Node }

func (s *recordingStrategy) TargetPosition() (position.Position, error) { return position.Euclidean2D{}, nil }
func (s *recordingStrategy) Node() core.Node                            { return s.node }
func (s *recordingStrategy) CloneIfNeeded(dest core.Node) (core.TargetSelectionStrategy, error) {
	return &recordingStrategy{node: dest}, nil
}

func TestGenericNode_Molecules(t *testing.T) {
	n := NewGenericNode(func(o *Options) {
		o.ID = "n1"
		o.Molecules = map[core.Molecule]any{"a": 1.0}
	})
	assert.Equal(t, "n1", n.ID())
	assert.True(t, n.Contains("a"))

	n.SetConcentration("b", []float64{1, 2})
	v, ok := n.Concentration("b")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, v)
	assert.Equal(t, 2, n.MoleculeCount())

	snap := n.Molecules()
	snap["b"].([]float64)[0] = 99
	v, _ = n.Concentration("b")
	assert.Equal(t, []float64{1, 2}, v, "Molecules must return a deep copy")

	assert.True(t, n.RemoveConcentration("a"))
	assert.False(t, n.RemoveConcentration("a"))
	assert.False(t, n.Contains("a"))
}

func TestGenericNode_GeneratedIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, NewGenericNode().ID(), NewGenericNode().ID())
}

func TestGenericNode_Duplicate(t *testing.T) {
	src := NewGenericNode(func(o *Options) {
		o.Molecules = map[core.Molecule]any{
			"target": []float64{3, 4},
			"meta":   map[string]any{"tags": []any{"x"}},
		}
	})
	src.AddAction(&recordingAction{node: src})
	src.AddStrategy(&recordingStrategy{node: src})

	dup, err := src.Duplicate()
	require.NoError(t, err)
	assert.NotEqual(t, src.ID(), dup.ID())
	assert.IsType(t, &GenericNode{}, dup)

	// Behaviors are cloned and bound to the new node.
	require.Len(t, dup.Actions(), 1)
	require.Len(t, dup.Strategies(), 1)
	assert.Same(t, dup, dup.Actions()[0].Node())
	assert.Same(t, dup, dup.Strategies()[0].Node())
	assert.Same(t, src, src.Actions()[0].Node())

	// Molecules are deep copied.
	v, _ := dup.Concentration("target")
	v.([]float64)[0] = 42
	orig, _ := src.Concentration("target")
	assert.Equal(t, []float64{3, 4}, orig)

	meta, _ := dup.Concentration("meta")
	meta.(map[string]any)["tags"].([]any)[0] = "y"
	origMeta, _ := src.Concentration("meta")
	assert.Equal(t, "x", origMeta.(map[string]any)["tags"].([]any)[0])

	dup.SetConcentration("new", 1)
	assert.False(t, src.Contains("new"))
}

func TestGenericNode_DuplicateFailsAtomically(t *testing.T) {
	src := NewGenericNode()
	src.AddAction(&recordingAction{node: src})
	src.AddAction(&recordingAction{node: src, failErr: errors.New("nope")})

	_, err := src.Duplicate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestCellNode_Polarization(t *testing.T) {
	c := NewCellNode()
	c.AddPolarization(position.Euclidean2D{X: 1, Y: 0})
	c.AddPolarization(position.Euclidean2D{X: 0.5, Y: 2})
	assert.Equal(t, position.Euclidean2D{X: 1.5, Y: 2}, c.Polarization())
}

func TestCellNode_Duplicate(t *testing.T) {
	c := NewCellNode(func(o *Options) { o.Molecules = map[core.Molecule]any{"m": 2.0} })
	c.AddPolarization(position.Euclidean2D{X: 1, Y: 1})
	c.AddAction(&recordingAction{node: c})

	dup, err := c.Duplicate()
	require.NoError(t, err)

	cell, ok := dup.(*CellNode)
	require.True(t, ok, "duplicate of a cell must be a cell")
	assert.Equal(t, position.Euclidean2D{}, cell.Polarization())
	assert.True(t, cell.Contains("m"))

	// The cloned action sees the cell, not the embedded GenericNode.
	_, isPolarizable := cell.Actions()[0].Node().(core.Polarizable)
	assert.True(t, isPolarizable)

	cell.AddPolarization(position.Euclidean2D{X: 5, Y: 5})
	assert.Equal(t, position.Euclidean2D{X: 1, Y: 1}, c.Polarization())
}

func TestDeepCopy(t *testing.T) {
	in := map[string]float64{"a": 1}
	out := deepCopy(in).(map[string]float64)
	out["a"] = 2
	assert.Equal(t, 1.0, in["a"])

	ints := []int{1}
	deepCopy(ints).([]int)[0] = 5
	assert.Equal(t, 1, ints[0])

	assert.Equal(t, "s", deepCopy("s"))
}

func TestDuplicate_IDsFollowParent(t *testing.T) {
	src := NewGenericNode(func(o *Options) { o.ID = "n" })

	d1, err := src.Duplicate()
	require.NoError(t, err)
	d2, err := src.Duplicate()
	require.NoError(t, err)
	grandchild, err := d1.Duplicate()
	require.NoError(t, err)

	assert.Equal(t, "n-1", d1.ID())
	assert.Equal(t, "n-2", d2.ID())
	assert.Equal(t, "n-1-1", grandchild.ID())

	cell := NewCellNode(func(o *Options) { o.ID = "c" })
	dup, err := cell.Duplicate()
	require.NoError(t, err)
	assert.Equal(t, "c-1", dup.ID())
}
