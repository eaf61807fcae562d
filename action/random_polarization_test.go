package action

import (
	"context"
	"sync"
	"testing"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/internal/testutil"
	"github.com/hupe1980/agentsim/node"
	"github.com/hupe1980/agentsim/position"
	"github.com/hupe1980/agentsim/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomVersor(t *testing.T) {
	assert.Equal(t, position.Euclidean2D{X: 0, Y: 1}, RandomVersor(0, 0.2))
	assert.Equal(t, position.Euclidean2D{X: 0, Y: 1}, RandomVersor(0, -0.4))
	assert.Equal(t, position.Euclidean2D{X: 0, Y: 1}, RandomVersor(0, 0))
	assert.Equal(t, position.Euclidean2D{X: 1, Y: 0}, RandomVersor(0.3, 0))
	assert.Equal(t, position.Euclidean2D{X: 1, Y: 0}, RandomVersor(-0.1, 0))

	v := RandomVersor(0.3, 0.4)
	assert.InDelta(t, 0.6, v.X, 1e-9)
	assert.InDelta(t, 0.8, v.Y, 1e-9)

	// Both components underflow when squared.
	assert.Equal(t, position.Euclidean2D{}, RandomVersor(1e-200, 1e-200))
}

func TestNewRandomPolarization_RequiresCell(t *testing.T) {
	plain := testutil.NewNodeBuilder("plain").Build()
	_, err := NewRandomPolarization(plain, random.NewLockedSource(1))
	assert.ErrorIs(t, err, core.ErrUnsupportedCapability)

	cell := testutil.NewNodeBuilder("cell").Cell().Build()
	_, err = NewRandomPolarization(cell, nil)
	assert.Error(t, err)

	_, err = NewRandomPolarization(nil, random.NewLockedSource(1))
	assert.Error(t, err)
}

func TestRandomPolarization_Execute(t *testing.T) {
	for _, tc := range []struct {
		name  string
		draws []float64
		want  position.Euclidean2D
	}{
		{"x zero", []float64{0.5, 0.7}, position.Euclidean2D{X: 0, Y: 1}},
		{"y zero", []float64{0.9, 0.5}, position.Euclidean2D{X: 1, Y: 0}},
		{"normalized", []float64{0.8, 0.9}, position.Euclidean2D{X: 0.6, Y: 0.8}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cell := node.NewCellNode()
			a, err := NewRandomPolarization(cell, testutil.NewSequenceSource(tc.draws...))
			require.NoError(t, err)

			require.NoError(t, a.Execute(context.Background()))
			got := cell.Polarization()
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
		})
	}
}

func TestRandomPolarization_Accumulates(t *testing.T) {
	cell := node.NewCellNode()
	cell.AddPolarization(position.Euclidean2D{X: 2, Y: 2})
	a, err := NewRandomPolarization(cell, testutil.NewSequenceSource(0.5, 0.7))
	require.NoError(t, err)

	require.NoError(t, a.Execute(context.Background()))
	require.NoError(t, a.Execute(context.Background()))
	assert.Equal(t, position.Euclidean2D{X: 2, Y: 4}, cell.Polarization())
}

func TestRandomPolarization_ExecuteHonorsCancellation(t *testing.T) {
	cell := node.NewCellNode()
	src := testutil.NewSequenceSource(0.8, 0.9)
	a, err := NewRandomPolarization(cell, src)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Execute(ctx), context.Canceled)
	assert.Zero(t, src.Draws())
	assert.Equal(t, position.Euclidean2D{}, cell.Polarization())
}

func TestRandomPolarization_Context(t *testing.T) {
	a, err := NewRandomPolarization(node.NewCellNode(), random.NewLockedSource(1))
	require.NoError(t, err)
	assert.Equal(t, core.ContextLocal, a.Context())
}

func TestRandomPolarization_CloneSharedStream(t *testing.T) {
	src := testutil.NewSequenceSource(0.5, 0.7, 0.9, 0.5)
	orig := node.NewCellNode()
	dest := node.NewCellNode()

	a, err := NewRandomPolarization(orig, src)
	require.NoError(t, err)

	cloned, err := a.CloneOnNewNode(dest)
	require.NoError(t, err)
	assert.Equal(t, core.ContextLocal, cloned.Context())
	assert.Same(t, dest, cloned.Node())
	assert.Same(t, src, cloned.(*RandomPolarization).Source())

	// The clone's effects land on dest only.
	require.NoError(t, cloned.Execute(context.Background()))
	assert.Equal(t, position.Euclidean2D{X: 0, Y: 1}, dest.Polarization())
	assert.Equal(t, position.Euclidean2D{}, orig.Polarization())

	// The original continues the same stream.
	require.NoError(t, a.Execute(context.Background()))
	assert.Equal(t, position.Euclidean2D{X: 1, Y: 0}, orig.Polarization())
	assert.Equal(t, 4, src.Draws())
}

func TestRandomPolarization_CloneForkedStream(t *testing.T) {
	src := random.NewLockedSource(11)
	a, err := NewRandomPolarization(node.NewCellNode(), src, func(o *RandomPolarizationOptions) {
		o.StreamPolicy = random.ForkedStream
	})
	require.NoError(t, err)

	cloned, err := a.CloneOnNewNode(node.NewCellNode())
	require.NoError(t, err)
	assert.NotSame(t, src, cloned.(*RandomPolarization).Source())

	// The forked clone is reproducible from the parent seed.
	again, err := NewRandomPolarization(node.NewCellNode(), random.NewLockedSource(11), func(o *RandomPolarizationOptions) {
		o.StreamPolicy = random.ForkedStream
	})
	require.NoError(t, err)
	clonedAgain, err := again.CloneOnNewNode(node.NewCellNode())
	require.NoError(t, err)

	require.NoError(t, cloned.Execute(context.Background()))
	require.NoError(t, clonedAgain.Execute(context.Background()))
	assert.Equal(t,
		cloned.Node().(core.Polarizable).Polarization(),
		clonedAgain.Node().(core.Polarizable).Polarization(),
	)
}

func TestRandomPolarization_CloneRequiresCell(t *testing.T) {
	a, err := NewRandomPolarization(node.NewCellNode(), random.NewLockedSource(1))
	require.NoError(t, err)

	_, err = a.CloneOnNewNode(node.NewGenericNode())
	assert.ErrorIs(t, err, core.ErrUnsupportedCapability)
}

func TestRandomPolarization_DuplicatedCell(t *testing.T) {
	cell := node.NewCellNode()
	a, err := NewRandomPolarization(cell, random.NewLockedSource(5))
	require.NoError(t, err)
	cell.AddAction(a)

	dup, err := cell.Duplicate()
	require.NoError(t, err)
	require.Len(t, dup.Actions(), 1)

	require.NoError(t, dup.Actions()[0].Execute(context.Background()))
	assert.InDelta(t, 1.0, dup.(core.Polarizable).Polarization().Norm(), 1e-9)
	assert.Equal(t, position.Euclidean2D{}, cell.Polarization())
}

func TestRandomPolarization_ConcurrentLocalActions(t *testing.T) {
	src := random.NewLockedSource(99)
	cells := make([]*node.CellNode, 8)
	actions := make([]core.Action, 8)
	for i := range cells {
		cells[i] = node.NewCellNode()
		a, err := NewRandomPolarization(cells[i], src)
		require.NoError(t, err)
		actions[i] = a
	}

	var wg sync.WaitGroup
	for _, a := range actions {
		wg.Add(1)
		go func(a core.Action) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = a.Execute(context.Background())
			}
		}(a)
	}
	wg.Wait()

	for _, c := range cells {
		assert.NotEqual(t, position.Euclidean2D{}, c.Polarization())
	}
}
