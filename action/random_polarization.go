package action

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
	"github.com/hupe1980/agentsim/position"
	"github.com/hupe1980/agentsim/random"
)

// RandomPolarizationOptions configures RandomPolarization.
type RandomPolarizationOptions struct {
	// StreamPolicy decides the random source of clones. Defaults to
	// random.SharedStream.
	StreamPolicy random.StreamPolicy
	// Logger defaults to NoOp if nil.
	Logger logging.Logger
}

// RandomPolarization adds a random unit vector to a cell's polarization
// every time it executes. It only touches its own node (LOCAL).
type RandomPolarization struct {
	BaseAction
	cell core.Polarizable
	rand random.Source
	opts RandomPolarizationOptions
}

var _ core.Action = (*RandomPolarization)(nil)

// NewRandomPolarization binds the action to node, which must be
// core.Polarizable. The random source belongs to the run; the action only
// draws from it.
func NewRandomPolarization(node core.Node, src random.Source, optFns ...func(o *RandomPolarizationOptions)) (*RandomPolarization, error) {
	opts := RandomPolarizationOptions{StreamPolicy: random.SharedStream, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return newRandomPolarization(node, src, opts)
}

func newRandomPolarization(node core.Node, src random.Source, opts RandomPolarizationOptions) (*RandomPolarization, error) {
	if err := requireNode("random polarization", node); err != nil {
		return nil, err
	}
	cell, ok := node.(core.Polarizable)
	if !ok {
		return nil, fmt.Errorf("%w: polarization can happen only in cells, node %s is %T", core.ErrUnsupportedCapability, node.ID(), node)
	}
	if src == nil {
		return nil, fmt.Errorf("random polarization: random source is required")
	}
	return &RandomPolarization{
		BaseAction: NewBaseAction("RandomPolarization", node, core.ContextLocal, opts.Logger),
		cell:       cell,
		rand:       src,
		opts:       opts,
	}, nil
}

// Execute draws (x, y) uniformly in [-0.5, 0.5)² and adds RandomVersor(x, y)
// to the cell's polarization.
func (a *RandomPolarization) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	x := a.rand.Float64() - 0.5
	y := a.rand.Float64() - 0.5
	a.cell.AddPolarization(RandomVersor(x, y))
	return nil
}

// CloneOnNewNode binds a copy to dest. The clone's random source follows
// the configured StreamPolicy.
func (a *RandomPolarization) CloneOnNewNode(dest core.Node) (core.Action, error) {
	return newRandomPolarization(dest, a.opts.StreamPolicy.Derive(a.rand), a.opts)
}

// Source returns the random source the action draws from.
func (a *RandomPolarization) Source() random.Source { return a.rand }

// RandomVersor turns a drawn pair into the polarization increment:
// (0, 1) when x is exactly zero, (1, 0) when y is exactly zero, the unit
// vector of (x, y) otherwise, and (0, 0) if the norm is still zero.
func RandomVersor(x, y float64) position.Euclidean2D {
	switch {
	case x == 0:
		return position.Euclidean2D{X: 0, Y: 1}
	case y == 0:
		return position.Euclidean2D{X: 1, Y: 0}
	}
	norm := math.Sqrt(x*x + y*y)
	if norm == 0 {
		return position.Euclidean2D{}
	}
	return position.Euclidean2D{X: x / norm, Y: y / norm}
}
