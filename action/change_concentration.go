package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
	"github.com/hupe1980/agentsim/random"
)

// NeighborOptions configures ChangeConcentrationInNeighbor.
type NeighborOptions struct {
	// StreamPolicy decides the random source of clones. Defaults to
	// random.SharedStream.
	StreamPolicy random.StreamPolicy
	// Logger defaults to NoOp if nil.
	Logger logging.Logger
}

// ChangeConcentrationInNeighbor adds Delta to a molecule of one randomly
// chosen neighbor. It mutates another node, so its context is GLOBAL.
type ChangeConcentrationInNeighbor struct {
	BaseAction
	env      core.Environment
	rand     random.Source
	molecule core.Molecule
	delta    float64
	opts     NeighborOptions
}

var _ core.Action = (*ChangeConcentrationInNeighbor)(nil)

// NewChangeConcentrationInNeighbor creates the action for node.
func NewChangeConcentrationInNeighbor(
	env core.Environment,
	node core.Node,
	src random.Source,
	molecule core.Molecule,
	delta float64,
	optFns ...func(o *NeighborOptions),
) (*ChangeConcentrationInNeighbor, error) {
	opts := NeighborOptions{StreamPolicy: random.SharedStream, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return newChangeConcentrationInNeighbor(env, node, src, molecule, delta, opts)
}

func newChangeConcentrationInNeighbor(env core.Environment, node core.Node, src random.Source, molecule core.Molecule, delta float64, opts NeighborOptions) (*ChangeConcentrationInNeighbor, error) {
	if err := requireNode("change concentration in neighbor", node); err != nil {
		return nil, err
	}
	switch {
	case env == nil:
		return nil, errors.New("change concentration in neighbor: environment is required")
	case src == nil:
		return nil, errors.New("change concentration in neighbor: random source is required")
	case molecule == "":
		return nil, errors.New("change concentration in neighbor: molecule is required")
	}
	return &ChangeConcentrationInNeighbor{
		BaseAction: NewBaseAction("ChangeConcentrationInNeighbor", node, core.ContextGlobal, opts.Logger),
		env:        env,
		rand:       src,
		molecule:   molecule,
		delta:      delta,
		opts:       opts,
	}, nil
}

// Execute picks a random valid neighbor and adds delta to its molecule. A
// neighbor is valid when delta is positive or it holds at least -delta.
// Without valid neighbors the action does nothing.
func (a *ChangeConcentrationInNeighbor) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	neighbors, err := a.env.Neighborhood(a.Node())
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}
	valid := make([]core.Node, 0, len(neighbors))
	for _, n := range neighbors {
		if a.delta > 0 || concentration(n, a.molecule)+a.delta >= 0 {
			valid = append(valid, n)
		}
	}
	if len(valid) == 0 {
		a.Logger().Debug("no valid neighbor node_id=%s molecule=%s", a.Node().ID(), a.molecule)
		return nil
	}
	target := valid[a.rand.IntN(len(valid))]
	target.SetConcentration(a.molecule, concentration(target, a.molecule)+a.delta)
	return nil
}

// CloneOnNewNode binds a copy to dest sharing environment, molecule and delta.
func (a *ChangeConcentrationInNeighbor) CloneOnNewNode(dest core.Node) (core.Action, error) {
	return newChangeConcentrationInNeighbor(a.env, dest, a.opts.StreamPolicy.Derive(a.rand), a.molecule, a.delta, a.opts)
}

// Molecule returns the molecule changed in neighbors.
func (a *ChangeConcentrationInNeighbor) Molecule() core.Molecule { return a.molecule }

// Delta returns the concentration change applied per execution.
func (a *ChangeConcentrationInNeighbor) Delta() float64 { return a.delta }

func (a *ChangeConcentrationInNeighbor) String() string {
	if a.delta >= 0 {
		return fmt.Sprintf("add %g of %s in neighbor", a.delta, a.molecule)
	}
	return fmt.Sprintf("remove %g of %s in neighbor", -a.delta, a.molecule)
}

// concentration reads a numeric molecule, treating absent or non-numeric
// values as zero.
func concentration(n core.Node, m core.Molecule) float64 {
	v, ok := n.Concentration(m)
	if !ok {
		return 0
	}
	f, _ := core.AsFloat(v)
	return f
}
