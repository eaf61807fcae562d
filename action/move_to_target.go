package action

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
	"github.com/hupe1980/agentsim/position"
)

// MoveToTarget moves its node toward the position chosen by a target
// selection strategy. It relocates the node in the shared environment, so
// its context is GLOBAL.
type MoveToTarget struct {
	BaseAction
	env      core.Environment
	strategy core.TargetSelectionStrategy
	speed    float64
}

var _ core.Action = (*MoveToTarget)(nil)

// NewMoveToTarget creates the action. strategy must read from node. A speed
// of zero or less moves the node straight to the target in one step.
func NewMoveToTarget(env core.Environment, node core.Node, strategy core.TargetSelectionStrategy, speed float64, logger logging.Logger) (*MoveToTarget, error) {
	if err := requireNode("move to target", node); err != nil {
		return nil, err
	}
	switch {
	case env == nil:
		return nil, errors.New("move to target: environment is required")
	case strategy == nil:
		return nil, errors.New("move to target: strategy is required")
	case strategy.Node() == nil || strategy.Node().ID() != node.ID():
		return nil, fmt.Errorf("move to target: strategy must read from node %s", node.ID())
	}
	return &MoveToTarget{
		BaseAction: NewBaseAction("MoveToTarget", node, core.ContextGlobal, logger),
		env:        env,
		strategy:   strategy,
		speed:      speed,
	}, nil
}

// Execute moves the node at most speed units toward the target. A node
// without a target stays put; malformed targets are returned to the caller.
func (a *MoveToTarget) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := a.strategy.TargetPosition()
	if errors.Is(err, core.ErrMissingTarget) {
		a.Logger().Debug("no target, staying in place node_id=%s", a.Node().ID())
		return nil
	}
	if err != nil {
		return err
	}
	current, err := a.env.Position(a.Node())
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}
	return a.env.MoveNodeToPosition(a.Node(), a.step(current, target))
}

// step returns the next position on the way from current to target.
func (a *MoveToTarget) step(current, target position.Position) position.Position {
	from, okFrom := current.(position.Euclidean2D)
	to, okTo := target.(position.Euclidean2D)
	if !okFrom || !okTo || a.speed <= 0 {
		return target
	}
	dir := to.Sub(from)
	dist := dir.Norm()
	if dist <= a.speed {
		return to
	}
	return from.Add(dir.Scale(a.speed / dist))
}

// CloneOnNewNode binds a copy to dest. When the strategy is attached to the
// source node and dest already carries its clone at the same index, the copy
// uses that clone; otherwise the strategy is cloned onto dest.
func (a *MoveToTarget) CloneOnNewNode(dest core.Node) (core.Action, error) {
	if err := requireNode("move to target", dest); err != nil {
		return nil, err
	}
	s, ok := a.attachedClone(dest)
	if !ok {
		var err error
		if s, err = a.strategy.CloneIfNeeded(dest); err != nil {
			return nil, fmt.Errorf("move to target: clone strategy: %w", err)
		}
	}
	return NewMoveToTarget(a.env, dest, s, a.speed, a.Logger())
}

func (a *MoveToTarget) attachedClone(dest core.Node) (core.TargetSelectionStrategy, bool) {
	if !reflect.TypeOf(a.strategy).Comparable() {
		return nil, false
	}
	cloned := dest.Strategies()
	for i, s := range a.Node().Strategies() {
		if s != a.strategy {
			continue
		}
		if i < len(cloned) && cloned[i].Node() != nil && cloned[i].Node().ID() == dest.ID() &&
			reflect.TypeOf(cloned[i]) == reflect.TypeOf(a.strategy) {
			return cloned[i], true
		}
		return nil, false
	}
	return nil, false
}

// Strategy returns the target selection strategy.
func (a *MoveToTarget) Strategy() core.TargetSelectionStrategy { return a.strategy }
