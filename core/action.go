package core

import (
	"context"

	"github.com/hupe1980/agentsim/position"
)

// Context is the declared concurrency scope of an action's side effects.
// It is metadata for the scheduler, not a lock.
type Context int

const (
	// ContextLocal actions only touch their own node and may run
	// concurrently with LOCAL actions of other nodes.
	ContextLocal Context = iota
	// ContextGlobal actions may read or mutate shared state (environment,
	// other nodes) and must be serialized by the scheduler.
	ContextGlobal
)

// String returns the string representation of the context.
func (c Context) String() string {
	switch c {
	case ContextLocal:
		return "LOCAL"
	case ContextGlobal:
		return "GLOBAL"
	default:
		return "UNKNOWN"
	}
}

// Action is a unit of per-event behavior bound to a node.
type Action interface {
	// Execute applies the action's side effects.
	Execute(ctx context.Context) error
	// Context reports the concurrency scope of Execute.
	Context() Context
	// Node returns the owning node.
	Node() Node
	// CloneOnNewNode returns an independent copy bound to dest. The
	// scheduler calls it whenever the owning node is duplicated.
	CloneOnNewNode(dest Node) (Action, error)
}

// TargetSelectionStrategy decides where a node wants to move.
type TargetSelectionStrategy interface {
	// TargetPosition returns the position the node is heading to.
	TargetPosition() (position.Position, error)
	// Node returns the node the strategy reads from.
	Node() Node
	// CloneIfNeeded returns a strategy bound to dest and independent of the
	// receiver.
	CloneIfNeeded(dest Node) (TargetSelectionStrategy, error)
}

// Cloner duplicates one behavior onto dest. CloneAction and CloneStrategy
// adapt the two behavior interfaces; CloneAll is the single duplication loop
// used by Node.Duplicate.
type Cloner[T any] func(item T, dest Node) (T, error)

// CloneAction adapts Action.CloneOnNewNode to Cloner.
func CloneAction(a Action, dest Node) (Action, error) { return a.CloneOnNewNode(dest) }

// CloneStrategy adapts TargetSelectionStrategy.CloneIfNeeded to Cloner.
func CloneStrategy(s TargetSelectionStrategy, dest Node) (TargetSelectionStrategy, error) {
	return s.CloneIfNeeded(dest)
}

// CloneAll clones every item onto dest, stopping at the first failure.
func CloneAll[T any](items []T, dest Node, clone Cloner[T]) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		c, err := clone(it, dest)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
