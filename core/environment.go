package core

import "github.com/hupe1980/agentsim/position"

// PositionLookup is the read-only view of the environment used by strategies.
type PositionLookup interface {
	// Position returns where n currently is. Unknown nodes yield ErrNodeNotFound.
	Position(n Node) (position.Position, error)
}

// Environment associates nodes with positions. Only GLOBAL actions may call
// the mutating methods.
type Environment interface {
	PositionLookup
	// Neighborhood returns the nodes near n, excluding n itself.
	Neighborhood(n Node) ([]Node, error)
	// MoveNodeToPosition relocates n to p.
	MoveNodeToPosition(n Node, p position.Position) error
}
