package core

import "github.com/hupe1980/agentsim/position"

// Molecule names a piece of per-node state.
type Molecule string

func (m Molecule) String() string { return string(m) }

// Node is one simulated agent. Its identity is distinct from its molecules:
// two nodes may hold equal molecules yet never share mutable state.
//
// Implementations must be safe for concurrent use; LOCAL actions on distinct
// nodes may execute in parallel.
type Node interface {
	// ID returns the stable node identifier.
	ID() string

	// Concentration returns the value stored for m and whether it exists.
	Concentration(m Molecule) (any, bool)
	// SetConcentration stores v for m, replacing any previous value.
	SetConcentration(m Molecule, v any)
	// RemoveConcentration deletes m, reporting whether it was present.
	RemoveConcentration(m Molecule) bool
	// Contains reports whether m is present.
	Contains(m Molecule) bool
	// Molecules returns a deep copy of the molecule bag.
	Molecules() map[Molecule]any

	AddAction(a Action)
	Actions() []Action
	AddStrategy(s TargetSelectionStrategy)
	Strategies() []TargetSelectionStrategy

	// Duplicate creates a new node with a fresh ID, a deep copy of the
	// molecules and a clone of every attached action and strategy bound to
	// the new node.
	Duplicate() (Node, error)
}

// Polarizable is the capability of nodes that accumulate a polarization
// vector (cells).
type Polarizable interface {
	Node
	// AddPolarization adds v to the current polarization.
	AddPolarization(v position.Euclidean2D)
	// Polarization returns the accumulated polarization.
	Polarization() position.Euclidean2D
}
