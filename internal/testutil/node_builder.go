package testutil

import (
	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/node"
)

// NodeBuilder helps construct nodes with fluent chaining for tests.
// Example:
//
//	n := NewNodeBuilder("n1").Molecule("target", []float64{3, 4}).Cell().Build()
type NodeBuilder struct {
	id        string
	cell      bool
	molecules map[core.Molecule]any
}

// NewNodeBuilder creates a new builder for a node with the given id.
func NewNodeBuilder(id string) *NodeBuilder {
	return &NodeBuilder{id: id, molecules: map[core.Molecule]any{}}
}

// Molecule sets or overwrites a molecule on the resulting node (chainable).
func (b *NodeBuilder) Molecule(m core.Molecule, v any) *NodeBuilder {
	b.molecules[m] = v
	return b
}

// Cell makes the builder produce a *node.CellNode (chainable).
func (b *NodeBuilder) Cell() *NodeBuilder {
	b.cell = true
	return b
}

// Build returns the node. The concrete type is *node.CellNode when Cell was
// called, *node.GenericNode otherwise.
func (b *NodeBuilder) Build() core.Node {
	opts := func(o *node.Options) {
		o.ID = b.id
		o.Molecules = b.molecules
	}
	if b.cell {
		return node.NewCellNode(opts)
	}
	return node.NewGenericNode(opts)
}
