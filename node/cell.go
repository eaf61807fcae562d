package node

import (
	"fmt"
	"sync"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/position"
)

// CellNode is a node with the polarization capability.
type CellNode struct {
	*GenericNode

	polMu        sync.RWMutex
	polarization position.Euclidean2D
}

var _ core.Polarizable = (*CellNode)(nil)

// NewCellNode constructs a cell with zero polarization.
func NewCellNode(optFns ...func(o *Options)) *CellNode {
	return &CellNode{GenericNode: NewGenericNode(optFns...)}
}

// AddPolarization accumulates v into the polarization vector.
func (c *CellNode) AddPolarization(v position.Euclidean2D) {
	c.polMu.Lock()
	defer c.polMu.Unlock()
	c.polarization = c.polarization.Add(v)
}

// Polarization returns the accumulated polarization vector.
func (c *CellNode) Polarization() position.Euclidean2D {
	c.polMu.RLock()
	defer c.polMu.RUnlock()
	return c.polarization
}

// Duplicate returns a new CellNode. Molecules are copied and behaviors cloned;
// the polarization of the new cell starts at zero.
func (c *CellNode) Duplicate() (core.Node, error) {
	dest := &CellNode{GenericNode: &GenericNode{
		id:     c.duplicateID(),
		attrs:  c.attrs.clone(),
		logger: c.logger,
	}}
	// Behaviors must see the cell, not the embedded GenericNode, so
	// capability checks on the destination succeed.
	if err := duplicateBehaviors(c, dest, c.logger); err != nil {
		return nil, err
	}
	return dest, nil
}

func (c *CellNode) String() string { return fmt.Sprintf("Cell#%s", c.id) }
