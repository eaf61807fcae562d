// Package node provides the concrete core.Node implementations.
//
// GenericNode holds a molecule bag and attached behaviors. CellNode adds the
// polarization capability required by polarization actions. Duplicate deep
// copies the molecules and clones every behavior onto the new node.
package node
