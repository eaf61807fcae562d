// Package core provides the foundational contracts of the agentsim behavior
// layer. It defines the core abstractions for:
//
//   - Nodes (simulated agents carrying a bag of molecules and behaviors)
//   - Actions (side effects run when the scheduler fires an event), each
//     tagged with a concurrency Context
//   - Target selection strategies (where a node wants to move)
//   - The Environment collaborator (position lookup, neighborhoods, moves)
//   - The error taxonomy shared by every behavior
//
// Concrete nodes live in package node, concrete behaviors in packages action
// and strategy. Every behavior must be able to duplicate itself onto a new
// node (CloneOnNewNode / CloneIfNeeded); Node.Duplicate relies on this when a
// node reproduces or migrates.
package core
