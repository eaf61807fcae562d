// Package action contains the concrete core.Action implementations.
//
// Every action embeds BaseAction, declares its concurrency Context and can
// clone itself onto a new node:
//
//   - RandomPolarization (LOCAL): random unit vector added to a cell's polarization
//   - ChangeConcentrationInNeighbor (GLOBAL): adjusts a molecule of a random neighbor
//   - MoveToTarget (GLOBAL): moves the node toward its strategy's target
//
// Actions never own their random source. The StreamPolicy option decides
// whether clones keep drawing from the original's source or fork their own.
package action
