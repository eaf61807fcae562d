// Package batch describes sets of independent simulation runs that share a
// general configuration, and estimates how expensive a set is so a
// dispatcher can order, split and balance work.
//
// Sets are immutable once built. They can be loaded from YAML, expanded from
// a parameter grid, concatenated and split.
package batch
