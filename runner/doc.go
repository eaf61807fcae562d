// Package runner executes batches of independent simulation runs.
//
// A Runner takes a batch.SimulationsSet and a RunFunc and executes every run
// in its own goroutine, bounded by MaxConcurrentRuns. Each run receives a
// unique ID, its resolved parameters and a random source seeded from the
// batch's seed policy, so runs never share mutable state.
//
// Failures are isolated: an error or panic in one run is recorded in that
// run's Result and never aborts its siblings. Results are reported in run
// order. Cancelling the parent context skips runs that have not started;
// individual runs can be cancelled by ID with Cancel.
package runner
