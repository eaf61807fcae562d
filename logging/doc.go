// Package logging provides a minimal logging interface and adapters for agentsim.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that nodes, the batch runner and behaviors use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - SimLogger with node / run scoped attributes
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	r := runner.New(func(o *runner.Options) { o.Logger = logger })
//
// The interface is kept minimal so any structured logger can be plugged in.
package logging
