// Package environment provides an in-memory core.Environment: a map from node
// to position with radius based neighborhoods. The production environment
// (spatial index, physics) belongs to the engine; this implementation backs
// tests and small single-process runs.
package environment
