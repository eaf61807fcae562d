package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTarget is returned when a node lacks the target molecule a
	// strategy reads. Callers may skip the node's movement for this step.
	ErrMissingTarget = errors.New("target molecule not found")

	// ErrMalformedTarget is returned when the target molecule is present but
	// cannot be interpreted as two numeric components.
	ErrMalformedTarget = errors.New("malformed target")

	// ErrUnsupportedCapability is returned at construction time when a
	// behavior is attached to a node lacking a required capability. It
	// signals a wiring mistake and should abort setup.
	ErrUnsupportedCapability = errors.New("unsupported node capability")

	// ErrNodeNotFound is returned by environments for unknown nodes.
	ErrNodeNotFound = errors.New("node not found")
)

// TargetError describes a failed target read for one node.
type TargetError struct {
	NodeID   string
	Molecule Molecule
	Value    any
	Err      error
}

func (e *TargetError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("node %s: target %q (%v): %v", e.NodeID, e.Molecule, e.Value, e.Err)
	}
	return fmt.Sprintf("node %s: target %q: %v", e.NodeID, e.Molecule, e.Err)
}

// Unwrap returns the underlying cause so errors.Is works with the sentinels.
func (e *TargetError) Unwrap() error { return e.Err }
