package environment

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
	"github.com/hupe1980/agentsim/position"
)

// Options configures an InMemory environment.
type Options struct {
	// NeighborhoodRadius is the distance within which two nodes are
	// neighbors. Zero or less means no node has neighbors, not even one
	// sharing its position.
	NeighborhoodRadius float64
	// Logger defaults to NoOp if nil.
	Logger logging.Logger
}

type entry struct {
	node core.Node
	pos  position.Position
}

// InMemory is a volatile Environment storing node positions in a process
// local map. It is safe for concurrent access and best suited for tests or
// small single-process runs. Neighborhoods are computed by a linear scan.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]entry
	radius  float64
	logger  logging.Logger
}

var _ core.Environment = (*InMemory)(nil)

// NewInMemory constructs an empty environment.
func NewInMemory(optFns ...func(o *Options)) *InMemory {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &InMemory{entries: make(map[string]entry), radius: opts.NeighborhoodRadius, logger: opts.Logger}
}

// AddNode places n at p. Adding a node twice is an error.
func (e *InMemory) AddNode(n core.Node, p position.Position) error {
	if n == nil || p == nil {
		return fmt.Errorf("add node: node and position are required")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.entries[n.ID()]; ok {
		return fmt.Errorf("add node: node %s already present", n.ID())
	}
	if err := e.checkVariantLocked(p); err != nil {
		return fmt.Errorf("add node %s: %w", n.ID(), err)
	}
	e.entries[n.ID()] = entry{node: n, pos: p}
	e.logger.Debug("environment.add_node node_id=%s position=%s", n.ID(), p)
	return nil
}

// RemoveNode removes n from the environment.
func (e *InMemory) RemoveNode(n core.Node) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.entries[n.ID()]; !ok {
		return fmt.Errorf("remove node %s: %w", n.ID(), core.ErrNodeNotFound)
	}
	delete(e.entries, n.ID())
	return nil
}

// Position returns the current position of n.
func (e *InMemory) Position(n core.Node) (position.Position, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	en, ok := e.entries[n.ID()]
	if !ok {
		return nil, fmt.Errorf("position of %s: %w", n.ID(), core.ErrNodeNotFound)
	}
	return en.pos, nil
}

// MoveNodeToPosition relocates n. The new position must be of the same
// variant as the environment's positions.
func (e *InMemory) MoveNodeToPosition(n core.Node, p position.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, ok := e.entries[n.ID()]
	if !ok {
		return fmt.Errorf("move %s: %w", n.ID(), core.ErrNodeNotFound)
	}
	if _, err := en.pos.DistanceTo(p); err != nil {
		return fmt.Errorf("move %s: %w", n.ID(), err)
	}
	en.pos = p
	e.entries[n.ID()] = en
	return nil
}

// Neighborhood returns the nodes within the configured radius of n, excluding
// n, ordered by ID so iteration is reproducible.
func (e *InMemory) Neighborhood(n core.Node) ([]core.Node, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	center, ok := e.entries[n.ID()]
	if !ok {
		return nil, fmt.Errorf("neighborhood of %s: %w", n.ID(), core.ErrNodeNotFound)
	}
	out := []core.Node{}
	if e.radius <= 0 {
		return out, nil
	}
	for id, en := range e.entries {
		if id == n.ID() {
			continue
		}
		d, err := center.pos.DistanceTo(en.pos)
		if err != nil {
			return nil, err
		}
		if d <= e.radius {
			out = append(out, en.node)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// Nodes returns all nodes ordered by ID.
func (e *InMemory) Nodes() []core.Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]core.Node, 0, len(e.entries))
	for _, en := range e.entries {
		out = append(out, en.node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// NodesIn returns the nodes whose position f contains, ordered by ID.
func (e *InMemory) NodesIn(f position.Filter) []core.Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := []core.Node{}
	for _, en := range e.entries {
		if f.Contains(en.pos) {
			out = append(out, en.node)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// NodeCount returns the number of nodes.
func (e *InMemory) NodeCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.entries)
}

// checkVariantLocked rejects positions of a different variant than the ones
// already stored; caller must hold the lock.
func (e *InMemory) checkVariantLocked(p position.Position) error {
	for _, en := range e.entries {
		_, err := en.pos.DistanceTo(p)
		return err
	}
	return nil
}
