package node

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
)

// Options configures node construction.
type Options struct {
	// ID overrides the generated identifier.
	ID string
	// Molecules seeds the molecule bag. Values are deep copied.
	Molecules map[core.Molecule]any
	// Logger defaults to a NoOp logger if nil.
	Logger logging.Logger
}

// GenericNode is a node with a molecule bag and attached behaviors. All
// exported methods are goroutine-safe.
type GenericNode struct {
	id     string
	attrs  *attributes
	logger logging.Logger

	mu         sync.RWMutex
	actions    []core.Action
	strategies []core.TargetSelectionStrategy

	duplicates atomic.Uint64
}

var _ core.Node = (*GenericNode)(nil)

// NewGenericNode constructs a node with a fresh uuid unless Options.ID is set.
func NewGenericNode(optFns ...func(o *Options)) *GenericNode {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return newGenericNode(opts)
}

func newGenericNode(opts Options) *GenericNode {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	attrs := newAttributes()
	for k, v := range opts.Molecules {
		attrs.state[k] = deepCopy(v)
	}
	return &GenericNode{id: opts.ID, attrs: attrs, logger: opts.Logger}
}

// ID returns the node identifier.
func (n *GenericNode) ID() string { return n.id }

// Concentration returns the value stored for m.
func (n *GenericNode) Concentration(m core.Molecule) (any, bool) { return n.attrs.get(m) }

// SetConcentration stores v for m.
func (n *GenericNode) SetConcentration(m core.Molecule, v any) { n.attrs.set(m, v) }

// RemoveConcentration deletes m.
func (n *GenericNode) RemoveConcentration(m core.Molecule) bool { return n.attrs.remove(m) }

// Contains reports whether m is present.
func (n *GenericNode) Contains(m core.Molecule) bool {
	_, ok := n.attrs.get(m)
	return ok
}

// Molecules returns a deep copy of the molecule bag.
func (n *GenericNode) Molecules() map[core.Molecule]any { return n.attrs.snapshot() }

// MoleculeCount returns the number of molecules held.
func (n *GenericNode) MoleculeCount() int { return n.attrs.len() }

// AddAction attaches a.
func (n *GenericNode) AddAction(a core.Action) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.actions = append(n.actions, a)
}

// Actions returns a copy of the attached actions for safe iteration.
func (n *GenericNode) Actions() []core.Action {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]core.Action, len(n.actions))
	copy(out, n.actions)
	return out
}

// AddStrategy attaches s.
func (n *GenericNode) AddStrategy(s core.TargetSelectionStrategy) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.strategies = append(n.strategies, s)
}

// Strategies returns a copy of the attached strategies.
func (n *GenericNode) Strategies() []core.TargetSelectionStrategy {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]core.TargetSelectionStrategy, len(n.strategies))
	copy(out, n.strategies)
	return out
}

// Duplicate returns a new GenericNode with copied molecules and cloned
// behaviors. The n-th duplicate of a node is named "<id>-<n>", so seeded runs
// that order nodes by ID stay reproducible.
func (n *GenericNode) Duplicate() (core.Node, error) {
	dest := &GenericNode{id: n.duplicateID(), attrs: n.attrs.clone(), logger: n.logger}
	if err := duplicateBehaviors(n, dest, n.logger); err != nil {
		return nil, err
	}
	return dest, nil
}

func (n *GenericNode) duplicateID() string {
	return n.id + "-" + strconv.FormatUint(n.duplicates.Add(1), 10)
}

func (n *GenericNode) String() string { return fmt.Sprintf("Node#%s", n.id) }

// duplicateBehaviors clones every strategy and then every action of src onto
// dest. Strategies go first so actions can bind to the clones dest already
// carries. dest is not published until this returns nil.
func duplicateBehaviors(src, dest core.Node, logger logging.Logger) error {
	strategies, err := core.CloneAll(src.Strategies(), dest, core.CloneStrategy)
	if err != nil {
		return fmt.Errorf("duplicate node %s: clone strategy: %w", src.ID(), err)
	}
	for _, s := range strategies {
		dest.AddStrategy(s)
	}
	actions, err := core.CloneAll(src.Actions(), dest, core.CloneAction)
	if err != nil {
		return fmt.Errorf("duplicate node %s: clone action: %w", src.ID(), err)
	}
	for _, a := range actions {
		dest.AddAction(a)
	}

	if sl, ok := logger.(*logging.SimLogger); ok {
		sl.LogDuplicate(src.ID(), dest.ID(), len(actions), len(strategies))
	} else {
		logger.Debug("node duplicated source_node=%s dest_node=%s", src.ID(), dest.ID())
	}
	return nil
}
