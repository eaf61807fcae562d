package strategy

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"sync"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/position"
)

// PositionFactory builds a position of one variant from two components. It
// is the only variant specific part of FollowTarget.
type PositionFactory func(a, b float64) (position.Position, error)

// PlaneFactory interprets the components as (x, y).
func PlaneFactory(x, y float64) (position.Position, error) { return position.NewEuclidean2D(x, y) }

// MapFactory interprets the components as (latitude, longitude).
func MapFactory(lat, lon float64) (position.Position, error) { return position.NewLatLong(lat, lon) }

// FollowTarget reads a target molecule from its node and turns it into a
// position. It keeps no coordinate state: every call re-reads the molecule.
type FollowTarget struct {
	env     core.PositionLookup
	target  core.Molecule
	create  PositionFactory
	variant position.Position

	mu   sync.RWMutex
	node core.Node
}

var _ core.TargetSelectionStrategy = (*FollowTarget)(nil)

// NewFollowTarget creates a strategy for node reading target and building
// positions with create. env is shared and never mutated.
func NewFollowTarget(env core.PositionLookup, node core.Node, target core.Molecule, create PositionFactory) (*FollowTarget, error) {
	switch {
	case env == nil:
		return nil, errors.New("follow target: environment is required")
	case node == nil:
		return nil, errors.New("follow target: node is required")
	case target == "":
		return nil, errors.New("follow target: target molecule is required")
	case create == nil:
		return nil, errors.New("follow target: position factory is required")
	}
	variant, err := create(0, 0)
	if err != nil {
		return nil, fmt.Errorf("follow target: position factory rejects the origin: %w", err)
	}
	return &FollowTarget{env: env, node: node, target: target, create: create, variant: variant}, nil
}

// NewFollowTargetOnPlane follows targets expressed as (x, y).
func NewFollowTargetOnPlane(env core.PositionLookup, node core.Node, target core.Molecule) (*FollowTarget, error) {
	return NewFollowTarget(env, node, target, PlaneFactory)
}

// NewFollowTargetOnMap follows targets expressed as (latitude, longitude).
func NewFollowTargetOnMap(env core.PositionLookup, node core.Node, target core.Molecule) (*FollowTarget, error) {
	return NewFollowTarget(env, node, target, MapFactory)
}

// Node returns the node the strategy currently reads from.
func (s *FollowTarget) Node() core.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node
}

// TargetMolecule returns the molecule holding the target.
func (s *FollowTarget) TargetMolecule() core.Molecule { return s.target }

// Environment returns the shared environment.
func (s *FollowTarget) Environment() core.PositionLookup { return s.env }

// Rebind makes this instance read from n. Clones are unaffected.
func (s *FollowTarget) Rebind(n core.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.node = n
}

// TargetPosition reads the target molecule and builds a position from its
// first two numeric components. A missing molecule yields ErrMissingTarget,
// an uninterpretable one ErrMalformedTarget, both wrapped in *core.TargetError.
func (s *FollowTarget) TargetPosition() (position.Position, error) {
	n := s.Node()
	v, ok := n.Concentration(s.target)
	if !ok || v == nil {
		return nil, &core.TargetError{NodeID: n.ID(), Molecule: s.target, Err: core.ErrMissingTarget}
	}
	if p, ok := v.(position.Position); ok && !position.SameVariant(p, s.variant) {
		err := fmt.Errorf("%w: position is %T, strategy builds %T", core.ErrMalformedTarget, p, s.variant)
		return nil, &core.TargetError{NodeID: n.ID(), Molecule: s.target, Value: v, Err: err}
	}
	a, b, err := components(v)
	if err != nil {
		return nil, &core.TargetError{NodeID: n.ID(), Molecule: s.target, Value: v, Err: fmt.Errorf("%w: %v", core.ErrMalformedTarget, err)}
	}
	p, err := s.create(a, b)
	if err != nil {
		return nil, &core.TargetError{NodeID: n.ID(), Molecule: s.target, Value: v, Err: fmt.Errorf("%w: %v", core.ErrMalformedTarget, err)}
	}
	return p, nil
}

// TargetOrCurrentPosition behaves like TargetPosition but, when the node has
// no target, returns the node's current position so it stays in place.
func (s *FollowTarget) TargetOrCurrentPosition() (position.Position, error) {
	p, err := s.TargetPosition()
	if errors.Is(err, core.ErrMissingTarget) {
		return s.env.Position(s.Node())
	}
	return p, err
}

// CloneIfNeeded returns a strategy bound to dest sharing the environment,
// target molecule and factory.
func (s *FollowTarget) CloneIfNeeded(dest core.Node) (core.TargetSelectionStrategy, error) {
	return NewFollowTarget(s.env, dest, s.target, s.create)
}

var number = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// components extracts the first two numeric components from a molecule value.
// Only strings are parsed as text.
func components(v any) (float64, float64, error) {
	switch t := v.(type) {
	case position.Position:
		return pair(t.Coordinates())
	case [2]float64:
		return t[0], t[1], nil
	case []float64:
		return pair(t)
	case string:
		return parse(t)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		vals := make([]float64, 0, 2)
		for i := 0; i < rv.Len() && len(vals) < 2; i++ {
			f, ok := core.AsFloat(rv.Index(i).Interface())
			if !ok {
				return 0, 0, fmt.Errorf("component %d is %T, not a number", i, rv.Index(i).Interface())
			}
			vals = append(vals, f)
		}
		return pair(vals)
	}
	return 0, 0, fmt.Errorf("unsupported target type %T", v)
}

func pair(vals []float64) (float64, float64, error) {
	if len(vals) < 2 {
		return 0, 0, fmt.Errorf("need 2 components, got %d", len(vals))
	}
	return vals[0], vals[1], nil
}

func parse(s string) (float64, float64, error) {
	found := number.FindAllString(s, 2)
	vals := make([]float64, 0, len(found))
	for _, f := range found {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, err
		}
		vals = append(vals, x)
	}
	return pair(vals)
}
