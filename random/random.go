// Package random provides the seedable random sources a simulation run owns
// and hands to its behaviors.
//
// A run creates one Source from its seed. Behaviors never own the source:
// they keep a reference and, when cloned onto a new node, derive the clone's
// source according to a StreamPolicy. SharedStream keeps the whole node
// population on one reproducible stream; ForkedStream gives every clone an
// independent stream seeded from the parent.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the random number generator contract used by behaviors.
// *rand.Rand from math/rand/v2 satisfies it, but is not safe for concurrent
// use; wrap shared sources with NewLockedSource.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Uint64 returns a uniform 64-bit value.
	Uint64() uint64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

var _ Source = (*rand.Rand)(nil)

// seedMix decorrelates the two PCG words derived from one seed.
const seedMix = 0x9e3779b97f4a7c15

// New returns an unsynchronized source seeded deterministically from seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedMix))
}

// LockedSource serializes access to an underlying Source.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

var _ Source = (*LockedSource)(nil)

// NewLockedSource returns a goroutine-safe source seeded from seed.
func NewLockedSource(seed uint64) *LockedSource {
	return &LockedSource{src: New(seed)}
}

// Wrap makes src safe for concurrent use. Already locked sources are returned as is.
func Wrap(src Source) Source {
	if l, ok := src.(*LockedSource); ok {
		return l
	}
	return &LockedSource{src: src}
}

// Float64 returns a uniform value in [0, 1).
func (l *LockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Uint64 returns a uniform 64-bit value.
func (l *LockedSource) Uint64() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uint64()
}

// IntN returns a uniform value in [0, n).
func (l *LockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Fork returns a new locked source seeded by two draws from parent. The
// parent advances by exactly two Uint64 draws.
func Fork(parent Source) Source {
	a, b := parent.Uint64(), parent.Uint64()
	return &LockedSource{src: rand.New(rand.NewPCG(a, b))}
}

// StreamPolicy selects how a cloned behavior obtains its random source.
type StreamPolicy int

const (
	// SharedStream makes clones draw from the same source as the original,
	// so one seed controls the entire run.
	SharedStream StreamPolicy = iota
	// ForkedStream gives each clone its own source forked from the original.
	ForkedStream
)

// String returns the string representation of the policy.
func (p StreamPolicy) String() string {
	switch p {
	case SharedStream:
		return "shared"
	case ForkedStream:
		return "forked"
	default:
		return "unknown"
	}
}

// Derive returns the source a clone should use given the original's source.
func (p StreamPolicy) Derive(src Source) Source {
	if p == ForkedStream {
		return Fork(src)
	}
	return src
}
