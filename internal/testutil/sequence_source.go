package testutil

import "sync"

// SequenceSource is a deterministic random.Source replaying fixed values.
// Float64 cycles through Floats; IntN cycles through Ints (reduced modulo n);
// Uint64 returns an incrementing counter. Safe for concurrent use.
type SequenceSource struct {
	Floats []float64
	Ints   []int

	mu      sync.Mutex
	fi, ii  int
	counter uint64
}

// NewSequenceSource returns a source replaying floats.
func NewSequenceSource(floats ...float64) *SequenceSource {
	return &SequenceSource{Floats: floats}
}

// Float64 returns the next float in the sequence (0 when empty).
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// IntN returns the next int in the sequence modulo n (0 when empty).
func (s *SequenceSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	return ((v % n) + n) % n
}

// Uint64 returns 1, 2, 3, ...
func (s *SequenceSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return s.counter
}

// Draws returns how many floats have been consumed.
func (s *SequenceSource) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fi
}
