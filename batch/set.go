package batch

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

var (
	// ErrEmptyBatch is returned when a batch has no runs.
	ErrEmptyBatch = errors.New("batch: no simulation runs")
	// ErrInvalidWeight is returned when a WeightFunc yields a negative weight.
	ErrInvalidWeight = errors.New("batch: invalid run weight")
	// ErrIncompatibleBatches is returned by Concat when the shared configurations differ.
	ErrIncompatibleBatches = errors.New("batch: incompatible general configurations")
)

// WeightFunc estimates the relative cost of one run in integral cost units.
// Fractional estimates should be scaled, for example with CostUnits.
type WeightFunc func(general GeneralSimulationConfig, run SimulationConfig) int64

// DefaultWeight weighs every run by its step budget, or 1 when the budget is
// unbounded.
func DefaultWeight(general GeneralSimulationConfig, _ SimulationConfig) int64 {
	if general.EndStep > 0 {
		return general.EndStep
	}
	return 1
}

// CostUnits converts a fractional cost to integral units of size 1/scale,
// rounding to the nearest unit. NaN and infinite costs map to -1 so the set
// constructor rejects them.
func CostUnits(cost float64, scale int64) int64 {
	v := math.Round(cost * float64(scale))
	if math.IsNaN(v) || math.IsInf(v, 0) || v >= math.MaxInt64 || v < math.MinInt64 {
		return -1
	}
	return int64(v)
}

// Options configures a SimulationsSet.
type Options struct {
	// ID identifies the batch. A random UUID is generated when empty.
	ID string
	// WeightFunc defaults to DefaultWeight.
	WeightFunc WeightFunc
}

// WithWeightFunc overrides the per-run weight estimate.
func WithWeightFunc(fn WeightFunc) func(o *Options) {
	return func(o *Options) { o.WeightFunc = fn }
}

// WithID sets the batch identifier.
func WithID(id string) func(o *Options) {
	return func(o *Options) { o.ID = id }
}

// SimulationsSet is an immutable batch descriptor: a shared configuration
// plus the list of runs to dispatch. It is safe for concurrent use.
type SimulationsSet struct {
	id         string
	general    GeneralSimulationConfig
	runs       []SimulationConfig
	weights    []int64
	weightFn   WeightFunc
	complexity Complexity
	// seedOffset keeps derived seeds stable across Split.
	seedOffset int64
}

// NewSimulationsSet creates a batch descriptor. Both inputs are deep-copied.
func NewSimulationsSet(general GeneralSimulationConfig, runs []SimulationConfig, optFns ...func(o *Options)) (*SimulationsSet, error) {
	opts := Options{
		WeightFunc: DefaultWeight,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(runs) == 0 {
		return nil, ErrEmptyBatch
	}

	if err := general.Validate(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	if opts.WeightFunc == nil {
		opts.WeightFunc = DefaultWeight
	}

	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}

	s := &SimulationsSet{
		id:       opts.ID,
		general:  general.clone(),
		runs:     make([]SimulationConfig, len(runs)),
		weights:  make([]int64, len(runs)),
		weightFn: opts.WeightFunc,
	}

	for i, r := range runs {
		w := opts.WeightFunc(s.general, r)
		if w < 0 {
			return nil, fmt.Errorf("%w: run %d weighs %d", ErrInvalidWeight, i, w)
		}
		s.runs[i] = r.clone()
		s.weights[i] = w
		s.complexity.Weight += w
	}

	s.complexity.Units = len(runs)

	return s, nil
}

// ID returns the batch identifier.
func (s *SimulationsSet) ID() string { return s.id }

// Len returns the number of runs.
func (s *SimulationsSet) Len() int { return len(s.runs) }

// GeneralConfig returns a copy of the shared configuration.
func (s *SimulationsSet) GeneralConfig() GeneralSimulationConfig { return s.general.clone() }

// RunConfigs returns a copy of the per-run configurations.
func (s *SimulationsSet) RunConfigs() []SimulationConfig {
	out := make([]SimulationConfig, len(s.runs))
	for i, r := range s.runs {
		out[i] = r.clone()
	}
	return out
}

// Run returns a copy of the i-th run configuration.
func (s *SimulationsSet) Run(i int) SimulationConfig { return s.runs[i].clone() }

// Seed returns the effective seed of run i under the batch's seed policy.
func (s *SimulationsSet) Seed(i int) int64 {
	if s.general.policy() == SeedDerived {
		return s.general.Seed + s.seedOffset + int64(i)
	}
	return s.runs[i].Seed
}

// Weight returns the cost weight of run i.
func (s *SimulationsSet) Weight(i int) int64 { return s.weights[i] }

// ComputeComplexity returns the cost estimate of the whole batch.
func (s *SimulationsSet) ComputeComplexity() Complexity { return s.complexity }

// Concat returns a new batch with other's runs appended after s's runs. The
// result keeps s's weight function.
func (s *SimulationsSet) Concat(other *SimulationsSet) (*SimulationsSet, error) {
	if other == nil {
		return nil, fmt.Errorf("batch: nil batch")
	}

	if !s.general.Equal(other.general) {
		return nil, ErrIncompatibleBatches
	}

	runs := make([]SimulationConfig, 0, len(s.runs)+len(other.runs))
	runs = append(runs, s.runs...)
	runs = append(runs, other.runs...)

	out, err := NewSimulationsSet(s.general, runs, WithWeightFunc(s.weightFn))
	if err != nil {
		return nil, err
	}
	out.seedOffset = s.seedOffset

	return out, nil
}

// Split partitions the batch into at most n contiguous sub-batches of nearly
// equal length. The complexities of the parts sum to the whole.
func (s *SimulationsSet) Split(n int) ([]*SimulationsSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("batch: split count must be positive, got %d", n)
	}

	if n > len(s.runs) {
		n = len(s.runs)
	}

	parts := make([]*SimulationsSet, 0, n)
	size, rem := len(s.runs)/n, len(s.runs)%n
	start := 0

	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}

		part, err := NewSimulationsSet(s.general, s.runs[start:end],
			WithWeightFunc(s.weightFn),
			WithID(fmt.Sprintf("%s-%d", s.id, i)),
		)
		if err != nil {
			return nil, err
		}
		part.seedOffset = s.seedOffset + int64(start)

		parts = append(parts, part)
		start = end
	}

	return parts, nil
}

func (s *SimulationsSet) String() string {
	return fmt.Sprintf("SimulationsSet{id=%s, model=%s, runs=%d}", s.id, s.general.Model, len(s.runs))
}
