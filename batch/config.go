package batch

import (
	"fmt"
	"maps"
)

// SeedPolicy selects how each run's seed is obtained.
type SeedPolicy string

const (
	// SeedPerRun uses SimulationConfig.Seed as is.
	SeedPerRun SeedPolicy = "per_run"
	// SeedDerived derives run i's seed as GeneralSimulationConfig.Seed + i,
	// ignoring per-run seeds.
	SeedDerived SeedPolicy = "derived"
)

// GeneralSimulationConfig holds the parameters shared by every run in a batch.
type GeneralSimulationConfig struct {
	// Model names the model variant every run loads.
	Model string `json:"model" yaml:"model"`
	// EndStep stops each run after this many steps (0 = unbounded).
	EndStep int64 `json:"end_step,omitempty" yaml:"end_step,omitempty"`
	// EndTime stops each run at this simulated time (0 = unbounded).
	EndTime float64 `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	// SeedPolicy defaults to SeedPerRun.
	SeedPolicy SeedPolicy `json:"seed_policy,omitempty" yaml:"seed_policy,omitempty"`
	// Seed is the base seed for SeedDerived.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// Parameters are defaults every run may override.
	Parameters map[string]float64 `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// Dependencies maps resource names to locations the workers must fetch.
	Dependencies map[string]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Validate checks the shared configuration.
func (g GeneralSimulationConfig) Validate() error {
	switch g.SeedPolicy {
	case "", SeedPerRun, SeedDerived:
	default:
		return fmt.Errorf("unknown seed policy %q", g.SeedPolicy)
	}
	if g.EndStep < 0 || g.EndTime < 0 {
		return fmt.Errorf("end step and end time must not be negative")
	}
	return nil
}

// Equal reports whether g and o describe the same shared configuration.
func (g GeneralSimulationConfig) Equal(o GeneralSimulationConfig) bool {
	return g.Model == o.Model &&
		g.EndStep == o.EndStep &&
		g.EndTime == o.EndTime &&
		g.policy() == o.policy() &&
		g.Seed == o.Seed &&
		maps.Equal(g.Parameters, o.Parameters) &&
		maps.Equal(g.Dependencies, o.Dependencies)
}

func (g GeneralSimulationConfig) policy() SeedPolicy {
	if g.SeedPolicy == "" {
		return SeedPerRun
	}
	return g.SeedPolicy
}

func (g GeneralSimulationConfig) clone() GeneralSimulationConfig {
	g.Parameters = maps.Clone(g.Parameters)
	g.Dependencies = maps.Clone(g.Dependencies)
	return g
}

// SimulationConfig describes one independent run.
type SimulationConfig struct {
	// Seed initializes the run's random source under SeedPerRun.
	Seed int64 `json:"seed" yaml:"seed"`
	// Variables override GeneralSimulationConfig.Parameters for this run.
	Variables map[string]float64 `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Resolve returns the effective parameters of the run: the general
// parameters overlaid with the run's variables.
func (s SimulationConfig) Resolve(g GeneralSimulationConfig) map[string]float64 {
	out := make(map[string]float64, len(g.Parameters)+len(s.Variables))
	maps.Copy(out, g.Parameters)
	maps.Copy(out, s.Variables)
	return out
}

func (s SimulationConfig) clone() SimulationConfig {
	s.Variables = maps.Clone(s.Variables)
	return s
}
