// Package agentsim provides a high-level façade over the batch runner and the
// behavior layer. Most applications interact with this package by:
//  1. Creating an AgentSim via New() (optionally overriding concurrency and logging)
//  2. Describing a batch (batch.NewSimulationsSet, batch.LoadYAMLFile, batch.NewGridSet)
//  3. Running it with RunBatch, building nodes and actions inside the RunFunc
//     and advancing them with Step
package agentsim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/agentsim/batch"
	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
	"github.com/hupe1980/agentsim/runner"
)

// Options configures the AgentSim instance.
type Options struct {
	// MaxConcurrentRuns limits how many runs of a batch execute at once.
	MaxConcurrentRuns int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentSim is the high-level façade aggregating the runner and logging.
type AgentSim struct {
	opts   Options
	runner *runner.Runner
}

// New creates a new AgentSim instance with optional overrides.
func New(optFns ...func(o *Options)) *AgentSim {
	opts := Options{
		MaxConcurrentRuns: 10,
		Logger:            logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	r := runner.New(func(o *runner.Options) {
		o.MaxConcurrentRuns = opts.MaxConcurrentRuns
		o.Logger = opts.Logger
	})

	return &AgentSim{opts: opts, runner: r}
}

// Logger returns the configured logger.
func (s *AgentSim) Logger() logging.Logger { return s.opts.Logger }

// RunBatch executes every run of set and returns the per-run results.
func (s *AgentSim) RunBatch(ctx context.Context, set *batch.SimulationsSet, fn runner.RunFunc) (*runner.Report, error) {
	return s.runner.Run(ctx, set, fn)
}

// RunBatchFile loads a YAML batch description from path and runs it.
func (s *AgentSim) RunBatchFile(ctx context.Context, path string, fn runner.RunFunc, optFns ...func(o *batch.Options)) (*runner.Report, error) {
	set, err := batch.LoadYAMLFile(path, optFns...)
	if err != nil {
		return nil, err
	}

	return s.runner.Run(ctx, set, fn)
}

// Cancel cancels a running simulation by run ID.
func (s *AgentSim) Cancel(runID string) error { return s.runner.Cancel(runID) }

// StepOptions configures a single Step.
type StepOptions struct {
	// ConcurrentLocal fans LOCAL actions out into one goroutine each. Only
	// enable it when actions do not share a random source (e.g. each node owns
	// a random.Fork of the run source); otherwise the draw order, and with it
	// the outcome of a seeded run, depends on scheduling.
	ConcurrentLocal bool
}

// WithConcurrentLocal runs the LOCAL actions of a step concurrently.
func WithConcurrentLocal() func(o *StepOptions) {
	return func(o *StepOptions) { o.ConcurrentLocal = true }
}

// Step executes one round of behavior for nodes. LOCAL actions run first, one
// at a time in node order unless WithConcurrentLocal is given; GLOBAL actions
// then run one at a time in node order. Every action is executed even when
// others fail; the errors are joined.
func Step(ctx context.Context, nodes []core.Node, optFns ...func(o *StepOptions)) error {
	opts := StepOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var (
		local  []core.Action
		global []core.Action
	)

	for _, n := range nodes {
		for _, a := range n.Actions() {
			if a.Context() == core.ContextLocal {
				local = append(local, a)
			} else {
				global = append(global, a)
			}
		}
	}

	var errs []error
	if opts.ConcurrentLocal {
		errs = runConcurrently(ctx, local)
	} else {
		for _, a := range local {
			if err := a.Execute(ctx); err != nil {
				errs = append(errs, fmt.Errorf("local action on node %s: %w", a.Node().ID(), err))
			}
		}
	}

	for _, a := range global {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := a.Execute(ctx); err != nil {
			errs = append(errs, fmt.Errorf("global action on node %s: %w", a.Node().ID(), err))
		}
	}

	return errors.Join(errs...)
}

// runConcurrently executes actions in parallel and returns their errors in
// action order.
func runConcurrently(ctx context.Context, actions []core.Action) []error {
	results := make([]error, len(actions))

	var wg sync.WaitGroup

	for i, a := range actions {
		wg.Add(1)
		go func(i int, a core.Action) {
			defer wg.Done()

			if err := a.Execute(ctx); err != nil {
				results[i] = fmt.Errorf("local action on node %s: %w", a.Node().ID(), err)
			}
		}(i, a)
	}

	wg.Wait()

	var errs []error
	for _, err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}
