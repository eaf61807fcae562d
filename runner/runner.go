package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentsim/batch"
	"github.com/hupe1980/agentsim/logging"
	"github.com/hupe1980/agentsim/random"
)

var (
	// ErrRunPanicked wraps a panic recovered from a RunFunc.
	ErrRunPanicked = errors.New("runner: run panicked")
	// ErrRunNotFound is returned by Cancel for unknown or finished runs.
	ErrRunNotFound = errors.New("runner: run not found")
)

// Run is everything a single simulation needs to execute.
type Run struct {
	// ID uniquely identifies this execution.
	ID string
	// Index is the position of the run in its batch.
	Index int
	// Seed is the effective seed after the batch's seed policy.
	Seed int64
	// General is the batch-wide configuration.
	General batch.GeneralSimulationConfig
	// Config is the run's own configuration.
	Config batch.SimulationConfig
	// Parameters are the general parameters overlaid with the run variables.
	Parameters map[string]float64
	// Random is a source seeded with Seed, owned by this run.
	Random random.Source
	// Logger is scoped to the run when the runner logs through a SimLogger.
	Logger logging.Logger
}

// RunFunc executes one simulation. It must honor ctx cancellation.
type RunFunc func(ctx context.Context, run Run) error

// Result is the outcome of one run.
type Result struct {
	RunID    string
	Index    int
	Seed     int64
	Duration time.Duration
	Err      error
}

// Report collects the results of a batch in run order.
type Report struct {
	BatchID    string
	Complexity batch.Complexity
	Duration   time.Duration
	Results    []Result
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err joins every run error, or returns nil when all runs succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("run %d (%s): %w", res.Index, res.RunID, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Options holds configuration overrides passed to New().
type Options struct {
	// MaxConcurrentRuns limits how many runs execute at once.
	MaxConcurrentRuns int
	// Logger receives run and batch lifecycle records.
	Logger logging.Logger
}

// Runner executes the runs of a SimulationsSet concurrently. Public methods
// are safe for concurrent use.
type Runner struct {
	maxConcurrentRuns int
	logger            logging.Logger

	activeRuns map[string]context.CancelFunc
	mu         sync.RWMutex
}

// New constructs a Runner with optional overrides.
func New(optFns ...func(o *Options)) *Runner {
	opts := Options{
		MaxConcurrentRuns: 10,
		Logger:            logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxConcurrentRuns <= 0 {
		opts.MaxConcurrentRuns = 1
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Runner{
		maxConcurrentRuns: opts.MaxConcurrentRuns,
		logger:            opts.Logger,
		activeRuns:        make(map[string]context.CancelFunc),
	}
}

// Run executes every run of set and blocks until all have finished. A failing
// or panicking run never stops its siblings. Once ctx is done, runs that have
// not started yet are skipped and report ctx.Err().
func (r *Runner) Run(ctx context.Context, set *batch.SimulationsSet, fn RunFunc) (*Report, error) {
	if set == nil {
		return nil, fmt.Errorf("runner: nil simulations set")
	}

	if fn == nil {
		return nil, fmt.Errorf("runner: nil run function")
	}

	elapsed := r.timer("batch " + set.ID())
	results := make([]Result, set.Len())
	sem := make(chan struct{}, r.maxConcurrentRuns)

	var wg sync.WaitGroup

	for i := 0; i < set.Len(); i++ {
		run := r.prepare(set, i)
		results[i] = Result{RunID: run.ID, Index: i, Seed: run.Seed}

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		// select picks at random when both cases are ready.
		if err := ctx.Err(); err != nil {
			<-sem
			results[i].Err = err
			continue
		}

		wg.Add(1)

		go func(run Run) {
			defer func() {
				<-sem
				wg.Done()
			}()

			results[run.Index] = r.execute(ctx, run, fn)
		}(run)
	}

	wg.Wait()

	report := &Report{
		BatchID:    set.ID(),
		Complexity: set.ComputeComplexity(),
		Duration:   elapsed(),
		Results:    results,
	}

	failed := len(report.Failed())
	if sl, ok := r.logger.(*logging.SimLogger); ok {
		sl.LogBatch(set.ID(), set.Len(), failed, report.Duration)
	} else {
		r.logger.Info("batch finished batch_id=%s runs=%d failed=%d duration=%s", set.ID(), set.Len(), failed, report.Duration)
	}

	return report, nil
}

// Cancel cancels a running run by ID.
func (r *Runner) Cancel(runID string) error {
	r.mu.RLock()
	cancel, exists := r.activeRuns[runID]
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	cancel()

	return nil
}

// ActiveRuns returns the IDs of the runs currently executing, sorted.
func (r *Runner) ActiveRuns() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.activeRuns))
	for id := range r.activeRuns {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func (r *Runner) prepare(set *batch.SimulationsSet, i int) Run {
	general := set.GeneralConfig()
	cfg := set.Run(i)
	seed := set.Seed(i)
	id := uuid.NewString()

	var logger logging.Logger = r.logger
	if sl, ok := r.logger.(*logging.SimLogger); ok {
		logger = sl.WithRun(id)
	}

	return Run{
		ID:         id,
		Index:      i,
		Seed:       seed,
		General:    general,
		Config:     cfg,
		Parameters: cfg.Resolve(general),
		Random:     random.NewLockedSource(uint64(seed)),
		Logger:     logger,
	}
}

func (r *Runner) execute(ctx context.Context, run Run, fn RunFunc) (res Result) {
	runCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	r.activeRuns[run.ID] = cancel
	r.mu.Unlock()

	elapsed := r.timer("run " + run.ID)
	res = Result{RunID: run.ID, Index: run.Index, Seed: run.Seed}

	defer func() {
		if rec := recover(); rec != nil {
			res.Err = fmt.Errorf("%w: %v", ErrRunPanicked, rec)
			if sl, ok := r.logger.(*logging.SimLogger); ok {
				sl.WithRun(run.ID).ErrorWithStack(res.Err, "run %s panicked", run.ID)
			} else {
				r.logger.Error("run panicked run_id=%s panic=%v", run.ID, rec)
			}
		}

		res.Duration = elapsed()

		r.mu.Lock()
		delete(r.activeRuns, run.ID)
		r.mu.Unlock()
		cancel()

		if sl, ok := r.logger.(*logging.SimLogger); ok {
			sl.LogRun(run.ID, run.Seed, res.Duration, res.Err)
		} else {
			r.logger.Debug("run finished run_id=%s seed=%d duration=%s err=%v", run.ID, run.Seed, res.Duration, res.Err)
		}
	}()

	res.Err = fn(runCtx, run)

	return res
}

// timer measures op, logging the duration through SimLogger.StartTimer when
// available.
func (r *Runner) timer(op string) func() time.Duration {
	if sl, ok := r.logger.(*logging.SimLogger); ok {
		return sl.StartTimer(op)
	}
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}
