package runner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/gammazero/workerpool"

	"github.com/roach88/batchrun/internal/collector"
	"github.com/roach88/batchrun/internal/config"
)

// Target is one action applied to one project.
type Target struct {
	Action  config.Action
	Project config.Project
}

// String returns "action@project".
func (t Target) String() string {
	return t.Action.Name + "@" + t.Project.Name
}

// Targets expands a build into its targets, action-major in declaration
// order.
func Targets(b *config.Build) []Target {
	targets := make([]Target, 0, len(b.Actions)*len(b.Projects))
	for _, a := range b.Actions {
		for _, p := range b.Projects {
			targets = append(targets, Target{Action: a, Project: p})
		}
	}
	return targets
}

// Summary describes a finished run.
type Summary struct {
	Total      int // Targets in the build
	Ran        int // Targets that were started
	Failed     int // Targets that failed, suppressed or not
	Cancelled  int // Targets interrupted by cancellation; not failures
	Suppressed bool
}

// Succeeded returns the number of targets that ran to completion without
// failure.
func (s *Summary) Succeeded() int {
	return s.Ran - s.Failed - s.Cancelled
}

// Runner executes builds.
type Runner struct {
	Collector *collector.Collector
	Executor  Executor

	// Workers overrides the build's worker count when positive.
	Workers int

	Logger *slog.Logger
}

// New creates a runner reporting to c. A nil exec uses CommandExecutor.
func New(c *collector.Collector, exec Executor, logger *slog.Logger) *Runner {
	if exec == nil {
		exec = CommandExecutor{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Collector: c, Executor: exec, Logger: logger}
}

// Run applies every action of b to every project.
//
// With suppression off, Run returns the first target failure and skips the
// targets not yet started. With suppression on, failures are recorded in
// the collector and Run returns nil unless ctx is cancelled.
func (r *Runner) Run(ctx context.Context, b *config.Build) (*Summary, error) {
	targets := Targets(b)
	workers := b.Workers
	if r.Workers > 0 {
		workers = r.Workers
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	summary := &Summary{Total: len(targets), Suppressed: r.Collector.IsSuppressed()}
	before := r.Collector.Len()

	var (
		mu        sync.Mutex
		firstErr  error
		cancelled atomic.Int64
	)
	action := collector.Decorate(r.Collector, r.targetAction(runCtx, &cancelled))

	r.Logger.Info("run started", "build", b.Name, "targets", len(targets), "workers", workers, "suppressed", summary.Suppressed)

	wp := workerpool.New(workers)
	for _, tg := range targets {
		wp.Submit(func() {
			if runCtx.Err() != nil {
				return
			}
			mu.Lock()
			summary.Ran++
			mu.Unlock()

			err := safeCall(action, tg)
			if err == nil {
				return
			}
			mu.Lock()
			summary.Failed++
			if firstErr == nil {
				firstErr = err
				cancel()
			}
			mu.Unlock()
		})
	}
	wp.StopWait()

	summary.Cancelled = int(cancelled.Load())
	if summary.Suppressed {
		summary.Failed = r.Collector.Len() - before
	}

	r.Logger.Info("run finished", "build", b.Name, "ran", summary.Ran, "failed", summary.Failed, "cancelled", summary.Cancelled)

	if firstErr != nil {
		return summary, firstErr
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run cancelled: %w", err)
	}
	return summary, nil
}

// targetAction returns the undecorated action for a single target.
//
// A target that fails after ctx is done was interrupted by the run itself
// (fail-fast or shutdown). It is counted in cancelled and reported as nil so
// it is neither recorded in the collector nor counted as a failure.
func (r *Runner) targetAction(ctx context.Context, cancelled *atomic.Int64) collector.Action[Target] {
	return func(tg Target) error {
		logger := r.Logger.With("target", tg.String())
		logger.Debug("target started", "dir", tg.Project.Dir)

		out, err := r.Executor.Exec(ctx, tg.Project.Dir, tg.Action.Run)
		if err != nil && ctx.Err() != nil {
			logger.Debug("target cancelled", "error", err)
			cancelled.Add(1)
			return nil
		}
		if err != nil {
			logger.Debug("target failed", "error", err)
			return &TargetError{
				Action:  tg.Action.Name,
				Project: tg.Project.Name,
				Output:  outputTail(out),
				Err:     err,
			}
		}
		logger.Debug("target finished")
		return nil
	}
}

// safeCall keeps a panicking, undecorated action from taking down the
// worker pool; the panic becomes the run's error.
func safeCall(action collector.Action[Target], tg Target) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TargetError{
				Action:  tg.Action.Name,
				Project: tg.Project.Name,
				Err:     &collector.PanicError{Value: r, Stack: debug.Stack()},
			}
		}
	}()
	return action(tg)
}
