package executor

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
)

// ExecutorBuilderOption is a functional option for configuring an Executor via NewExecutor.
type ExecutorBuilderOption func(*executor)

// WithWorkers sets the number of worker goroutines used to run the passes of one level.
// Values below 1 are clamped to 1.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - ExecutorBuilderOption: a function that applies the worker count to an executor
func WithWorkers(n int) ExecutorBuilderOption {
	return func(e *executor) {
		e.workers = max(n, 1)
	}
}

// WithProfiler sets the profiler that receives per-pass timings.
//
// Parameters:
//   - p: the profiler instance
//
// Returns:
//   - ExecutorBuilderOption: a function that applies the profiler to an executor
func WithProfiler(p *profiler.Profiler) ExecutorBuilderOption {
	return func(e *executor) {
		e.profiler = p
	}
}

// WithLogger sets the logger used for pass failures.
func WithLogger(logger *slog.Logger) ExecutorBuilderOption {
	return func(e *executor) {
		e.logger = logger
	}
}
