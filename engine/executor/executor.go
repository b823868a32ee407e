package executor

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-graph/engine/render_graph"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// executor is the implementation of the Executor interface.
type executor struct {
	// running guards a single in-flight execution; Execute only ever TryLocks it.
	running sync.Mutex
	// graphMu guards graph swaps against readers.
	graphMu sync.RWMutex

	graph render_graph.RenderGraph
	frame uint64

	// pool manages a bounded set of reusable goroutines for the passes of one dependency level.
	// Workers persist across frames, avoiding per-frame goroutine spawn/teardown overhead.
	pool    worker.DynamicWorkerPool
	workers int

	profiler *profiler.Profiler
	logger   *slog.Logger
}

// Executor runs the pass bodies of a RenderGraph level by level.
//
// Passes in one dependency level have no ordering between them and run concurrently on a worker pool;
// a level starts only after every pass of the previous level has returned. An executor runs at most one
// execution at a time: overlapping calls fail fast with ErrExecutorBusy instead of queueing.
type Executor interface {
	// Execute runs one frame of the current render graph.
	// The first failing pass (in execution order within its level) stops the frame after its level
	// completes and is returned as a *PassError. Panics in pass bodies are recovered into errors.
	// Passes without a body are skipped.
	//
	// Parameters:
	//   - deltaTime: the frame delta passed through to every PassContext
	//
	// Returns:
	//   - error: ErrExecutorBusy, ErrNoRenderGraph, or a *PassError
	Execute(deltaTime float32) error

	// SetRenderGraph swaps the graph used by subsequent executions.
	// An execution already in flight finishes on the graph it started with.
	//
	// Parameters:
	//   - g: the new render graph
	SetRenderGraph(g render_graph.RenderGraph)

	// RenderGraph returns the current render graph.
	//
	// Returns:
	//   - render_graph.RenderGraph: the current graph, or nil if none is set
	RenderGraph() render_graph.RenderGraph

	// Frame returns the number of executions started so far.
	//
	// Returns:
	//   - uint64: the frame counter
	Frame() uint64
}

var _ Executor = &executor{}

// NewExecutor creates a new Executor for g with the provided options applied.
// Worker count defaults to one less than the number of CPUs, minimum 1.
//
// Parameters:
//   - g: the render graph to execute (may be nil and set later)
//   - options: a variadic list of ExecutorBuilderOption functions to configure the Executor
//
// Returns:
//   - Executor: the new executor
func NewExecutor(g render_graph.RenderGraph, options ...ExecutorBuilderOption) Executor {
	e := &executor{
		graph:   g,
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(e)
	}

	// Queue size of 256 accommodates wide levels with headroom.
	e.pool = worker.NewDynamicWorkerPool(e.workers, 256, 1*time.Second)
	return e
}

func (e *executor) SetRenderGraph(g render_graph.RenderGraph) {
	e.graphMu.Lock()
	defer e.graphMu.Unlock()
	e.graph = g
}

func (e *executor) RenderGraph() render_graph.RenderGraph {
	e.graphMu.RLock()
	defer e.graphMu.RUnlock()
	return e.graph
}

func (e *executor) Frame() uint64 {
	e.graphMu.RLock()
	defer e.graphMu.RUnlock()
	return e.frame
}

func (e *executor) Execute(deltaTime float32) error {
	if !e.running.TryLock() {
		return ErrExecutorBusy
	}
	defer e.running.Unlock()

	e.graphMu.Lock()
	g := e.graph
	frame := e.frame
	e.frame++
	e.graphMu.Unlock()

	if g == nil {
		return ErrNoRenderGraph
	}

	logger := common.Coalesce(e.logger, common.Logger())
	passes := g.Passes()

	for level, indices := range g.Levels() {
		errs := make([]error, len(indices))

		if len(indices) == 1 {
			errs[0] = e.runPass(g, passes[indices[0]], level, frame, deltaTime)
		} else {
			// A WaitGroup provides the per-level barrier; pool.Wait() would block until workers idle-exit.
			var wg sync.WaitGroup
			for k, i := range indices {
				wg.Add(1)
				p := passes[i]
				e.pool.SubmitTask(worker.Task{
					ID: int(frame)*len(passes) + i,
					Do: func() (any, error) {
						defer wg.Done()
						errs[k] = e.runPass(g, p, level, frame, deltaTime)
						return nil, nil
					},
				})
			}
			wg.Wait()
		}

		for _, err := range errs {
			if err != nil {
				logger.Error("executor: pass failed", "error", err)
				return err
			}
		}
	}
	return nil
}

// runPass invokes the body bound to p and converts a failure or panic into a *PassError.
func (e *executor) runPass(g render_graph.RenderGraph, p render_graph.Pass, level int, frame uint64, deltaTime float32) (err error) {
	body := g.Body(p.Name)
	if body == nil {
		return nil
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &PassError{Pass: p.Name, Level: level, Frame: frame, Err: fmt.Errorf("panic: %v", r)}
		}
		if e.profiler != nil {
			e.profiler.RecordPass(p.Name, time.Since(start))
		}
	}()

	if bodyErr := body(render_graph.PassContext{
		Pass:       p,
		Level:      level,
		Frame:      frame,
		DeltaTime:  deltaTime,
		Placements: g.PassPlacements(p.Name),
	}); bodyErr != nil {
		return &PassError{Pass: p.Name, Level: level, Frame: frame, Err: bodyErr}
	}
	return nil
}
