package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrExecutorBusy is returned by Execute when another execution on the same executor is in flight.
	ErrExecutorBusy = errors.New("executor: an execution is already in flight")

	// ErrNoRenderGraph is returned by Execute when no render graph has been set.
	ErrNoRenderGraph = errors.New("executor: no render graph set")
)

// PassError reports the pass whose body failed or panicked during an execution.
type PassError struct {
	Pass  string
	Level int
	Frame uint64
	Err   error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("executor: pass %q (level %d, frame %d) failed: %v", e.Pass, e.Level, e.Frame, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}
