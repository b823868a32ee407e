package render_graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPass is returned when a pass declaration is malformed (for example an empty name).
	ErrInvalidPass = errors.New("render graph: invalid pass")

	// ErrDuplicatePass is returned when a pass name is registered twice.
	ErrDuplicatePass = errors.New("render graph: duplicate pass")

	// ErrUnknownPass is returned when a pass name lookup fails.
	ErrUnknownPass = errors.New("render graph: unknown pass")

	// ErrInvalidResource is returned when a transient resource declaration cannot be sized or placed.
	ErrInvalidResource = errors.New("render graph: invalid transient resource")

	// ErrUnknownTransientResource is returned when a pass marks an output as transient but no
	// size information was declared for it.
	ErrUnknownTransientResource = errors.New("render graph: transient resource has no size info")

	// ErrEmptyGraph is returned by the topological sorter when it is handed no passes.
	ErrEmptyGraph = errors.New("render graph: no passes to sort")

	// ErrCycle is the sentinel wrapped by every *CycleError.
	ErrCycle = errors.New("render graph: dependency cycle")

	// ErrHazard is the sentinel wrapped by every *HazardError.
	ErrHazard = errors.New("render graph: same-level resource hazard")
)

// CycleError reports a circular resource dependency between passes.
// Passes holds the cycle path by pass name; the first and last entries are the same pass.
type CycleError struct {
	Passes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("render graph: dependency cycle detected: %s", strings.Join(e.Passes, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// Hazard describes two or more passes in the same dependency level that write the same resource.
// Such passes have no ordering between them, so the final contents of the resource are undefined.
type Hazard struct {
	// Resource is the resource written by every pass in Passes.
	Resource string
	// Level is the dependency level shared by the passes.
	Level int
	// Passes are the names of the conflicting writers, in declaration order.
	Passes []string
}

func (h Hazard) String() string {
	return fmt.Sprintf("resource %q written by %s at level %d", h.Resource, strings.Join(h.Passes, ", "), h.Level)
}

// HazardError is returned by Build when strict hazard checking is enabled and hazards were found.
type HazardError struct {
	Hazards []Hazard
}

func (e *HazardError) Error() string {
	parts := make([]string, len(e.Hazards))
	for i, h := range e.Hazards {
		parts[i] = h.String()
	}
	return fmt.Sprintf("render graph: %d write-write hazard(s): %s", len(e.Hazards), strings.Join(parts, "; "))
}

func (e *HazardError) Unwrap() error {
	return ErrHazard
}
