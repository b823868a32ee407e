package render_graph

import (
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// PassKey is the graph identity of a pass: its name together with its input and output sets.
// Executable bodies are not part of the key.
type PassKey string

// PassFunc is the executable body of a pass. It is invoked by the execution layer with the
// pass's scheduling context; returning an error fails the frame.
type PassFunc func(pc PassContext) error

// PassContext is handed to a PassFunc when its pass executes.
type PassContext struct {
	// Pass is the pass being executed.
	Pass Pass
	// Level is the dependency level of the pass.
	Level int
	// Frame is the zero-based index of the frame being executed.
	Frame uint64
	// DeltaTime is the time since the previous frame in seconds.
	DeltaTime float32
	// Placements holds the memory placement of every transient resource the pass reads or writes,
	// keyed by resource name.
	Placements map[string]ResourcePlacement
}

// Pass is a unit of GPU work declaring the named resources it reads and writes.
// Pass is a plain value; NewPass and RenderGraphBuilder.AddPass normalize the resource sets
// (deduplicated, sorted, empty names dropped).
type Pass struct {
	// Name uniquely identifies the pass within a graph.
	Name string
	// Inputs are the names of resources the pass reads.
	Inputs []string
	// Outputs are the names of resources the pass writes.
	Outputs []string
	// TransientOutputs is the subset of Outputs the pass declares as transient. Each of them must
	// have size information registered with RenderGraphBuilder.AddTransientResource.
	TransientOutputs []string
}

// NewPass creates a normalized Pass with the given name and options applied.
//
// Parameters:
//   - name: the unique name of the pass
//   - options: functional options declaring the pass's resources
//
// Returns:
//   - Pass: the normalized pass
func NewPass(name string, options ...PassBuilderOption) Pass {
	p := Pass{Name: name}
	for _, option := range options {
		option(&p)
	}
	return p.normalized()
}

// Key returns the graph identity of the pass.
//
// Returns:
//   - PassKey: a comparable key over the name, inputs and outputs
func (p Pass) Key() PassKey {
	n := p.normalized()
	var sb strings.Builder
	sb.WriteString(n.Name)
	sb.WriteByte(0)
	sb.WriteString(strings.Join(n.Inputs, "\x1f"))
	sb.WriteByte(0)
	sb.WriteString(strings.Join(n.Outputs, "\x1f"))
	return PassKey(sb.String())
}

// Reads reports whether the pass declares resource as an input.
//
// Parameters:
//   - resource: the resource name to look up
//
// Returns:
//   - bool: true if the pass reads the resource
func (p Pass) Reads(resource string) bool {
	return slices.Contains(p.Inputs, resource)
}

// Writes reports whether the pass declares resource as an output.
//
// Parameters:
//   - resource: the resource name to look up
//
// Returns:
//   - bool: true if the pass writes the resource
func (p Pass) Writes(resource string) bool {
	return slices.Contains(p.Outputs, resource)
}

// Resources returns every resource the pass touches, sorted and without duplicates.
//
// Returns:
//   - []string: the union of inputs and outputs
func (p Pass) Resources() []string {
	all := make([]string, 0, len(p.Inputs)+len(p.Outputs))
	all = append(all, p.Inputs...)
	all = append(all, p.Outputs...)
	return common.Dedupe(all)
}

// normalized returns a copy with deduplicated, sorted resource sets.
// Transient outputs are always outputs as well.
func (p Pass) normalized() Pass {
	outputs := make([]string, 0, len(p.Outputs)+len(p.TransientOutputs))
	outputs = append(outputs, p.Outputs...)
	outputs = append(outputs, p.TransientOutputs...)
	return Pass{
		Name:             p.Name,
		Inputs:           common.Dedupe(p.Inputs),
		Outputs:          common.Dedupe(outputs),
		TransientOutputs: common.Dedupe(p.TransientOutputs),
	}
}
