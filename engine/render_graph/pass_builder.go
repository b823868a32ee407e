package render_graph

// PassBuilderOption is a functional option for declaring a Pass via NewPass.
type PassBuilderOption func(p *Pass)

// WithInputs declares resources the pass reads. May be applied multiple times.
//
// Parameters:
//   - names: the resource names to read
//
// Returns:
//   - PassBuilderOption: option function to apply
func WithInputs(names ...string) PassBuilderOption {
	return func(p *Pass) {
		p.Inputs = append(p.Inputs, names...)
	}
}

// WithOutputs declares resources the pass writes. May be applied multiple times.
//
// Parameters:
//   - names: the resource names to write
//
// Returns:
//   - PassBuilderOption: option function to apply
func WithOutputs(names ...string) PassBuilderOption {
	return func(p *Pass) {
		p.Outputs = append(p.Outputs, names...)
	}
}

// WithTransientOutputs declares resources the pass writes and that must be aliased as transient
// memory. Each name must be registered with RenderGraphBuilder.AddTransientResource before Build.
//
// Parameters:
//   - names: the transient resource names to write
//
// Returns:
//   - PassBuilderOption: option function to apply
func WithTransientOutputs(names ...string) PassBuilderOption {
	return func(p *Pass) {
		p.TransientOutputs = append(p.TransientOutputs, names...)
	}
}
