package loader

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/engine/render_graph"
)

// Declaration is a decoded render graph setup: the passes of a frame and the size information of
// its transient resources. It carries no pass bodies; those are bound when the declaration is
// applied to a builder.
type Declaration struct {
	// Name is the declaration name, derived from the file name for file loads.
	Name string
	// Passes are the declared passes in file order.
	Passes []render_graph.Pass
	// Resources are the declared transient resources, textures first, each group in file order.
	Resources []ResourceDeclaration
}

// ResourceDeclaration names the size information of one transient resource.
type ResourceDeclaration struct {
	Name string
	Info render_graph.TransientResourceInfo
}

// Apply registers the declared passes and transient resources with b.
// Passes without an entry in bodies are registered without a body.
//
// Parameters:
//   - b: the builder to register with
//   - bodies: the pass bodies keyed by pass name
//
// Returns:
//   - error: the first registration error, or render_graph.ErrUnknownPass if bodies names a pass
//     the declaration does not contain
func (d Declaration) Apply(b render_graph.RenderGraphBuilder, bodies map[string]render_graph.PassFunc) error {
	for name := range bodies {
		if !slices.ContainsFunc(d.Passes, func(p render_graph.Pass) bool { return p.Name == name }) {
			return fmt.Errorf("declaration %q: %w: body bound to %q", d.Name, render_graph.ErrUnknownPass, name)
		}
	}

	for _, r := range d.Resources {
		if err := b.AddTransientResource(r.Name, r.Info); err != nil {
			return fmt.Errorf("declaration %q: %w", d.Name, err)
		}
	}
	for _, p := range d.Passes {
		if err := b.AddPass(p, bodies[p.Name]); err != nil {
			return fmt.Errorf("declaration %q: %w", d.Name, err)
		}
	}
	return nil
}
