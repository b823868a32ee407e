package render_graph

import "log/slog"

// RenderGraphBuilderOption is a functional option for configuring a RenderGraphBuilder.
type RenderGraphBuilderOption func(b *renderGraphBuilder)

// WithPlacementAlignment sets the byte alignment of every transient resource offset within a
// region. The default of 1 packs resources tightly.
//
// Parameters:
//   - alignment: the alignment in bytes (0 is treated as 1)
//
// Returns:
//   - RenderGraphBuilderOption: option function to apply
func WithPlacementAlignment(alignment uint64) RenderGraphBuilderOption {
	return func(b *renderGraphBuilder) {
		b.placementAlignment = max(alignment, 1)
	}
}

// WithStrictHazards makes Build fail with a *HazardError when two passes in the same dependency
// level write the same resource. By default such hazards are only logged and reported through
// RenderGraph.Hazards.
//
// Parameters:
//   - strict: true to fail the build on hazards
//
// Returns:
//   - RenderGraphBuilderOption: option function to apply
func WithStrictHazards(strict bool) RenderGraphBuilderOption {
	return func(b *renderGraphBuilder) {
		b.strictHazards = strict
	}
}

// WithLogger sets the logger used during builds instead of common.Logger().
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - RenderGraphBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) RenderGraphBuilderOption {
	return func(b *renderGraphBuilder) {
		b.logger = logger
	}
}
