package render_graph

import (
	"maps"
	"slices"
)

// renderGraph is the implementation of the RenderGraph interface.
type renderGraph struct {
	passes     []Pass
	passIndex  map[string]int
	levels     [][]int
	passLevels []int

	bodies map[PassKey]PassFunc

	lifetimes  map[string]Lifetime
	regions    []MemoryRegion
	placements map[string]ResourcePlacement
	unaliased  uint64

	hazards []Hazard
}

// RenderGraph is the compiled, immutable result of RenderGraphBuilder.Build.
// It is safe for concurrent reads. Accessors return copies.
type RenderGraph interface {
	// Passes returns the passes in an order that is safe to execute sequentially.
	//
	// Returns:
	//   - []Pass: the passes in dependency order
	Passes() []Pass

	// Levels returns the passes grouped by dependency level. Entries are indices into Passes().
	// Passes in the same level have no dependency on one another; levels must run in ascending order.
	//
	// Returns:
	//   - [][]int: levels[k] holds the ascending positions of the passes at level k
	Levels() [][]int

	// PassLevel returns the dependency level of the named pass.
	//
	// Parameters:
	//   - name: the pass name
	//
	// Returns:
	//   - int: the level
	//   - bool: false if no such pass exists
	PassLevel(name string) (int, bool)

	// Body returns the executable body bound to the named pass, or nil.
	//
	// Parameters:
	//   - name: the pass name
	//
	// Returns:
	//   - PassFunc: the bound body or nil
	Body(name string) PassFunc

	// Lifetimes returns the lifetime of every transient resource.
	//
	// Returns:
	//   - map[string]Lifetime: lifetimes keyed by resource name
	Lifetimes() map[string]Lifetime

	// Regions returns the aliasing plan for transient resources.
	//
	// Returns:
	//   - []MemoryRegion: the memory regions with their placements
	Regions() []MemoryRegion

	// Placement returns where a transient resource lives.
	//
	// Parameters:
	//   - resource: the transient resource name
	//
	// Returns:
	//   - ResourcePlacement: the placement, including its region index
	//   - bool: false if the resource is not transient
	Placement(resource string) (ResourcePlacement, bool)

	// PassPlacements returns the placement of every transient resource the named pass reads or writes.
	//
	// Parameters:
	//   - name: the pass name
	//
	// Returns:
	//   - map[string]ResourcePlacement: placements keyed by resource name (empty if none)
	PassPlacements(name string) map[string]ResourcePlacement

	// TransientMemory returns the total bytes required by all regions.
	TransientMemory() uint64

	// UnaliasedMemory returns the total bytes the transient resources would need without aliasing.
	UnaliasedMemory() uint64

	// Hazards returns the same-level write-write hazards found during the build.
	Hazards() []Hazard
}

var _ RenderGraph = &renderGraph{}

// newRenderGraph assembles the graph from the build products. passes, perPass and levels are in
// declaration order; they are remapped to execution order here.
func newRenderGraph(passes []Pass, order []int, perPass []int, levels [][]int, bodies map[PassKey]PassFunc, lifetimes map[string]Lifetime, regions []MemoryRegion, hazards []Hazard) *renderGraph {
	g := &renderGraph{
		passes:     make([]Pass, len(order)),
		passIndex:  make(map[string]int, len(order)),
		passLevels: make([]int, len(order)),
		levels:     make([][]int, len(levels)),
		bodies:     bodies,
		lifetimes:  lifetimes,
		regions:    regions,
		placements: make(map[string]ResourcePlacement),
		hazards:    hazards,
	}

	position := make([]int, len(order))
	for pos, i := range order {
		position[i] = pos
		g.passes[pos] = passes[i]
		g.passIndex[passes[i].Name] = pos
		g.passLevels[pos] = perPass[i]
	}
	for level, indices := range levels {
		mapped := make([]int, len(indices))
		for k, i := range indices {
			mapped[k] = position[i]
		}
		slices.Sort(mapped)
		g.levels[level] = mapped
	}

	for _, region := range regions {
		for _, p := range region.Placements {
			g.placements[p.Resource] = p
			g.unaliased += p.Size
		}
	}
	if g.lifetimes == nil {
		g.lifetimes = make(map[string]Lifetime)
	}
	if g.bodies == nil {
		g.bodies = make(map[PassKey]PassFunc)
	}
	return g
}

func (g *renderGraph) Passes() []Pass {
	return slices.Clone(g.passes)
}

func (g *renderGraph) Levels() [][]int {
	out := make([][]int, len(g.levels))
	for i, level := range g.levels {
		out[i] = slices.Clone(level)
	}
	return out
}

func (g *renderGraph) PassLevel(name string) (int, bool) {
	pos, ok := g.passIndex[name]
	if !ok {
		return 0, false
	}
	return g.passLevels[pos], true
}

func (g *renderGraph) Body(name string) PassFunc {
	pos, ok := g.passIndex[name]
	if !ok {
		return nil
	}
	return g.bodies[g.passes[pos].Key()]
}

func (g *renderGraph) Lifetimes() map[string]Lifetime {
	return maps.Clone(g.lifetimes)
}

func (g *renderGraph) Regions() []MemoryRegion {
	out := make([]MemoryRegion, len(g.regions))
	for i, r := range g.regions {
		out[i] = MemoryRegion{Index: r.Index, Size: r.Size, Placements: slices.Clone(r.Placements)}
	}
	return out
}

func (g *renderGraph) Placement(resource string) (ResourcePlacement, bool) {
	p, ok := g.placements[resource]
	return p, ok
}

func (g *renderGraph) PassPlacements(name string) map[string]ResourcePlacement {
	out := make(map[string]ResourcePlacement)
	pos, ok := g.passIndex[name]
	if !ok {
		return out
	}
	for _, resource := range g.passes[pos].Resources() {
		if p, ok := g.placements[resource]; ok {
			out[resource] = p
		}
	}
	return out
}

func (g *renderGraph) TransientMemory() uint64 {
	var total uint64
	for _, r := range g.regions {
		total += r.Size
	}
	return total
}

func (g *renderGraph) UnaliasedMemory() uint64 {
	return g.unaliased
}

func (g *renderGraph) Hazards() []Hazard {
	return slices.Clone(g.hazards)
}
