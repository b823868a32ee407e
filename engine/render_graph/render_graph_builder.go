package render_graph

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// renderGraphBuilder is the implementation of the RenderGraphBuilder interface.
type renderGraphBuilder struct {
	mu sync.Mutex

	passes    []Pass
	passIndex map[string]int
	bodies    map[PassKey]PassFunc

	transientNames []string
	transients     map[string]TransientResourceInfo

	placementAlignment uint64
	strictHazards      bool
	logger             *slog.Logger
}

// RenderGraphBuilder collects pass and transient resource declarations and compiles them into a
// RenderGraph. Declarations are registered once; Build may be called repeatedly and produces the
// same graph for unchanged declarations. Safe for concurrent use, one Build at a time.
type RenderGraphBuilder interface {
	// AddPass registers a pass together with its executable body. The body may be nil and bound
	// later with BindPass. Resource sets are normalized before registration.
	//
	// Parameters:
	//   - p: the pass declaration
	//   - body: the executable body, or nil
	//
	// Returns:
	//   - error: ErrInvalidPass for an empty name, ErrDuplicatePass if the name is taken
	AddPass(p Pass, body PassFunc) error

	// BindPass binds or replaces the executable body of a registered pass.
	//
	// Parameters:
	//   - name: the pass name
	//   - body: the executable body
	//
	// Returns:
	//   - error: ErrUnknownPass if no pass has that name
	BindPass(name string, body PassFunc) error

	// AddTransientResource declares a resource as transient and eligible for memory aliasing.
	// Resources that are never declared here are treated as persistent and are not aliased.
	//
	// Parameters:
	//   - name: the resource name
	//   - info: the sizing descriptor
	//
	// Returns:
	//   - error: ErrInvalidResource for an empty name, a duplicate, or an unsizable descriptor
	AddTransientResource(name string, info TransientResourceInfo) error

	// Pass returns a registered pass by name.
	//
	// Parameters:
	//   - name: the pass name
	//
	// Returns:
	//   - Pass: the normalized pass
	//   - bool: false if no pass has that name
	Pass(name string) (Pass, bool)

	// PassCount returns the number of registered passes.
	PassCount() int

	// Build compiles the declarations into a RenderGraph: dependency derivation, topological
	// ordering, level assignment, hazard audit and transient memory aliasing. A build with zero
	// passes yields an empty graph. Any error abandons the build; no partial graph is returned.
	//
	// Returns:
	//   - RenderGraph: the compiled graph
	//   - error: *CycleError, *HazardError (strict mode), ErrUnknownTransientResource or ErrInvalidResource
	Build() (RenderGraph, error)
}

var _ RenderGraphBuilder = &renderGraphBuilder{}

// NewRenderGraphBuilder creates an empty RenderGraphBuilder with the given options applied.
//
// Parameters:
//   - options: functional options configuring the build
//
// Returns:
//   - RenderGraphBuilder: the new builder
func NewRenderGraphBuilder(options ...RenderGraphBuilderOption) RenderGraphBuilder {
	b := &renderGraphBuilder{
		passIndex:          make(map[string]int),
		bodies:             make(map[PassKey]PassFunc),
		transients:         make(map[string]TransientResourceInfo),
		placementAlignment: 1,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *renderGraphBuilder) AddPass(p Pass, body PassFunc) error {
	if p.Name == "" {
		return fmt.Errorf("%w: pass name must not be empty", ErrInvalidPass)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.passIndex[p.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePass, p.Name)
	}

	p = p.normalized()
	b.passIndex[p.Name] = len(b.passes)
	b.passes = append(b.passes, p)
	if body != nil {
		b.bodies[p.Key()] = body
	}
	return nil
}

func (b *renderGraphBuilder) BindPass(name string, body PassFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.passIndex[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPass, name)
	}
	key := b.passes[i].Key()
	if body == nil {
		delete(b.bodies, key)
		return nil
	}
	b.bodies[key] = body
	return nil
}

func (b *renderGraphBuilder) AddTransientResource(name string, info TransientResourceInfo) error {
	if name == "" {
		return fmt.Errorf("%w: resource name must not be empty", ErrInvalidResource)
	}
	if _, err := info.ByteSize(); err != nil {
		return fmt.Errorf("transient resource %q: %w", name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.transients[name]; exists {
		return fmt.Errorf("%w: %q declared twice", ErrInvalidResource, name)
	}
	b.transientNames = append(b.transientNames, name)
	b.transients[name] = info
	return nil
}

func (b *renderGraphBuilder) Pass(name string) (Pass, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.passIndex[name]
	if !ok {
		return Pass{}, false
	}
	return b.passes[i], true
}

func (b *renderGraphBuilder) PassCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.passes)
}

func (b *renderGraphBuilder) Build() (RenderGraph, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	logger := common.Coalesce(b.logger, common.Logger())
	passes := slices.Clone(b.passes)
	bodies := maps.Clone(b.bodies)

	if len(passes) == 0 {
		logger.Debug("render graph: no passes declared, returning empty graph")
		return newRenderGraph(nil, nil, nil, nil, bodies, nil, nil, nil), nil
	}

	adjacency := buildAdjacency(passes)
	logger.Debug("render graph: dependencies derived", "passes", len(passes))

	order, err := topologicalSort(passes, adjacency)
	if err != nil {
		return nil, fmt.Errorf("failed to build render graph: %w", err)
	}

	perPass, levels := assignDependencyLevels(order, adjacency)
	logger.Debug("render graph: dependency levels assigned", "levels", len(levels))

	hazards := findHazards(passes, levels)
	if len(hazards) > 0 {
		if b.strictHazards {
			return nil, fmt.Errorf("failed to build render graph: %w", &HazardError{Hazards: hazards})
		}
		for _, h := range hazards {
			logger.Warn("render graph: same-level write-write hazard", "resource", h.Resource, "level", h.Level, "passes", h.Passes)
		}
	}

	regions, lifetimes, err := generateTransientResourceAliasingInfo(passes, levels, b.transients, b.transientNames, b.placementAlignment)
	if err != nil {
		return nil, fmt.Errorf("failed to build render graph: %w", err)
	}

	g := newRenderGraph(passes, order, perPass, levels, bodies, lifetimes, regions, hazards)
	logger.Debug("render graph: transient resources aliased",
		"resources", len(b.transientNames),
		"regions", len(regions),
		"transient_bytes", g.TransientMemory(),
		"unaliased_bytes", g.UnaliasedMemory(),
	)
	return g, nil
}
