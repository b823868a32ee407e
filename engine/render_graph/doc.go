// Package render_graph compiles a declarative set of frame passes into an executable render graph.
//
// Each Pass names the resources it reads (inputs) and writes (outputs). A pass that writes a
// resource is a dependency of every pass that reads it. Building a RenderGraph:
//
//  1. derives the producer → consumer adjacency from resource names,
//  2. orders the passes topologically, failing with a *CycleError on circular dependencies,
//  3. assigns every pass a dependency level (longest path from a source pass); passes that share
//     a level have no ordering constraint between them,
//  4. computes the level lifetime of every transient resource and packs those resources into
//     memory regions so that resources with overlapping lifetimes never share bytes.
//
// Passes and resources are referenced by index and name only. Executable bodies are kept in a
// table keyed by PassKey, separate from the pass data the graph algorithms operate on.
//
// The package performs no GPU work. Allocating regions, recording commands and synchronizing
// queues belong to the consumer of the built RenderGraph.
package render_graph
