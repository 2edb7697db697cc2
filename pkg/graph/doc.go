// Package graph implements the core graph store for interactive diagram
// building: an ordered collection of labeled nodes and edges with mutation
// operations and derived views.
//
// # Model
//
// A [Graph] owns two ordered sequences: nodes and edges. Nodes carry a
// unique ID and a display label. Edges connect two node IDs with a
// [Direction] mode (directed, bidirected, undirected) and an optional label.
//
// Mutations preserve two invariants:
//   - Node IDs are unique at every point in time.
//   - No dangling edges: deleting a node cascades to every incident edge.
//
// The one escape hatch is [Graph.ReplaceAll], used by JSON import, which
// accepts data as-is without validation. Use [Graph.Validate] for an
// advisory integrity report on loaded data.
//
// # Derived views
//
// [Graph.AdjacencyList] and [Graph.Document] are recomputed from the
// current sequences on every call; nothing is cached, so they always
// reflect the latest mutation.
//
// A Graph models a single editing session and is not safe for concurrent
// use without external synchronization.
package graph
