package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrTooFewNodes is returned by [Graph.AddEdge] when the graph holds
	// fewer than two nodes. Edges need distinct endpoints to exist.
	ErrTooFewNodes = errors.New("need at least two nodes to add an edge")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the source
	// node ID does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the target
	// node ID does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when source and target
	// name the same node. Self-loops are rejected.
	ErrSelfLoop = errors.New("source and target must be different")

	// ErrInvalidDirection is returned by [Graph.AddEdge] when the direction
	// is not one of the known modes.
	ErrInvalidDirection = errors.New("invalid edge direction")

	// ErrUnknownNode is returned by [Graph.SetLabel] when no node with the
	// given ID exists.
	ErrUnknownNode = errors.New("unknown node")
)

// nodeIDPrefix is the prefix for generated node IDs ("N1", "N2", ...).
const nodeIDPrefix = "N"

// Graph is the store for one editing session: an ordered node sequence and
// an ordered edge sequence. The zero value is not usable - call [New].
//
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes []Node
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// FromDocument creates a graph holding the document's node and edge
// sequences as-is. Like [Graph.ReplaceAll], no validation is performed;
// the derived adjacency list in the document is ignored.
func FromDocument(doc Document) *Graph {
	g := New()
	g.ReplaceAll(doc.Nodes, doc.Edges)
	return g
}

// =============================================================================
// Mutation Operations
// =============================================================================

// AddNode appends a node with a freshly generated unique ID and the given
// label (which may be empty) and returns it. IDs count up from the current
// node count, skipping any ID already in use, so uniqueness holds under any
// interleaving of adds and deletes.
func (g *Graph) AddNode(label string) Node {
	n := Node{ID: g.nextID(), Label: label}
	g.nodes = append(g.nodes, n)
	return n
}

// nextID allocates the first free generated ID at or above count+1.
func (g *Graph) nextID() string {
	for i := len(g.nodes) + 1; ; i++ {
		id := fmt.Sprintf("%s%d", nodeIDPrefix, i)
		if _, ok := g.Lookup(id); !ok {
			return id
		}
	}
}

// Lookup returns the node with the given ID, or false when absent.
func (g *Graph) Lookup(id string) (Node, bool) {
	for _, n := range g.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// SetLabel replaces the label of the node with the given ID.
// Returns [ErrUnknownNode] when the node does not exist; callers that want
// create-or-update semantics combine [Graph.Lookup] with [Graph.AddNode].
func (g *Graph) SetLabel(id, label string) error {
	for i := range g.nodes {
		if g.nodes[i].ID == id {
			g.nodes[i].Label = label
			return nil
		}
	}
	return fmt.Errorf("set label %q: %w", id, ErrUnknownNode)
}

// DeleteNode removes the node with the given ID and every edge whose source
// or target references it. Deleting an absent node is a no-op.
func (g *Graph) DeleteNode(id string) {
	before := len(g.nodes)
	g.nodes = slices.DeleteFunc(g.nodes, func(n Node) bool { return n.ID == id })
	if len(g.nodes) == before {
		return
	}
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return e.Source == id || e.Target == id
	})
}

// AddEdge appends an edge between two existing, distinct nodes.
// An empty direction defaults to [Directed].
//
// AddEdge rejects without mutating the graph and returns:
//   - [ErrTooFewNodes] when the graph holds fewer than two nodes
//   - [ErrUnknownSourceNode] / [ErrUnknownTargetNode] for missing endpoints
//   - [ErrSelfLoop] when source == target
//   - [ErrInvalidDirection] for an unknown direction mode
//
// Parallel edges between the same pair of nodes are allowed.
func (g *Graph) AddEdge(source, target string, direction Direction, label string) error {
	if len(g.nodes) < 2 {
		return ErrTooFewNodes
	}
	if _, ok := g.Lookup(source); !ok {
		return fmt.Errorf("edge %s→%s: %w", source, target, ErrUnknownSourceNode)
	}
	if _, ok := g.Lookup(target); !ok {
		return fmt.Errorf("edge %s→%s: %w", source, target, ErrUnknownTargetNode)
	}
	if source == target {
		return fmt.Errorf("edge %s→%s: %w", source, target, ErrSelfLoop)
	}
	if !direction.Valid() {
		return fmt.Errorf("edge %s→%s: %q: %w", source, target, direction, ErrInvalidDirection)
	}
	g.edges = append(g.edges, Edge{
		Source:    source,
		Target:    target,
		Direction: direction.Normalize(),
		Label:     label,
	})
	return nil
}

// ClearEdges removes all edges; nodes are untouched.
func (g *Graph) ClearEdges() {
	g.edges = nil
}

// ReplaceAll bulk-replaces both sequences, taking ownership of copies.
// No validation is performed: duplicate IDs and dangling edge references
// are accepted as-is. This is the JSON import path.
func (g *Graph) ReplaceAll(nodes []Node, edges []Edge) {
	g.nodes = slices.Clone(nodes)
	g.edges = slices.Clone(edges)
}

// =============================================================================
// Accessors
// =============================================================================

// Nodes returns a copy of the node sequence in insertion order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of the edge sequence in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeIDs returns the node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// =============================================================================
// Derived Views
// =============================================================================

// AdjacencyList computes the outgoing-neighbor mapping from the current
// edge sequence. Every node gets an entry, possibly empty. A directed edge
// contributes source→target; bidirected and undirected edges contribute
// both ways. Neighbor order follows edge insertion order and parallel
// edges are preserved.
//
// Edges loaded through [Graph.ReplaceAll] may reference IDs with no node;
// those IDs get their own entries rather than being dropped.
func (g *Graph) AdjacencyList() map[string][]string {
	adj := make(map[string][]string, len(g.nodes))
	for _, n := range g.nodes {
		adj[n.ID] = []string{}
	}
	for _, e := range g.edges {
		d := e.Direction.Normalize()
		if !d.Valid() {
			continue
		}
		if _, ok := adj[e.Target]; !ok {
			adj[e.Target] = []string{}
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		if d.Reversible() {
			adj[e.Target] = append(adj[e.Target], e.Source)
		}
	}
	return adj
}

// Document builds the canonical serialization of the current state,
// including the freshly computed adjacency list. The sequences are always
// non-nil so the JSON encoding uses arrays, never null.
func (g *Graph) Document() Document {
	nodes := g.nodes
	if nodes == nil {
		nodes = []Node{}
	}
	edges := g.edges
	if edges == nil {
		edges = []Edge{}
	}
	return Document{
		Nodes:         slices.Clone(nodes),
		Edges:         slices.Clone(edges),
		AdjacencyList: g.AdjacencyList(),
	}
}
