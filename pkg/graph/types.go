package graph

// =============================================================================
// Direction - Edge Direction Mode
// =============================================================================

// Direction controls which adjacency entries and arrow styles an edge
// produces.
type Direction string

const (
	// Directed contributes source→target only and renders a single arrowhead.
	Directed Direction = "directed"
	// Bidirected contributes both source→target and target→source and
	// renders arrowheads on both ends.
	Bidirected Direction = "bidirected"
	// Undirected contributes both source→target and target→source and
	// renders no arrowheads.
	Undirected Direction = "undirected"
)

// Directions lists all valid direction modes in presentation order.
func Directions() []Direction {
	return []Direction{Directed, Bidirected, Undirected}
}

// Valid reports whether d is one of the known direction modes.
// The empty string is valid and treated as [Directed].
func (d Direction) Valid() bool {
	switch d {
	case "", Directed, Bidirected, Undirected:
		return true
	}
	return false
}

// Reversible reports whether the edge also contributes target→source.
func (d Direction) Reversible() bool {
	return d == Bidirected || d == Undirected
}

// Normalize maps the empty string to the default mode, [Directed].
func (d Direction) Normalize() Direction {
	if d == "" {
		return Directed
	}
	return d
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a labeled vertex identified by a unique ID.
// The label is display text and may be empty; renderers fall back to the ID.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects two nodes by ID with a direction mode and optional label.
type Edge struct {
	Source    string    `json:"source" bson:"source"`
	Target    string    `json:"target" bson:"target"`
	Direction Direction `json:"direction,omitempty" bson:"direction,omitempty"`
	Label     string    `json:"label,omitempty" bson:"label,omitempty"`
}

// =============================================================================
// Document - Canonical Serialization Format
// =============================================================================

// Document is the canonical serialization format for a graph session.
// The adjacency list is derived output; it is ignored on re-import.
type Document struct {
	Nodes         []Node              `json:"nodes" bson:"nodes"`
	Edges         []Edge              `json:"edges" bson:"edges"`
	AdjacencyList map[string][]string `json:"adjacency_list" bson:"adjacency_list"`
}
