package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddNodeGeneratesUniqueIDs(t *testing.T) {
	g := New()

	n1 := g.AddNode("start")
	n2 := g.AddNode("")
	n3 := g.AddNode("end")

	want := []string{"N1", "N2", "N3"}
	if got := g.NodeIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("NodeIDs() = %v, want %v", got, want)
	}
	if n1.Label != "start" || n2.Label != "" || n3.Label != "end" {
		t.Errorf("labels = %q, %q, %q", n1.Label, n2.Label, n3.Label)
	}
}

// IDs count up from the node count, so after a deletion the naive next ID
// can collide with a surviving node. The allocator must skip it.
func TestAddNodeSkipsOccupiedIDs(t *testing.T) {
	g := New()
	g.AddNode("a") // N1
	g.AddNode("b") // N2
	g.DeleteNode("N1")

	n := g.AddNode("c")
	if n.ID != "N3" {
		t.Fatalf("AddNode after delete allocated %q, want N3", n.ID)
	}

	seen := map[string]bool{}
	for _, id := range g.NodeIDs() {
		if seen[id] {
			t.Fatalf("duplicate node id %q", id)
		}
		seen[id] = true
	}
}

func TestUniquenessUnderAddDeleteSequences(t *testing.T) {
	// Exercise a few adversarial interleavings and assert uniqueness after
	// every single step.
	type step struct {
		del string // delete this id, or empty to add
	}
	sequences := [][]step{
		{{""}, {""}, {"N1"}, {""}, {""}},
		{{""}, {""}, {""}, {"N2"}, {""}, {"N1"}, {""}, {""}},
		{{""}, {"N1"}, {""}, {"N1"}, {""}},
	}

	for si, seq := range sequences {
		g := New()
		for pos, s := range seq {
			if s.del == "" {
				g.AddNode("")
			} else {
				g.DeleteNode(s.del)
			}
			seen := map[string]bool{}
			for _, id := range g.NodeIDs() {
				if seen[id] {
					t.Fatalf("sequence %d step %d: duplicate id %q in %v", si, pos, id, g.NodeIDs())
				}
				seen[id] = true
			}
		}
	}
}

func TestSetLabel(t *testing.T) {
	g := New()
	n := g.AddNode("old")

	if err := g.SetLabel(n.ID, "new"); err != nil {
		t.Fatalf("SetLabel() error = %v", err)
	}
	got, ok := g.Lookup(n.ID)
	if !ok || got.Label != "new" {
		t.Errorf("Lookup(%s) = %+v, %v; want label new", n.ID, got, ok)
	}

	err := g.SetLabel("missing", "x")
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("SetLabel(missing) error = %v, want ErrUnknownNode", err)
	}
}

func TestDeleteNodeCascades(t *testing.T) {
	g := New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")

	mustAddEdge(t, g, a.ID, b.ID, Directed, "")
	mustAddEdge(t, g, b.ID, c.ID, Undirected, "")
	mustAddEdge(t, g, c.ID, a.ID, Bidirected, "")

	g.DeleteNode(b.ID)

	if _, ok := g.Lookup(b.ID); ok {
		t.Fatalf("node %s still present after delete", b.ID)
	}
	for _, e := range g.Edges() {
		if e.Source == b.ID || e.Target == b.ID {
			t.Errorf("dangling edge survived: %+v", e)
		}
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
}

func TestDeleteAbsentNodeIsNoOp(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	mustAddEdge(t, g, "N1", "N2", Directed, "")

	g.DeleteNode("nope")

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("store changed by deleting absent node: %d nodes, %d edges",
			g.NodeCount(), g.EdgeCount())
	}
}

func TestAddEdgeRejections(t *testing.T) {
	tests := []struct {
		name           string
		setup          func() *Graph
		source, target string
		direction      Direction
		wantErr        error
	}{
		{
			name:    "TooFewNodes",
			setup:   func() *Graph { g := New(); g.AddNode(""); return g },
			source:  "N1",
			target:  "N1",
			wantErr: ErrTooFewNodes,
		},
		{
			name:    "SelfLoop",
			setup:   twoNodeGraph,
			source:  "N1",
			target:  "N1",
			wantErr: ErrSelfLoop,
		},
		{
			name:    "UnknownSource",
			setup:   twoNodeGraph,
			source:  "nope",
			target:  "N2",
			wantErr: ErrUnknownSourceNode,
		},
		{
			name:    "UnknownTarget",
			setup:   twoNodeGraph,
			source:  "N1",
			target:  "nope",
			wantErr: ErrUnknownTargetNode,
		},
		{
			name:      "InvalidDirection",
			setup:     twoNodeGraph,
			source:    "N1",
			target:    "N2",
			direction: Direction("sideways"),
			wantErr:   ErrInvalidDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.setup()
			err := g.AddEdge(tt.source, tt.target, tt.direction, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
			if g.EdgeCount() != 0 {
				t.Errorf("store mutated on rejected edge: %d edges", g.EdgeCount())
			}
		})
	}
}

func TestAddEdgeDefaultsDirection(t *testing.T) {
	g := twoNodeGraph()
	mustAddEdge(t, g, "N1", "N2", "", "")

	edges := g.Edges()
	if edges[0].Direction != Directed {
		t.Errorf("Direction = %q, want %q", edges[0].Direction, Directed)
	}
}

func TestAdjacencyList(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		want      map[string][]string
	}{
		{
			name:      "Directed",
			direction: Directed,
			want:      map[string][]string{"N1": {"N2"}, "N2": {}},
		},
		{
			name:      "Bidirected",
			direction: Bidirected,
			want:      map[string][]string{"N1": {"N2"}, "N2": {"N1"}},
		},
		{
			name:      "Undirected",
			direction: Undirected,
			want:      map[string][]string{"N1": {"N2"}, "N2": {"N1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := twoNodeGraph()
			mustAddEdge(t, g, "N1", "N2", tt.direction, "")
			if got := g.AdjacencyList(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AdjacencyList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjacencyListKeepsParallelEdges(t *testing.T) {
	g := twoNodeGraph()
	mustAddEdge(t, g, "N1", "N2", Directed, "first")
	mustAddEdge(t, g, "N1", "N2", Directed, "second")

	want := map[string][]string{"N1": {"N2", "N2"}, "N2": {}}
	if got := g.AdjacencyList(); !reflect.DeepEqual(got, want) {
		t.Errorf("AdjacencyList() = %v, want %v", got, want)
	}
}

func TestAdjacencyListIncludesDanglingEndpoints(t *testing.T) {
	g := New()
	g.ReplaceAll(
		[]Node{{ID: "a"}},
		[]Edge{{Source: "a", Target: "ghost", Direction: Directed}},
	)

	adj := g.AdjacencyList()
	if !reflect.DeepEqual(adj["a"], []string{"ghost"}) {
		t.Errorf("adj[a] = %v, want [ghost]", adj["a"])
	}
	if got, ok := adj["ghost"]; !ok || len(got) != 0 {
		t.Errorf("adj[ghost] = %v, %v; want empty entry", got, ok)
	}
}

func TestReplaceAllAcceptsInconsistentData(t *testing.T) {
	g := New()
	g.AddNode("kept?")

	nodes := []Node{{ID: "x"}, {ID: "x"}} // duplicate on purpose
	edges := []Edge{{Source: "x", Target: "y"}}
	g.ReplaceAll(nodes, edges)

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("ReplaceAll: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}

	// The graph owns copies; mutating the caller's slices must not leak in.
	nodes[0].ID = "mutated"
	if g.Nodes()[0].ID != "x" {
		t.Error("ReplaceAll did not copy the node slice")
	}
}

func TestClearEdges(t *testing.T) {
	g := twoNodeGraph()
	mustAddEdge(t, g, "N1", "N2", Directed, "")

	g.ClearEdges()

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if g.NodeCount() != 2 {
		t.Errorf("ClearEdges touched nodes: %d", g.NodeCount())
	}
}

// The end-to-end scenario: two generated nodes, one labeled directed edge.
func TestDocumentScenario(t *testing.T) {
	g := New()
	g.AddNode("")
	g.AddNode("")
	mustAddEdge(t, g, "N1", "N2", Directed, "go")

	doc := g.Document()

	wantNodes := []Node{{ID: "N1", Label: ""}, {ID: "N2", Label: ""}}
	if !reflect.DeepEqual(doc.Nodes, wantNodes) {
		t.Errorf("Nodes = %+v, want %+v", doc.Nodes, wantNodes)
	}
	wantEdges := []Edge{{Source: "N1", Target: "N2", Direction: Directed, Label: "go"}}
	if !reflect.DeepEqual(doc.Edges, wantEdges) {
		t.Errorf("Edges = %+v, want %+v", doc.Edges, wantEdges)
	}
	wantAdj := map[string][]string{"N1": {"N2"}, "N2": {}}
	if !reflect.DeepEqual(doc.AdjacencyList, wantAdj) {
		t.Errorf("AdjacencyList = %v, want %v", doc.AdjacencyList, wantAdj)
	}
}

func TestDocumentEmptyGraphHasNonNilSequences(t *testing.T) {
	doc := New().Document()
	if doc.Nodes == nil || doc.Edges == nil || doc.AdjacencyList == nil {
		t.Errorf("Document() = %+v, want non-nil sequences", doc)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "N1"}).DisplayLabel(); got != "N1" {
		t.Errorf("DisplayLabel() = %q, want N1", got)
	}
	if got := (Node{ID: "N1", Label: "Start"}).DisplayLabel(); got != "Start" {
		t.Errorf("DisplayLabel() = %q, want Start", got)
	}
}

func twoNodeGraph() *Graph {
	g := New()
	g.AddNode("")
	g.AddNode("")
	return g
}

func mustAddEdge(t *testing.T, g *Graph, source, target string, d Direction, label string) {
	t.Helper()
	if err := g.AddEdge(source, target, d, label); err != nil {
		t.Fatalf("AddEdge(%s, %s): %v", source, target, err)
	}
}
