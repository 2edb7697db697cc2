package graph

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		nodes     []Node
		edges     []Edge
		wantKinds []IssueKind
	}{
		{
			name:  "Clean",
			nodes: []Node{{ID: "a"}, {ID: "b"}},
			edges: []Edge{{Source: "a", Target: "b", Direction: Directed}},
		},
		{
			name:      "EmptyID",
			nodes:     []Node{{ID: ""}},
			wantKinds: []IssueKind{IssueEmptyID},
		},
		{
			name:      "DuplicateID",
			nodes:     []Node{{ID: "a"}, {ID: "a"}},
			wantKinds: []IssueKind{IssueDuplicateID},
		},
		{
			name:      "DanglingBothEnds",
			nodes:     []Node{{ID: "a"}},
			edges:     []Edge{{Source: "x", Target: "y"}},
			wantKinds: []IssueKind{IssueDanglingSource, IssueDanglingTarget},
		},
		{
			name:      "SelfLoop",
			nodes:     []Node{{ID: "a"}},
			edges:     []Edge{{Source: "a", Target: "a"}},
			wantKinds: []IssueKind{IssueSelfLoop},
		},
		{
			name:      "InvalidDirection",
			nodes:     []Node{{ID: "a"}, {ID: "b"}},
			edges:     []Edge{{Source: "a", Target: "b", Direction: "diagonal"}},
			wantKinds: []IssueKind{IssueInvalidDirection},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.ReplaceAll(tt.nodes, tt.edges)

			issues := g.Validate()
			if len(issues) != len(tt.wantKinds) {
				t.Fatalf("Validate() = %+v, want %d issues", issues, len(tt.wantKinds))
			}
			for i, k := range tt.wantKinds {
				if issues[i].Kind != k {
					t.Errorf("issue %d kind = %q, want %q", i, issues[i].Kind, k)
				}
			}
		})
	}
}

func TestValidateMutatedGraphIsAlwaysClean(t *testing.T) {
	g := New()
	a := g.AddNode("a")
	b := g.AddNode("b")
	mustAddEdge(t, g, a.ID, b.ID, Bidirected, "link")
	g.DeleteNode(a.ID)
	g.AddNode("c")

	if issues := g.Validate(); len(issues) != 0 {
		t.Errorf("Validate() = %+v, want none", issues)
	}
}
