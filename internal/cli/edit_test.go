package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/janwillms/graphboard/pkg/graph"
	gio "github.com/janwillms/graphboard/pkg/io"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press feeds a sequence of keys through the model.
func press(t *testing.T, m editorModel, keys ...string) editorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(editorModel)
		if !ok {
			t.Fatalf("Update() returned %T, want editorModel", next)
		}
	}
	return m
}

func TestEditorAddNode(t *testing.T) {
	m := newEditorModel(graph.New(), "graph.json")

	m = press(t, m, "a", "W", "e", "b", "enter")

	if m.graph.NodeCount() != 1 {
		t.Fatalf("node count = %d, want 1", m.graph.NodeCount())
	}
	n := m.graph.Nodes()[0]
	if n.ID != "N1" || n.Label != "Web" {
		t.Errorf("node = %+v, want {N1 Web}", n)
	}
	if !m.dirty {
		t.Error("adding a node should mark the editor dirty")
	}
	if m.state != stateBrowse {
		t.Errorf("state = %v, want browse", m.state)
	}
}

func TestEditorInputEditing(t *testing.T) {
	m := newEditorModel(graph.New(), "graph.json")

	// Typo corrected with backspace, then canceled input leaves no node.
	m = press(t, m, "a", "x", "backspace", "D", "B", "enter")
	if got := m.graph.Nodes()[0].Label; got != "DB" {
		t.Errorf("label = %q, want DB", got)
	}

	m = press(t, m, "a", "z", "esc")
	if m.graph.NodeCount() != 1 {
		t.Errorf("canceled input added a node: count = %d", m.graph.NodeCount())
	}
}

func TestEditorConnectFlow(t *testing.T) {
	g := graph.New()
	g.AddNode("A")
	g.AddNode("B")
	m := newEditorModel(g, "graph.json")

	// Connect N1 -> N2: pick source N1, move down to N2, default direction.
	m = press(t, m, "c", "enter", "down", "enter", "enter", "enter")

	if m.graph.EdgeCount() != 1 {
		t.Fatalf("edge count = %d, want 1", m.graph.EdgeCount())
	}
	e := m.graph.Edges()[0]
	if e.Source != "N1" || e.Target != "N2" || e.Direction != graph.Directed {
		t.Errorf("edge = %+v", e)
	}
}

func TestEditorConnectRejectsSelfLoop(t *testing.T) {
	g := graph.New()
	g.AddNode("A")
	g.AddNode("B")
	m := newEditorModel(g, "graph.json")

	// Pick N1 as source, then try N1 as target again.
	m = press(t, m, "c", "enter", "enter")

	if m.graph.EdgeCount() != 0 {
		t.Errorf("self-loop was added: edges = %d", m.graph.EdgeCount())
	}
	if !m.failed {
		t.Error("expected an error status after picking the source as target")
	}
}

func TestEditorConnectNeedsTwoNodes(t *testing.T) {
	g := graph.New()
	g.AddNode("only")
	m := newEditorModel(g, "graph.json")

	m = press(t, m, "c")
	if m.state != stateBrowse {
		t.Errorf("state = %v, want browse", m.state)
	}
	if !m.failed {
		t.Error("expected an error status with fewer than two nodes")
	}
}

func TestEditorDeleteNodeCascades(t *testing.T) {
	g := graph.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	if err := g.AddEdge(a.ID, b.ID, graph.Directed, ""); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	m := newEditorModel(g, "graph.json")

	m = press(t, m, "d") // cursor starts on N1

	if m.graph.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1", m.graph.NodeCount())
	}
	if m.graph.EdgeCount() != 0 {
		t.Errorf("edges referencing a deleted node survived: %d", m.graph.EdgeCount())
	}
}

func TestEditorClearEdges(t *testing.T) {
	g := graph.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	_ = g.AddEdge(a.ID, b.ID, graph.Directed, "")
	m := newEditorModel(g, "graph.json")

	m = press(t, m, "x")

	if m.graph.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0", m.graph.EdgeCount())
	}
	if m.graph.NodeCount() != 2 {
		t.Errorf("clearing edges touched nodes: count = %d", m.graph.NodeCount())
	}
}

func TestEditorSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	m := newEditorModel(graph.New(), path)

	m = press(t, m, "a", "A", "enter", "s")

	if m.dirty {
		t.Error("save should clear the dirty flag")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	g, err := gio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("saved graph has %d nodes, want 1", g.NodeCount())
	}
}

func TestEditorViewShowsState(t *testing.T) {
	g := graph.New()
	a := g.AddNode("Web")
	b := g.AddNode("DB")
	_ = g.AddEdge(a.ID, b.ID, graph.Undirected, "query")
	m := newEditorModel(g, "graph.json")

	view := m.View()
	for _, want := range []string{"N1", "Web", "N2", "DB", "query", "graph.json"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
