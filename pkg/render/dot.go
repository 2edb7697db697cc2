package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/janwillms/graphboard/pkg/graph"
)

// ToDOT converts a graph to Graphviz DOT source.
// The resulting string can be rendered with [SVG] or [PNG], or fed to
// external Graphviz tools.
//
// Nodes are box-shaped and labeled with the node label, falling back to the
// ID when the label is empty. Edge connectors carry dir attributes for the
// bidirected (dir=both) and undirected (dir=none) modes and a label
// attribute when the edge label is non-empty.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  fontsize=10;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  node [shape=box];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.DisplayLabel())
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e graph.Edge) []string {
	var attrs []string
	switch e.Direction.Normalize() {
	case graph.Bidirected:
		attrs = append(attrs, "dir=both")
	case graph.Undirected:
		attrs = append(attrs, "dir=none")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	return attrs
}
