package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janwillms/graphboard/pkg/graph"
	gio "github.com/janwillms/graphboard/pkg/io"
)

// adjacencyCommand creates the adjacency command for printing derived views.
func (c *CLI) adjacencyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "adjacency <graph.json>",
		Short: "Print the derived adjacency list of a graph document",
		Long: `Adjacency recomputes the outgoing-neighbor mapping from a document's
edge sequence and prints it. Directed edges contribute source to target;
bidirected and undirected edges contribute both ways. Every node gets an
entry, even when it has no neighbors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(g.AdjacencyList())
			}

			fmt.Print(formatAdjacency(g))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the adjacency list as JSON")

	return cmd
}

// formatAdjacency renders the adjacency list as one line per node in
// insertion order. IDs only present as edge endpoints sort after the nodes.
func formatAdjacency(g *graph.Graph) string {
	adj := g.AdjacencyList()

	var b strings.Builder
	seen := make(map[string]bool, len(adj))
	for _, id := range g.NodeIDs() {
		writeAdjacencyLine(&b, id, adj[id])
		seen[id] = true
	}
	for _, e := range g.Edges() {
		for _, id := range []string{e.Source, e.Target} {
			if !seen[id] {
				writeAdjacencyLine(&b, id, adj[id])
				seen[id] = true
			}
		}
	}
	return b.String()
}

func writeAdjacencyLine(b *strings.Builder, id string, neighbors []string) {
	b.WriteString(id)
	b.WriteString(" " + iconArrow + " ")
	if len(neighbors) == 0 {
		b.WriteString("(none)")
	} else {
		b.WriteString(strings.Join(neighbors, ", "))
	}
	b.WriteString("\n")
}
