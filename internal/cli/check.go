package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	gio "github.com/janwillms/graphboard/pkg/io"
)

// checkCommand creates the check command for inspecting imported documents.
func (c *CLI) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <graph.json>",
		Short: "Report integrity issues in a graph document",
		Long: `Check loads a document the way import does (leniently) and then reports
every problem the editing operations would have prevented: empty or
duplicate node ids, edges referencing unknown nodes, self-loops, and
unknown direction modes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			issues := g.Validate()
			if len(issues) == 0 {
				printSuccess("%s is consistent", args[0])
				printStats(g.NodeCount(), g.EdgeCount())
				return nil
			}

			for _, issue := range issues {
				printWarning("%s: %s", issue.Kind, issue.Message)
			}
			return fmt.Errorf("%s: %d issue(s) found", args[0], len(issues))
		},
	}

	return cmd
}
