package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/janwillms/graphboard/pkg/cache"
	"github.com/janwillms/graphboard/pkg/graph"
	gio "github.com/janwillms/graphboard/pkg/io"
	"github.com/janwillms/graphboard/pkg/render"
)

// Supported render output formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"
)

// renderCacheTTL bounds how long rendered artifacts stay in the file cache.
const renderCacheTTL = 7 * 24 * time.Hour

// renderCommand creates the render command for drawing saved graph documents.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a graph document as SVG, PNG, or DOT",
		Long: `Render reads a graph JSON document and draws it with graphviz.

Node boxes show the label, falling back to the node id when the label is
empty. Directed edges get one arrowhead, bidirected edges two, undirected
edges none. Output files are written next to the input unless --output
names a different base path.

Rendered SVG and PNG artifacts are cached under ~/.cache/graphboard, keyed
by the drawing they were produced from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, parseFormats(formats), noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path without extension (default: input path)")
	cmd.Flags().StringVarP(&formats, "format", "f", formatSVG, "comma-separated output formats: svg,png,dot")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := gio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debug("document loaded", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	artifacts, err := newRenderCache(noCache)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	var written []string
	for _, format := range formats {
		format = strings.TrimSpace(format)
		data, err := renderFormat(ctx, g, format, artifacts, logger.Debug)
		if err != nil {
			return err
		}

		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	prog.done(fmt.Sprintf("Rendered %d format(s)", len(written)))
	printStats(g.NodeCount(), g.EdgeCount())
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// renderFormat produces one output format, consulting the artifact cache for
// the expensive graphviz formats. DOT is emitted directly.
func renderFormat(ctx context.Context, g *graph.Graph, format string, artifacts cache.Cache, debugf func(any, ...any)) ([]byte, error) {
	dot := render.ToDOT(g)
	if format == formatDOT {
		return []byte(dot), nil
	}

	var draw func(context.Context, *graph.Graph) ([]byte, error)
	switch format {
	case formatSVG:
		draw = render.SVG
	case formatPNG:
		draw = render.PNG
	default:
		return nil, fmt.Errorf("unknown format %q (want svg, png, or dot)", format)
	}

	key := cache.RenderKey(dot, format)
	if data, hit, err := artifacts.Get(ctx, key); err == nil && hit {
		debugf("render cache hit", "format", format)
		return data, nil
	}

	data, err := draw(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if err := artifacts.Set(ctx, key, data, renderCacheTTL); err != nil {
		debugf("render cache write failed", "err", err)
	}
	return data, nil
}
