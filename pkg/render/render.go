package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/janwillms/graphboard/pkg/graph"
	"github.com/janwillms/graphboard/pkg/observability"
)

// SVG renders the graph to SVG bytes using in-process Graphviz.
func SVG(ctx context.Context, g *graph.Graph) ([]byte, error) {
	svg, err := renderDOT(ctx, ToDOT(g), graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// PNG renders the graph to PNG bytes using in-process Graphviz.
func PNG(ctx context.Context, g *graph.Graph) ([]byte, error) {
	return renderDOT(ctx, ToDOT(g), graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) (data []byte, err error) {
	observability.Render().OnRenderStart(ctx, string(format))
	start := time.Now()
	defer func() {
		observability.Render().OnRenderComplete(ctx, string(format), time.Since(start), err)
	}()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> element so the viewBox starts at
// the origin and explicit pixel dimensions are present. Graphviz emits
// point-based sizes that embed poorly in HTML.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
