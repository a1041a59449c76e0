package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/render"
)

// Options configures candidate graph rendering.
type Options struct {
	// Detailed adds fitness, adjustment ratio and total demerits to node
	// labels. When false, only the position and container are shown.
	Detailed bool
	// ChosenOnly drops every node that is not on the selected breaking.
	ChosenOnly bool
}

// ToDOT converts a traced candidate graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Nodes are ranked by container so that every row holds the candidates
// ending the same container. Nodes and edges of the selected breaking are
// filled and drawn bold.
func ToDOT(g *breaking.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if g == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	var ranks [][]int
	for _, n := range g.Nodes {
		if opts.ChosenOnly && !n.Chosen {
			continue
		}
		label := fmtLabel(n, opts.Detailed)
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(fmtAttrs(n, label), ", "))
		for len(ranks) <= n.Line {
			ranks = append(ranks, nil)
		}
		ranks[n.Line] = append(ranks[n.Line], n.ID)
	}

	buf.WriteString("\n")
	for _, ids := range ranks {
		if len(ids) < 2 {
			continue
		}
		buf.WriteString("  { rank=same;")
		for _, id := range ids {
			fmt.Fprintf(&buf, " n%d;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes {
		if n.Previous < 0 || (opts.ChosenOnly && !n.Chosen) {
			continue
		}
		if n.Chosen {
			fmt.Fprintf(&buf, "  n%d -> n%d [penwidth=3];\n", n.Previous, n.ID)
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [color=grey];\n", n.Previous, n.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n breaking.GraphNode, detailed bool) string {
	head := fmt.Sprintf("@%d", n.Position)
	if n.Previous < 0 {
		head = "start"
	}
	if !detailed {
		return fmt.Sprintf("%s\ncontainer %d", head, n.Line)
	}

	parts := []string{
		fmt.Sprintf("container: %d", n.Line),
		fmt.Sprintf("fitness: %s", n.Fitness),
		fmt.Sprintf("ratio: %.3f", n.Ratio),
		fmt.Sprintf("demerits: %.0f", n.Demerits),
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n breaking.GraphNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Chosen {
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

// RenderPDF renders a DOT graph as PDF via SVG conversion with [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Render renders dot in the named format: "dot", "svg", "pdf" or "png".
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case "", "dot":
		return []byte(dot), nil
	case "svg":
		return RenderSVG(ctx, dot)
	case "pdf":
		return RenderPDF(ctx, dot)
	case "png":
		return RenderPNG(ctx, dot, 2.0)
	default:
		return nil, fmt.Errorf("unsupported graph format %q", format)
	}
}
