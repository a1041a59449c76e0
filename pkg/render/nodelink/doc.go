// Package nodelink renders candidate graphs as node-link diagrams.
//
// # Overview
//
// A traced search (LineOptions.Trace or PageOptions.Trace) keeps every
// candidate node it created in Result.Graph. This package turns that graph
// into Graphviz DOT, one rank per container, with the chosen breaking drawn
// bold. It is meant for inspecting why a breaking won.
//
// # Usage
//
//	dot := nodelink.ToDOT(res.Graph, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include fitness, adjustment ratio and demerits
//   - ChosenOnly: only the selected breaking is drawn
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
