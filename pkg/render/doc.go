// Package render provides output conversion shared by the renderers.
//
// # Overview
//
// Renderers produce SVG. This package converts SVG to PDF or PNG by
// shelling out to rsvg-convert from librsvg:
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # Candidate Graphs
//
// The [nodelink] subpackage renders the candidate graph of a traced search
// as a Graphviz diagram. Every row holds the candidates ending one
// container; the selected breaking is highlighted.
//
//	dot := nodelink.ToDOT(res.Graph, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/flowbreak/pkg/render/nodelink
package render
