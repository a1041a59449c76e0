// Package pkg provides the core libraries for flowbreak optimal line and
// page breaking.
//
// # Overview
//
// flowbreak chooses break positions in a flow of content by total fit: every
// feasible breakpoint is kept as a candidate and the breaking with the least
// demerits over the whole flow wins. The same search breaks paragraphs into
// lines and stacked blocks into pages. The pkg directory is organized into
// four areas:
//
//  1. [elastic] - The content model (boxes, glue, penalties, footnotes)
//  2. [breaking] - The breakpoint search for lines and pages
//  3. [pipeline] - Orchestration (input, caching, hooks, rendering)
//  4. [cache], [io], [render] - Storage, interchange and visualization
//
// # Architecture
//
// The typical data flow through flowbreak:
//
//	Plain text / JSON sequence
//	         ↓
//	    [elastic/text] or [io] (build the element sequence)
//	         ↓
//	    [breaking] (line or page breaker)
//	         ↓
//	    [pipeline] (cache, hooks, resume at inline size changes)
//	         ↓
//	    Lines, pages, JSON or a rendered candidate graph
//
// # Quick Start
//
// Break a paragraph into lines of 40 cells:
//
//	import (
//	    "github.com/matzehuels/flowbreak/pkg/breaking"
//	    "github.com/matzehuels/flowbreak/pkg/elastic/text"
//	)
//
//	opts := text.Options{Alignment: breaking.AlignJustify}
//	seq := text.Paragraph("Some long text ...", opts)
//	lb := breaking.NewLineBreaker(breaking.LineOptions{
//	    Width:     text.Width(40, opts),
//	    Alignment: breaking.AlignJustify,
//	})
//	res := lb.FindBreakingPoints(seq, 0, 2, false, breaking.AllBreaks)
//	lines := text.Lines(seq, res.Breakpoints)
//
// # Main Packages
//
// [elastic] - Boxes, glue and penalties with the prefix sums the search needs.
// Boxes may carry footnotes, which the page breaker places.
//
// [elastic/text] - Builds paragraph sequences from plain text and stacks
// broken lines into page flows.
//
// [breaking] - The breakpoint search. [breaking.LineBreaker] breaks
// paragraphs; [breaking.PageBreaker] adds footnotes, page geometry, keep
// constraints and inline size changes. Both share the candidate graph,
// recovery from overflow and the backtrace.
//
// [pipeline] - Runs breakers with defaults, caching and observability hooks.
// Shared by the CLI and the HTTP server.
//
// [cache] - File, Redis and MongoDB result caches behind one interface.
//
// [io] - JSON interchange format for sequences and results.
//
// [render/nodelink] - Candidate graph diagrams using Graphviz.
//
// [errors], [observability] - Coded errors and event hooks.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/breaking/...       # Specific package
//	go test -run Example ./pkg/...   # Examples only
package pkg
