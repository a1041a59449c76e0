// Package breaking finds near-optimal break positions in a box/glue/penalty
// sequence, for lines of a paragraph or for columns and pages of a flow.
//
// # Overview
//
// The search is the Knuth-Plass total-fit algorithm. It scans the
// [elastic.Sequence] left to right keeping a set of active candidate nodes,
// each a feasible breaking of the content seen so far. At every legal break
// it measures the container each active node would produce:
//
//	difference = size(container) - width(content since node)
//	ratio      = difference / stretch   (or / shrink when negative)
//
// Nodes whose container would need a ratio below -1 can never produce a
// feasible container again and are deactivated. Feasible containers
// (-1 <= ratio <= threshold) are scored with demerits
//
//	f = 1 + 100*|ratio|^3
//	demerits = (f + cost)^2   for penalties with cost >= 0
//	         = f^2 - cost^2   for other non-forced penalties
//	         = f^2            otherwise
//
// plus extra demerits for consecutive flagged breaks and for adjacent
// containers in incompatible [Fitness] classes. For every fitness class the
// cheapest predecessor is kept, which bounds the active set and keeps the
// search close to linear.
//
// # Forced Mode and Recovery
//
// When the active set runs dry the search either reports no breaking or, if
// forcing was requested, falls back to the best too-short or too-long
// container. Overflow is first answered by inserting empty containers, which
// helps when later containers are larger; after [MaxRecoveryAttempts]
// consecutive attempts the search rolls back and accepts the overflow.
// Overflowing containers are reported in Result.Overflows and through
// [Observer.OnOverflow].
//
// # Line and Page Breaking
//
// [LineBreaker] uses one width for every line. [PageBreaker] takes a
// [Geometry] with per-container sizes and adds:
//
//   - footnotes cited by boxes, placed whole, split at legal breaks inside
//     their bodies, or deferred, with [DefaultSplitFootnoteDemerits] and
//     [DefaultDeferredFootnoteDemerits]
//   - keep contexts: infinite penalties of class page may still end a column
//     that is not the last of its page
//   - inline-size changes: the search stops before a container of different
//     width and reports where to resume
//   - trailing containers holding only footnotes left over at the end
//
// # Customisation
//
// A [Policy] replaces the demerits formula, decides whether a break may end
// a container and disables recovery. [BalancingDemerits] balances content
// across a fixed number of columns.
//
// # Usage
//
//	lb := breaking.NewLineBreaker(breaking.LineOptions{Width: 115})
//	res := lb.FindBreakingPoints(seq, 0, 2, false, breaking.AllBreaks)
//	for _, bp := range res.Breakpoints {
//	    fmt.Println(bp.Position, bp.AdjustRatio)
//	}
//
// Results are deterministic: the same input always yields the same
// breakpoints.
package breaking
