// Package elastic provides the box/glue/penalty element model consumed by the
// breaking engine.
//
// # Overview
//
// Content to be broken into lines, columns or pages is described as a flat
// [Sequence] of [Element] values. Each element is one of three kinds:
//
//   - [KindBox]: rigid content of a fixed width; never a break point
//   - [KindGlue]: elastic space with a natural width plus stretch and shrink;
//     breakable only when directly preceded by a box
//   - [KindPenalty]: a candidate break point with a cost; a cost of
//     [Infinite] or more forbids the break, a cost of -[Infinite] or less
//     forces it
//
// The element model knows nothing about fonts or pixels. Producers measure
// content into widths (any integer unit) and the breaking engine reasons only
// about those numbers.
//
// # Basic Usage
//
//	seq := elastic.NewSequence(
//	    elastic.Box(50),
//	    elastic.Glue(10, 5, 3),
//	    elastic.Box(50),
//	    elastic.ForcedBreak(),
//	)
//
// Elements are values. The only sequence mutation the breaking engine performs
// is [Sequence.Insert] of a zero penalty at the start of a paragraph when it
// must represent an empty first line.
//
// # Footnotes
//
// A box may cite footnotes via [Element.Footnotes]. Each footnote body is its
// own element list, broken by the page breaker alongside the main flow.
//
// # Related Packages
//
// The [text] subpackage turns plain text into paragraph sequences.
//
// [text]: github.com/matzehuels/flowbreak/pkg/elastic/text
package elastic
