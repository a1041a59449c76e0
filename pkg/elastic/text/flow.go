package text

import (
	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/elastic"
)

const (
	// WidowPenalty discourages a page break after the first or before the
	// last line of a flow.
	WidowPenalty = 150

	// fillStretch lets the last page of a flow end short.
	fillStretch = 10000
)

// Flow stacks broken lines into a page sequence. Each line is a box of
// height one carrying its text, and lines are separated by glue that may
// stretch by one. The flow ends with fill glue and a forced break, so the
// last page may be short.
func Flow(lines []string) *elastic.Sequence {
	seq := elastic.NewSequence()
	for i, l := range lines {
		if i > 0 {
			if i == 1 || i == len(lines)-1 {
				seq.Append(elastic.Penalty(0, WidowPenalty, false))
			}
			seq.Append(elastic.Glue(0, 1, 0))
		}
		seq.Append(elastic.Box(1).WithPosition(l))
	}
	seq.Append(
		elastic.Forbidden(),
		elastic.Glue(0, fillStretch, 0),
		elastic.ForcedBreak(),
	)
	return seq
}

// Stacked returns the box tokens of every container of a broken flow, in
// order. It is the page counterpart of [Lines].
func Stacked(seq *elastic.Sequence, bps []breaking.Breakpoint) [][]string {
	out := make([][]string, 0, len(bps))
	start := 0
	for _, bp := range bps {
		var rows []string
		for j := start; j < bp.Position && j < seq.Len(); j++ {
			e := seq.At(j)
			if tok, ok := e.Position.(string); ok && e.IsBox() {
				rows = append(rows, tok)
			}
		}
		out = append(out, rows)
		start = bp.Position + 1
	}
	return out
}
