// Package text turns plain text into paragraph sequences measured in
// terminal cells, and turns broken sequences back into lines.
//
// Words are measured with go-runewidth, so wide East Asian characters take
// two cells. Widths are multiplied by [Options.Unit] to leave room for glue
// stretch and shrink finer than one cell.
package text

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/elastic"
)

const (
	// DefaultUnit is the number of width units per terminal cell.
	DefaultUnit = 6
	// DefaultHyphenPenalty is the cost of breaking at a soft hyphen.
	DefaultHyphenPenalty = 50

	softHyphen = '\u00ad'
	hyphen     = "-"
	space      = " "
)

// Options controls how text is turned into a sequence.
type Options struct {
	Unit          int
	Alignment     breaking.Alignment
	HyphenPenalty int
}

func (o Options) withDefaults() Options {
	if o.Unit <= 0 {
		o.Unit = DefaultUnit
	}
	if o.HyphenPenalty == 0 {
		o.HyphenPenalty = DefaultHyphenPenalty
	}
	return o
}

// Paragraph builds the sequence for text. Words are separated by runs of
// white space, newlines become forced breaks and soft hyphens become
// flagged penalties. Boxes carry their text as position token.
func Paragraph(text string, opts Options) *elastic.Sequence {
	opts = opts.withDefaults()
	b := builder{opts: opts, seq: elastic.NewSequence()}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.endLine()
		}
		b.line(strings.Fields(line))
	}
	b.endLine()
	return b.seq
}

// Width converts a width in terminal cells to sequence units.
func Width(cells int, opts Options) int {
	return cells * opts.withDefaults().Unit
}

type builder struct {
	opts Options
	seq  *elastic.Sequence
}

func (b *builder) cells(s string) int {
	return runewidth.StringWidth(s) * b.opts.Unit
}

func (b *builder) line(words []string) {
	u := b.opts.Unit
	sp := b.cells(space)
	if b.opts.Alignment == breaking.AlignCenter {
		b.seq.Append(elastic.Glue(0, 3*u, 0))
	}
	for i, w := range words {
		if i > 0 {
			b.wordSpace(sp)
		}
		b.word(w)
	}
}

// wordSpace appends the inter-word pattern for the alignment.
func (b *builder) wordSpace(sp int) {
	u := b.opts.Unit
	switch b.opts.Alignment {
	case breaking.AlignJustify:
		b.seq.Append(elastic.Glue(sp, sp/2, sp/3).WithPosition(space))
	case breaking.AlignCenter:
		b.seq.Append(
			elastic.Glue(0, 3*u, 0),
			elastic.Penalty(0, 0, false),
			elastic.Glue(sp, -6*u, 0).WithPosition(space),
			elastic.Box(0),
			elastic.Forbidden(),
			elastic.Glue(0, 3*u, 0),
		)
	default:
		b.seq.Append(
			elastic.Glue(0, 3*u, 0),
			elastic.Penalty(0, 0, false),
			elastic.Glue(sp, -3*u, 0).WithPosition(space),
		)
	}
}

// word appends the fragments of w, split at soft hyphens.
func (b *builder) word(w string) {
	parts := strings.Split(w, string(softHyphen))
	for i, p := range parts {
		if i > 0 {
			b.seq.Append(elastic.Penalty(b.cells(hyphen), b.opts.HyphenPenalty, true).WithPosition(hyphen))
		}
		if p != "" {
			b.seq.Append(elastic.Box(b.cells(p)).WithPosition(p))
		}
	}
}

func (b *builder) endLine() {
	if b.opts.Alignment == breaking.AlignCenter {
		b.seq.Append(elastic.Glue(0, 3*b.opts.Unit, 0))
	}
	b.seq.Append(elastic.ForcedBreak())
}

// Lines materialises the lines of a broken sequence. A line ending at a
// flagged penalty gets a trailing hyphen; glue at the start of a line is
// dropped.
func Lines(seq *elastic.Sequence, bps []breaking.Breakpoint) []string {
	lines := make([]string, 0, len(bps))
	start := 0
	for _, bp := range bps {
		var sb strings.Builder
		pendingSpace := false
		for j := start; j < bp.Position && j < seq.Len(); j++ {
			e := seq.At(j)
			tok, _ := e.Position.(string)
			switch {
			case e.IsBox() && tok != "":
				if pendingSpace {
					sb.WriteString(space)
				}
				sb.WriteString(tok)
				pendingSpace = false
			case e.IsGlue() && e.Width > 0 && sb.Len() > 0:
				pendingSpace = true
			}
		}
		if bp.Position < seq.Len() {
			if e := seq.At(bp.Position); e.IsPenalty() && e.Flagged {
				sb.WriteString(hyphen)
			}
		}
		lines = append(lines, sb.String())
		start = bp.Position + 1
	}
	return lines
}

// Align pads lines to cells terminal cells. Justified lines get their extra
// space spread over word gaps, except the last one.
func Align(lines []string, cells int, a breaking.Alignment) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		gap := max(cells-runewidth.StringWidth(l), 0)
		switch a {
		case breaking.AlignEnd:
			out[i] = strings.Repeat(space, gap) + l
		case breaking.AlignCenter:
			left := gap / 2
			out[i] = strings.Repeat(space, left) + l + strings.Repeat(space, gap-left)
		case breaking.AlignJustify:
			if i == len(lines)-1 {
				out[i] = l + strings.Repeat(space, gap)
				continue
			}
			out[i] = justify(l, gap)
		default:
			out[i] = l + strings.Repeat(space, gap)
		}
	}
	return out
}

func justify(l string, gap int) string {
	words := strings.Fields(l)
	if len(words) < 2 {
		return l + strings.Repeat(space, gap)
	}
	slots := len(words) - 1
	var sb strings.Builder
	for i, w := range words {
		sb.WriteString(w)
		if i == slots {
			break
		}
		n := 1 + gap/slots
		if i < gap%slots {
			n++
		}
		sb.WriteString(strings.Repeat(space, n))
	}
	return sb.String()
}
