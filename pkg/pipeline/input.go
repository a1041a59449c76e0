package pipeline

import (
	"context"
	"io"

	"github.com/matzehuels/flowbreak/pkg/elastic"
	"github.com/matzehuels/flowbreak/pkg/elastic/text"
	flowio "github.com/matzehuels/flowbreak/pkg/io"
)

// TextResult is a line breaking of plain text.
type TextResult struct {
	*Result
	// Text holds the broken lines, without alignment padding.
	Text []string `json:"text"`
}

// TextSequence builds the sequence for s with the producer options of opts.
func TextSequence(s string, opts LineOptions) (*elastic.Sequence, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return text.Paragraph(s, opts.TextOptions()), nil
}

// BreakText breaks plain text into lines of opts.Width terminal cells.
func (r *Runner) BreakText(ctx context.Context, s string, opts LineOptions) (*TextResult, error) {
	r.applyLogger(&opts.Logger)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	topts := opts.TextOptions()
	seq := text.Paragraph(s, topts)

	units := opts
	units.Width = text.Width(opts.Width, topts)
	res, err := r.BreakLines(ctx, seq, units)
	if err != nil {
		return nil, err
	}
	return &TextResult{Result: res, Text: text.Lines(seq, res.Breakpoints)}, nil
}

// ReadSequence decodes a JSON element sequence.
func ReadSequence(rd io.Reader) (*elastic.Sequence, error) {
	return flowio.ReadJSON(rd)
}

// PagedText is plain text broken into lines and then into pages.
type PagedText struct {
	Lines *TextResult `json:"lines"`
	Pages *Result     `json:"pages"`
	// Text holds the lines of every page.
	Text [][]string `json:"text"`
}

// PaginateText breaks s into lines of lineOpts.Width cells and stacks the
// lines onto the pages of pageOpts, one unit of height per line.
func (r *Runner) PaginateText(ctx context.Context, s string, lineOpts LineOptions, pageOpts PageOptions) (*PagedText, error) {
	r.applyLogger(&pageOpts.Logger)
	if err := pageOpts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	lines, err := r.BreakText(ctx, s, lineOpts)
	if err != nil {
		return nil, err
	}
	flow := text.Flow(lines.Text)
	pages, err := r.BreakPages(ctx, flow, pageOpts)
	if err != nil {
		return nil, err
	}
	return &PagedText{Lines: lines, Pages: pages, Text: text.Stacked(flow, pages.Breakpoints)}, nil
}
