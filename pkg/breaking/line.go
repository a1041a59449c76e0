package breaking

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

// LineOptions configures a [LineBreaker].
type LineOptions struct {
	// Width is the target width of every line.
	Width int
	// Alignment of all lines but the last, and of the last line.
	Alignment     Alignment
	AlignmentLast Alignment

	// KeepAlternatives keeps the best breaking for every line count in
	// Result.Alternatives.
	KeepAlternatives bool

	Params   Params
	Policy   Policy
	Observer Observer
	Logger   *log.Logger
	// Trace keeps the candidate graph in Result.Graph.
	Trace bool
}

// LineBreaker breaks paragraphs into lines of constant width.
//
// Search state is local to each FindBreakingPoints call, so a LineBreaker may
// break distinct sequences from several goroutines if its Observer allows it.
type LineBreaker struct {
	opts LineOptions
}

// NewLineBreaker returns a line breaker for opts.
func NewLineBreaker(opts LineOptions) *LineBreaker {
	return &LineBreaker{opts: opts}
}

// FindBreakingPoints breaks seq into lines, starting at element start.
//
// threshold is the largest adjustment ratio a line may need to count as
// feasible. When no feasible breaking exists the result has zero lines,
// unless force is set: then the search degrades to overfull or underfull
// lines, recovering from overflow with empty lines, and always returns a
// breaking. allowed restricts which legal breaks are considered.
//
// The last element is treated as a forced break. If recovery has to
// represent an empty first line and the first element is not a penalty, a
// zero penalty is inserted into seq (see Result.InsertedPenalty).
func (b *LineBreaker) FindBreakingPoints(seq *elastic.Sequence, start int, threshold float64, force bool, allowed AllowedBreaks) Result {
	width := b.opts.Width
	a := algorithm{
		alignment:        b.opts.Alignment,
		alignmentLast:    b.opts.AlignmentLast,
		params:           b.opts.Params,
		policy:           b.opts.Policy,
		observer:         b.opts.Observer,
		logger:           b.opts.Logger,
		size:             func(int) int { return width },
		keepAlternatives: b.opts.KeepAlternatives,
		trace:            b.opts.Trace,
	}
	return a.findBreakingPoints(seq, start, threshold, force, allowed)
}
