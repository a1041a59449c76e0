package breaking

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

// PageOptions configures a [PageBreaker].
type PageOptions struct {
	// Geometry provides per-container sizes. Required.
	Geometry Geometry
	// FootnoteSeparator is the glue placed above footnote content in a
	// container that holds any.
	FootnoteSeparator elastic.Element

	// SplitFootnoteDemerits is charged for a footnote split across
	// containers, DeferredFootnoteDemerits per footnote deferred whole.
	// Zero selects the defaults.
	SplitFootnoteDemerits    float64
	DeferredFootnoteDemerits float64

	// FavorSinglePart keeps a one-container result whenever it fits within
	// its shrink, even if more containers would score better.
	FavorSinglePart bool

	Params   Params
	Policy   Policy
	Observer Observer
	Logger   *log.Logger
	// Trace keeps the candidate graph in Result.Graph.
	Trace bool
}

// PageBreaker breaks a whole flow into columns and pages of varying size,
// placing cited footnotes along the way.
//
// Search state is local to each FindBreakingPoints call, so a PageBreaker may
// break distinct sequences from several goroutines if its Observer allows it.
type PageBreaker struct {
	opts PageOptions
}

// NewPageBreaker returns a page breaker for opts. It panics without a geometry.
func NewPageBreaker(opts PageOptions) *PageBreaker {
	if opts.Geometry == nil {
		panic("breaking: PageOptions.Geometry is required")
	}
	if opts.SplitFootnoteDemerits == 0 {
		opts.SplitFootnoteDemerits = DefaultSplitFootnoteDemerits
	}
	if opts.DeferredFootnoteDemerits == 0 {
		opts.DeferredFootnoteDemerits = DefaultDeferredFootnoteDemerits
	}
	return &PageBreaker{opts: opts}
}

// FindBreakingPoints breaks seq from start. See [LineBreaker.FindBreakingPoints]
// for the meaning of threshold, force and allowed.
func (b *PageBreaker) FindBreakingPoints(seq *elastic.Sequence, start int, threshold float64, force bool, allowed AllowedBreaks) Result {
	g := b.opts.Geometry
	a := algorithm{
		alignment:       AlignJustify,
		alignmentLast:   AlignJustify,
		params:          b.opts.Params,
		policy:          b.opts.Policy,
		observer:        b.opts.Observer,
		logger:          b.opts.Logger,
		size:            g.Size,
		favorSinglePart: b.opts.FavorSinglePart,
		trace:           b.opts.Trace,
		page: &pageState{
			geometry:         g,
			separator:        b.opts.FootnoteSeparator,
			splitDemerits:    b.opts.SplitFootnoteDemerits,
			deferredDemerits: b.opts.DeferredFootnoteDemerits,
		},
	}
	return a.findBreakingPoints(seq, start, threshold, force, allowed)
}

// pageState is the page-specific part of a search.
type pageState struct {
	geometry         Geometry
	separator        elastic.Element
	splitDemerits    float64
	deferredDemerits float64

	ledger  footnoteLedger
	noBreak noBreakCache

	currentKeep          elastic.BreakClass
	lastBeforeKeepSwitch nodeID

	ipdDifference int
	bestForIPD    nodeID
}

func (p *pageState) init() {
	p.ledger.reset()
	p.noBreak.reset()
	p.currentKeep = elastic.BreakAuto
	p.lastBeforeKeepSwitch = noNode
	p.ipdDifference = 0
	p.bestForIPD = noNode
}

// trackKeepContext remembers the best too-short node when the flow enters a
// keep-within-page or keep-within-column context, so recovery can roll back
// to it.
func (p *pageState) trackKeepContext(a *algorithm, e elastic.Element) {
	if e.Kind != elastic.KindPenalty {
		return
	}
	switch e.Class {
	case elastic.BreakPage, elastic.BreakColumn:
		if p.currentKeep != e.Class {
			p.lastBeforeKeepSwitch = a.lastTooShort
		}
		p.currentKeep = e.Class
	case elastic.BreakAuto:
		p.currentKeep = elastic.BreakAuto
	}
}

// footnoteWidth adds to actual the footnote content a container starting at
// node id must hold: everything pending when it fits, otherwise the largest
// allowed split, otherwise everything (which rules the break out).
func (p *pageState) footnoteWidth(a *algorithm, id nodeID, actual, idx int) (int, footnoteState) {
	n := a.nodes[id]
	l := &p.ledger
	if !l.pending() {
		return actual, n.notes
	}
	pending := l.total - n.notes.inserted
	if pending <= 0 {
		return actual, n.notes
	}
	actual += p.separator.Width
	size := a.size(n.line)
	if actual+pending <= size {
		return actual + pending, l.all()
	}
	canDeferOld := p.noBreak.between(a.seq, n.position, idx) && l.deferred(n.notes)
	if canDeferOld || l.newFootnotes {
		if split, cur := l.split(n.notes, size-actual, canDeferOld); split > 0 {
			return actual + split, l.at(cur)
		}
	}
	return actual + pending, l.all()
}

// footnoteDemerits charges deferred and split footnotes.
func (p *pageState) footnoteDemerits(s footnoteState) float64 {
	if !p.ledger.pending() {
		return 0
	}
	n := len(p.ledger.notes)
	c := s.cursor
	var d float64
	deferred := n - c.List
	if c.Element > 0 {
		deferred--
		d += p.splitDemerits
	}
	if deferred > 0 {
		d += float64(deferred) * p.deferredDemerits
	}
	return d
}

// admit reports whether a new node may become active. A node ending a
// container followed by one of different inline size is held back as an
// IPD-change candidate instead.
func (p *pageState) admit(a *algorithm, line int, id nodeID) bool {
	n := a.nodes[id]
	if n.position < a.seq.Len()-1 && line > 0 {
		if d := p.geometry.InlineSize(line) - p.geometry.InlineSize(line-1); d != 0 {
			p.ipdDifference = d
			if p.bestForIPD == noNode || n.totalDemerits < a.nodes[p.bestForIPD].totalDemerits {
				p.bestForIPD = id
			}
			return false
		}
	}
	if n.position == a.seq.Len()-1 {
		// Everything fits before the change.
		p.ipdDifference = 0
	}
	return true
}

// recoverAtKeepSwitch rolls back to the node remembered when entering a
// keep context, padding with empty columns to the end of its page.
func (p *pageState) recoverAtKeepSwitch(a *algorithm, tooLong nodeID) (nodeID, bool) {
	id := p.lastBeforeKeepSwitch
	if id == noNode || a.nodes[tooLong].position == a.nodes[id].position {
		return noNode, false
	}
	p.lastBeforeKeepSwitch = noNode
	for !p.geometry.EndsPage(a.nodes[id].line - 1) {
		id = a.emptyNode(id)
	}
	a.logger.Debug("recovering at keep context switch", "position", a.nodes[id].position, "container", a.nodes[id].line)
	return id, true
}

// restart brings the ledger in line with a scan resuming after position.
// Footnotes cited after position are forgotten, since that content will be
// scanned again. A rollback may restart ahead of the scan at current; the
// footnotes cited in between are then added.
func (p *pageState) restart(a *algorithm, position, current int) {
	current = min(current, a.seq.Len()-1)
	for j := current; j > position; j-- {
		if e := a.seq.At(j); e.HasFootnotes() {
			p.ledger.drop(len(e.Footnotes))
		}
	}
	for j := current + 1; j <= position; j++ {
		if e := a.seq.At(j); e.HasFootnotes() {
			p.ledger.add(e.Footnotes)
		}
	}
	p.ledger.newFootnotes = false
}

// drainFootnotes gives every final node that has not placed all footnotes
// extra containers holding only footnote content.
func (p *pageState) drainFootnotes(a *algorithm) {
	if !p.ledger.pending() {
		return
	}
	end := p.ledger.end()
	for _, id := range a.activeNodes() {
		n := a.nodes[id]
		if n.notes.inserted >= p.ledger.total && !n.notes.cursor.Before(end) {
			continue
		}
		last := p.footnoteContainers(a, id)
		a.removeNode(n.line, id)
		a.addNode(a.nodes[last].line, last)
		a.logger.Debug("drained footnotes", "position", n.position, "containers", a.nodes[last].line-n.line)
	}
}

// footnoteContainers chains footnote-only containers after id until every
// footnote is placed and returns the last one.
func (p *pageState) footnoteContainers(a *algorithm, id nodeID) nodeID {
	l := &p.ledger
	end := l.end()
	state := a.nodes[id].notes
	prev := id
	for state.inserted < l.total || state.cursor.Before(end) {
		line := a.nodes[prev].line
		avail := a.size(line) - p.separator.Width
		placed := false
		for state.cursor.Before(end) {
			cur := l.normalize(state.cursor)
			if cur.List >= len(l.notes) {
				state.cursor = cur
				break
			}
			if whole := l.cumulative[cur.List] - state.inserted; whole <= avail {
				avail -= whole
				state = footnoteState{inserted: l.cumulative[cur.List], cursor: FootnoteCursor{List: cur.List + 1}}
				placed = true
				continue
			}
			if split, next := l.split(state, avail, true); split > 0 {
				avail -= split
				state = l.at(next)
				placed = true
			}
			break
		}
		if !placed {
			// Not even the smallest piece fits: place it anyway.
			piece, next := l.next(state)
			avail -= piece
			state = l.at(next)
		}
		if !state.cursor.Before(end) {
			state.inserted = l.total
		}
		pn := a.nodes[prev]
		prev = a.newNode(node{
			position:      pn.position,
			line:          line + 1,
			fitness:       Tight,
			totalWidth:    pn.totalWidth,
			totalStretch:  pn.totalStretch,
			totalShrink:   pn.totalShrink,
			difference:    avail,
			totalDemerits: pn.totalDemerits,
			previous:      prev,
			notes:         state,
		})
	}
	return prev
}

// ipdChangeResult returns the breaking up to the best node before an
// inline-size change.
func (a *algorithm) ipdChangeResult() Result {
	id := a.page.bestForIPD
	a.logger.Debug("stopping at inline size change", "position", a.nodes[id].position, "container", a.nodes[id].line)
	res := a.result(id, nil)
	res.IPDChange = true
	res.Resume = a.nodes[id].position + 1
	return res
}
