package breaking

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

// endOfSequence is the forced break assumed after the last element when the
// sequence does not end with one.
var endOfSequence = elastic.ForcedBreak()

// algorithm is the state of one search. A fresh value is built for every
// call; nothing survives between calls.
type algorithm struct {
	seq       *elastic.Sequence
	threshold float64
	force     bool
	allowed   AllowedBreaks

	alignment     Alignment
	alignmentLast Alignment
	params        Params
	policy        Policy
	observer      Observer
	logger        *log.Logger

	size             func(container int) int
	page             *pageState
	keepAlternatives bool
	favorSinglePart  bool
	trace            bool

	nodes              []node
	heads, tails       []nodeID
	startLine, endLine int
	activeCount        int

	totalWidth   int
	totalStretch int
	totalShrink  int

	best bestRecords

	lastTooLong     nodeID
	lastTooShort    nodeID
	lastDeactivated nodeID
	lastRecovered   nodeID

	recoveries      int
	degraded        bool
	insertedPenalty bool
}

func (a *algorithm) init() {
	a.nodes = a.nodes[:0]
	a.heads, a.tails = nil, nil
	a.startLine, a.endLine = 0, 0
	a.activeCount = 0
	a.totalWidth, a.totalStretch, a.totalShrink = 0, 0, 0
	a.best = newBestRecords()
	a.lastTooLong, a.lastTooShort = noNode, noNode
	a.lastDeactivated, a.lastRecovered = noNode, noNode
	a.params = a.params.withDefaults()
	if a.logger == nil {
		a.logger = discardLogger
	}
	if a.page != nil {
		a.page.init()
	}
}

// findBreakingPoints runs the search over seq from start.
func (a *algorithm) findBreakingPoints(seq *elastic.Sequence, start int, threshold float64, force bool, allowed AllowedBreaks) Result {
	if start < 0 {
		panic("breaking: negative start index")
	}
	a.seq = seq
	a.threshold = threshold
	a.force = force
	a.allowed = allowed
	a.init()
	if seq.Len() == 0 || start >= seq.Len() {
		return Result{}
	}

	// Centered lines keep their leading filler glue; otherwise the first
	// container starts right before the first box.
	previousPosition := start
	if a.alignment != AlignCenter {
		if first := seq.FirstBoxIndex(start); first < seq.Len() {
			previousPosition = first - 1
		}
	}
	previousPosition = max(previousPosition, 0)

	startNode := a.newNode(node{position: previousPosition, fitness: Tight, previous: noNode})
	a.addNode(0, startNode)
	lastForced := startNode
	replay := false

	for i := start; i < a.seq.Len(); i++ {
		e := a.seq.At(i)
		switch {
		case replay:
			// The restart node's totals already hold element i.
			replay = false
			if e.IsPenalty() && a.legalPenalty(e) {
				a.considerLegalBreak(e, i)
			}
		case e.Kind == elastic.KindBox:
			a.totalWidth += e.Width
			if a.page != nil && e.HasFootnotes() {
				a.page.ledger.add(e.Footnotes)
			}
		case e.Kind == elastic.KindGlue:
			if i > start && a.seq.At(i-1).IsBox() && a.allowed != OnlyForcedBreaks {
				a.considerLegalBreak(e, i)
			}
			a.totalWidth += e.Width
			a.totalStretch += e.Stretch
			a.totalShrink += e.Shrink
		case e.Kind == elastic.KindPenalty:
			if a.legalPenalty(e) {
				a.considerLegalBreak(e, i)
			}
		}
		if i == a.seq.Len()-1 && !e.IsForcedBreak() && a.activeCount > 0 {
			a.considerLegalBreak(endOfSequence, i)
		}

		if a.activeCount > 0 {
			continue
		}
		if a.page != nil && a.page.ipdDifference != 0 && a.page.bestForIPD != noNode {
			return a.ipdChangeResult()
		}
		if !a.force {
			a.logger.Debug("no feasible breaking", "threshold", a.threshold, "element", i)
			return Result{}
		}
		if a.lastDeactivated != noNode && a.lastDeactivated != lastForced {
			a.replaceLastDeactivated()
		}
		if a.lastTooShort == noNode || a.nodes[lastForced].position == a.nodes[a.lastTooShort].position {
			inserted := a.insertedPenalty
			next, ok := a.recoverFromOverflow()
			if !ok {
				a.logger.Warn("search ran dry without a fallback", "element", i)
				return Result{}
			}
			if a.insertedPenalty && !inserted {
				i++
			}
			lastForced = next
		} else {
			lastForced = a.lastTooShort
			a.lastRecovered = noNode
		}
		i = a.restartFrom(lastForced, i)
		if last := a.seq.Len() - 1; i == last && a.nodes[lastForced].position < last {
			// Only discardable elements follow the restart node: scan the
			// final element again so the breaking still ends there.
			replay = true
			i--
		}
	}

	if a.page != nil {
		a.page.drainFootnotes(a)
	}
	return a.collect()
}

// legalPenalty reports whether a penalty is a break candidate under the
// allowed-breaks filter.
func (a *algorithm) legalPenalty(e elastic.Element) bool {
	if e.Cost >= elastic.Infinite && (a.page == nil || e.Class != elastic.BreakPage) {
		return false
	}
	if a.allowed == NoFlaggedPenalties && e.Flagged {
		return false
	}
	if a.allowed == OnlyForcedBreaks && !e.IsForcedBreak() {
		return false
	}
	return true
}

// considerLegalBreak tries every active node as the start of a container
// ending at element idx.
func (a *algorithm) considerLegalBreak(e elastic.Element, idx int) {
	if a.page != nil {
		a.page.trackKeepContext(a, e)
	}
	a.lastDeactivated = noNode
	a.lastTooLong = noNode

	for line := a.startLine; line < a.endLine; line++ {
		for id := a.head(line); id != noNode; id = a.nodes[id].next {
			n := a.nodes[id]
			if n.position == idx {
				continue
			}
			difference, notes := a.computeDifference(id, e, idx)
			if !a.canEndLine(e, idx, n.line, difference) {
				break
			}
			stretch, shrink := a.elasticity(id, notes)
			r := a.computeAdjustmentRatio(e, difference, stretch, shrink)
			if r < -1 || e.IsForcedBreak() {
				a.deactivateNode(id, line)
			}
			fitness := ClassifyFitness(r)
			demerits := a.computeDemerits(id, e, idx, fitness, r, notes)
			rec := record{
				demerits:         demerits,
				node:             id,
				ratio:            r,
				availableShrink:  shrink,
				availableStretch: stretch,
				difference:       difference,
				fitness:          fitness,
				notes:            notes,
			}
			if r >= -1 && r <= a.threshold {
				a.activateNode(rec)
			}
			if a.force && (r < -1 || r > a.threshold) {
				a.forceNode(rec, idx)
			}
		}
		a.addBreaks(line, idx)
	}

	if a.page != nil {
		a.page.ledger.newFootnotes = false
	}
}

// canEndLine applies the policy hook or the breaker's own rule.
func (a *algorithm) canEndLine(e elastic.Element, idx, container, difference int) bool {
	endsPage := true
	if a.page != nil {
		endsPage = a.page.geometry.EndsPage(container)
	}
	if a.policy.CanEnd != nil {
		return a.policy.CanEnd(CanEndContext{
			Element:    e,
			Index:      idx,
			Container:  container,
			EndsPage:   endsPage,
			Difference: difference,
		})
	}
	if a.page == nil || e.Kind != elastic.KindPenalty || e.Cost <= 0 {
		return true
	}
	switch e.Class {
	case elastic.BreakLine, elastic.BreakColumn:
		return e.Cost < elastic.Infinite
	case elastic.BreakPage:
		return e.Cost < elastic.Infinite || !endsPage
	}
	return true
}

func (a *algorithm) deactivateNode(id nodeID, line int) {
	a.removeNode(line, id)
	a.lastDeactivated = a.compareNodes(a.lastDeactivated, id)
}

func (a *algorithm) activateNode(rec record) {
	if rec.demerits <= a.best.demerits[rec.fitness] {
		a.best.add(rec)
		a.lastTooShort = noNode
	}
}

// totalsAfterBreak returns the running totals plus the glue that a break at
// idx discards, so the next container starts at the following box.
func (a *algorithm) totalsAfterBreak(idx int) (width, stretch, shrink int) {
	width, stretch, shrink = a.totalWidth, a.totalStretch, a.totalShrink
	for i := idx; i < a.seq.Len(); i++ {
		e := a.seq.At(i)
		if e.IsBox() {
			break
		}
		if e.IsGlue() {
			width += e.Width
			stretch += e.Stretch
			shrink += e.Shrink
		} else if e.IsForcedBreak() && i != idx {
			break
		}
	}
	return width, stretch, shrink
}

// forceNode remembers the best too-long and too-short fallbacks.
func (a *algorithm) forceNode(rec record, idx int) {
	prev := a.nodes[rec.node]
	width, stretch, shrink := a.totalsAfterBreak(idx)
	fallback := node{
		position:         idx,
		line:             prev.line + 1,
		fitness:          rec.fitness,
		totalWidth:       width,
		totalStretch:     stretch,
		totalShrink:      shrink,
		adjustRatio:      rec.ratio,
		availableShrink:  rec.availableShrink,
		availableStretch: rec.availableStretch,
		difference:       rec.difference,
		totalDemerits:    rec.demerits,
		previous:         rec.node,
		notes:            rec.notes,
	}
	if rec.ratio < -1 {
		if a.lastTooLong == noNode || rec.demerits < a.nodes[a.lastTooLong].totalDemerits {
			a.lastTooLong = a.newNode(fallback)
		}
		return
	}
	if a.lastTooShort == noNode || rec.demerits <= a.nodes[a.lastTooShort].totalDemerits {
		a.lastTooShort = a.newNode(fallback)
	}
}

// addBreaks materialises the best records of one line bucket into new
// active nodes, keeping every fitness class within the incompatibility
// margin of the cheapest.
func (a *algorithm) addBreaks(line, idx int) {
	if !a.best.hasRecords() {
		return
	}
	width, stretch, shrink := a.totalsAfterBreak(idx)
	limit := a.best.minDemerits() + a.params.IncompatibleFitnessDemerit
	for f := VeryTight; f <= VeryLoose; f++ {
		if !a.best.finite(f) || a.best.demerits[f] > limit {
			continue
		}
		id := a.newNode(node{
			position:         idx,
			line:             line + 1,
			fitness:          f,
			totalWidth:       width,
			totalStretch:     stretch,
			totalShrink:      shrink,
			adjustRatio:      a.best.ratio[f],
			availableShrink:  a.best.availableShrink[f],
			availableStretch: a.best.availableStretch[f],
			difference:       a.best.difference[f],
			totalDemerits:    a.best.demerits[f],
			previous:         a.best.node[f],
			notes:            a.best.notes[f],
		})
		a.activate(line+1, id)
	}
	a.best.reset()
}

// activate adds a new node to its bucket unless the page geometry changes
// inline size right after it.
func (a *algorithm) activate(line int, id nodeID) {
	if a.page != nil && !a.page.admit(a, line, id) {
		return
	}
	a.addNode(line, id)
}

// compareNodes prefers the node further along the sequence, then (for pages)
// the one ending a page, then the one with fewer demerits.
func (a *algorithm) compareNodes(n1, n2 nodeID) nodeID {
	if n1 == noNode || a.nodes[n2].position > a.nodes[n1].position {
		return n2
	}
	if a.nodes[n2].position == a.nodes[n1].position {
		if a.page != nil {
			e1 := a.page.geometry.EndsPage(a.nodes[n1].line - 1)
			e2 := a.page.geometry.EndsPage(a.nodes[n2].line - 1)
			if e2 && !e1 {
				return n2
			}
			if e1 && !e2 {
				return n1
			}
		}
		if a.nodes[n2].totalDemerits < a.nodes[n1].totalDemerits {
			return n2
		}
	}
	return n1
}

// filterActiveNodes picks the final node. When alternatives are requested it
// also returns the best node per container count, ordered by count.
func (a *algorithm) filterActiveNodes() (nodeID, []nodeID) {
	if a.keepAlternatives {
		var kept []nodeID
		best := noNode
		for line := a.startLine; line < a.endLine; line++ {
			lineBest := noNode
			for id := a.head(line); id != noNode; id = a.nodes[id].next {
				lineBest = a.compareNodes(lineBest, id)
			}
			if lineBest != noNode {
				kept = append(kept, lineBest)
				best = a.compareNodes(best, lineBest)
			}
		}
		return best, kept
	}

	best := noNode
	for _, id := range a.activeNodes() {
		if a.favorSinglePart && best != noNode && a.nodes[id].line > 1 {
			b := a.nodes[best]
			if abs(b.difference) < b.availableShrink {
				continue
			}
		}
		best = a.compareNodes(best, id)
	}
	return best, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
