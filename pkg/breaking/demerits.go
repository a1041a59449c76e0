package breaking

import (
	"math"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

// computeDifference returns the space left in the container that would run
// from node id to a break at e (element idx), and the footnote content the
// container would hold. A penalty's own width only counts when breaking there.
func (a *algorithm) computeDifference(id nodeID, e elastic.Element, idx int) (int, footnoteState) {
	n := &a.nodes[id]
	actual := a.totalWidth - n.totalWidth
	if e.Kind == elastic.KindPenalty {
		actual += e.Width
	}
	notes := n.notes
	if a.page != nil {
		actual, notes = a.page.footnoteWidth(a, id, actual, idx)
	}
	return a.size(n.line) - actual, notes
}

// elasticity returns the stretch and shrink available to a container
// starting at node id. A container holding footnote content also gets the
// separator's elasticity.
func (a *algorithm) elasticity(id nodeID, notes footnoteState) (stretch, shrink int) {
	n := &a.nodes[id]
	stretch = a.totalStretch - n.totalStretch
	shrink = a.totalShrink - n.totalShrink
	if a.page != nil && notes.inserted > n.notes.inserted {
		stretch += a.page.separator.Stretch
		shrink += a.page.separator.Shrink
	}
	return stretch, shrink
}

// computeAdjustmentRatio scales difference by the available elasticity.
// Without elasticity in the needed direction the ratio is +/-InfiniteRatio.
// The last line of a paragraph that is not justified is left ragged.
func (a *algorithm) computeAdjustmentRatio(e elastic.Element, difference, stretch, shrink int) float64 {
	switch {
	case difference > 0:
		if a.page == nil && a.alignmentLast != AlignJustify && e.IsForcedBreak() {
			return 0
		}
		if stretch > 0 {
			return float64(difference) / float64(stretch)
		}
		return InfiniteRatio
	case difference < 0:
		if shrink > 0 {
			return float64(difference) / float64(shrink)
		}
		return -InfiniteRatio
	}
	return 0
}

// computeDemerits returns the accumulated demerits of breaking at e after
// node id, including the predecessor's total.
func (a *algorithm) computeDemerits(id nodeID, e elastic.Element, idx int, fitness Fitness, r float64, notes footnoteState) float64 {
	n := &a.nodes[id]
	f := math.Abs(r)
	f = 1 + 100*f*f*f

	var demerits float64
	if e.Kind == elastic.KindPenalty {
		cost := float64(e.Cost)
		switch {
		case cost >= 0:
			f += cost
			demerits = f * f
		case !e.IsForcedBreak():
			demerits = f*f - cost*cost
		default:
			demerits = f * f
		}
	} else {
		demerits = f * f
	}

	if e.Kind == elastic.KindPenalty && e.Flagged && a.flaggedAt(n.position) {
		demerits += a.params.RepeatedFlaggedDemerit
		if limit := a.params.MaxFlaggedPenalties; limit >= 1 {
			count := 2
			for p := n.previous; p != noNode && count <= limit; p = a.nodes[p].previous {
				if !a.flaggedAt(a.nodes[p].position) {
					break
				}
				count++
			}
			if count > limit {
				demerits += infiniteDemerits
			}
		}
	}

	if d := int(fitness) - int(n.fitness); d > 1 || d < -1 {
		demerits += a.params.IncompatibleFitnessDemerit
	}

	if a.page != nil {
		demerits += a.page.footnoteDemerits(notes)
	}

	demerits += n.totalDemerits

	if a.policy.Demerits != nil {
		demerits = a.policy.Demerits(DemeritsContext{
			Base:     demerits,
			Ratio:    r,
			Fitness:  fitness,
			Element:  e,
			Index:    idx,
			From:     n.position,
			Line:     n.line,
			Sequence: a.seq,
		})
	}
	return demerits
}

// flaggedAt reports whether the element at i is a flagged penalty.
func (a *algorithm) flaggedAt(i int) bool {
	if i < 0 || i >= a.seq.Len() {
		return false
	}
	e := a.seq.At(i)
	return e.Kind == elastic.KindPenalty && e.Flagged
}
