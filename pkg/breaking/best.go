package breaking

import (
	"fmt"
	"math"
)

// infiniteDemerits marks an empty best-record slot and unusable breaks.
var infiniteDemerits = math.Inf(1)

// bestRecords tracks, per fitness class, the cheapest way to end a container
// at the element currently under consideration. It is reset after each line
// bucket has been materialised into new nodes.
type bestRecords struct {
	demerits         [4]float64
	node             [4]nodeID
	ratio            [4]float64
	availableShrink  [4]int
	availableStretch [4]int
	difference       [4]int
	notes            [4]footnoteState
	bestIndex        int
}

func newBestRecords() bestRecords {
	var b bestRecords
	b.reset()
	return b
}

func (b *bestRecords) reset() {
	for i := range b.demerits {
		b.demerits[i] = infiniteDemerits
		b.node[i] = noNode
	}
	b.bestIndex = -1
}

type record struct {
	demerits         float64
	node             nodeID
	ratio            float64
	availableShrink  int
	availableStretch int
	difference       int
	fitness          Fitness
	notes            footnoteState
}

// add registers r in its fitness slot. Callers compare against the slot
// first; a worse value is a contract violation.
func (b *bestRecords) add(r record) {
	f := r.fitness
	if r.demerits > b.demerits[f] {
		panic(fmt.Sprintf("breaking: demerits %g worse than recorded best %g for %s", r.demerits, b.demerits[f], f))
	}
	b.demerits[f] = r.demerits
	b.node[f] = r.node
	b.ratio[f] = r.ratio
	b.availableShrink[f] = r.availableShrink
	b.availableStretch[f] = r.availableStretch
	b.difference[f] = r.difference
	b.notes[f] = r.notes
	if b.bestIndex == -1 || r.demerits < b.demerits[b.bestIndex] {
		b.bestIndex = int(f)
	}
}

func (b *bestRecords) hasRecords() bool { return b.bestIndex != -1 }

func (b *bestRecords) finite(f Fitness) bool { return !math.IsInf(b.demerits[f], 1) }

func (b *bestRecords) minDemerits() float64 {
	if b.bestIndex == -1 {
		return infiniteDemerits
	}
	return b.demerits[b.bestIndex]
}
