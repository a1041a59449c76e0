package breaking

import "github.com/matzehuels/flowbreak/pkg/elastic"

// replaceLastDeactivated lets the most recently deactivated node, a break
// that was feasible before the search ran dry, stand in as a fallback.
func (a *algorithm) replaceLastDeactivated() {
	n := a.nodes[a.lastDeactivated]
	if n.previous == noNode {
		return
	}
	if n.adjustRatio > 0 {
		a.lastTooShort = a.lastDeactivated
	} else {
		a.lastTooLong = a.lastDeactivated
	}
}

// recoverFromOverflow picks the node to restart from when only too-long
// fallbacks remain. With recovery enabled it inserts an empty container
// before the overflowing one; after MaxRecoveryAttempts consecutive tries it
// rolls back to the first overflow and accepts it.
func (a *algorithm) recoverFromOverflow() (nodeID, bool) {
	if a.lastTooLong == noNode {
		return noNode, false
	}
	if a.policy.DisableRecovery || a.nodes[a.lastTooLong].previous == noNode {
		a.degraded = true
		return a.lastTooLong, true
	}

	if a.lastRecovered == noNode {
		a.lastRecovered = a.lastTooLong
		a.logger.Debug("recovering from overflow",
			"position", a.nodes[a.lastTooLong].position,
			"container", a.nodes[a.lastTooLong].line)
	}
	prev := a.nodes[a.lastTooLong].previous
	id := a.recoverFromTooLong(a.lastTooLong)
	a.nodes[id].fitRecoveryCounter = a.nodes[prev].fitRecoveryCounter + 1
	a.recoveries++

	if a.nodes[id].fitRecoveryCounter > MaxRecoveryAttempts {
		id = a.lastRecovered
		a.lastRecovered = noNode
		a.startLine = a.nodes[id].line
		a.endLine = a.nodes[id].line
		a.degraded = true
		a.logger.Debug("recovery exhausted, accepting overflow",
			"position", a.nodes[id].position,
			"attempts", MaxRecoveryAttempts)
	}
	return id, true
}

// recoverFromTooLong returns an empty container node placed right after the
// predecessor of tooLong. In page mode a pending keep-context switch is used
// instead, padded with empty columns up to the end of a page.
func (a *algorithm) recoverFromTooLong(tooLong nodeID) nodeID {
	if a.page != nil {
		if id, ok := a.page.recoverAtKeepSwitch(a, tooLong); ok {
			return id
		}
	}
	prev := a.nodes[tooLong].previous
	if a.nodes[prev].previous == noNode {
		a.ensureLeadingPenalty(prev)
	}
	return a.emptyNode(prev)
}

// ensureLeadingPenalty makes the start node's element a penalty, so an empty
// first container has a break to end at. This is the only place the search
// mutates its sequence.
func (a *algorithm) ensureLeadingPenalty(start nodeID) {
	pos := a.nodes[start].position
	if a.seq.At(pos).IsPenalty() {
		return
	}
	a.seq.Insert(pos, elastic.Penalty(0, 0, false))
	a.shiftPositions(pos)
	a.insertedPenalty = true
	if a.page != nil {
		a.page.noBreak.reset()
	}
	a.logger.Debug("inserted leading penalty", "index", pos)
}

// restartFrom resumes scanning after node id, which becomes the only active
// node. It returns the index to continue the main loop from.
func (a *algorithm) restartFrom(id nodeID, current int) int {
	a.nodes[id].totalDemerits = 0
	a.activate(a.nodes[id].line, id)
	n := a.nodes[id]
	a.startLine = n.line
	a.endLine = n.line + 1
	a.totalWidth = n.totalWidth
	a.totalStretch = n.totalStretch
	a.totalShrink = n.totalShrink
	a.lastTooShort = noNode
	a.lastTooLong = noNode
	if a.page != nil {
		a.page.restart(a, n.position, current)
	}

	// Totals already include the glue discarded after the break.
	idx := n.position
	for idx+1 < a.seq.Len() && !a.seq.At(idx+1).IsBox() {
		idx++
	}
	return idx
}
