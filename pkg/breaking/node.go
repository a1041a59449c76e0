package breaking

// nodeID indexes the node arena of one search.
type nodeID int32

const noNode nodeID = -1

// node is a feasible breaking ending at element position after line
// containers have been filled. previous is set once at creation; next links
// the node into the bucket of its line while it is active.
type node struct {
	position int
	line     int
	fitness  Fitness

	totalWidth   int
	totalStretch int
	totalShrink  int

	adjustRatio      float64
	availableShrink  int
	availableStretch int
	difference       int
	totalDemerits    float64

	previous nodeID
	next     nodeID

	fitRecoveryCounter int

	// notes is the footnote content placed up to and including this
	// container. Always zero for paragraph breaking.
	notes footnoteState
}

// newNode stores n in the arena and returns its id.
func (a *algorithm) newNode(n node) nodeID {
	n.next = noNode
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

func (a *algorithm) head(line int) nodeID {
	if line < 0 || line >= len(a.heads) {
		return noNode
	}
	return a.heads[line]
}

// addNode appends id to the bucket of line and marks it active.
func (a *algorithm) addNode(line int, id nodeID) {
	for len(a.heads) <= line {
		a.heads = append(a.heads, noNode)
		a.tails = append(a.tails, noNode)
	}
	a.nodes[id].next = noNode
	if tail := a.tails[line]; tail != noNode {
		a.nodes[tail].next = id
	} else {
		a.heads[line] = id
		a.endLine = max(a.endLine, line+1)
	}
	a.tails[line] = id
	a.activeCount++
}

// removeNode unlinks id from the bucket of line. The node keeps its next
// link so a scan positioned on it can continue.
func (a *algorithm) removeNode(line int, id nodeID) {
	h := a.heads[line]
	if h != id {
		prev := h
		for a.nodes[prev].next != id {
			prev = a.nodes[prev].next
		}
		a.nodes[prev].next = a.nodes[id].next
		if a.nodes[prev].next == noNode {
			a.tails[line] = prev
		}
	} else {
		a.heads[line] = a.nodes[id].next
		if a.nodes[id].next == noNode {
			a.tails[line] = noNode
		}
		for a.startLine < a.endLine && a.head(a.startLine) == noNode {
			a.startLine++
		}
	}
	a.activeCount--
}

// activeNodes lists every node still in a bucket, by line then insertion.
func (a *algorithm) activeNodes() []nodeID {
	var ids []nodeID
	for line := a.startLine; line < a.endLine; line++ {
		for id := a.head(line); id != noNode; id = a.nodes[id].next {
			ids = append(ids, id)
		}
	}
	return ids
}

// emptyNode returns a node for an empty container following prev.
func (a *algorithm) emptyNode(prev nodeID) nodeID {
	p := a.nodes[prev]
	return a.newNode(node{
		position:      p.position,
		line:          p.line + 1,
		fitness:       Tight,
		totalWidth:    p.totalWidth,
		totalStretch:  p.totalStretch,
		totalShrink:   p.totalShrink,
		difference:    a.size(p.line),
		totalDemerits: p.totalDemerits,
		previous:      prev,
		notes:         p.notes,
	})
}

// shiftPositions moves every node positioned after at one element to the
// right, following an insertion into the sequence at that index.
func (a *algorithm) shiftPositions(at int) {
	for i := range a.nodes {
		if a.nodes[i].position > at {
			a.nodes[i].position++
		}
	}
}
