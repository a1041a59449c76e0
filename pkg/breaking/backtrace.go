package breaking

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

var discardLogger = log.New(io.Discard)

// collect filters the final nodes and turns them into a result.
func (a *algorithm) collect() Result {
	best, kept := a.filterActiveNodes()
	if best == noNode {
		if a.page != nil && a.page.bestForIPD != noNode && a.page.ipdDifference != 0 {
			return a.ipdChangeResult()
		}
		return Result{}
	}
	return a.result(best, kept)
}

// result backtraces best (and any kept alternatives) and notifies the
// observer in document order.
func (a *algorithm) result(best nodeID, kept []nodeID) Result {
	b := a.nodes[best]
	res := Result{
		Lines:           b.line,
		Demerits:        b.totalDemerits,
		Recoveries:      a.recoveries,
		Degraded:        a.degraded,
		InsertedPenalty: a.insertedPenalty,
	}
	if len(kept) == 0 {
		kept = []nodeID{best}
	}
	for _, id := range kept {
		bps := a.backtrace(id)
		n := a.nodes[id]
		if a.observer != nil {
			a.observer.OnTotal(n.line, n.totalDemerits)
			for _, bp := range bps {
				a.observer.OnBreakpoint(bp, a.seq, n.line)
			}
		}
		if a.keepAlternatives {
			res.Alternatives = append(res.Alternatives, Alternative{
				Lines:       n.line,
				Demerits:    n.totalDemerits,
				Breakpoints: bps,
			})
		}
		if id == best {
			res.Breakpoints = bps
		}
	}

	for _, bp := range res.Breakpoints {
		if amount := bp.OverflowAmount(); amount > 0 {
			res.Overflows = append(res.Overflows, Overflow{Container: bp.Container, Amount: amount})
			if a.observer != nil {
				a.observer.OnOverflow(bp.Container, amount)
			}
		}
	}
	if a.trace {
		res.Graph = a.graph(best)
	}
	return res
}

// backtrace follows previous links from id and returns the breakpoints in
// document order.
func (a *algorithm) backtrace(id nodeID) []Breakpoint {
	var chain []nodeID
	for n := id; n != noNode && a.nodes[n].previous != noNode; n = a.nodes[n].previous {
		chain = append(chain, n)
	}
	slices.Reverse(chain)

	bps := make([]Breakpoint, 0, len(chain))
	for _, nid := range chain {
		n := a.nodes[nid]
		prev := a.nodes[n.previous]
		bp := Breakpoint{
			Position:         n.position,
			Container:        n.line - 1,
			AdjustRatio:      n.adjustRatio,
			Difference:       n.difference,
			AvailableShrink:  n.availableShrink,
			AvailableStretch: n.availableStretch,
			Fitness:          n.fitness,
			Demerits:         n.totalDemerits,
		}
		if a.page != nil {
			bp.Footnotes = FootnoteRange{
				From:   prev.notes.cursor,
				To:     n.notes.cursor,
				Length: n.notes.inserted - prev.notes.inserted,
			}
		}
		if n.position < a.seq.Len() {
			bp.Token = a.seq.At(n.position).Position
		}
		bps = append(bps, bp)
	}
	return bps
}

// Graph is a snapshot of every candidate node created during a traced
// search. Node ids are indices into Nodes.
type Graph struct {
	Nodes []GraphNode
}

// GraphNode is one candidate node of a [Graph].
type GraphNode struct {
	ID       int
	Previous int // -1 for the start node
	Position int
	Line     int
	Fitness  Fitness
	Ratio    float64
	Demerits float64
	// Chosen marks nodes on the selected breaking.
	Chosen bool
}

// Path returns the ids of the chosen nodes, start node first.
func (g *Graph) Path() []int {
	var ids []int
	for _, n := range g.Nodes {
		if n.Chosen {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (a *algorithm) graph(best nodeID) *Graph {
	g := &Graph{Nodes: make([]GraphNode, len(a.nodes))}
	for i, n := range a.nodes {
		g.Nodes[i] = GraphNode{
			ID:       i,
			Previous: int(n.previous),
			Position: n.position,
			Line:     n.line,
			Fitness:  n.fitness,
			Ratio:    n.adjustRatio,
			Demerits: n.totalDemerits,
		}
	}
	for id := best; id != noNode; id = a.nodes[id].previous {
		g.Nodes[id].Chosen = true
	}
	return g
}
