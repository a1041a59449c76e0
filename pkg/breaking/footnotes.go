package breaking

import "github.com/matzehuels/flowbreak/pkg/elastic"

// footnoteState is the footnote content placed up to some break: the next
// element to place and the body content before it, glue at split points
// included.
type footnoteState struct {
	inserted int
	cursor   FootnoteCursor
}

// footnoteLedger holds the footnote bodies cited so far, in citation order,
// with their cumulative lengths.
type footnoteLedger struct {
	notes      [][]elastic.Element
	cumulative []int
	total      int

	// newFootnotes is set when the content since the last legal break cited
	// footnotes; firstNew is the first of them.
	newFootnotes bool
	firstNew     int
}

func (l *footnoteLedger) reset() {
	*l = footnoteLedger{}
}

func (l *footnoteLedger) pending() bool { return len(l.notes) > 0 }

// add appends the footnote bodies cited by one box.
func (l *footnoteLedger) add(bodies [][]elastic.Element) {
	if !l.newFootnotes {
		l.newFootnotes = true
		l.firstNew = len(l.notes)
	}
	for _, body := range bodies {
		l.total += elastic.Length(body)
		l.notes = append(l.notes, body)
		l.cumulative = append(l.cumulative, l.total)
	}
}

// drop removes the last n footnote bodies.
func (l *footnoteLedger) drop(n int) {
	n = min(n, len(l.notes))
	l.notes = l.notes[:len(l.notes)-n]
	l.cumulative = l.cumulative[:len(l.cumulative)-n]
	l.total = 0
	if len(l.cumulative) > 0 {
		l.total = l.cumulative[len(l.cumulative)-1]
	}
}

// end is the cursor past every cited footnote.
func (l *footnoteLedger) end() FootnoteCursor {
	return FootnoteCursor{List: len(l.notes)}
}

func (l *footnoteLedger) all() footnoteState {
	return footnoteState{inserted: l.total, cursor: l.end()}
}

// normalize moves a cursor past the end of a body to the next body.
func (l *footnoteLedger) normalize(c FootnoteCursor) FootnoteCursor {
	if c.List < len(l.notes) && c.Element >= len(l.notes[c.List]) {
		return FootnoteCursor{List: c.List + 1}
	}
	return c
}

// deferred reports whether s left footnotes for later containers: either
// some footnote cited before the newest ones, or anything at all.
func (l *footnoteLedger) deferred(s footnoteState) bool {
	if l.newFootnotes && l.firstNew != 0 && s.cursor.Before(FootnoteCursor{List: l.firstNew}) {
		return true
	}
	return s.inserted < l.total
}

// offset is the footnote content before c: every earlier body plus the
// head of the body c points into.
func (l *footnoteLedger) offset(c FootnoteCursor) int {
	if c.List >= len(l.notes) {
		return l.total
	}
	n := 0
	if c.List > 0 {
		n = l.cumulative[c.List-1]
	}
	return n + elastic.Length(l.notes[c.List][:c.Element])
}

// at returns the state of having placed everything before c.
func (l *footnoteLedger) at(c FootnoteCursor) footnoteState {
	return footnoteState{inserted: l.offset(c), cursor: c}
}

// split returns the largest amount of footnote content, starting after
// from, that fits in avail, and the cursor after it. Whole bodies come
// first, then a prefix of the next body ending at one of its legal breaks.
// Glue at the break is left out of the amount, a penalty's width is counted.
// Unless old footnotes may be deferred, every body cited before the new
// ones must be included. A result of 0 means not even the smallest piece
// fits.
func (l *footnoteLedger) split(from footnoteState, avail int, canDeferOld bool) (int, FootnoteCursor) {
	cur := l.normalize(from.cursor)
	length := 0
	added := false

	if cur.List < len(l.notes)-1 {
		if !canDeferOld && l.newFootnotes && l.firstNew > 0 && cur.List < l.firstNew {
			length = l.cumulative[l.firstNew-1] - from.inserted
			cur = FootnoteCursor{List: l.firstNew}
		}
		for cur.List < len(l.notes) && l.cumulative[cur.List]-from.inserted <= avail {
			length = l.cumulative[cur.List] - from.inserted
			added = true
			cur = FootnoteCursor{List: cur.List + 1}
		}
	}

	best, bestCur := 0, from.cursor
	if added {
		best, bestCur = length, cur
	}
	if cur.List >= len(l.notes) {
		return best, bestCur
	}

	body := l.notes[cur.List]
	boxBefore := false
	for i := cur.Element; i < len(body); i++ {
		e := body[i]
		switch e.Kind {
		case elastic.KindBox:
			length += e.Width
			boxBefore = true
			continue
		case elastic.KindGlue:
			if !boxBefore {
				length += e.Width
				continue
			}
		case elastic.KindPenalty:
			if e.Cost >= elastic.Infinite {
				continue
			}
		}
		piece := length
		if e.IsPenalty() {
			piece += e.Width
		}
		if piece > avail {
			return best, bestCur
		}
		best, bestCur = piece, l.normalize(FootnoteCursor{List: cur.List, Element: i + 1})
		// Passing the break keeps its glue inside the piece.
		if e.IsGlue() {
			length += e.Width
		}
		boxBefore = false
	}
	// The rest of the body has no further break.
	if rest := l.cumulative[cur.List] - from.inserted; rest <= avail {
		best, bestCur = rest, FootnoteCursor{List: cur.List + 1}
	}
	return best, bestCur
}

// next returns the smallest piece of footnote content after from: the rest
// of the current body up to its next legal break, measured like [split]. It
// always makes progress while footnotes remain.
func (l *footnoteLedger) next(from footnoteState) (int, FootnoteCursor) {
	cur := l.normalize(from.cursor)
	if cur.List >= len(l.notes) {
		return 0, cur
	}
	body := l.notes[cur.List]
	length := 0
	boxBefore := false
	for i := cur.Element; i < len(body); i++ {
		e := body[i]
		switch e.Kind {
		case elastic.KindBox:
			length += e.Width
			boxBefore = true
		case elastic.KindGlue:
			if boxBefore && length > 0 {
				return length, l.normalize(FootnoteCursor{List: cur.List, Element: i + 1})
			}
			length += e.Width
		case elastic.KindPenalty:
			if e.Cost < elastic.Infinite && length > 0 {
				return length + e.Width, l.normalize(FootnoteCursor{List: cur.List, Element: i + 1})
			}
		}
	}
	return l.cumulative[cur.List] - from.inserted, FootnoteCursor{List: cur.List + 1}
}

// noBreakCache answers whether the content between a break and a later
// element holds no legal break, remembering the last answer.
type noBreakCache struct {
	prev, at int
	value    bool
	valid    bool
}

func (c *noBreakCache) reset() { *c = noBreakCache{} }

func (c *noBreakCache) between(seq *elastic.Sequence, prevBreak, breakIdx int) bool {
	if c.valid &&
		((prevBreak >= c.prev && breakIdx == c.at && c.value) ||
			(prevBreak <= c.prev && breakIdx >= c.at && !c.value)) {
		return c.value
	}
	idx := prevBreak + 1
	for idx < seq.Len() && !seq.At(idx).IsBox() {
		idx++
	}
	for ; idx < breakIdx; idx++ {
		if seq.IsBreakable(idx) {
			break
		}
	}
	c.prev, c.at, c.value, c.valid = prevBreak, breakIdx, idx >= breakIdx, true
	return c.value
}
