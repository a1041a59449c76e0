package elastic

import "fmt"

// Sequence is an ordered list of elements forming one unit of content to
// break: a paragraph, or a whole flow for page breaking.
//
// The zero value is an empty sequence ready for Append.
// Sequence is not safe for concurrent use.
type Sequence struct {
	elems []Element
}

// NewSequence returns a sequence holding a copy of elems.
func NewSequence(elems ...Element) *Sequence {
	return &Sequence{elems: append([]Element(nil), elems...)}
}

// Len returns the number of elements.
func (s *Sequence) Len() int { return len(s.elems) }

// At returns the element at index i. It panics if i is out of range.
func (s *Sequence) At(i int) Element {
	if i < 0 || i >= len(s.elems) {
		panic(fmt.Sprintf("elastic: index %d out of range [0,%d)", i, len(s.elems)))
	}
	return s.elems[i]
}

// Last returns the final element. It panics on an empty sequence.
func (s *Sequence) Last() Element { return s.At(len(s.elems) - 1) }

// Append adds elements to the end of the sequence.
func (s *Sequence) Append(elems ...Element) {
	s.elems = append(s.elems, elems...)
}

// Insert places e at index i, shifting later elements right. Valid indices
// are 0..Len().
func (s *Sequence) Insert(i int, e Element) {
	if i < 0 || i > len(s.elems) {
		panic(fmt.Sprintf("elastic: insert index %d out of range [0,%d]", i, len(s.elems)))
	}
	s.elems = append(s.elems, Element{})
	copy(s.elems[i+1:], s.elems[i:])
	s.elems[i] = e
}

// Elements returns a copy of the underlying elements.
func (s *Sequence) Elements() []Element {
	return append([]Element(nil), s.elems...)
}

// FirstBoxIndex returns the index of the first box at or after from, or Len()
// when there is none. Negative from is treated as 0.
func (s *Sequence) FirstBoxIndex(from int) int {
	from = max(from, 0)
	for i := from; i < len(s.elems); i++ {
		if s.elems[i].Kind == KindBox {
			return i
		}
	}
	return len(s.elems)
}

// EndsWithForcedBreak reports whether the last element is a forced break.
func (s *Sequence) EndsWithForcedBreak() bool {
	return len(s.elems) > 0 && s.elems[len(s.elems)-1].IsForcedBreak()
}

// Width returns the natural width of elements in [from, to), excluding
// penalties.
func (s *Sequence) Width(from, to int) int {
	from = max(from, 0)
	to = min(to, len(s.elems))
	n := 0
	for i := from; i < to; i++ {
		if s.elems[i].Kind != KindPenalty {
			n += s.elems[i].Width
		}
	}
	return n
}

// FootnoteLength returns the total natural length of every footnote cited by
// boxes in the sequence.
func (s *Sequence) FootnoteLength() int {
	n := 0
	for _, e := range s.elems {
		if e.Kind != KindBox {
			continue
		}
		for _, note := range e.Footnotes {
			n += Length(note)
		}
	}
	return n
}

// IsBreakable reports whether index i is a legal break in the structural
// sense: glue directly after a box, or a penalty with finite cost.
func (s *Sequence) IsBreakable(i int) bool {
	e := s.At(i)
	switch e.Kind {
	case KindGlue:
		return i > 0 && s.elems[i-1].Kind == KindBox
	case KindPenalty:
		return e.Cost < Infinite
	}
	return false
}
