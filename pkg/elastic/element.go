package elastic

import "fmt"

// Infinite is the penalty cost treated as "never break here". Costs at or
// below -Infinite force a break.
const Infinite = 1000

// Kind identifies the variant of an [Element].
type Kind int

const (
	// KindBox is rigid, unbreakable content.
	KindBox Kind = iota
	// KindGlue is elastic space. It is a legal break only after a box.
	KindGlue
	// KindPenalty is a candidate break point carrying a cost.
	KindPenalty
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindGlue:
		return "glue"
	case KindPenalty:
		return "penalty"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// BreakClass names the keep context a penalty belongs to. Page breaking uses
// it to decide whether an infinite penalty may still end a column.
type BreakClass int

const (
	// BreakAuto places no constraint on the surrounding break.
	BreakAuto BreakClass = iota
	// BreakLine keeps content within a line.
	BreakLine
	// BreakColumn keeps content within a column.
	BreakColumn
	// BreakPage keeps content within a page.
	BreakPage
)

func (c BreakClass) String() string {
	switch c {
	case BreakAuto:
		return "auto"
	case BreakLine:
		return "line"
	case BreakColumn:
		return "column"
	case BreakPage:
		return "page"
	}
	return fmt.Sprintf("BreakClass(%d)", int(c))
}

// Element is one entry of a [Sequence]. Which fields are meaningful depends on
// Kind:
//
//   - Box: Width, Footnotes
//   - Glue: Width, Stretch, Shrink
//   - Penalty: Width, Cost, Flagged, Class
//
// Position is an opaque token supplied by the producer and handed back in
// breakpoints; the engine never inspects it.
type Element struct {
	Kind    Kind
	Width   int
	Stretch int
	Shrink  int
	Cost    int
	Flagged bool
	Class   BreakClass

	Position  any
	Footnotes [][]Element
}

// Box returns a box of the given width.
func Box(width int) Element {
	return Element{Kind: KindBox, Width: width}
}

// Glue returns a glue element with natural width and elasticity.
func Glue(width, stretch, shrink int) Element {
	return Element{Kind: KindGlue, Width: width, Stretch: stretch, Shrink: shrink}
}

// Penalty returns a penalty. Width is only added to a line that ends at it,
// as for a hyphen.
func Penalty(width, cost int, flagged bool) Element {
	return Element{Kind: KindPenalty, Width: width, Cost: clampCost(cost), Flagged: flagged}
}

// ForcedBreak returns a zero-width penalty that always breaks.
func ForcedBreak() Element {
	return Element{Kind: KindPenalty, Cost: -Infinite}
}

// Forbidden returns a zero-width penalty that never breaks.
func Forbidden() Element {
	return Element{Kind: KindPenalty, Cost: Infinite}
}

func clampCost(cost int) int {
	switch {
	case cost > Infinite:
		return Infinite
	case cost < -Infinite:
		return -Infinite
	}
	return cost
}

// WithPosition returns a copy of e carrying the given position token.
func (e Element) WithPosition(pos any) Element {
	e.Position = pos
	return e
}

// WithClass returns a copy of e with the given break class.
func (e Element) WithClass(c BreakClass) Element {
	e.Class = c
	return e
}

// WithFootnotes returns a copy of e citing the given footnote bodies.
func (e Element) WithFootnotes(notes ...[]Element) Element {
	e.Footnotes = append([][]Element(nil), notes...)
	return e
}

// IsBox reports whether e is a box.
func (e Element) IsBox() bool { return e.Kind == KindBox }

// IsGlue reports whether e is glue.
func (e Element) IsGlue() bool { return e.Kind == KindGlue }

// IsPenalty reports whether e is a penalty.
func (e Element) IsPenalty() bool { return e.Kind == KindPenalty }

// IsForcedBreak reports whether e is a penalty that always breaks.
func (e Element) IsForcedBreak() bool {
	return e.Kind == KindPenalty && e.Cost <= -Infinite
}

// IsForbidden reports whether e is a penalty that never breaks.
func (e Element) IsForbidden() bool {
	return e.Kind == KindPenalty && e.Cost >= Infinite
}

// HasFootnotes reports whether e is a box citing at least one footnote.
func (e Element) HasFootnotes() bool {
	return e.Kind == KindBox && len(e.Footnotes) > 0
}

// String renders e compactly, e.g. "glue(10,+5,-3)".
func (e Element) String() string {
	switch e.Kind {
	case KindBox:
		if len(e.Footnotes) > 0 {
			return fmt.Sprintf("box(%d,notes=%d)", e.Width, len(e.Footnotes))
		}
		return fmt.Sprintf("box(%d)", e.Width)
	case KindGlue:
		return fmt.Sprintf("glue(%d,+%d,-%d)", e.Width, e.Stretch, e.Shrink)
	case KindPenalty:
		s := fmt.Sprintf("penalty(%d,%d", e.Width, e.Cost)
		if e.Flagged {
			s += ",flagged"
		}
		if e.Class != BreakAuto {
			s += "," + e.Class.String()
		}
		return s + ")"
	}
	return e.Kind.String()
}

// Length returns the natural block length of a footnote body: the sum of its
// box and glue widths. Penalty widths only count when a break occurs there.
func Length(elems []Element) int {
	n := 0
	for _, e := range elems {
		if e.Kind != KindPenalty {
			n += e.Width
		}
	}
	return n
}
