package breaking

import "github.com/matzehuels/flowbreak/pkg/elastic"

// FootnoteCursor points at the next footnote element to place: element
// Element of footnote List, in citation order.
type FootnoteCursor struct {
	List    int `json:"list"`
	Element int `json:"element"`
}

// Before reports whether c comes strictly before o.
func (c FootnoteCursor) Before(o FootnoteCursor) bool {
	return c.List < o.List || (c.List == o.List && c.Element < o.Element)
}

// FootnoteRange is the footnote content placed in one container: elements
// from From (inclusive) up to To (exclusive). Length is the natural length of
// those elements, glue at the split point included, so the lengths of all
// containers add up to the total footnote length.
type FootnoteRange struct {
	From   FootnoteCursor `json:"from"`
	To     FootnoteCursor `json:"to"`
	Length int            `json:"length"`
}

// Empty reports whether the container holds no footnote content.
func (r FootnoteRange) Empty() bool { return r.From == r.To }

// Breakpoint is one chosen container end.
type Breakpoint struct {
	// Position is the index of the element the container ends at.
	Position int `json:"position"`
	// Container is the zero-based container index.
	Container int `json:"container"`

	AdjustRatio      float64 `json:"adjust_ratio"`
	Difference       int     `json:"difference"`
	AvailableShrink  int     `json:"available_shrink"`
	AvailableStretch int     `json:"available_stretch"`
	Fitness          Fitness `json:"fitness"`
	Demerits         float64 `json:"demerits"`

	Footnotes FootnoteRange `json:"footnotes"`

	// Token is the producer's position token of the element at Position.
	Token any `json:"token,omitempty"`
}

// OverflowAmount returns how far the container's content exceeds its size
// after shrinking as far as possible, or 0 when it fits.
func (b Breakpoint) OverflowAmount() int {
	return max(0, -(b.Difference + b.AvailableShrink))
}

// Overflow records an overflowing container.
type Overflow struct {
	Container int `json:"container"`
	Amount    int `json:"amount"`
}

// Alternative is a complete breaking kept for a specific container count.
type Alternative struct {
	Lines       int          `json:"lines"`
	Demerits    float64      `json:"demerits"`
	Breakpoints []Breakpoint `json:"breakpoints"`
}

// Result is the outcome of one search.
type Result struct {
	// Lines is the number of containers produced; 0 when no feasible
	// breaking exists and forcing was not requested.
	Lines       int          `json:"lines"`
	Demerits    float64      `json:"demerits"`
	Breakpoints []Breakpoint `json:"breakpoints"`

	// Alternatives holds one breaking per container count when requested,
	// ordered by count. It includes the chosen breaking.
	Alternatives []Alternative `json:"alternatives,omitempty"`

	Overflows []Overflow `json:"overflows,omitempty"`

	// Recoveries counts empty containers inserted to recover from overflow.
	Recoveries int `json:"recoveries,omitempty"`
	// Degraded is set when recovery was exhausted and an overflowing
	// container was accepted.
	Degraded bool `json:"degraded,omitempty"`
	// InsertedPenalty is set when a zero penalty was inserted at the start of
	// the sequence to represent an empty first container. Element indices
	// after it shifted by one.
	InsertedPenalty bool `json:"inserted_penalty,omitempty"`

	// IPDChange is set when the search stopped before a container whose
	// inline size differs; breaking must resume at Resume with geometry
	// offset by Lines.
	IPDChange bool `json:"ipd_change,omitempty"`
	Resume    int  `json:"resume,omitempty"`

	// Graph is the candidate graph, kept only when tracing was requested.
	Graph *Graph `json:"-"`
}

// Observer receives the chosen breaking during backtrace. OnTotal is called
// once per retained final node, followed by OnBreakpoint for each of its
// breakpoints in document order.
type Observer interface {
	OnTotal(lines int, demerits float64)
	OnBreakpoint(bp Breakpoint, seq *elastic.Sequence, total int)
	OnOverflow(container, amount int)
}

// Funcs adapts plain functions to [Observer]. Nil fields are skipped.
type Funcs struct {
	Total      func(lines int, demerits float64)
	Breakpoint func(bp Breakpoint, seq *elastic.Sequence, total int)
	Overflow   func(container, amount int)
}

func (f Funcs) OnTotal(lines int, demerits float64) {
	if f.Total != nil {
		f.Total(lines, demerits)
	}
}

func (f Funcs) OnBreakpoint(bp Breakpoint, seq *elastic.Sequence, total int) {
	if f.Breakpoint != nil {
		f.Breakpoint(bp, seq, total)
	}
}

func (f Funcs) OnOverflow(container, amount int) {
	if f.Overflow != nil {
		f.Overflow(container, amount)
	}
}
