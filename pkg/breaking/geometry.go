package breaking

// Geometry describes the containers a flow is broken into. Container indices
// start at 0 and are unbounded; implementations repeat their last container.
type Geometry interface {
	// Size is the block-progression length available in container i.
	Size(i int) int
	// InlineSize is the inline width of container i. Breaking stops at a
	// change of inline size so the producer can re-measure content.
	InlineSize(i int) int
	// EndsPage reports whether container i is the last column of its page.
	// Implementations must return true for i < 0.
	EndsPage(i int) bool
}

// Fixed is a geometry of identical single-column pages.
type Fixed struct {
	Height int
	Width  int
}

func (f Fixed) Size(int) int       { return f.Height }
func (f Fixed) InlineSize(int) int { return f.Width }
func (f Fixed) EndsPage(int) bool  { return true }

// PageSpec describes Count pages of Columns columns each. Count 0 means one.
type PageSpec struct {
	Height  int `json:"height" toml:"height"`
	Width   int `json:"width" toml:"width"`
	Columns int `json:"columns" toml:"columns"`
	Count   int `json:"count" toml:"count"`
}

// Pages is a geometry made of page specs in order; the last spec repeats
// forever.
type Pages struct {
	specs []PageSpec
	// starts[k] is the first container index of spec k.
	starts []int
}

// NewPages builds a geometry from specs. Columns and Count below one are
// treated as one. It panics on an empty spec list.
func NewPages(specs ...PageSpec) *Pages {
	if len(specs) == 0 {
		panic("breaking: NewPages needs at least one page spec")
	}
	p := &Pages{}
	next := 0
	for _, s := range specs {
		s.Columns = max(s.Columns, 1)
		s.Count = max(s.Count, 1)
		p.specs = append(p.specs, s)
		p.starts = append(p.starts, next)
		next += s.Columns * s.Count
	}
	return p
}

// locate returns the spec and the column within the page for container i.
func (p *Pages) locate(i int) (PageSpec, int) {
	k := len(p.specs) - 1
	for k > 0 && i < p.starts[k] {
		k--
	}
	s := p.specs[k]
	return s, (i - p.starts[k]) % s.Columns
}

func (p *Pages) Size(i int) int {
	s, _ := p.locate(max(i, 0))
	return s.Height
}

func (p *Pages) InlineSize(i int) int {
	s, _ := p.locate(max(i, 0))
	return s.Width
}

func (p *Pages) EndsPage(i int) bool {
	if i < 0 {
		return true
	}
	s, col := p.locate(i)
	return col == s.Columns-1
}

// Offset returns g shifted so that container 0 is container n of g. Use it
// to resume breaking after an inline-size change.
func Offset(g Geometry, n int) Geometry {
	if n == 0 {
		return g
	}
	return offset{g: g, n: n}
}

type offset struct {
	g Geometry
	n int
}

func (o offset) Size(i int) int       { return o.g.Size(i + o.n) }
func (o offset) InlineSize(i int) int { return o.g.InlineSize(i + o.n) }
func (o offset) EndsPage(i int) bool {
	if i < 0 {
		return true
	}
	return o.g.EndsPage(i + o.n)
}
