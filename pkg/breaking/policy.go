package breaking

import (
	"math"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

// DemeritsContext describes one candidate container to a [DemeritsFunc].
type DemeritsContext struct {
	// Base is the standard demerits value, predecessor total included.
	Base    float64
	Ratio   float64
	Fitness Fitness

	// Element is the element the container would end at, Index its position.
	Element elastic.Element
	Index   int
	// From is the position of the predecessor break and Line the number of
	// containers before this one.
	From int
	Line int

	Sequence *elastic.Sequence
}

// DemeritsFunc replaces the standard demerits of a candidate container.
type DemeritsFunc func(DemeritsContext) float64

// CanEndContext describes a candidate break to a Policy.CanEnd hook.
type CanEndContext struct {
	Element   elastic.Element
	Index     int
	Container int
	// EndsPage reports whether Container is the last of its page. Always
	// true for paragraph breaking.
	EndsPage   bool
	Difference int
}

// Policy customises the search without subclassing. The zero value keeps the
// standard behaviour of the breaker it is passed to.
type Policy struct {
	// Demerits overrides the demerits formula.
	Demerits DemeritsFunc
	// CanEnd decides whether a legal break may end the container. When nil
	// the breaker's own rule applies.
	CanEnd func(CanEndContext) bool
	// DisableRecovery accepts an overflowing container as soon as the search
	// runs dry instead of inserting empty containers. Use it to measure an
	// overflow rather than hide it.
	DisableRecovery bool
}

// BalancingDemerits returns a demerits function for balancing content over a
// fixed number of columns. Breakings needing more columns than available get
// the maximum demerits. A column shorter than the average of the remaining
// content is penalised by a factor of 1.2: always when there are more than two
// columns, and only for the first column otherwise.
func BalancingDemerits(columns int) DemeritsFunc {
	return func(ctx DemeritsContext) float64 {
		remaining := columns - ctx.Line
		if remaining <= 0 {
			return math.MaxFloat64
		}
		seq := ctx.Sequence
		restLen := seq.Width(ctx.From+1, seq.Len())
		avg := restLen / remaining
		partLen := seq.Width(ctx.From+1, ctx.Index)
		dem := ctx.Base
		if partLen < avg && (columns > 2 || ctx.Line == 0) {
			dem *= 1.2
		}
		return dem
	}
}
