package breaking

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

// fiveElements is the paragraph [Box(50), Glue(10,5,3), Box(50), Glue(10,5,3), Box(50)].
func fiveElements() *elastic.Sequence {
	return elastic.NewSequence(
		elastic.Box(50),
		elastic.Glue(10, 5, 3),
		elastic.Box(50),
		elastic.Glue(10, 5, 3),
		elastic.Box(50),
	)
}

func positions(bps []Breakpoint) []int {
	out := make([]int, len(bps))
	for i, bp := range bps {
		out[i] = bp.Position
	}
	return out
}

func TestClassifyFitness(t *testing.T) {
	tests := []struct {
		r    float64
		want Fitness
	}{
		{-1, VeryTight},
		{-0.5001, VeryTight},
		{-0.5, Tight},
		{0, Tight},
		{0.5, Tight},
		{0.5001, Loose},
		{1.0, Loose},
		{1.0001, VeryLoose},
		{InfiniteRatio, VeryLoose},
	}
	for _, tt := range tests {
		if got := ClassifyFitness(tt.r); got != tt.want {
			t.Errorf("ClassifyFitness(%v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestFiveElementParagraph(t *testing.T) {
	lb := NewLineBreaker(LineOptions{Width: 115, Alignment: AlignJustify})
	res := lb.FindBreakingPoints(fiveElements(), 0, 2, false, AllBreaks)

	if res.Lines != 2 {
		t.Fatalf("Lines = %d, want 2", res.Lines)
	}
	if got := positions(res.Breakpoints); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Fatalf("positions = %v, want [3 4]", got)
	}
	first, last := res.Breakpoints[0], res.Breakpoints[1]
	if first.AdjustRatio != 1.0 || first.Difference != 5 || first.Fitness != Loose {
		t.Errorf("first line = ratio %v diff %d %s, want 1 5 loose", first.AdjustRatio, first.Difference, first.Fitness)
	}
	if last.AdjustRatio != 0 || last.Difference != 65 || last.Fitness != Tight {
		t.Errorf("last line = ratio %v diff %d %s, want 0 65 tight", last.AdjustRatio, last.Difference, last.Fitness)
	}
	if res.Demerits != 10202 {
		t.Errorf("Demerits = %v, want 10202", res.Demerits)
	}
	if len(res.Overflows) != 0 {
		t.Errorf("unexpected overflows %v", res.Overflows)
	}
}

func TestJustifiedLastLineNeedsStretch(t *testing.T) {
	lb := NewLineBreaker(LineOptions{Width: 115, Alignment: AlignJustify, AlignmentLast: AlignJustify})
	res := lb.FindBreakingPoints(fiveElements(), 0, 2, false, AllBreaks)
	if res.Lines != 0 {
		t.Errorf("Lines = %d, want 0: the last line has no stretch", res.Lines)
	}
}

func TestNoBreakRejection(t *testing.T) {
	seq := elastic.NewSequence(elastic.Box(50), elastic.Box(50), elastic.Box(50))
	res := NewLineBreaker(LineOptions{Width: 100}).FindBreakingPoints(seq, 0, 10, false, AllBreaks)
	if res.Lines != 0 || len(res.Breakpoints) != 0 {
		t.Errorf("got %d lines %v, want none", res.Lines, res.Breakpoints)
	}
}

func TestForcedSingleLine(t *testing.T) {
	seq := elastic.NewSequence(elastic.Box(50), elastic.Box(50), elastic.Box(50))
	lb := NewLineBreaker(LineOptions{Width: 100, Policy: Policy{DisableRecovery: true}})
	res := lb.FindBreakingPoints(seq, 0, 10, true, AllBreaks)

	if res.Lines != 1 || len(res.Breakpoints) != 1 {
		t.Fatalf("got %d lines %v, want one", res.Lines, res.Breakpoints)
	}
	bp := res.Breakpoints[0]
	if bp.Position != seq.Len()-1 {
		t.Errorf("Position = %d, want %d", bp.Position, seq.Len()-1)
	}
	if bp.AdjustRatio != -InfiniteRatio || bp.Difference != -50 {
		t.Errorf("ratio %v diff %d, want %d -50", bp.AdjustRatio, bp.Difference, -InfiniteRatio)
	}
	if !reflect.DeepEqual(res.Overflows, []Overflow{{Container: 0, Amount: 50}}) {
		t.Errorf("Overflows = %v", res.Overflows)
	}
	if !res.Degraded || res.InsertedPenalty {
		t.Errorf("Degraded = %v InsertedPenalty = %v", res.Degraded, res.InsertedPenalty)
	}
}

func TestForcedSingleLineWithRecovery(t *testing.T) {
	seq := elastic.NewSequence(elastic.Box(50), elastic.Box(50), elastic.Box(50))
	res := NewLineBreaker(LineOptions{Width: 100}).FindBreakingPoints(seq, 0, 10, true, AllBreaks)

	if !res.InsertedPenalty || seq.Len() != 4 || !seq.At(0).IsPenalty() {
		t.Fatalf("expected a leading penalty, got %v", seq.Elements())
	}
	if res.Lines != 1 || res.Breakpoints[0].Position != seq.Len()-1 {
		t.Fatalf("got %d lines %v", res.Lines, positions(res.Breakpoints))
	}
	if !res.Degraded || res.Recoveries == 0 {
		t.Errorf("Degraded = %v Recoveries = %d", res.Degraded, res.Recoveries)
	}
	if res.Breakpoints[0].AdjustRatio >= -1 {
		t.Errorf("AdjustRatio = %v, want overflow", res.Breakpoints[0].AdjustRatio)
	}
}

func TestRecoveryTerminates(t *testing.T) {
	seq := elastic.NewSequence(
		elastic.Box(200),
		elastic.Glue(10, 5, 3),
		elastic.Box(200),
		elastic.Glue(10, 5, 3),
		elastic.Box(200),
	)
	var overflows []int
	lb := NewLineBreaker(LineOptions{
		Width:    100,
		Observer: Funcs{Overflow: func(container, amount int) { overflows = append(overflows, container) }},
	})
	res := lb.FindBreakingPoints(seq, 0, 1, true, AllBreaks)

	if res.Lines != 3 {
		t.Fatalf("Lines = %d, want 3", res.Lines)
	}
	if got := positions(res.Breakpoints); !reflect.DeepEqual(got, []int{2, 4, 5}) {
		t.Errorf("positions = %v, want [2 4 5]", got)
	}
	if !reflect.DeepEqual(overflows, []int{0, 1, 2}) {
		t.Errorf("overflowing containers = %v, want [0 1 2]", overflows)
	}
	for _, o := range res.Overflows {
		if o.Amount != 100 {
			t.Errorf("overflow %v, want amount 100", o)
		}
	}
	if !res.Degraded || !res.InsertedPenalty {
		t.Errorf("Degraded = %v InsertedPenalty = %v", res.Degraded, res.InsertedPenalty)
	}
}

func TestFlaggedPenaltyFilter(t *testing.T) {
	build := func() *elastic.Sequence {
		return elastic.NewSequence(
			elastic.Box(50),
			elastic.Penalty(5, 50, true),
			elastic.Box(50),
			elastic.ForcedBreak(),
		)
	}
	lb := NewLineBreaker(LineOptions{Width: 55})

	res := lb.FindBreakingPoints(build(), 0, 1, false, AllBreaks)
	if got := positions(res.Breakpoints); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("AllBreaks positions = %v, want [1 3]", got)
	}
	// Breaking at the hyphen: f = 1, cost 50.
	if first := res.Breakpoints[0]; first.Demerits != 51*51 {
		t.Errorf("hyphen demerits = %v, want %v", first.Demerits, 51*51)
	}

	res = lb.FindBreakingPoints(build(), 0, 1, false, NoFlaggedPenalties)
	if res.Lines != 0 {
		t.Errorf("NoFlaggedPenalties Lines = %d, want 0", res.Lines)
	}
}

func TestOnlyForcedBreaks(t *testing.T) {
	seq := elastic.NewSequence(
		elastic.Box(10),
		elastic.Glue(1, 1, 1),
		elastic.Box(10),
		elastic.ForcedBreak(),
		elastic.Box(10),
		elastic.ForcedBreak(),
	)
	res := NewLineBreaker(LineOptions{Width: 100}).FindBreakingPoints(seq, 0, 1, false, OnlyForcedBreaks)
	if got := positions(res.Breakpoints); !reflect.DeepEqual(got, []int{3, 5}) {
		t.Errorf("positions = %v, want [3 5]", got)
	}
}

// twoWays can be set as one tight line or two comfortable ones.
func twoWays() *elastic.Sequence {
	return elastic.NewSequence(
		elastic.Box(50),
		elastic.Glue(10, 100, 3),
		elastic.Box(20),
		elastic.Glue(10, 100, 3),
		elastic.Box(50),
	)
}

func TestKeepAlternatives(t *testing.T) {
	lb := NewLineBreaker(LineOptions{Width: 135, KeepAlternatives: true})
	res := lb.FindBreakingPoints(twoWays(), 0, 2, false, AllBreaks)

	if res.Lines != 2 {
		t.Fatalf("Lines = %d, want 2", res.Lines)
	}
	if len(res.Alternatives) != 2 {
		t.Fatalf("Alternatives = %d, want 2", len(res.Alternatives))
	}
	one, two := res.Alternatives[0], res.Alternatives[1]
	if one.Lines != 1 || two.Lines != 2 {
		t.Errorf("alternative line counts = %d, %d", one.Lines, two.Lines)
	}
	if one.Demerits <= two.Demerits {
		t.Errorf("one line (%v) should cost more than two (%v)", one.Demerits, two.Demerits)
	}
	if got := positions(one.Breakpoints); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("one-line positions = %v", got)
	}
}

func TestPolicyDemerits(t *testing.T) {
	avoidFirstGlue := func(ctx DemeritsContext) float64 {
		if ctx.Index == 3 {
			return ctx.Base + 1e6
		}
		return ctx.Base
	}
	lb := NewLineBreaker(LineOptions{Width: 135, Policy: Policy{Demerits: avoidFirstGlue}})
	res := lb.FindBreakingPoints(twoWays(), 0, 2, false, AllBreaks)
	if res.Lines != 1 {
		t.Errorf("Lines = %d, want 1", res.Lines)
	}
}

func TestObserverOrder(t *testing.T) {
	var events []string
	obs := Funcs{
		Total: func(lines int, demerits float64) {
			events = append(events, "total")
		},
		Breakpoint: func(bp Breakpoint, seq *elastic.Sequence, total int) {
			if total != 2 {
				t.Errorf("total = %d, want 2", total)
			}
			events = append(events, seq.At(bp.Position).Kind.String())
		},
	}
	lb := NewLineBreaker(LineOptions{Width: 115, Observer: obs})
	lb.FindBreakingPoints(fiveElements(), 0, 2, false, AllBreaks)

	if want := []string{"total", "glue", "box"}; !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestDeterministicAndMonotonic(t *testing.T) {
	build := func() *elastic.Sequence {
		seq := elastic.NewSequence()
		for i := range 40 {
			if i > 0 {
				seq.Append(elastic.Glue(4, 2, 1))
			}
			seq.Append(elastic.Box(10 + (i*7)%13).WithPosition(i))
		}
		seq.Append(elastic.Glue(0, 1000, 0), elastic.ForcedBreak())
		return seq
	}
	lb := NewLineBreaker(LineOptions{Width: 80, Alignment: AlignJustify})
	a := lb.FindBreakingPoints(build(), 0, 2, true, AllBreaks)
	b := lb.FindBreakingPoints(build(), 0, 2, true, AllBreaks)

	if !reflect.DeepEqual(a.Breakpoints, b.Breakpoints) {
		t.Fatal("two runs produced different breakpoints")
	}
	if a.Lines < 2 {
		t.Fatalf("Lines = %d, want several", a.Lines)
	}
	seq := build()
	for i := 1; i < len(a.Breakpoints); i++ {
		if a.Breakpoints[i].Position < a.Breakpoints[i-1].Position {
			t.Errorf("positions decrease: %v", positions(a.Breakpoints))
		}
	}
	if last := a.Breakpoints[len(a.Breakpoints)-1].Position; last != seq.Len()-1 {
		t.Errorf("last position = %d, want %d", last, seq.Len()-1)
	}
	for _, bp := range a.Breakpoints {
		if math.IsNaN(bp.AdjustRatio) {
			t.Errorf("NaN ratio at %d", bp.Position)
		}
	}
}

func TestNegativeStartPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewLineBreaker(LineOptions{Width: 10}).FindBreakingPoints(fiveElements(), -1, 1, false, AllBreaks)
}

func TestEmptySequence(t *testing.T) {
	res := NewLineBreaker(LineOptions{Width: 10}).FindBreakingPoints(elastic.NewSequence(), 0, 1, true, AllBreaks)
	if res.Lines != 0 {
		t.Errorf("Lines = %d, want 0", res.Lines)
	}
}

func TestParseAlignmentAndAllowed(t *testing.T) {
	if a, err := ParseAlignment("justify"); err != nil || a != AlignJustify {
		t.Errorf("ParseAlignment(justify) = %v, %v", a, err)
	}
	if _, err := ParseAlignment("diagonal"); err == nil {
		t.Error("expected error for unknown alignment")
	}
	if a, err := ParseAllowedBreaks("no-flagged"); err != nil || a != NoFlaggedPenalties {
		t.Errorf("ParseAllowedBreaks(no-flagged) = %v, %v", a, err)
	}
	var f Fitness
	if err := f.UnmarshalText([]byte("very-loose")); err != nil || f != VeryLoose {
		t.Errorf("UnmarshalText = %v, %v", f, err)
	}
}
