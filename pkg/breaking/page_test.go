package breaking

import (
	"testing"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

func checkFootnoteRanges(t *testing.T, seq *elastic.Sequence, bps []Breakpoint) {
	t.Helper()
	if len(bps) == 0 {
		t.Fatal("no breakpoints")
	}
	if got := bps[0].Footnotes.From; got != (FootnoteCursor{}) {
		t.Errorf("first range starts at %+v", got)
	}
	total := 0
	for i, bp := range bps {
		if i > 0 && bp.Footnotes.From != bps[i-1].Footnotes.To {
			t.Errorf("range %d starts at %+v, previous ended at %+v", i, bp.Footnotes.From, bps[i-1].Footnotes.To)
		}
		total += bp.Footnotes.Length
	}
	if want := seq.FootnoteLength(); total != want {
		t.Errorf("placed %d of footnote content, want %d", total, want)
	}
}

func TestPageFootnoteFits(t *testing.T) {
	seq := elastic.NewSequence(
		elastic.Box(10).WithFootnotes([]elastic.Element{elastic.Box(5)}),
		elastic.Glue(0, 10, 0),
		elastic.Box(10),
		elastic.ForcedBreak(),
	)
	pb := NewPageBreaker(PageOptions{Geometry: Fixed{Height: 30, Width: 100}})
	res := pb.FindBreakingPoints(seq, 0, 1, false, AllBreaks)

	if res.Lines != 1 {
		t.Fatalf("Lines = %d, want 1", res.Lines)
	}
	bp := res.Breakpoints[0]
	want := FootnoteRange{From: FootnoteCursor{}, To: FootnoteCursor{List: 1}, Length: 5}
	if bp.Footnotes != want {
		t.Errorf("Footnotes = %+v, want %+v", bp.Footnotes, want)
	}
	if bp.AdjustRatio != 0.5 {
		t.Errorf("AdjustRatio = %v, want 0.5", bp.AdjustRatio)
	}
	checkFootnoteRanges(t, seq, res.Breakpoints)
}

func TestPageFootnoteSplit(t *testing.T) {
	note := []elastic.Element{
		elastic.Box(6), elastic.Glue(0, 0, 0),
		elastic.Box(6), elastic.Glue(0, 0, 0),
		elastic.Box(6),
	}
	seq := elastic.NewSequence(
		elastic.Box(10).WithFootnotes(note),
		elastic.Glue(0, 10, 0),
		elastic.Box(10),
		elastic.ForcedBreak(),
	)
	pb := NewPageBreaker(PageOptions{Geometry: Fixed{Height: 20}})
	res := pb.FindBreakingPoints(seq, 0, 1, true, AllBreaks)

	if res.Lines != 3 {
		t.Fatalf("Lines = %d, want 3", res.Lines)
	}
	for i, bp := range res.Breakpoints {
		if bp.Footnotes.Length != 6 {
			t.Errorf("page %d holds %d of the footnote, want 6", i, bp.Footnotes.Length)
		}
	}
	if got := res.Breakpoints[0].Footnotes.To; got != (FootnoteCursor{List: 0, Element: 2}) {
		t.Errorf("first page ends the footnote at %+v", got)
	}
	checkFootnoteRanges(t, seq, res.Breakpoints)
}

func TestPageFootnoteSplitGlue(t *testing.T) {
	note := []elastic.Element{
		elastic.Box(5), elastic.Glue(3, 0, 0),
		elastic.Box(5), elastic.Glue(3, 0, 0),
		elastic.Box(5),
	}
	seq := elastic.NewSequence(
		elastic.Box(10).WithFootnotes(note),
		elastic.ForcedBreak(),
	)
	pb := NewPageBreaker(PageOptions{
		Geometry:          Fixed{Height: 16, Width: 100},
		FootnoteSeparator: elastic.Glue(1, 0, 1),
	})
	res := pb.FindBreakingPoints(seq, 0, 1, false, AllBreaks)

	if res.Lines != 2 {
		t.Fatalf("Lines = %d, want 2", res.Lines)
	}
	tests := []struct {
		length int
		to     FootnoteCursor
	}{
		{8, FootnoteCursor{List: 0, Element: 2}},
		{13, FootnoteCursor{List: 1}},
	}
	for i, tt := range tests {
		got := res.Breakpoints[i].Footnotes
		if got.Length != tt.length || got.To != tt.to {
			t.Errorf("page %d holds %d up to %+v, want %d up to %+v", i, got.Length, got.To, tt.length, tt.to)
		}
	}
	if d := res.Breakpoints[1].Difference; d != 2 {
		t.Errorf("second page difference = %d, want 2", d)
	}
	checkFootnoteRanges(t, seq, res.Breakpoints)
}

func TestPageFootnoteConservation(t *testing.T) {
	seq := elastic.NewSequence(
		elastic.Box(10).WithFootnotes([]elastic.Element{elastic.Box(5), elastic.Glue(0, 0, 0), elastic.Box(5)}),
		elastic.Glue(0, 10, 0),
		elastic.Box(10),
		elastic.Glue(0, 10, 0),
		elastic.Box(10),
		elastic.Glue(0, 10, 0),
		elastic.Box(10).WithFootnotes([]elastic.Element{elastic.Box(8)}),
		elastic.Glue(0, 10, 0),
		elastic.Box(10),
		elastic.ForcedBreak(),
	)
	pb := NewPageBreaker(PageOptions{Geometry: Fixed{Height: 30, Width: 100}})
	res := pb.FindBreakingPoints(seq, 0, 1, true, AllBreaks)

	checkFootnoteRanges(t, seq, res.Breakpoints)
	if last := res.Breakpoints[len(res.Breakpoints)-1]; last.Footnotes.To != (FootnoteCursor{List: 2}) {
		t.Errorf("last page ends footnotes at %+v", last.Footnotes.To)
	}
}

func TestPageInlineSizeChange(t *testing.T) {
	seq := elastic.NewSequence(
		elastic.Box(10), elastic.Glue(0, 10, 0),
		elastic.Box(10), elastic.Glue(0, 10, 0),
		elastic.Box(10), elastic.Glue(0, 10, 0),
		elastic.Box(10), elastic.ForcedBreak(),
	)
	g := NewPages(
		PageSpec{Height: 20, Width: 50, Count: 1},
		PageSpec{Height: 20, Width: 80},
	)
	res := NewPageBreaker(PageOptions{Geometry: g}).FindBreakingPoints(seq, 0, 1, false, AllBreaks)

	if !res.IPDChange {
		t.Fatal("expected an inline size change")
	}
	if res.Lines != 1 || res.Breakpoints[0].Position != 3 {
		t.Fatalf("got %d containers ending at %v", res.Lines, positions(res.Breakpoints))
	}
	if res.Resume != 4 {
		t.Errorf("Resume = %d, want 4", res.Resume)
	}
}

func TestPageCanEnd(t *testing.T) {
	a := &algorithm{page: &pageState{geometry: NewPages(PageSpec{Height: 100, Columns: 2})}}
	keepPage := elastic.Forbidden().WithClass(elastic.BreakPage)
	keepColumn := elastic.Forbidden().WithClass(elastic.BreakColumn)

	tests := []struct {
		name      string
		e         elastic.Element
		container int
		want      bool
	}{
		{"keep page in first column", keepPage, 0, true},
		{"keep page in last column", keepPage, 1, false},
		{"keep column", keepColumn, 0, false},
		{"plain penalty", elastic.Penalty(0, 100, false), 1, true},
		{"glue", elastic.Glue(1, 1, 1), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.canEndLine(tt.e, 0, tt.container, 0); got != tt.want {
				t.Errorf("canEndLine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolicyCanEnd(t *testing.T) {
	a := &algorithm{policy: Policy{CanEnd: func(ctx CanEndContext) bool { return ctx.Index != 3 }}}
	if a.canEndLine(elastic.Glue(1, 1, 1), 3, 0, 0) {
		t.Error("policy should reject index 3")
	}
	if !a.canEndLine(elastic.Glue(1, 1, 1), 4, 0, 0) {
		t.Error("policy should accept index 4")
	}
}

func TestNewPageBreakerRequiresGeometry(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewPageBreaker(PageOptions{})
}

func TestPageTrace(t *testing.T) {
	seq := elastic.NewSequence(
		elastic.Box(10), elastic.Glue(0, 10, 0),
		elastic.Box(10), elastic.Glue(0, 10, 0),
		elastic.Box(10), elastic.ForcedBreak(),
	)
	pb := NewPageBreaker(PageOptions{Geometry: Fixed{Height: 20}, Trace: true})
	res := pb.FindBreakingPoints(seq, 0, 1, true, AllBreaks)
	if res.Graph == nil {
		t.Fatal("Graph is nil with Trace set")
	}
	path := res.Graph.Path()
	if len(path) != res.Lines+1 {
		t.Errorf("path %v has %d nodes, want %d", path, len(path), res.Lines+1)
	}
	if first := res.Graph.Nodes[path[0]]; first.Previous != -1 {
		t.Errorf("path starts at node %+v, want the start node", first)
	}
}
