package text

import (
	"reflect"
	"testing"

	"github.com/matzehuels/flowbreak/pkg/breaking"
)

func TestFlowShape(t *testing.T) {
	seq := Flow([]string{"a", "b", "c"})
	var got []string
	for _, e := range seq.Elements() {
		got = append(got, e.String())
	}
	want := []string{
		"box(1)", "penalty(0,150)", "glue(0,+1,-0)",
		"box(1)", "penalty(0,150)", "glue(0,+1,-0)",
		"box(1)", "penalty(0,1000)", "glue(0,+10000,-0)", "penalty(0,-1000)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v\nwant %v", got, want)
	}
}

func TestFlowSingleLine(t *testing.T) {
	seq := Flow([]string{"only"})
	if seq.Len() != 4 || !seq.At(0).IsBox() || !seq.EndsWithForcedBreak() {
		t.Errorf("unexpected flow %v", seq.Elements())
	}
}

func TestStacked(t *testing.T) {
	seq := Flow([]string{"a", "b", "c"})
	pb := breaking.NewPageBreaker(breaking.PageOptions{Geometry: breaking.Fixed{Height: 2, Width: 10}})
	res := pb.FindBreakingPoints(seq, 0, 1, false, breaking.AllBreaks)
	if res.Lines != 2 {
		t.Fatalf("Lines = %d, want 2", res.Lines)
	}
	want := [][]string{{"a", "b"}, {"c"}}
	if got := Stacked(seq, res.Breakpoints); !reflect.DeepEqual(got, want) {
		t.Errorf("Stacked = %q, want %q", got, want)
	}
}
