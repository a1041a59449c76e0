package breaking

import (
	"math"
	"testing"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

func TestPages(t *testing.T) {
	g := NewPages(
		PageSpec{Height: 100, Width: 50, Columns: 2, Count: 1},
		PageSpec{Height: 80, Width: 60},
	)
	tests := []struct {
		i        int
		size     int
		inline   int
		endsPage bool
	}{
		{0, 100, 50, false},
		{1, 100, 50, true},
		{2, 80, 60, true},
		{10, 80, 60, true},
	}
	for _, tt := range tests {
		if got := g.Size(tt.i); got != tt.size {
			t.Errorf("Size(%d) = %d, want %d", tt.i, got, tt.size)
		}
		if got := g.InlineSize(tt.i); got != tt.inline {
			t.Errorf("InlineSize(%d) = %d, want %d", tt.i, got, tt.inline)
		}
		if got := g.EndsPage(tt.i); got != tt.endsPage {
			t.Errorf("EndsPage(%d) = %v, want %v", tt.i, got, tt.endsPage)
		}
	}
	if !g.EndsPage(-1) {
		t.Error("EndsPage(-1) must be true")
	}

	off := Offset(g, 2)
	if off.Size(0) != 80 || !off.EndsPage(-1) {
		t.Errorf("Offset: Size(0) = %d", off.Size(0))
	}
	if Offset(g, 0) != Geometry(g) {
		t.Error("Offset by zero should return the geometry itself")
	}
}

func TestNewPagesPanicsWithoutSpecs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewPages()
}

func TestBalancingDemerits(t *testing.T) {
	// Four boxes of 10 joined by zero-width glue.
	seq := elastic.NewSequence(
		elastic.Box(10), elastic.Glue(0, 0, 0),
		elastic.Box(10), elastic.Glue(0, 0, 0),
		elastic.Box(10), elastic.Glue(0, 0, 0),
		elastic.Box(10),
	)
	tests := []struct {
		name    string
		columns int
		ctx     DemeritsContext
		want    float64
	}{
		{"short first of two", 2, DemeritsContext{Base: 100, From: 0, Index: 1, Line: 0}, 120},
		{"short second of two", 2, DemeritsContext{Base: 100, From: 0, Index: 1, Line: 1}, 100},
		{"short middle of three", 3, DemeritsContext{Base: 100, From: 0, Index: 1, Line: 1}, 120},
		{"long enough", 2, DemeritsContext{Base: 100, From: 0, Index: 6, Line: 0}, 100},
		{"too many columns", 2, DemeritsContext{Base: 100, From: 0, Index: 1, Line: 2}, math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ctx.Sequence = seq
			if got := BalancingDemerits(tt.columns)(tt.ctx); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
