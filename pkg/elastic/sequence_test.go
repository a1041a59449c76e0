package elastic

import "testing"

func TestFirstBoxIndex(t *testing.T) {
	s := NewSequence(Glue(0, 10, 0), Penalty(0, 0, false), Box(5), Glue(1, 1, 1), Box(5))
	tests := []struct {
		from, want int
	}{
		{-1, 2},
		{0, 2},
		{2, 2},
		{3, 4},
		{5, 5},
	}
	for _, tt := range tests {
		if got := s.FirstBoxIndex(tt.from); got != tt.want {
			t.Errorf("FirstBoxIndex(%d) = %d, want %d", tt.from, got, tt.want)
		}
	}
}

func TestInsert(t *testing.T) {
	s := NewSequence(Box(1), Box(2))
	s.Insert(0, Penalty(0, 0, false))
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if !s.At(0).IsPenalty() || s.At(1).Width != 1 || s.At(2).Width != 2 {
		t.Errorf("unexpected order: %v", s.Elements())
	}
	s.Insert(3, Box(3))
	if s.Last().Width != 3 {
		t.Errorf("Last = %v, want box(3)", s.Last())
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewSequence(Box(1)).At(1)
}

func TestIsBreakable(t *testing.T) {
	s := NewSequence(Glue(1, 0, 0), Box(1), Glue(1, 0, 0), Glue(1, 0, 0), Forbidden(), Penalty(0, 10, false))
	want := []bool{false, false, true, false, false, true}
	for i, w := range want {
		if got := s.IsBreakable(i); got != w {
			t.Errorf("IsBreakable(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestSequenceWidthAndFootnotes(t *testing.T) {
	s := NewSequence(
		Box(10).WithFootnotes([]Element{Box(4), Glue(1, 0, 0)}, []Element{Box(3)}),
		Glue(5, 2, 1),
		Penalty(9, 0, false),
		Box(10),
	)
	if got := s.Width(0, s.Len()); got != 25 {
		t.Errorf("Width = %d, want 25", got)
	}
	if got := s.FootnoteLength(); got != 8 {
		t.Errorf("FootnoteLength = %d, want 8", got)
	}
	if s.EndsWithForcedBreak() {
		t.Error("sequence does not end with a forced break")
	}
	s.Append(ForcedBreak())
	if !s.EndsWithForcedBreak() {
		t.Error("sequence should end with a forced break")
	}
}
