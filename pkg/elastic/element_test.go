package elastic

import "testing"

func TestPenaltyCostClamped(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"finite", 50, 50},
		{"above infinite", 5000, Infinite},
		{"below forced", -5000, -Infinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Penalty(0, tt.cost, false).Cost; got != tt.want {
				t.Errorf("Cost = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestElementPredicates(t *testing.T) {
	if !ForcedBreak().IsForcedBreak() {
		t.Error("ForcedBreak should be forced")
	}
	if ForcedBreak().IsForbidden() {
		t.Error("ForcedBreak should not be forbidden")
	}
	if !Forbidden().IsForbidden() {
		t.Error("Forbidden should be forbidden")
	}
	if Box(3).IsForcedBreak() {
		t.Error("box is never a forced break")
	}
	if !Box(3).WithFootnotes([]Element{Box(1)}).HasFootnotes() {
		t.Error("box with notes should report HasFootnotes")
	}
	if Glue(1, 1, 1).WithFootnotes([]Element{Box(1)}).HasFootnotes() {
		t.Error("only boxes carry footnotes")
	}
}

func TestWithHelpersCopy(t *testing.T) {
	b := Box(10)
	p := b.WithPosition("word")
	if b.Position != nil {
		t.Error("WithPosition modified the receiver")
	}
	if p.Position != "word" {
		t.Errorf("Position = %v, want word", p.Position)
	}
	pen := Penalty(0, 0, false).WithClass(BreakPage)
	if pen.Class != BreakPage {
		t.Errorf("Class = %v, want page", pen.Class)
	}
}

func TestElementString(t *testing.T) {
	tests := []struct {
		e    Element
		want string
	}{
		{Box(50), "box(50)"},
		{Glue(10, 5, 3), "glue(10,+5,-3)"},
		{Penalty(2, 50, true), "penalty(2,50,flagged)"},
		{Forbidden().WithClass(BreakColumn), "penalty(0,1000,column)"},
		{Box(1).WithFootnotes([]Element{Box(2)}), "box(1,notes=1)"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLength(t *testing.T) {
	note := []Element{Box(10), Glue(2, 1, 1), Penalty(7, 0, false), Box(10)}
	if got := Length(note); got != 22 {
		t.Errorf("Length = %d, want 22", got)
	}
}
