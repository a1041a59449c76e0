package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/flowbreak/pkg/breaking"
)

func TestLinesTable(t *testing.T) {
	bps := []breaking.Breakpoint{
		{Position: 3, AdjustRatio: 0.5, Fitness: breaking.Loose, Demerits: 121},
		{Position: 7, Fitness: breaking.Tight, Demerits: 221},
	}
	out := linesTable([]string{"first line", "second"}, bps)
	for _, want := range []string{"Content", "first line", "second", "0.500", "loose", "221"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPagesTable(t *testing.T) {
	bps := []breaking.Breakpoint{
		{Position: 10, Container: 0},
		{Position: 20, Container: 1},
	}
	out := pagesTable(bps, nil)
	if !strings.Contains(out, "container 1 @10") || !strings.Contains(out, "container 2 @20") {
		t.Errorf("unexpected pages table:\n%s", out)
	}

	out = pagesTable(bps, [][]string{{"opening", "more"}, {"closing"}})
	if !strings.Contains(out, "opening (2 lines)") {
		t.Errorf("stacked text should label rows:\n%s", out)
	}
}

func TestFormatDemerits(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12100, "12100"},
		{1.5, "1.50"},
	}
	for _, tt := range tests {
		if got := formatDemerits(tt.in); got != tt.want {
			t.Errorf("formatDemerits(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
