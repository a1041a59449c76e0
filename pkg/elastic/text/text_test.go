package text

import (
	"reflect"
	"testing"

	"github.com/matzehuels/flowbreak/pkg/breaking"
)

func TestParagraphPatterns(t *testing.T) {
	tests := []struct {
		name  string
		align breaking.Alignment
		want  []string
	}{
		{
			name:  "justify",
			align: breaking.AlignJustify,
			want:  []string{"box(6)", "glue(6,+3,-2)", "box(6)", "penalty(0,-1000)"},
		},
		{
			name:  "ragged",
			align: breaking.AlignStart,
			want:  []string{"box(6)", "glue(0,+18,-0)", "penalty(0,0)", "glue(6,+-18,-0)", "box(6)", "penalty(0,-1000)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Paragraph("a b", Options{Alignment: tt.align})
			var got []string
			for _, e := range seq.Elements() {
				got = append(got, e.String())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestParagraphCenterIsBalanced(t *testing.T) {
	seq := Paragraph("a b", Options{Unit: 1, Alignment: breaking.AlignCenter})
	stretch := 0
	for _, e := range seq.Elements() {
		if e.IsGlue() {
			stretch += e.Stretch
		}
	}
	// Leading and trailing filler stay, the inter-word pattern cancels out.
	if stretch != 6 {
		t.Errorf("total stretch = %d, want 6", stretch)
	}
	if !seq.At(0).IsGlue() || !seq.EndsWithForcedBreak() {
		t.Errorf("unexpected shape %v", seq.Elements())
	}
}

func TestSoftHyphen(t *testing.T) {
	seq := Paragraph("co\u00adop", Options{Unit: 1})
	if seq.Len() != 4 {
		t.Fatalf("Len = %d, want 4: %v", seq.Len(), seq.Elements())
	}
	p := seq.At(1)
	if !p.IsPenalty() || !p.Flagged || p.Width != 1 || p.Cost != DefaultHyphenPenalty {
		t.Errorf("hyphen penalty = %v", p)
	}
	lines := Lines(seq, []breaking.Breakpoint{{Position: 1}, {Position: 3}})
	if want := []string{"co-", "op"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines = %q, want %q", lines, want)
	}
}

func TestWideCharacters(t *testing.T) {
	seq := Paragraph("日本", Options{Unit: 1})
	if w := seq.At(0).Width; w != 4 {
		t.Errorf("width = %d, want 4", w)
	}
}

func TestBreakAndMaterialise(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cells int
		want  []string
	}{
		{"two lines", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"newline", "a\nb", 10, []string{"a", "b"}},
		{"fits", "one two", 20, []string{"one two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Unit: 1}
			seq := Paragraph(tt.text, opts)
			lb := breaking.NewLineBreaker(breaking.LineOptions{Width: Width(tt.cells, opts)})
			res := lb.FindBreakingPoints(seq, 0, 2, true, breaking.AllBreaks)
			if got := Lines(seq, res.Breakpoints); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	lines := []string{"a b", "c"}
	tests := []struct {
		align breaking.Alignment
		want  []string
	}{
		{breaking.AlignStart, []string{"a b  ", "c    "}},
		{breaking.AlignEnd, []string{"  a b", "    c"}},
		{breaking.AlignCenter, []string{" a b ", "  c  "}},
		{breaking.AlignJustify, []string{"a   b", "c    "}},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			if got := Align(lines, 5, tt.align); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Align = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	if got := Width(10, Options{}); got != 10*DefaultUnit {
		t.Errorf("Width = %d", got)
	}
}
