package cli

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

func newTestExplorer(t *testing.T, width int) ExploreModel {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	return NewExploreModel("aaa bbb ccc", pipeline.LineOptions{Width: width}, runner)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExploreInitialBreak(t *testing.T) {
	m := newTestExplorer(t, 7)
	if m.Err != nil {
		t.Fatal(m.Err)
	}
	if got := m.Result.Text; len(got) != 2 || got[0] != "aaa bbb" || got[1] != "ccc" {
		t.Errorf("lines = %q", got)
	}
	if !strings.Contains(m.View(), "width 7") {
		t.Errorf("view should show the width:\n%s", m.View())
	}
}

func TestExploreWidthKeys(t *testing.T) {
	m := newTestExplorer(t, 7)

	next, _ := m.Update(key("right"))
	m = next.(ExploreModel)
	if m.Width != 8 {
		t.Errorf("Width = %d after right, want 8", m.Width)
	}

	for range 10 {
		next, _ = m.Update(key("left"))
		m = next.(ExploreModel)
	}
	if m.Width != minExploreWidth {
		t.Errorf("Width = %d, want clamp at %d", m.Width, minExploreWidth)
	}
	if m.Err != nil {
		t.Errorf("narrow widths should fall back to forced breaking, got %v", m.Err)
	}
}

func TestExploreAlignmentCycle(t *testing.T) {
	m := newTestExplorer(t, 7)
	want := []string{"start", "center", "end", "justify"}
	for _, w := range want {
		next, _ := m.Update(key("a"))
		m = next.(ExploreModel)
		if m.Options.Alignment != w {
			t.Fatalf("Alignment = %q, want %q", m.Options.Alignment, w)
		}
	}
}

func TestExploreWindowResize(t *testing.T) {
	m := newTestExplorer(t, 40)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 24, Height: 10})
	m = next.(ExploreModel)
	if m.MaxWidth != 20 || m.Width != 20 {
		t.Errorf("MaxWidth = %d, Width = %d, want 20 and 20", m.MaxWidth, m.Width)
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplorer(t, 7)
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}
