package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/cache"
	"github.com/matzehuels/flowbreak/pkg/elastic/text"
	"github.com/matzehuels/flowbreak/pkg/errors"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

// Explorer styles
var (
	explorerFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
	explorerDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	explorerWarnStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// minExploreWidth is the narrowest width the explorer goes to.
const minExploreWidth = 4

// alignmentCycle is the order the "a" key steps through.
var alignmentCycle = []string{"justify", "start", "center", "end"}

// =============================================================================
// ExploreModel - Interactive width exploration
// =============================================================================

// ExploreModel is the bubbletea model that re-breaks a paragraph whenever
// the width or the alignment changes.
type ExploreModel struct {
	Text     string
	Width    int
	MaxWidth int
	Options  pipeline.LineOptions

	Result *pipeline.TextResult
	Err    error

	runner *pipeline.Runner
}

// NewExploreModel creates an explorer for s, broken at opts.Width.
func NewExploreModel(s string, opts pipeline.LineOptions, runner *pipeline.Runner) ExploreModel {
	if opts.Width == 0 {
		opts.Width = pipeline.DefaultWidth
	}
	if opts.Alignment == "" {
		opts.Alignment = pipeline.DefaultAlignment
	}
	m := ExploreModel{
		Text:     s,
		Width:    opts.Width,
		MaxWidth: 200,
		Options:  opts,
		runner:   runner,
	}
	return m.rebreak()
}

// rebreak runs the line breaker at the current width. Infeasible widths are
// retried in forced mode so there is always something to show.
func (m ExploreModel) rebreak() ExploreModel {
	opts := m.Options
	opts.Width = m.Width
	res, err := m.runner.BreakText(context.Background(), m.Text, opts)
	if errors.Is(err, errors.ErrCodeNoFeasibleBreaks) {
		opts.Force = true
		res, err = m.runner.BreakText(context.Background(), m.Text, opts)
	}
	m.Result, m.Err = res, err
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Width > minExploreWidth {
				m.Width--
				return m.rebreak(), nil
			}
		case "right", "l":
			if m.Width < m.MaxWidth {
				m.Width++
				return m.rebreak(), nil
			}
		case "a":
			m.Options.Alignment = nextAlignment(m.Options.Alignment)
			return m.rebreak(), nil
		}
	case tea.WindowSizeMsg:
		m.MaxWidth = max(msg.Width-4, minExploreWidth)
		if m.Width > m.MaxWidth {
			m.Width = m.MaxWidth
			return m.rebreak(), nil
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Line Breaks"))
	b.WriteString("\n")
	b.WriteString(explorerDimStyle.Render("←/→ width  a alignment  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(explorerWarnStyle.Render(errors.UserMessage(m.Err)))
		b.WriteString("\n")
		return b.String()
	}

	res := m.Result
	stats := fmt.Sprintf("width %d · %s · %d lines · %s demerits",
		m.Width, m.Options.Alignment, res.Lines, formatDemerits(res.Demerits))
	b.WriteString(explorerDimStyle.Render(stats))
	b.WriteString("\n")

	align, _ := breaking.ParseAlignment(m.Options.Alignment)
	b.WriteString(explorerFrameStyle.Render(strings.Join(text.Align(res.Text, m.Width, align), "\n")))
	b.WriteString("\n")

	if n := len(res.Overflows); n > 0 {
		b.WriteString(explorerWarnStyle.Render(fmt.Sprintf("%d overflowing lines", n)))
		b.WriteString("\n")
	}
	return b.String()
}

func nextAlignment(current string) string {
	for i, a := range alignmentCycle {
		if a == current {
			return alignmentCycle[(i+1)%len(alignmentCycle)]
		}
	}
	return alignmentCycle[0]
}

// =============================================================================
// Command
// =============================================================================

// exploreCommand creates the explore command for interactive width tuning.
func (c *CLI) exploreCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Interactively re-break a paragraph at different widths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.Line
			if cmd.Flags().Changed("width") || opts.Width == 0 {
				opts.Width = width
			}

			// Every keystroke is a new width, so results are not worth caching.
			runner := pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
			m := NewExploreModel(string(data), opts, runner)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", pipeline.DefaultWidth, "initial line width in cells")

	return cmd
}
