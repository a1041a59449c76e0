package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/elastic/text"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

// Output formats of the breaking commands.
const (
	outputText  = "text"
	outputTable = "table"
	outputJSON  = "json"
)

// lineFlags holds the command-line overrides of the line options.
type lineFlags struct {
	width         int
	threshold     float64
	force         bool
	allowed       string
	alignment     string
	alignmentLast string
	hyphenPenalty int
	alternatives  bool
	refresh       bool
}

func (f *lineFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.width, "width", "w", pipeline.DefaultWidth, "line width (cells for text, units for sequences)")
	fl.Float64VarP(&f.threshold, "threshold", "t", pipeline.DefaultLineThreshold, "largest adjustment ratio a line may need")
	fl.BoolVarP(&f.force, "force", "f", false, "always produce a result, overflowing if needed")
	fl.StringVar(&f.allowed, "allowed", "all", "allowed breaks: all, no-flagged, forced")
	fl.StringVar(&f.alignment, "align", pipeline.DefaultAlignment, "alignment: start, end, center, justify")
	fl.StringVar(&f.alignmentLast, "align-last", pipeline.DefaultAlignmentLast, "alignment of the last line")
	fl.IntVar(&f.hyphenPenalty, "hyphen-penalty", 0, "penalty for breaking at a hyphen")
	fl.BoolVar(&f.alternatives, "alternatives", false, "report the best result for every line count")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// apply copies every flag the user set onto opts, leaving profile values in
// place otherwise.
func (f *lineFlags) apply(cmd *cobra.Command, opts *pipeline.LineOptions) {
	fl := cmd.Flags()
	if fl.Changed("width") || opts.Width == 0 {
		opts.Width = f.width
	}
	if fl.Changed("threshold") || opts.Threshold == 0 {
		opts.Threshold = f.threshold
	}
	if fl.Changed("force") {
		opts.Force = f.force
	}
	if fl.Changed("allowed") {
		opts.AllowedBreaks = f.allowed
	}
	if fl.Changed("align") {
		opts.Alignment = f.alignment
	}
	if fl.Changed("align-last") {
		opts.AlignmentLast = f.alignmentLast
	}
	if fl.Changed("hyphen-penalty") {
		opts.HyphenPenalty = f.hyphenPenalty
	}
	if fl.Changed("alternatives") {
		opts.Alternatives = f.alternatives
	}
	opts.Refresh = f.refresh
}

// linesCommand creates the lines command for breaking paragraphs.
func (c *CLI) linesCommand() *cobra.Command {
	var (
		flags    lineFlags
		sequence bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "lines [file]",
		Short: "Break a paragraph into lines",
		Long: `Break a paragraph into lines of the given width.

The input is plain text, read from the file or from stdin. With --sequence the
input is a JSON element sequence and the width is in sequence units.`,
		Example: `  # Justify a text file at 40 cells
  flowbreak lines -w 40 README.txt

  # Break a prepared sequence and print the breakpoints as JSON
  flowbreak lines --sequence -w 300 -o json para.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.Line
			flags.apply(cmd, &opts)

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg.Cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			if sequence {
				seq, err := pipeline.ReadSequence(bytes.NewReader(data))
				if err != nil {
					return err
				}
				res, err := runner.BreakLines(ctx, seq, opts)
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Broke %d elements into %d lines", res.Stats.Elements, res.Lines))
				return printLinesResult(cmd.OutOrStdout(), output, res, nil, opts)
			}

			res, err := runner.BreakText(ctx, string(data), opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Broke %d elements into %d lines", res.Stats.Elements, res.Lines))
			return printLinesResult(cmd.OutOrStdout(), output, res.Result, res.Text, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&sequence, "sequence", false, "read a JSON element sequence instead of text")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, table, json")

	return cmd
}

// printLinesResult writes a line breaking in the requested format. Sequence
// input has no text, so the text format falls back to the table.
func printLinesResult(w io.Writer, output string, res *pipeline.Result, lines []string, opts pipeline.LineOptions) error {
	switch {
	case output == outputJSON:
		return writeJSON(w, struct {
			*pipeline.Result
			Text []string `json:"text,omitempty"`
		}{res, lines})
	case output == outputText && lines != nil:
		align, err := breaking.ParseAlignment(opts.Alignment)
		if err != nil {
			return err
		}
		last, err := breaking.ParseAlignment(opts.AlignmentLast)
		if err != nil {
			return err
		}
		aligned := text.Align(lines, opts.Width, align)
		if n := len(lines); n > 0 {
			aligned[n-1] = text.Align(lines[n-1:], opts.Width, last)[0]
		}
		fmt.Fprintln(w, strings.Join(aligned, "\n"))
		return nil
	}
	fmt.Fprintln(w, linesTable(lines, res.Breakpoints))
	printStats(res)
	return nil
}

// =============================================================================
// Shared Helpers
// =============================================================================

// readInput reads the file named by args, or stdin when there is none or the
// name is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func validateOutput(output string) error {
	switch output {
	case outputText, outputTable, outputJSON:
		return nil
	}
	return fmt.Errorf("invalid output format: %q (must be one of: text, table, json)", output)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
