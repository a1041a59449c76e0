package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

// pageFlags holds the command-line overrides of the page options.
type pageFlags struct {
	pages            []string
	threshold        float64
	force            bool
	allowed          string
	separator        int
	splitDemerits    float64
	deferredDemerits float64
	favorSinglePart  bool
	balance          int
	refresh          bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVarP(&f.pages, "page", "p", nil, "page spec HEIGHTxWIDTH[xCOLUMNS][*COUNT], repeatable")
	fl.Float64VarP(&f.threshold, "threshold", "t", pipeline.DefaultPageThreshold, "largest adjustment ratio a page may need")
	fl.BoolVarP(&f.force, "force", "f", false, "always produce a result, overflowing if needed")
	fl.StringVar(&f.allowed, "allowed", "all", "allowed breaks: all, no-flagged, forced")
	fl.IntVar(&f.separator, "separator", pipeline.DefaultSeparator, "height of the glue above footnotes")
	fl.Float64Var(&f.splitDemerits, "split-demerits", breaking.DefaultSplitFootnoteDemerits, "demerits for splitting a footnote")
	fl.Float64Var(&f.deferredDemerits, "deferred-demerits", breaking.DefaultDeferredFootnoteDemerits, "demerits per deferred footnote")
	fl.BoolVar(&f.favorSinglePart, "favor-single-part", false, "prefer a single page when content fits")
	fl.IntVar(&f.balance, "balance", 0, "balance content over this many columns")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (f *pageFlags) apply(cmd *cobra.Command, opts *pipeline.PageOptions) error {
	fl := cmd.Flags()
	if fl.Changed("page") {
		opts.Pages = nil
		for _, s := range f.pages {
			p, err := parsePageSpec(s)
			if err != nil {
				return err
			}
			opts.Pages = append(opts.Pages, p)
		}
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
	if fl.Changed("separator") {
		opts.Separator = f.separator
	}
	if fl.Changed("split-demerits") {
		opts.SplitDemerits = f.splitDemerits
	}
	if fl.Changed("deferred-demerits") {
		opts.DeferredDemerits = f.deferredDemerits
	}
	if fl.Changed("favor-single-part") {
		opts.FavorSinglePart = f.favorSinglePart
	}
	if fl.Changed("balance") {
		opts.Balance = f.balance
	}
	opts.Refresh = f.refresh
	return nil
}

// pagesCommand creates the pages command for page breaking.
func (c *CLI) pagesCommand() *cobra.Command {
	var (
		flags     pageFlags
		asText    bool
		lineWidth int
		output    string
	)

	cmd := &cobra.Command{
		Use:   "pages [file]",
		Short: "Break a sequence into pages",
		Long: `Break a JSON element sequence into pages and columns.

Pages are given with --page as HEIGHTxWIDTH, optionally followed by xCOLUMNS
and *COUNT. The last spec repeats for all remaining pages. With --text the
input is plain text, broken into lines of --width cells first and then
stacked one line per unit of height.`,
		Example: `  # Ten 40-unit pages, then two-column pages
  flowbreak pages -p '40x300*10' -p '40x140x2' book.json

  # Paginate a text file on 20-line pages
  flowbreak pages --text -w 50 -p 20x50 chapter.txt`,
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
			opts := cfg.Page
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg.Cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			if asText {
				lineOpts := cfg.Line
				if cmd.Flags().Changed("width") || lineOpts.Width == 0 {
					lineOpts.Width = lineWidth
				}
				lineOpts.Refresh = flags.refresh
				paged, err := runner.PaginateText(ctx, string(data), lineOpts, opts)
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Stacked %d lines onto %d containers", paged.Lines.Lines, paged.Pages.Lines))
				return printPagedText(cmd.OutOrStdout(), output, paged)
			}

			seq, err := pipeline.ReadSequence(bytes.NewReader(data))
			if err != nil {
				return err
			}
			res, err := runner.BreakPages(ctx, seq, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Broke %d elements into %d containers", res.Stats.Elements, res.Lines))
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pagesTable(res.Breakpoints, nil))
			printStats(res)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asText, "text", false, "read plain text and paginate its lines")
	cmd.Flags().IntVarP(&lineWidth, "width", "w", pipeline.DefaultWidth, "line width in cells for --text")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, table, json")

	return cmd
}

func printPagedText(w io.Writer, output string, paged *pipeline.PagedText) error {
	switch output {
	case outputJSON:
		return writeJSON(w, paged)
	case outputTable:
		fmt.Fprintln(w, pagesTable(paged.Pages.Breakpoints, paged.Text))
		printStats(paged.Pages)
		return nil
	}
	for i, page := range paged.Text {
		if i > 0 {
			fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("── %d ──", i+1)))
		}
		fmt.Fprintln(w, strings.Join(page, "\n"))
	}
	return nil
}

// parsePageSpec parses HEIGHTxWIDTH[xCOLUMNS][*COUNT].
func parsePageSpec(s string) (breaking.PageSpec, error) {
	var p breaking.PageSpec
	dims, count, hasCount := strings.Cut(s, "*")
	parts := strings.Split(dims, "x")
	if len(parts) < 2 || len(parts) > 3 {
		return p, fmt.Errorf("invalid page spec %q (want HEIGHTxWIDTH[xCOLUMNS][*COUNT])", s)
	}
	fields := []*int{&p.Height, &p.Width, &p.Columns}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return p, fmt.Errorf("invalid page spec %q: %q is not a positive number", s, part)
		}
		*fields[i] = n
	}
	if len(parts) == 2 {
		p.Columns = 1
	}
	if hasCount {
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n <= 0 {
			return p, fmt.Errorf("invalid page spec %q: count %q is not a positive number", s, count)
		}
		p.Count = n
	}
	return p, nil
}
