package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	mode       string   // "lines" or "pages"
	sequence   bool     // input is a JSON sequence (always true for pages)
	width      int      // line width for lines mode
	pages      []string // page specs for pages mode
	format     string   // dot, svg, pdf, png
	detailed   bool     // per-node ratio and demerits
	chosenOnly bool     // hide abandoned candidates
	output     string   // output file, "-" for stdout
}

// graphCommand creates the graph command for drawing candidate graphs.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{
		mode:   pipeline.ModeLines,
		width:  pipeline.DefaultWidth,
		format: pipeline.FormatSVG,
	}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render the candidate graph of a breaking",
		Long: `Run a traced breaking and render every candidate breakpoint the search
considered, with the chosen path highlighted.

DOT output needs nothing else. SVG, PDF and PNG are laid out with Graphviz.`,
		Example: `  # Draw the decisions behind a 30-cell paragraph
  flowbreak graph -w 30 -o para.svg para.txt

  # Page candidates of a sequence as DOT on stdout
  flowbreak graph --mode pages -p 40x300 --format dot -o - book.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args, opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.mode, "mode", opts.mode, "breaking mode: lines, pages")
	fl.BoolVar(&opts.sequence, "sequence", false, "read a JSON element sequence instead of text")
	fl.IntVarP(&opts.width, "width", "w", opts.width, "line width for lines mode")
	fl.StringArrayVarP(&opts.pages, "page", "p", nil, "page spec for pages mode, repeatable")
	fl.StringVar(&opts.format, "format", opts.format, "output format: dot, svg, pdf, png")
	fl.BoolVar(&opts.detailed, "detailed", false, "show ratio and demerits of every node")
	fl.BoolVar(&opts.chosenOnly, "chosen-only", false, "draw only the chosen path")
	fl.StringVarP(&opts.output, "out", "o", "", "output file (default: graph.<format>, - for stdout)")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, args []string, opts graphOpts) error {
	mode, err := pipeline.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	if err := pipeline.ValidateFormat(opts.format); err != nil {
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

	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var res breaking.Result
	switch {
	case mode == pipeline.ModePages:
		pageOpts := cfg.Page
		if len(opts.pages) > 0 {
			pageOpts.Pages = nil
		}
		for _, s := range opts.pages {
			p, err := parsePageSpec(s)
			if err != nil {
				return err
			}
			pageOpts.Pages = append(pageOpts.Pages, p)
		}
		pageOpts.Trace = true
		seq, err := pipeline.ReadSequence(bytes.NewReader(data))
		if err != nil {
			return err
		}
		out, err := runner.BreakPages(ctx, seq, pageOpts)
		if err != nil {
			return err
		}
		res = out.Result
	default:
		lineOpts := cfg.Line
		if cmd.Flags().Changed("width") || lineOpts.Width == 0 {
			lineOpts.Width = opts.width
		}
		lineOpts.Trace = true
		if opts.sequence {
			seq, err := pipeline.ReadSequence(bytes.NewReader(data))
			if err != nil {
				return err
			}
			out, err := runner.BreakLines(ctx, seq, lineOpts)
			if err != nil {
				return err
			}
			res = out.Result
		} else {
			out, err := runner.BreakText(ctx, string(data), lineOpts)
			if err != nil {
				return err
			}
			res = out.Result.Result
		}
	}

	if res.Graph == nil {
		return fmt.Errorf("breaking produced no candidate graph")
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d candidates...", len(res.Graph.Nodes)))
	spinner.Start()
	img, err := runner.RenderGraph(ctx, res, pipeline.GraphOptions{
		Format:     opts.format,
		Detailed:   opts.detailed,
		ChosenOnly: opts.chosenOnly,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(img)
		return err
	}
	path := opts.output
	if path == "" {
		path = "graph." + strings.ToLower(opts.format)
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Rendered %d candidates, %d chosen", len(res.Graph.Nodes), len(res.Graph.Path()))
	printFile(path)
	return nil
}
