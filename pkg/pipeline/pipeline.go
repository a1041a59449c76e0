// Package pipeline provides the breaking pipeline shared by the CLI and the
// HTTP server.
//
// This package turns input (plain text or a JSON element sequence) into a
// breaking result, with caching and observability hooks around the search.
// By centralizing this logic, every entry point applies the same defaults
// and derives the same cache keys.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Input: Build an elastic sequence from text or decode one from JSON
//  2. Break: Run the line or page breaker
//  3. Render: Optionally render the candidate graph of a traced run
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.LineOptions{Width: 60, Alignment: "justify"}
//	seq, err := pipeline.TextSequence("Some text", opts)
//	result, err := runner.BreakLines(ctx, seq, opts)
//	lines := text.Lines(seq, result.Result.Breakpoints)
//
// Options can come from a TOML profile:
//
//	cfg, err := pipeline.LoadConfig("flowbreak.toml")
//	result, err := runner.BreakPages(ctx, seq, cfg.Page)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/cache"
	"github.com/matzehuels/flowbreak/pkg/elastic"
	"github.com/matzehuels/flowbreak/pkg/elastic/text"
	"github.com/matzehuels/flowbreak/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default line width in terminal cells.
	DefaultWidth = 60

	// DefaultLineThreshold is the largest adjustment ratio a line may need.
	DefaultLineThreshold = 2.0

	// DefaultPageThreshold is the largest adjustment ratio a page may need.
	DefaultPageThreshold = 1.0

	// DefaultAlignment is the default alignment of all lines but the last.
	DefaultAlignment = "justify"

	// DefaultAlignmentLast is the default alignment of the last line.
	DefaultAlignmentLast = "start"

	// DefaultSeparator is the default height of the glue above footnotes.
	DefaultSeparator = 1
)

// Mode names used in logs, hooks and cache keys.
const (
	ModeLines = "lines"
	ModePages = "pages"
)

// =============================================================================
// Options - Breaking Configuration
// =============================================================================

// LineOptions configures paragraph breaking. Width is in terminal cells for
// text input and in sequence units for JSON input.
type LineOptions struct {
	Width         int     `toml:"width" json:"width,omitempty"`
	Threshold     float64 `toml:"threshold" json:"threshold,omitempty"`
	Force         bool    `toml:"force" json:"force,omitempty"`
	AllowedBreaks string  `toml:"allowed_breaks" json:"allowed_breaks,omitempty"`
	Alignment     string  `toml:"alignment" json:"alignment,omitempty"`
	AlignmentLast string  `toml:"alignment_last" json:"alignment_last,omitempty"`
	HyphenPenalty int     `toml:"hyphen_penalty" json:"hyphen_penalty,omitempty"`
	// Unit is the number of sequence units per cell for text input.
	Unit int `toml:"unit" json:"unit,omitempty"`

	Alternatives bool `toml:"alternatives" json:"alternatives,omitempty"`
	Trace        bool `toml:"trace" json:"trace,omitempty"`
	Refresh      bool `toml:"-" json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`

	validated bool
}

// PageOptions configures page breaking.
type PageOptions struct {
	Pages         []breaking.PageSpec `toml:"spec" json:"pages"`
	Threshold     float64             `toml:"threshold" json:"threshold,omitempty"`
	Force         bool                `toml:"force" json:"force,omitempty"`
	AllowedBreaks string              `toml:"allowed_breaks" json:"allowed_breaks,omitempty"`

	// Separator is the natural height of the glue above footnote content.
	Separator        int     `toml:"separator" json:"separator,omitempty"`
	SplitDemerits    float64 `toml:"split_demerits" json:"split_demerits,omitempty"`
	DeferredDemerits float64 `toml:"deferred_demerits" json:"deferred_demerits,omitempty"`
	FavorSinglePart  bool    `toml:"favor_single_part" json:"favor_single_part,omitempty"`
	// Balance spreads the content evenly over this many columns.
	Balance int `toml:"balance" json:"balance,omitempty"`

	Trace   bool `toml:"trace" json:"trace,omitempty"`
	Refresh bool `toml:"-" json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	breaking.Result

	// SequenceHash is the content hash of the broken sequence.
	SequenceHash string `json:"sequence_hash"`

	// Stats contains timing information.
	Stats Stats `json:"stats"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Elements  int           `json:"elements"`
	BreakTime time.Duration `json:"break_time"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *LineOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultLineThreshold
	}
	if o.Alignment == "" {
		o.Alignment = DefaultAlignment
	}
	if o.AlignmentLast == "" {
		o.AlignmentLast = DefaultAlignmentLast
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := errors.ValidateThreshold(o.Threshold); err != nil {
		return err
	}
	if _, err := o.allowed(); err != nil {
		return err
	}
	if _, _, err := o.alignments(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *LineOptions) allowed() (breaking.AllowedBreaks, error) {
	a, err := breaking.ParseAllowedBreaks(o.AllowedBreaks)
	if err != nil {
		return a, errors.Wrap(errors.ErrCodeInvalidInput, err, "allowed_breaks")
	}
	return a, nil
}

func (o *LineOptions) alignments() (breaking.Alignment, breaking.Alignment, error) {
	a, err := breaking.ParseAlignment(o.Alignment)
	if err != nil {
		return a, a, errors.Wrap(errors.ErrCodeInvalidInput, err, "alignment")
	}
	last, err := breaking.ParseAlignment(o.AlignmentLast)
	if err != nil {
		return a, last, errors.Wrap(errors.ErrCodeInvalidInput, err, "alignment_last")
	}
	return a, last, nil
}

// TextOptions returns the options of the text producer.
func (o *LineOptions) TextOptions() text.Options {
	a, _, _ := o.alignments()
	return text.Options{Unit: o.Unit, Alignment: a, HyphenPenalty: o.HyphenPenalty}
}

// KeyOpts returns cache key options for line breaking.
func (o *LineOptions) KeyOpts() cache.LinesKeyOpts {
	return cache.LinesKeyOpts{
		Width:         o.Width,
		Threshold:     o.Threshold,
		Force:         o.Force,
		Allowed:       o.AllowedBreaks,
		Alignment:     o.Alignment,
		AlignmentLast: o.AlignmentLast,
		Alternatives:  o.Alternatives,
		Trace:         o.Trace,
	}
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *PageOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Pages) == 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "at least one page spec is required")
	}
	for i, p := range o.Pages {
		if err := errors.ValidatePage(p.Height, p.Width, p.Columns); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "page spec %d", i+1)
		}
		if p.Count < 0 {
			return errors.New(errors.ErrCodeInvalidGeometry, "page spec %d: count must not be negative", i+1)
		}
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultPageThreshold
	}
	if o.Separator == 0 {
		o.Separator = DefaultSeparator
	}
	if o.Balance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "balance must not be negative")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := errors.ValidateThreshold(o.Threshold); err != nil {
		return err
	}
	if _, err := o.allowed(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *PageOptions) allowed() (breaking.AllowedBreaks, error) {
	a, err := breaking.ParseAllowedBreaks(o.AllowedBreaks)
	if err != nil {
		return a, errors.Wrap(errors.ErrCodeInvalidInput, err, "allowed_breaks")
	}
	return a, nil
}

// Geometry returns the page geometry described by the page specs.
func (o *PageOptions) Geometry() breaking.Geometry {
	return breaking.NewPages(o.Pages...)
}

// SeparatorElement returns the footnote separator glue. It may shrink to
// nothing but never stretches.
func (o *PageOptions) SeparatorElement() elastic.Element {
	return elastic.Glue(o.Separator, 0, o.Separator)
}

// Policy returns the breaking policy for the options.
func (o *PageOptions) Policy() breaking.Policy {
	var p breaking.Policy
	if o.Balance > 0 {
		p.Demerits = breaking.BalancingDemerits(o.Balance)
	}
	return p
}

// KeyOpts returns cache key options for page breaking.
func (o *PageOptions) KeyOpts() cache.PagesKeyOpts {
	return cache.PagesKeyOpts{
		Geometry:         geometryKey{Pages: o.Pages, Balance: o.Balance},
		Threshold:        o.Threshold,
		Force:            o.Force,
		Allowed:          o.AllowedBreaks,
		Separator:        o.Separator,
		SplitDemerits:    o.SplitDemerits,
		DeferredDemerits: o.DeferredDemerits,
		FavorSinglePart:  o.FavorSinglePart,
		Trace:            o.Trace,
	}
}

type geometryKey struct {
	Pages   []breaking.PageSpec `json:"pages"`
	Balance int                 `json:"balance"`
}

// ParseMode checks a mode name.
func ParseMode(mode string) (string, error) {
	switch mode {
	case ModeLines, ModePages:
		return mode, nil
	}
	return "", fmt.Errorf("invalid mode: %q (must be one of: lines, pages)", mode)
}
