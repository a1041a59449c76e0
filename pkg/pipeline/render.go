package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/cache"
	"github.com/matzehuels/flowbreak/pkg/errors"
	"github.com/matzehuels/flowbreak/pkg/render/nodelink"
)

// Format constants for candidate graph output.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported graph formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// GraphOptions configures candidate graph rendering.
type GraphOptions struct {
	Format     string `json:"format,omitempty"`
	Detailed   bool   `json:"detailed,omitempty"`
	ChosenOnly bool   `json:"chosen_only,omitempty"`
}

// RenderGraph renders the candidate graph of a traced result. Rendered
// artifacts are cached under the hash of their DOT source, so the same graph
// is laid out by Graphviz only once.
func (r *Runner) RenderGraph(ctx context.Context, res breaking.Result, opts GraphOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}
	if res.Graph == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "result has no candidate graph; break with tracing enabled")
	}

	dot := nodelink.ToDOT(res.Graph, nodelink.Options{Detailed: opts.Detailed, ChosenOnly: opts.ChosenOnly})
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}

	key := r.Keyer.ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{Format: opts.Format})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	data, err := nodelink.Render(ctx, dot, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	ttl := cache.TTLArtifact
	if r.TTL > 0 {
		ttl = r.TTL
	}
	_ = r.Cache.Set(ctx, key, data, ttl)
	return data, nil
}
