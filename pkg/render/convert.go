package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/flowbreak/pkg/errors"
)

// converter is the librsvg command line tool that turns candidate graph SVG
// into the other export formats.
const converter = "rsvg-convert"

// ToPDF converts a rendered candidate graph from SVG to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts a rendered candidate graph from SVG to PNG. Scale multiplies
// the graph's natural size and must be positive.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return convert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convert(ctx context.Context, svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"%s graphs need %s from librsvg (brew install librsvg, apt install librsvg2-bin)", format, converter)
	}

	args := append([]string{"-f", format}, extra...)
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert graph to %s: %s", format, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
