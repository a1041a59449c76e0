package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/buildinfo"
	"github.com/matzehuels/flowbreak/pkg/elastic"
	"github.com/matzehuels/flowbreak/pkg/errors"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

// =============================================================================
// Request Types
// =============================================================================

// input is the content of a request: plain text or an element sequence in
// the JSON interchange format. Exactly one must be set.
type input struct {
	Text     *string         `json:"text,omitempty"`
	Sequence json.RawMessage `json:"sequence,omitempty"`
}

func (in input) validate() error {
	hasText, hasSeq := in.Text != nil, len(in.Sequence) > 0
	if hasText == hasSeq {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of text and sequence is required")
	}
	return nil
}

func (in input) sequence() (*elastic.Sequence, error) {
	return pipeline.ReadSequence(bytes.NewReader(in.Sequence))
}

// LinesRequest is the body of POST /v1/lines.
type LinesRequest struct {
	input
	Options pipeline.LineOptions `json:"options"`
}

// PagesRequest is the body of POST /v1/pages. Lines configures the line
// breaking of text input.
type PagesRequest struct {
	input
	Lines   pipeline.LineOptions `json:"lines"`
	Options pipeline.PageOptions `json:"options"`
}

// GraphRequest is the body of POST /v1/graph.
type GraphRequest struct {
	input
	Mode  string                `json:"mode"`
	Lines pipeline.LineOptions  `json:"lines"`
	Pages pipeline.PageOptions  `json:"pages"`
	Graph pipeline.GraphOptions `json:"graph"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	var req LinesRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	if req.Text != nil {
		res, err := s.runner.BreakText(ctx, *req.Text, req.Options)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	seq, err := req.sequence()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.BreakLines(ctx, seq, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	var req PagesRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	if req.Text != nil {
		res, err := s.runner.PaginateText(ctx, *req.Text, req.Lines, req.Options)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	seq, err := req.sequence()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.BreakPages(ctx, seq, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req GraphRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Mode == "" {
		req.Mode = pipeline.ModeLines
	}
	mode, err := pipeline.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "mode"))
		return
	}
	if req.Graph.Format == "" {
		req.Graph.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(req.Graph.Format); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.traced(r, req, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.runner.RenderGraph(r.Context(), res, req.Graph)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[req.Graph.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// traced runs the breaking a graph request describes with tracing on.
func (s *Server) traced(r *http.Request, req GraphRequest, mode string) (breaking.Result, error) {
	ctx := r.Context()
	if mode == pipeline.ModePages {
		if req.Text != nil {
			return breaking.Result{}, errors.New(errors.ErrCodeUnsupported, "page graphs need a sequence")
		}
		seq, err := req.sequence()
		if err != nil {
			return breaking.Result{}, err
		}
		req.Pages.Trace = true
		res, err := s.runner.BreakPages(ctx, seq, req.Pages)
		if err != nil {
			return breaking.Result{}, err
		}
		return res.Result, nil
	}

	req.Lines.Trace = true
	if req.Text != nil {
		res, err := s.runner.BreakText(ctx, *req.Text, req.Lines)
		if err != nil {
			return breaking.Result{}, err
		}
		return res.Result.Result, nil
	}
	seq, err := req.sequence()
	if err != nil {
		return breaking.Result{}, err
	}
	res, err := s.runner.BreakLines(ctx, seq, req.Lines)
	if err != nil {
		return breaking.Result{}, err
	}
	return res.Result, nil
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}
