package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbreak/pkg/buildinfo"
	"github.com/matzehuels/flowbreak/pkg/elastic/text"
	"github.com/matzehuels/flowbreak/pkg/errors"
	flowio "github.com/matzehuels/flowbreak/pkg/io"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorDetail {
	t.Helper()
	var body ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version != buildinfo.Version {
		t.Errorf("health = %+v", body)
	}
}

func TestLinesText(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/lines", `{"text": "aaa bbb ccc", "options": {"width": 7}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Lines int      `json:"lines"`
		Text  []string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Lines != 2 || len(body.Text) != 2 || body.Text[0] != "aaa bbb" || body.Text[1] != "ccc" {
		t.Errorf("got %+v", body)
	}
}

func TestLinesErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{
			name:       "no input",
			body:       `{"options": {"width": 7}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:       "both inputs",
			body:       `{"text": "a", "sequence": {"elements": []}, "options": {}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:       "unknown field",
			body:       `{"text": "a", "colour": "red"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:       "bad alignment",
			body:       `{"text": "a", "options": {"alignment": "diagonal"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:       "infeasible",
			body:       `{"text": "aaaaaaaaaa", "options": {"width": 3}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   errors.ErrCodeNoFeasibleBreaks,
		},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/lines", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			detail := decodeError(t, resp)
			if detail.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", detail.Code, tt.wantCode)
			}
			if detail.RequestID == "" {
				t.Error("error should carry the request id")
			}
		})
	}
}

func TestPagesSequence(t *testing.T) {
	var seq bytes.Buffer
	if err := flowio.WriteJSON(text.Flow([]string{"a", "b", "c"}), &seq); err != nil {
		t.Fatal(err)
	}
	body := `{"sequence": ` + seq.String() + `, "options": {"pages": [{"height": 2, "width": 10}]}}`

	srv := newTestServer(t)
	resp := post(t, srv, "/v1/pages", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Lines != 2 {
		t.Errorf("pages = %d, want 2", res.Lines)
	}
}

func TestPagesRequiresGeometry(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/pages", `{"text": "aaa bbb", "options": {}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if code := decodeError(t, resp).Code; code != errors.ErrCodeInvalidGeometry {
		t.Errorf("code = %s, want INVALID_GEOMETRY", code)
	}
}

func TestGraphDOT(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/graph", `{"text": "aaa bbb ccc", "lines": {"width": 7}, "graph": {"format": "dot"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("body is not DOT: %.40s", data)
	}
}

func TestGraphRejectsFormat(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/graph", `{"text": "aaa", "graph": {"format": "gif"}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if code := decodeError(t, resp).Code; code != errors.ErrCodeUnsupported {
		t.Errorf("code = %s, want UNSUPPORTED", code)
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a generated request id")
	}

	const id = "7f1c7c1e-4a53-4a0e-9a52-3f0d6f7cbd3e"
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid request ids should be replaced")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidSequence, http.StatusBadRequest},
		{errors.ErrCodeInvalidGeometry, http.StatusBadRequest},
		{errors.ErrCodeUnsupported, http.StatusBadRequest},
		{errors.ErrCodeNoFeasibleBreaks, http.StatusUnprocessableEntity},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := statusFor(tt.code); got != tt.want {
				t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}
