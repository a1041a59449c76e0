package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/elastic"
)

type sequence struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type      string      `json:"type"`
	Width     int         `json:"width,omitempty"`
	Stretch   int         `json:"stretch,omitempty"`
	Shrink    int         `json:"shrink,omitempty"`
	Cost      int         `json:"cost,omitempty"`
	Flagged   bool        `json:"flagged,omitempty"`
	Class     string      `json:"class,omitempty"`
	Token     *string     `json:"token,omitempty"`
	Footnotes [][]element `json:"footnotes,omitempty"`
}

func encodeElements(in []elastic.Element) []element {
	out := make([]element, len(in))
	for i, e := range in {
		el := element{
			Type:    e.Kind.String(),
			Width:   e.Width,
			Stretch: e.Stretch,
			Shrink:  e.Shrink,
			Cost:    e.Cost,
			Flagged: e.Flagged,
		}
		if e.Class != elastic.BreakAuto {
			el.Class = e.Class.String()
		}
		if tok, ok := e.Position.(string); ok {
			el.Token = &tok
		}
		for _, body := range e.Footnotes {
			el.Footnotes = append(el.Footnotes, encodeElements(body))
		}
		out[i] = el
	}
	return out
}

// WriteJSON encodes seq as JSON and writes it to w. String position tokens
// are kept; other token types are dropped. The output can be re-imported
// with [ReadJSON].
func WriteJSON(seq *elastic.Sequence, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sequence{Elements: encodeElements(seq.Elements())}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes seq to a JSON file at path.
func ExportJSON(seq *elastic.Sequence, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(seq, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteResult encodes a breaking result as indented JSON.
func WriteResult(res breaking.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// ReadResult decodes a result written by [WriteResult]. Breakpoint tokens
// come back as plain JSON values.
func ReadResult(r io.Reader) (breaking.Result, error) {
	var res breaking.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return breaking.Result{}, fmt.Errorf("decode result: %w", err)
	}
	return res, nil
}
