package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowbreak/pkg/elastic"
	"github.com/matzehuels/flowbreak/pkg/errors"
)

var kindFromString = map[string]elastic.Kind{
	"box":     elastic.KindBox,
	"glue":    elastic.KindGlue,
	"penalty": elastic.KindPenalty,
}

var classFromString = map[string]elastic.BreakClass{
	"":       elastic.BreakAuto,
	"auto":   elastic.BreakAuto,
	"line":   elastic.BreakLine,
	"column": elastic.BreakColumn,
	"page":   elastic.BreakPage,
}

// ReadJSON decodes a JSON sequence from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - An element has an unknown type or class
//   - The sequence fails [errors.ValidateSequence]
//
// Errors name the offending element index. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*elastic.Sequence, error) {
	var data sequence
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSequence, err, "decode sequence")
	}
	elems, err := decodeElements(data.Elements, "element")
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateSequence(elems); err != nil {
		return nil, err
	}
	return elastic.NewSequence(elems...), nil
}

func decodeElements(in []element, what string) ([]elastic.Element, error) {
	out := make([]elastic.Element, 0, len(in))
	for i, e := range in {
		kind, ok := kindFromString[e.Type]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSequence, "%s %d: unknown type %q", what, i, e.Type)
		}
		var el elastic.Element
		switch kind {
		case elastic.KindBox:
			el = elastic.Box(e.Width)
		case elastic.KindGlue:
			el = elastic.Glue(e.Width, e.Stretch, e.Shrink)
		case elastic.KindPenalty:
			class, ok := classFromString[e.Class]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidSequence, "%s %d: unknown class %q", what, i, e.Class)
			}
			el = elastic.Penalty(e.Width, e.Cost, e.Flagged).WithClass(class)
		}
		if e.Token != nil {
			el = el.WithPosition(*e.Token)
		}
		if len(e.Footnotes) > 0 {
			bodies := make([][]elastic.Element, len(e.Footnotes))
			for j, body := range e.Footnotes {
				b, err := decodeElements(body, fmt.Sprintf("%s %d footnote %d element", what, i, j))
				if err != nil {
					return nil, err
				}
				bodies[j] = b
			}
			el.Footnotes = bodies
		}
		out = append(out, el)
	}
	return out, nil
}

// ImportJSON reads a JSON file at path and returns the decoded sequence.
// A missing file is reported with [errors.ErrCodeFileNotFound].
func ImportJSON(path string) (*elastic.Sequence, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
