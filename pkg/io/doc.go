// Package io provides JSON import and export for element sequences and
// breaking results.
//
// # Overview
//
// Sequences are usually built in code or by the text producer, but a JSON
// form lets external tools (typesetters, test generators) hand content to
// the CLI and the HTTP API, and lets results be stored and compared.
//
// # JSON Format
//
// A sequence is an object with one "elements" array:
//
//	{
//	  "elements": [
//	    {"type": "box", "width": 50, "token": "Hello"},
//	    {"type": "glue", "width": 10, "stretch": 5, "shrink": 3},
//	    {"type": "penalty", "cost": 50, "flagged": true, "width": 4},
//	    {"type": "box", "width": 30, "footnotes": [[{"type": "box", "width": 12}]]},
//	    {"type": "penalty", "cost": -1000}
//	  ]
//	}
//
// # Element Fields
//
// Required:
//   - type: "box", "glue" or "penalty"
//
// Optional:
//   - width, stretch, shrink: integers in layout units
//   - cost: penalty cost, clamped to [-1000, 1000]
//   - flagged: penalty is a hyphenation point
//   - class: break class of a penalty ("auto", "line", "column", "page")
//   - token: string handed back in breakpoints
//   - footnotes: footnote bodies cited by a box, each an element array
//
// # Import
//
// Use [ImportJSON] to read a sequence from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate the sequence and return errors coded
// [errors.ErrCodeInvalidSequence] for bad content.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write sequences in the same format, so a
// sequence round-trips. [WriteResult] writes a [breaking.Result].
package io
