package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ledge/internal/parser"
)

// HighlightOutput is one semantic decoration span in JSON form.
type HighlightOutput struct {
	Kind string       `json:"kind"`
	Span LocationJSON `json:"span"`
}

// FormatHighlightsPretty writes one line per semantic decoration span.
func FormatHighlightsPretty(w io.Writer, highlights []parser.Highlight) error {
	for _, h := range highlights {
		fmt.Fprintf(w, "%-10s %d:%d-%d:%d\n", h.Kind.String(),
			h.Span.Start.Line, h.Span.Start.Col,
			h.Span.End.Line, h.Span.End.Col)
	}
	return nil
}

// FormatHighlightsJSON writes the decoration spans as an indented JSON array.
func FormatHighlightsJSON(w io.Writer, highlights []parser.Highlight, opts JSONOpts) error {
	output := make([]HighlightOutput, 0, len(highlights))
	for _, h := range highlights {
		output = append(output, HighlightOutput{
			Kind: h.Kind.String(),
			Span: makeLocation(h.Span, opts.PathMode),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
