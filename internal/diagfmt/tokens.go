package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ledge/internal/token"
)

// TokenOutput is one token in JSON form.
type TokenOutput struct {
	Kind string       `json:"kind"`
	Text string       `json:"text,omitempty"`
	Span LocationJSON `json:"span"`
}

// FormatTokensPretty writes one numbered line per token.
func FormatTokensPretty(w io.Writer, tokens []token.Token, opts PrettyOpts) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			tok.Span.Start.Line, tok.Span.Start.Col,
			tok.Span.End.Line, tok.Span.End.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, opts JSONOpts) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: makeLocation(tok.Span, opts.PathMode),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
