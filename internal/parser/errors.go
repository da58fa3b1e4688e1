package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"ledge/internal/diag"
	"ledge/internal/source"
)

// failure is a local, backtrackable parse failure: an offset and the
// label of what was expected there.
type failure struct {
	off   uint32
	label string
}

func (f *failure) Error() string { return "expected " + f.label }

// fail records a failure at the cursor.
func (st *State) fail(label string) error {
	return st.failAt(st.off, label)
}

// failAt records a failure at an explicit offset. The session tracks
// the deepest offset any failure reached, plus every label expected at
// that offset; the final diagnostic is built from this record rather
// than from whichever alternative happened to fail last.
func (st *State) failAt(off uint32, label string) error {
	s := st.sess
	switch {
	case !s.furthestSet || off > s.furthestOff:
		s.furthestSet = true
		s.furthestOff = off
		s.expected = append(s.expected[:0], label)
	case off == s.furthestOff:
		if !slices.Contains(s.expected, label) {
			s.expected = append(s.expected, label)
		}
	}
	return &failure{off: off, label: label}
}

// ParseError is the final, non-backtrackable outcome of a failed parse.
// Doc is a formatted diagnostic document pointing at the deepest
// failure position; Span and Expected carry the same information in
// structured form.
type ParseError struct {
	Span     source.Span
	Expected []string
	Doc      string
}

func (e *ParseError) Error() string { return e.Doc }

// Diagnostic converts the parse error for diagnostic sinks.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpected,
		Message:  "expected " + joinExpected(e.Expected),
		Primary:  e.Span,
	}
}

func newParseError(st *State) *ParseError {
	s := st.sess
	off := st.off
	if s.furthestSet {
		off = s.furthestOff
	}
	expected := append([]string(nil), s.expected...)
	if len(expected) == 0 {
		expected = []string{"valid input"}
	}

	pos := source.Locate(st.file, off)
	span := source.Span{File: st.file.Name, Start: pos, End: pos}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: error: expected %s\n",
		st.file.Name, pos.Line, pos.Col, joinExpected(expected))
	line := st.file.GetLine(pos.Line)
	if line != "" {
		gutter := fmt.Sprintf("%d", pos.Line)
		fmt.Fprintf(&b, "%s |\n", strings.Repeat(" ", len(gutter)))
		fmt.Fprintf(&b, "%s | %s\n", gutter, line)
		caretCol := int(pos.Col) - 1
		if caretCol > len(line) {
			caretCol = len(line)
		}
		pad := runewidth.StringWidth(line[:caretCol])
		fmt.Fprintf(&b, "%s | %s^\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad))
	}

	return &ParseError{Span: span, Expected: expected, Doc: b.String()}
}

func joinExpected(expected []string) string {
	if len(expected) == 1 {
		return expected[0]
	}
	return "one of: " + strings.Join(expected, ", ")
}
