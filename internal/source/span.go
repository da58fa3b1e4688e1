package source

import (
	"fmt"
)

// Span identifies a source range by file display name and 1-based
// start/end positions. End is the position of the last character of the
// range, so a span covers its characters inclusively on both ends. The
// zero value is NoSpan, the distinguished "no span" marker used for
// values whose origin is unknown.
type Span struct {
	File  string
	Start LineCol
	End   LineCol
}

// NoSpan is the distinguished empty span.
var NoSpan = Span{}

// IsNone reports whether s is the distinguished "no span" value.
func (s Span) IsNone() bool {
	return s.File == "" && s.Start == (LineCol{}) && s.End == (LineCol{})
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.File, s.Start.Line, s.Start.Col, s.End.Line, s.End.Col)
}

// Cover extends s to include other. Spans from different files are not
// merged; Cover returns s unchanged in that case.
func (s Span) Cover(other Span) Span {
	if other.IsNone() {
		return s
	}
	if s.IsNone() {
		return other
	}
	if s.File != other.File {
		return s
	}
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}
	if s.End.Before(other.End) {
		s.End = other.End
	}
	return s
}

// Before reports whether p precedes q in source order.
func (p LineCol) Before(q LineCol) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}
