package parser

import (
	"ledge/internal/diag"
	"ledge/internal/source"
)

// The side-channel registers. Warnings and highlights are committed
// state: they are recorded on the session, not the rollback-sensitive
// state, so a record made along a speculative alternative survives even
// when the alternative is abandoned. The deferred flush deduplicates,
// which keeps re-parsed prefixes from reporting twice.

// RecordHighlight appends a semantic decoration span.
func (s *Session) RecordHighlight(sp source.Span, kind HighlightKind) {
	if sp.IsNone() {
		return
	}
	s.highlights = append(s.highlights, Highlight{Span: sp, Kind: kind})
}

// RecordWarning defers a diagnostic until FlushWarnings. The warning is
// dropped when flagActive is set, for spellings the invocation opted
// into deliberately.
func (s *Session) RecordWarning(sp source.Span, flagActive bool, code diag.Code, msg string) {
	if flagActive {
		return
	}
	s.warnings = append(s.warnings, Warning{Span: sp, Code: code, Msg: msg})
}

// Warnings returns the pending deferred warnings in recording order.
func (s *Session) Warnings() []Warning { return s.warnings }

// FlushWarnings reports the deferred warnings, deduplicated by span and
// message with first-seen order preserved, then clears the accumulator.
func (s *Session) FlushWarnings(r diag.Reporter) {
	type key struct {
		span source.Span
		msg  string
	}
	seen := make(map[key]struct{}, len(s.warnings))
	for _, w := range s.warnings {
		k := key{span: w.Span, msg: w.Msg}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		r.Report(w.Code, diag.SevWarning, w.Span, w.Msg, nil)
	}
	s.warnings = s.warnings[:0]
}
