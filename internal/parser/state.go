package parser

import (
	"slices"

	"ledge/internal/ast"
	"ledge/internal/diag"
	"ledge/internal/source"
	"ledge/internal/token"
)

// State is the rollback-sensitive half of a parsing session: the cursor,
// the layout stacks, and the span of the last completed token. Ordered
// choice snapshots and restores exactly this; everything that must
// survive an abandoned alternative lives in Session instead.
type State struct {
	file *source.File
	off  uint32

	lastSpan source.Span
	indents  []int
	braces   []braceFrame

	sess *Session
}

// braceFrame is one open block. An explicit frame was opened by a
// literal '{' and closes only on '}'; an implicit frame carries the
// indentation threshold its statements must reach.
type braceFrame struct {
	implicit bool
	level    int
}

// mark is a snapshot of the rollback-sensitive state.
type mark struct {
	off      uint32
	lastSpan source.Span
	indents  []int
	braces   []braceFrame
}

func (st *State) save() mark {
	return mark{
		off:      st.off,
		lastSpan: st.lastSpan,
		indents:  slices.Clone(st.indents),
		braces:   slices.Clone(st.braces),
	}
}

// restore rewinds the state to m. A mark can be restored more than
// once (Or restores before every alternative), so the stacks are cloned
// here too; handing out the mark's own arrays would let a later
// pop-then-push write through the shared backing array into the
// snapshot.
func (st *State) restore(m mark) {
	st.off = m.off
	st.lastSpan = m.lastSpan
	st.indents = slices.Clone(m.indents)
	st.braces = slices.Clone(m.braces)
}

// File returns the file this state is parsing.
func (st *State) File() *source.File { return st.file }

// Session returns the committed half of the parsing session.
func (st *State) Session() *Session { return st.sess }

func (st *State) atEOF() bool { return st.off >= uint32(len(st.file.Content)) }

func (st *State) peek() (byte, bool) {
	if st.atEOF() {
		return 0, false
	}
	return st.file.Content[st.off], true
}

func (st *State) byteAt(off uint32) (byte, bool) {
	if off >= uint32(len(st.file.Content)) {
		return 0, false
	}
	return st.file.Content[off], true
}

// lookingAt reports whether the bytes at the cursor start with s.
func (st *State) lookingAt(s string) bool {
	src := st.file.Content
	if st.off+uint32(len(s)) > uint32(len(src)) {
		return false
	}
	return string(src[st.off:st.off+uint32(len(s))]) == s
}

// lookingAtKeyword reports whether the cursor sits on the keyword kw
// with a proper token boundary after it.
func (st *State) lookingAtKeyword(kw string) bool {
	if !st.lookingAt(kw) {
		return false
	}
	b, ok := st.byteAt(st.off + uint32(len(kw)))
	return !ok || !isIdentContinue(b)
}

func (st *State) advance(n int) { st.off += uint32(n) }

func (st *State) pos() source.LineCol { return source.Locate(st.file, st.off) }

// col is the 1-based column of the cursor.
func (st *State) col() int { return int(st.pos().Col) }

// CurrentPosition returns a zero-width span at the cursor, with the
// file's display name.
func (st *State) CurrentPosition() source.Span {
	p := st.pos()
	return source.Span{File: st.file.Name, Start: p, End: p}
}

// LastTokenSpan returns the span of the most recently completed token,
// or NoSpan before the first token.
func (st *State) LastTokenSpan() source.Span { return st.lastSpan }

// Session is the committed half of a parsing session: configuration
// plus the side channels that deliberately survive backtracking. A
// warning or highlight recorded along an abandoned alternative stays
// recorded; the deferred flush deduplicates.
type Session struct {
	reserved map[string]struct{}
	aliases  map[string]string

	// DefaultAcc applies to declarations without an accessibility
	// modifier.
	DefaultAcc ast.Accessibility

	// SuppressDeprecations drops deprecation warnings, for sources that
	// opt into the old spellings deliberately.
	SuppressDeprecations bool

	access     map[string]ast.Accessibility
	warnings   []Warning
	highlights []Highlight

	// Furthest failure reached, for the final "expected" diagnostic.
	furthestOff uint32
	furthestSet bool
	expected    []string
}

// Warning is a deferred diagnostic recorded during parsing and flushed
// in a batch afterwards.
type Warning struct {
	Span source.Span
	Code diag.Code
	Msg  string
}

// Highlight is a semantic decoration span for editor tooling.
type Highlight struct {
	Span source.Span
	Kind HighlightKind
}

// HighlightKind classifies what a highlighted span refers to.
type HighlightKind uint8

const (
	HLFunction HighlightKind = iota
	HLType
	HLData
	HLNamespace
	HLKeyword
	HLBound
)

func (k HighlightKind) String() string {
	switch k {
	case HLFunction:
		return "function"
	case HLType:
		return "type"
	case HLData:
		return "data"
	case HLNamespace:
		return "namespace"
	case HLKeyword:
		return "keyword"
	case HLBound:
		return "bound"
	}
	return "unknown"
}

// SessionOptions configures a new Session.
type SessionOptions struct {
	// ExtraReserved extends the static keyword set for this session.
	ExtraReserved []string
	// Aliases seeds the namespace alias table, written-path to
	// replacement-path, both in source-order dotted form.
	Aliases map[string]string

	DefaultAcc           ast.Accessibility
	SuppressDeprecations bool
}

// NewSession builds a session with the static keyword set plus any
// configured extensions.
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		reserved:             make(map[string]struct{}, len(token.Keywords)+len(opts.ExtraReserved)),
		aliases:              make(map[string]string, len(opts.Aliases)),
		access:               make(map[string]ast.Accessibility),
		DefaultAcc:           opts.DefaultAcc,
		SuppressDeprecations: opts.SuppressDeprecations,
	}
	for _, kw := range token.Keywords {
		s.reserved[kw] = struct{}{}
	}
	for _, kw := range opts.ExtraReserved {
		s.reserved[kw] = struct{}{}
	}
	for from, to := range opts.Aliases {
		s.aliases[from] = to
	}
	return s
}

// Reserve adds a word to the session's reserved set. Identifier
// scanning consults the extended set, so a reservation takes effect for
// the rest of the parse.
func (s *Session) Reserve(word string) {
	s.reserved[word] = struct{}{}
}

// IsReserved reports whether w is reserved in this session.
func (s *Session) IsReserved(w string) bool {
	_, ok := s.reserved[w]
	return ok
}

// AddAlias maps a written namespace path to its replacement. Returns
// false when the alias shadows an earlier one.
func (s *Session) AddAlias(from, to string) bool {
	_, shadowed := s.aliases[from]
	s.aliases[from] = to
	return !shadowed
}

// Alias resolves a written namespace path, if an alias exists for it.
func (s *Session) Alias(path string) (string, bool) {
	to, ok := s.aliases[path]
	return to, ok
}

// Accessibility returns the recorded visibility of a declared name.
func (s *Session) Accessibility(name string) (ast.Accessibility, bool) {
	acc, ok := s.access[name]
	return acc, ok
}

// Highlights returns the accumulated semantic decoration spans in
// recording order.
func (s *Session) Highlights() []Highlight { return s.highlights }
