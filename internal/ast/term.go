package ast

import (
	"ledge/internal/source"
)

// TermKind discriminates the term union. The term language here is the
// minimal surface needed by the reference grammar; the full expression
// grammar lives outside this module.
type TermKind uint8

const (
	// TermRef is a reference to a possibly-qualified name.
	TermRef TermKind = iota
	// TermLit is a literal value.
	TermLit
	// TermApp is left-nested application: Head applied to Args in order.
	TermApp
	// TermOp is a flat chain of infix operator applications.
	TermOp
	// TermLam is a lambda: Binders => Body.
	TermLam
	// TermLet is `let name = value in body`.
	TermLet
	// TermDo is a do block of statements.
	TermDo
	// TermBind is a do-notation binder statement: `name <- value`.
	TermBind
	// TermHole is the wildcard `_`.
	TermHole
)

type Term struct {
	Kind TermKind
	Span source.Span

	Name    Name     // TermRef, TermLet and TermBind binders
	Lit     Literal  // TermLit
	Head    *Term    // TermApp
	Args    []Term   // TermApp arguments, TermDo statements, TermOp operands
	Ops     []string // TermOp operator spellings, len(Ops) == len(Args)-1
	Binders []string // TermLam
	Value   *Term    // TermLet and TermBind bound values
	Body    *Term    // TermLam, TermLet
}

// LitKind discriminates literal payloads.
type LitKind uint8

const (
	LitNat LitKind = iota
	LitFloat
	LitString
	LitChar
)

type Literal struct {
	Kind  LitKind
	Nat   uint64
	Float float64
	Str   string
	Char  rune
}

// HeadName returns the name heading a term: the referenced name for
// TermRef, the head's name for TermApp chains. The second result is
// false when the term is not headed by a name.
func (t *Term) HeadName() (Name, bool) {
	switch t.Kind {
	case TermRef:
		return t.Name, true
	case TermApp:
		if t.Head != nil {
			return t.Head.HeadName()
		}
	}
	return Name{}, false
}
