package token

import (
	"ledge/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, string, or character literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NatLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}
