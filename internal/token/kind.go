package token

// Kind classifies a lexical token.
type Kind uint8

const (
	EOF Kind = iota
	Invalid
	// Ident is an identifier, possibly dotted (qualified).
	Ident
	// Keyword is a reserved word from the session's reserved set.
	Keyword
	// Op is a user operator built from operator characters.
	Op
	// Sym is a reserved symbol such as ':', '->', '{', ';'.
	Sym
	NatLit
	FloatLit
	StringLit
	CharLit
	// DocLine is a '|||' documentation line.
	DocLine
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Invalid:
		return "Invalid"
	case Ident:
		return "Ident"
	case Keyword:
		return "Keyword"
	case Op:
		return "Op"
	case Sym:
		return "Sym"
	case NatLit:
		return "NatLit"
	case FloatLit:
		return "FloatLit"
	case StringLit:
		return "StringLit"
	case CharLit:
		return "CharLit"
	case DocLine:
		return "DocLine"
	}
	return "Unknown"
}
