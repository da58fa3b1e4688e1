package token

// Keywords is the static reserved-word set of the language. Parser
// sessions copy it into their own extensible set; `syntax` declarations
// may grow that copy, never this one.
var Keywords = []string{
	"abstract", "case", "data", "do", "else", "export", "if",
	"implementation", "import", "in", "infix", "infixl", "infixr",
	"interface", "let", "module", "mutual", "namespace", "of",
	"parameters", "partial", "private", "public", "rewrite", "syntax",
	"then", "total", "using", "where", "with",
}

// ReservedOps are the operator spellings the language claims for
// itself; a user operator may not equal any of them.
var ReservedOps = []string{
	":", "=>", "->", "<-", "=", "?=", "|", "**", "==>", "\\", "%",
	"~", "?", "!", "@",
}

// OpChars is the character class user operators are built from.
const OpChars = ":!#$%&*+./<=>?@\\^|-~"

// IsKeyword reports whether s is in the static keyword set.
func IsKeyword(s string) bool {
	for _, k := range Keywords {
		if s == k {
			return true
		}
	}
	return false
}

// IsReservedOp reports whether s is a reserved operator spelling.
func IsReservedOp(s string) bool {
	for _, op := range ReservedOps {
		if s == op {
			return true
		}
	}
	return false
}

// IsOpChar reports whether b may appear in a user operator.
func IsOpChar(b byte) bool {
	for i := 0; i < len(OpChars); i++ {
		if OpChars[i] == b {
			return true
		}
	}
	return false
}
