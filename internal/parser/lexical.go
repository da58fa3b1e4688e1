package parser

import (
	"unicode"
	"unicode/utf8"

	"ledge/internal/source"
	"ledge/internal/token"
)

// Lexeme wraps a raw scanner into a token parser: it records the span
// covering the scanner's first through last consumed character, both
// ends inclusive, consumes trailing inter-token space, and stores the
// span as the session's last token span. Raw scanners never report
// positions themselves; this is the one place spans are attached.
func Lexeme[T any](p Parser[T]) Parser[T] {
	return func(st *State) (T, error) {
		start := st.pos()
		startOff := st.off
		v, err := p(st)
		if err != nil {
			return v, err
		}
		end := start
		if st.off > startOff {
			end = source.Locate(st.file, prevRuneStart(st.file.Content, st.off))
		}
		st.lastSpan = source.Span{File: st.file.Name, Start: start, End: end}
		skipSpace(st)
		return v, nil
	}
}

// prevRuneStart steps back from off to the first byte of the rune
// ending just before it.
func prevRuneStart(src []byte, off uint32) uint32 {
	off--
	for off > 0 && src[off]&0xC0 == 0x80 {
		off--
	}
	return off
}

func isIdentStart(b byte) bool {
	return b == '_' || b >= utf8.RuneSelf ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || b == '\'' || b == '.' || ('0' <= b && b <= '9')
}

// identRaw scans an identifier without reservation checks: a letter or
// underscore, then letters, digits, underscores, primes, and dots.
// Dots are identifier characters here; the qualified name resolver
// splits them later.
func identRaw(st *State) (string, error) {
	start := st.off
	b, ok := st.peek()
	if !ok || !isIdentStart(b) {
		return "", st.fail("identifier")
	}
	if b >= utf8.RuneSelf {
		r, size := utf8.DecodeRune(st.file.Content[st.off:])
		if !unicode.IsLetter(r) {
			return "", st.fail("identifier")
		}
		st.advance(size)
	} else {
		st.advance(1)
	}
	for {
		b, ok := st.peek()
		if !ok || !isIdentContinue(b) {
			break
		}
		if b >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(st.file.Content[st.off:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			st.advance(size)
			continue
		}
		st.advance(1)
	}
	return string(st.file.Content[start:st.off]), nil
}

// Ident parses an identifier token. Reserved words and the wildcard "_"
// are rejected with a backtrackable failure; the check consults the
// session's extended reserved set, not the static keyword list.
func Ident(st *State) (string, error) {
	start := st.off
	return Lexeme(func(st *State) (string, error) {
		text, err := identRaw(st)
		if err != nil {
			return "", err
		}
		if text == "_" {
			return "", st.failAt(start, "identifier, not wildcard")
		}
		if st.sess.IsReserved(text) {
			return "", st.failAt(start, "identifier, not keyword '"+text+"'")
		}
		return text, nil
	})(st)
}

// Wildcard parses the pattern wildcard "_".
func Wildcard(st *State) (string, error) {
	return Lexeme(func(st *State) (string, error) {
		text, err := identRaw(st)
		if err != nil || text != "_" {
			return "", st.fail("'_'")
		}
		return text, nil
	})(st)
}

// Reserved parses the exact keyword word, requiring a token boundary
// after it so that "lets" never matches "let".
func Reserved(word string) Parser[string] {
	return Lexeme(func(st *State) (string, error) {
		if !st.lookingAtKeyword(word) {
			return "", st.fail("'" + word + "'")
		}
		st.advance(len(word))
		return word, nil
	})
}

// Symbol parses the exact text sym. When sym ends in an operator
// character, the next byte must not extend it, so Symbol("=") does not
// bite into "==>".
func Symbol(sym string) Parser[string] {
	return Lexeme(func(st *State) (string, error) {
		if !st.lookingAt(sym) {
			return "", st.fail("'" + sym + "'")
		}
		if token.IsOpChar(sym[len(sym)-1]) {
			if b, ok := st.byteAt(st.off + uint32(len(sym))); ok && token.IsOpChar(b) {
				return "", st.fail("'" + sym + "'")
			}
		}
		st.advance(len(sym))
		return sym, nil
	})
}

// Operator parses a user-defined operator: a run of operator
// characters that is not a reserved operator and not a comment marker.
func Operator(st *State) (string, error) {
	start := st.off
	return Lexeme(func(st *State) (string, error) {
		b, ok := st.peek()
		if !ok || !token.IsOpChar(b) {
			return "", st.fail("operator")
		}
		from := st.off
		for {
			b, ok := st.peek()
			if !ok || !token.IsOpChar(b) {
				break
			}
			st.advance(1)
		}
		text := string(st.file.Content[from:st.off])
		if token.IsReservedOp(text) || text == "--" || text == "|||" {
			return "", st.failAt(start, "operator, not '"+text+"'")
		}
		return text, nil
	})(st)
}
