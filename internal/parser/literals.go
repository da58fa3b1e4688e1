package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// scanDigits consumes a run of digits (underscore separators allowed)
// matching the given class.
func scanDigits(st *State, class func(byte) bool) int {
	n := 0
	for {
		b, ok := st.peek()
		if !ok || (!class(b) && b != '_') {
			return n
		}
		if b != '_' {
			n++
		}
		st.advance(1)
	}
}

// naturalRaw scans the digits of a natural number and converts them.
// Failures anchor at start, the token start, which may precede the scan
// when a sign was already consumed.
func naturalRaw(st *State, start uint32) (uint64, error) {
	b, ok := st.peek()
	if !ok || !isDigit(b) {
		return 0, st.fail("natural number")
	}
	base := 10
	digits := isDigit
	if b == '0' {
		if nxt, ok := st.byteAt(st.off + 1); ok {
			switch nxt {
			case 'x', 'X':
				base, digits = 16, isHexDigit
			case 'o', 'O':
				base, digits = 8, func(b byte) bool { return '0' <= b && b <= '7' }
			case 'b', 'B':
				base, digits = 2, func(b byte) bool { return b == '0' || b == '1' }
			}
		}
	}
	from := st.off
	if base != 10 {
		st.advance(2)
		if scanDigits(st, digits) == 0 {
			return 0, st.failAt(start, "digits after base prefix")
		}
		from += 2
	} else {
		scanDigits(st, digits)
	}
	text := strings.ReplaceAll(string(st.file.Content[from:st.off]), "_", "")
	v, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return 0, st.failAt(start, "representable natural number")
	}
	return v, nil
}

// Natural parses a natural number literal: decimal, or prefixed hex
// (0x), octal (0o), binary (0b). Underscore digit separators are
// allowed anywhere after the first digit.
func Natural(st *State) (uint64, error) {
	start := st.off
	return Lexeme(func(st *State) (uint64, error) {
		return naturalRaw(st, start)
	})(st)
}

// Integer parses an optionally negated natural. The sign is consumed
// inside the token, so the recorded span covers it.
func Integer(st *State) (int64, error) {
	start := st.off
	return Lexeme(func(st *State) (int64, error) {
		neg := false
		if b, ok := st.peek(); ok && b == '-' {
			// Only when a digit follows; a lone '-' belongs to an operator.
			if nxt, ok := st.byteAt(st.off + 1); ok && isDigit(nxt) {
				st.advance(1)
				neg = true
			}
		}
		n, err := naturalRaw(st, start)
		if err != nil {
			return 0, err
		}
		v := int64(n)
		if neg {
			v = -v
		}
		return v, nil
	})(st)
}

// Float parses a floating point literal. A fractional part or an
// exponent is required, so plain naturals are left for Natural.
func Float(st *State) (float64, error) {
	start := st.off
	return Lexeme(func(st *State) (float64, error) {
		from := st.off
		if scanDigits(st, isDigit) == 0 {
			return 0, st.fail("floating point number")
		}
		sawPoint := false
		if b, ok := st.peek(); ok && b == '.' {
			if nxt, ok := st.byteAt(st.off + 1); ok && isDigit(nxt) {
				st.advance(1)
				scanDigits(st, isDigit)
				sawPoint = true
			}
		}
		sawExp := false
		if b, ok := st.peek(); ok && (b == 'e' || b == 'E') {
			off := st.off + 1
			if s, ok := st.byteAt(off); ok && (s == '+' || s == '-') {
				off++
			}
			if d, ok := st.byteAt(off); ok && isDigit(d) {
				st.advance(int(off - st.off))
				scanDigits(st, isDigit)
				sawExp = true
			}
		}
		if !sawPoint && !sawExp {
			return 0, st.failAt(start, "floating point number")
		}
		text := strings.ReplaceAll(string(st.file.Content[from:st.off]), "_", "")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, st.failAt(start, "representable floating point number")
		}
		return v, nil
	})(st)
}

// StringLit parses a double-quoted string literal with escapes. The
// literal must close on the same line.
func StringLit(st *State) (string, error) {
	start := st.off
	return Lexeme(func(st *State) (string, error) {
		b, ok := st.peek()
		if !ok || b != '"' {
			return "", st.fail("string literal")
		}
		st.advance(1)
		var sb strings.Builder
		for {
			b, ok := st.peek()
			if !ok || b == '\n' {
				return "", st.failAt(start, "closing '\"'")
			}
			st.advance(1)
			switch b {
			case '"':
				return sb.String(), nil
			case '\\':
				r, err := escape(st, start)
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
			default:
				sb.WriteByte(b)
			}
		}
	})(st)
}

// CharLit parses a single-quoted character literal.
func CharLit(st *State) (rune, error) {
	start := st.off
	return Lexeme(func(st *State) (rune, error) {
		b, ok := st.peek()
		if !ok || b != '\'' {
			return 0, st.fail("character literal")
		}
		st.advance(1)
		b, ok = st.peek()
		if !ok || b == '\n' || b == '\'' {
			return 0, st.failAt(start, "character")
		}
		var r rune
		if b == '\\' {
			st.advance(1)
			var err error
			if r, err = escape(st, start); err != nil {
				return 0, err
			}
		} else {
			var size int
			r, size = decodeRuneAt(st)
			st.advance(size)
		}
		if b, ok := st.peek(); !ok || b != '\'' {
			return 0, st.failAt(start, "closing '''")
		}
		st.advance(1)
		return r, nil
	})(st)
}

// escape decodes one escape sequence; the backslash is already
// consumed.
func escape(st *State, start uint32) (rune, error) {
	b, ok := st.peek()
	if !ok {
		return 0, st.failAt(start, "escape sequence")
	}
	st.advance(1)
	switch b {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\\', '\'', '"':
		return rune(b), nil
	case 'x':
		from := st.off
		if scanDigits(st, isHexDigit) == 0 {
			return 0, st.failAt(start, "hex digits in escape")
		}
		v, err := strconv.ParseUint(string(st.file.Content[from:st.off]), 16, 32)
		if err != nil {
			return 0, st.failAt(start, "valid hex escape")
		}
		return rune(v), nil
	}
	return 0, st.failAt(start, "valid escape sequence")
}

func decodeRuneAt(st *State) (rune, int) {
	return utf8.DecodeRune(st.file.Content[st.off:])
}
