package parser

import (
	"ledge/internal/source"
	"ledge/internal/token"
)

// The standalone token stream. It reuses the raw scanners but emits
// every lexeme as a token.Token instead of feeding a grammar; comments
// and whitespace are skipped, doc lines are kept as DocLine tokens.

// Tokenize scans a whole file into tokens, ending with an EOF token.
func Tokenize(sess *Session, f *source.File) []token.Token {
	st := &State{file: f, sess: sess, lastSpan: source.NoSpan}
	skipSpace(st)
	var out []token.Token
	for {
		tok := NextToken(st)
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// NextToken scans one token. The cursor must sit on a token start
// (inter-token space already skipped); the returned token's trailing
// space is consumed. Unrecognized input yields an Invalid token of one
// rune, so scanning always progresses.
func NextToken(st *State) token.Token {
	if st.atEOF() {
		p := st.pos()
		return token.Token{Kind: token.EOF, Span: source.Span{File: st.file.Name, Start: p, End: p}}
	}

	start := st.off
	b, _ := st.peek()
	switch {
	case st.lookingAt("|||"):
		st.advance(3)
		skipToLineEnd(st)
		return st.emit(token.DocLine, start)

	case isIdentStart(b):
		if _, err := identRaw(st); err != nil {
			st.advance(1)
			return st.emit(token.Invalid, start)
		}
		text := string(st.file.Content[start:st.off])
		kind := token.Ident
		if st.sess.IsReserved(text) {
			kind = token.Keyword
		}
		return st.emit(kind, start)

	case isDigit(b):
		return st.scanNumberToken(start)

	case b == '"':
		return st.scanStringToken(start)

	case b == '\'':
		return st.scanCharToken(start)

	case token.IsOpChar(b):
		for {
			b, ok := st.peek()
			if !ok || !token.IsOpChar(b) {
				break
			}
			st.advance(1)
		}
		text := string(st.file.Content[start:st.off])
		kind := token.Op
		if token.IsReservedOp(text) {
			kind = token.Sym
		}
		return st.emit(kind, start)

	case b == '(' || b == ')' || b == '{' || b == '}' || b == ';' || b == ',' || b == '[' || b == ']':
		st.advance(1)
		return st.emit(token.Sym, start)
	}

	_, size := decodeRuneAt(st)
	st.advance(size)
	return st.emit(token.Invalid, start)
}

// emit builds the token from start through the last consumed character,
// records its span as the last token span, and consumes trailing space.
func (st *State) emit(kind token.Kind, start uint32) token.Token {
	end := source.Locate(st.file, start)
	if st.off > start {
		end = source.Locate(st.file, prevRuneStart(st.file.Content, st.off))
	}
	sp := source.Span{
		File:  st.file.Name,
		Start: source.Locate(st.file, start),
		End:   end,
	}
	text := string(st.file.Content[start:st.off])
	st.lastSpan = sp
	skipSpace(st)
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (st *State) scanNumberToken(start uint32) token.Token {
	if b, _ := st.peek(); b == '0' {
		if nxt, ok := st.byteAt(st.off + 1); ok {
			switch nxt {
			case 'x', 'X':
				st.advance(2)
				if scanDigits(st, isHexDigit) == 0 {
					return st.emit(token.Invalid, start)
				}
				return st.emit(token.NatLit, start)
			case 'o', 'O':
				st.advance(2)
				if scanDigits(st, func(b byte) bool { return '0' <= b && b <= '7' }) == 0 {
					return st.emit(token.Invalid, start)
				}
				return st.emit(token.NatLit, start)
			case 'b', 'B':
				st.advance(2)
				if scanDigits(st, func(b byte) bool { return b == '0' || b == '1' }) == 0 {
					return st.emit(token.Invalid, start)
				}
				return st.emit(token.NatLit, start)
			}
		}
	}

	scanDigits(st, isDigit)
	isFloat := false
	if b, ok := st.peek(); ok && b == '.' {
		if nxt, ok := st.byteAt(st.off + 1); ok && isDigit(nxt) {
			st.advance(1)
			scanDigits(st, isDigit)
			isFloat = true
		}
	}
	if b, ok := st.peek(); ok && (b == 'e' || b == 'E') {
		off := st.off + 1
		if s, ok := st.byteAt(off); ok && (s == '+' || s == '-') {
			off++
		}
		if d, ok := st.byteAt(off); ok && isDigit(d) {
			st.advance(int(off - st.off))
			scanDigits(st, isDigit)
			isFloat = true
		}
	}
	if isFloat {
		return st.emit(token.FloatLit, start)
	}
	return st.emit(token.NatLit, start)
}

func (st *State) scanStringToken(start uint32) token.Token {
	st.advance(1)
	for {
		b, ok := st.peek()
		if !ok || b == '\n' {
			return st.emit(token.Invalid, start)
		}
		st.advance(1)
		if b == '"' {
			return st.emit(token.StringLit, start)
		}
		if b == '\\' {
			if _, ok := st.peek(); ok {
				st.advance(1)
			}
		}
	}
}

func (st *State) scanCharToken(start uint32) token.Token {
	st.advance(1)
	b, ok := st.peek()
	if !ok || b == '\n' {
		return st.emit(token.Invalid, start)
	}
	if b == '\\' {
		st.advance(1)
		if _, ok := st.peek(); ok {
			st.advance(1)
		}
		for {
			b, ok := st.peek()
			if !ok || !isHexDigit(b) {
				break
			}
			st.advance(1)
		}
	} else {
		_, size := decodeRuneAt(st)
		st.advance(size)
	}
	if b, ok := st.peek(); ok && b == '\'' {
		st.advance(1)
		return st.emit(token.CharLit, start)
	}
	return st.emit(token.Invalid, start)
}
