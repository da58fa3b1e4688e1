package parser

// skipSpace consumes inter-token space: whitespace characters, single
// line comments, and (arbitrarily nested) block comments, in any order,
// until none match. Doc comment lines ("|||") are tokens, not space,
// and are left alone.
//
// An unterminated block comment is left unconsumed; the token parser
// that runs next will fail at its opening brace, which is where the
// diagnostic should point.
func skipSpace(st *State) {
	for {
		b, ok := st.peek()
		if !ok {
			return
		}
		switch {
		case isSpaceByte(b):
			st.advance(1)
		case st.lookingAt("--"):
			skipLineComment(st)
		case st.lookingAt("{-"):
			m := st.save()
			if err := blockComment(st); err != nil {
				st.restore(m)
				return
			}
		default:
			return
		}
	}
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// skipLineComment consumes "--" and everything up to, but not
// including, the newline.
func skipLineComment(st *State) {
	st.advance(2)
	for {
		b, ok := st.peek()
		if !ok || b == '\n' {
			return
		}
		st.advance(1)
	}
}

// blockComment consumes one "{- ... -}" comment, including nested
// comments to unbounded depth. "{--}" is the empty comment, accepted
// outright. A "|||" line inside a block comment is plain content, not a
// doc comment. Fails, without a defined cursor position, when the
// comment is unterminated.
func blockComment(st *State) error {
	start := st.off
	if st.lookingAt("{--}") {
		st.advance(4)
		return nil
	}
	st.advance(2) // "{-"
	for {
		switch {
		case st.lookingAt("-}"):
			st.advance(2)
			return nil
		case st.lookingAt("{-"):
			if err := blockComment(st); err != nil {
				return err
			}
		case st.lookingAt("|||"):
			skipToLineEnd(st)
		default:
			b, ok := st.peek()
			if !ok {
				return st.failAt(start, "closing '-}'")
			}
			// A stray brace or dash that did not form a marker above is
			// ordinary content.
			st.advance(1)
			for {
				b, ok = st.peek()
				if !ok || b == '{' || b == '}' || b == '-' {
					break
				}
				st.advance(1)
			}
		}
	}
}

func skipToLineEnd(st *State) {
	for {
		b, ok := st.peek()
		if !ok || b == '\n' {
			return
		}
		st.advance(1)
	}
}
