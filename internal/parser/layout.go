package parser

import "fmt"

// The layout engine. Two cooperating stacks drive indentation-sensitive
// parsing: the indent stack holds the columns statements of the current
// constructs must not retreat past, and the brace stack holds one frame
// per open block, implicit (indentation threshold) or explicit ('{').
// Every check is a backtrackable failure except indent-stack underflow,
// which is a caller bug and panics.

// PushIndent pushes the cursor's column; constructs opened under it
// terminate once input retreats to that column or before it.
func (st *State) PushIndent() {
	st.indents = append(st.indents, st.col())
}

// PopIndent pops the indent stack. Underflow means a caller failed to
// pair a push with exactly one pop along some control path.
func (st *State) PopIndent() {
	if len(st.indents) == 0 {
		panic(fmt.Errorf("parser: indent stack underflow at %s", st.CurrentPosition()))
	}
	st.indents = st.indents[:len(st.indents)-1]
}

// lastIndent is the most recently pushed indent column, 0 when none.
func (st *State) lastIndent() int {
	if len(st.indents) == 0 {
		return 0
	}
	return st.indents[len(st.indents)-1]
}

func (st *State) pushBrace(f braceFrame) {
	st.braces = append(st.braces, f)
}

func (st *State) popBrace() {
	st.braces = st.braces[:len(st.braces)-1]
}

func (st *State) topBrace() (braceFrame, bool) {
	if len(st.braces) == 0 {
		return braceFrame{}, false
	}
	return st.braces[len(st.braces)-1], true
}

// blockCloser reports whether the lookahead is one of the tokens that
// close an implicit block from outside: ')' or the 'in' keyword.
func (st *State) blockCloser() bool {
	return st.lookingAt(")") || st.lookingAtKeyword("in")
}

// OpenBlock opens a block: an explicit '{' if present, otherwise an
// implicit block whose threshold is derived from the cursor column.
// When the cursor has not indented past the enclosing implicit block's
// threshold t, the new block gets threshold t+1, which makes the very
// first close-check succeed: the block is empty. A block opened at true
// column 1 with no enclosing block gets threshold 2, so it can span the
// rest of the file without closing after every top-level line.
func OpenBlock(st *State) error {
	m := st.save()
	if _, err := Symbol("{")(st); err == nil {
		st.pushBrace(braceFrame{implicit: false})
		return nil
	}
	st.restore(m)

	c := st.col()
	lvl := c
	if top, ok := st.topBrace(); ok {
		if top.implicit && c <= top.level {
			lvl = top.level + 1
		}
	} else if c == 1 {
		lvl = 2
	}
	st.pushBrace(braceFrame{implicit: true, level: lvl})
	return nil
}

// CloseBlock closes the innermost block. An explicit frame needs its
// '}'. An implicit frame closes without consuming anything once the
// cursor has retreated before its threshold or the lookahead is a
// closing token; it also closes at end of input, provided no explicit
// frame remains open anywhere in the stack.
func CloseBlock(st *State) error {
	top, ok := st.topBrace()
	if !ok {
		if st.atEOF() {
			return nil
		}
		return st.fail("end of input")
	}

	if !top.implicit {
		if _, err := Symbol("}")(st); err != nil {
			return err
		}
		st.popBrace()
		return nil
	}

	if st.atEOF() {
		for _, fr := range st.braces {
			if !fr.implicit {
				return st.fail("'}'")
			}
		}
		st.popBrace()
		return nil
	}
	if st.col() >= top.level && !st.blockCloser() {
		return st.fail("end of block")
	}
	st.popBrace()
	return nil
}

// Terminator recognizes a statement boundary: a literal ';' (consumed,
// and one indent level popped), retreat to or before the last pushed
// indent, a closing lookahead, or end of input. Only the ';' case pops;
// callers that pushed must balance the other cases themselves.
func Terminator(st *State) error {
	m := st.save()
	if _, err := Symbol(";")(st); err == nil {
		st.PopIndent()
		return nil
	}
	st.restore(m)
	if st.atEOF() {
		return nil
	}
	if st.col() <= st.lastIndent() {
		return nil
	}
	if st.blockCloser() {
		return nil
	}
	return st.fail("end of statement")
}

// KeepTerminator recognizes the same boundaries as Terminator without
// popping, plus '}' and '|' lookaheads, so block items can peek at
// their own closing brace or a following alternative.
func KeepTerminator(st *State) error {
	m := st.save()
	if _, err := Symbol(";")(st); err == nil {
		return nil
	}
	st.restore(m)
	if st.atEOF() {
		return nil
	}
	if st.col() <= st.lastIndent() {
		return nil
	}
	if st.blockCloser() || st.lookingAt("}") || st.lookingAt("|") {
		return nil
	}
	return st.fail("end of statement")
}

// NotEndApp fails once the cursor retreats to or before the last pushed
// indent; it bounds multi-line application argument lists.
func NotEndApp(st *State) error {
	if st.atEOF() {
		return st.fail("application argument")
	}
	if st.col() <= st.lastIndent() {
		return st.fail("application argument")
	}
	return nil
}

// NotEndBlock fails when the innermost block is implicit and the cursor
// sits before its threshold, or the lookahead is ')'.
func NotEndBlock(st *State) error {
	top, ok := st.topBrace()
	if !ok || !top.implicit {
		return nil
	}
	if st.atEOF() {
		return st.fail("block item")
	}
	if st.col() < top.level || st.lookingAt(")") {
		return st.fail("block item")
	}
	return nil
}

// IndentGt fails unless the cursor is strictly past the last pushed
// indent.
func IndentGt(st *State) error {
	if st.col() <= st.lastIndent() {
		return st.fail("further indentation")
	}
	return nil
}

// Indented wraps one item of a layout block: the block must not have
// ended, the item parses, and a statement boundary follows.
func Indented[T any](p Parser[T]) Parser[T] {
	return func(st *State) (T, error) {
		var zero T
		if err := NotEndBlock(st); err != nil {
			return zero, err
		}
		v, err := p(st)
		if err != nil {
			return zero, err
		}
		if err := KeepTerminator(st); err != nil {
			return zero, err
		}
		return v, nil
	}
}

// IndentedBlock parses a layout block of zero or more items.
func IndentedBlock[T any](p Parser[T]) Parser[[]T] {
	return func(st *State) ([]T, error) {
		if err := OpenBlock(st); err != nil {
			return nil, err
		}
		st.PushIndent()
		items, _ := Many(Indented(p))(st)
		st.PopIndent()
		if err := CloseBlock(st); err != nil {
			return nil, err
		}
		return items, nil
	}
}

// IndentedBlock1 parses a layout block of one or more items.
func IndentedBlock1[T any](p Parser[T]) Parser[[]T] {
	return func(st *State) ([]T, error) {
		start := st.off
		items, err := IndentedBlock(p)(st)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, st.failAt(start, "at least one block item")
		}
		return items, nil
	}
}

// IndentedBlockS parses a layout block of exactly one item.
func IndentedBlockS[T any](p Parser[T]) Parser[T] {
	return func(st *State) (T, error) {
		var zero T
		if err := OpenBlock(st); err != nil {
			return zero, err
		}
		st.PushIndent()
		v, err := Indented(p)(st)
		st.PopIndent()
		if err != nil {
			return zero, err
		}
		if err := CloseBlock(st); err != nil {
			return zero, err
		}
		return v, nil
	}
}

// Closed runs p as a free-standing statement: an indent level is pushed
// for its duration and a terminator must follow. The push is balanced
// on every path, whether or not the terminator consumed a ';'.
func Closed[T any](p Parser[T]) Parser[T] {
	return func(st *State) (T, error) {
		st.PushIndent()
		depth := len(st.indents)
		v, err := p(st)
		if err == nil {
			err = Terminator(st)
		}
		if len(st.indents) >= depth {
			st.PopIndent()
		}
		return v, err
	}
}
