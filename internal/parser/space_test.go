package parser

import (
	"testing"
)

func TestLineComment(t *testing.T) {
	st := testState(t, "-- anything at all\nx")
	if b, _ := st.peek(); b != 'x' {
		t.Errorf("cursor must rest after the comment, got %q", b)
	}
}

func TestBlockCommentNesting(t *testing.T) {
	// Five levels deep; the scanner must resume exactly after the
	// outermost close.
	src := "{- 1 {- 2 {- 3 {- 4 {- 5 -} d -} c -} b -} a -}x"
	st := testState(t, src)
	if b, _ := st.peek(); b != 'x' {
		t.Errorf("cursor must rest after the outermost '-}', got %q at %d", b, st.off)
	}
}

func TestEmptyBlockComment(t *testing.T) {
	st := testState(t, "{--}x")
	if b, _ := st.peek(); b != 'x' {
		t.Errorf("'{--}' is a complete comment, cursor on %q", b)
	}
}

func TestBlockCommentDoesNotCloseOnInnerMarker(t *testing.T) {
	st := testState(t, "{- outer {- inner -} still comment -}x")
	if b, _ := st.peek(); b != 'x' {
		t.Errorf("inner '-}' must not close the outer comment, cursor on %q", b)
	}
}

func TestDocMarkerInsideBlockComment(t *testing.T) {
	st := testState(t, "{- text\n||| not a doc comment\n-}x")
	if b, _ := st.peek(); b != 'x' {
		t.Errorf("a '|||' line inside a comment is plain content, cursor on %q", b)
	}
}

func TestUnterminatedBlockCommentIsNotConsumed(t *testing.T) {
	st := testState(t, "{- never closed")
	if st.off != 0 {
		t.Errorf("unterminated comment must be left for the next parser, off=%d", st.off)
	}
}

func TestDocLineIsNotSpace(t *testing.T) {
	st := testState(t, "||| doc line\n")
	if st.off != 0 {
		t.Errorf("'|||' starts a token, not space, off=%d", st.off)
	}
}

func TestStrayDashesInsideComment(t *testing.T) {
	st := testState(t, "{- a - b -- c {x} -}x")
	if b, _ := st.peek(); b != 'x' {
		t.Errorf("stray '-', '{', '}' are comment content, cursor on %q", b)
	}
}
