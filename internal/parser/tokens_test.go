package parser

import (
	"testing"

	"ledge/internal/source"
	"ledge/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("tok.lg", []byte(src))
	return Tokenize(NewSession(SessionOptions{}), fs.Get(id))
}

func TestTokenizeKinds(t *testing.T) {
	toks := tokenize(t, "f : Nat -> 0xFF ; \"hi\" where 3.5 <+>")
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Ident, "f"},
		{token.Sym, ":"},
		{token.Ident, "Nat"},
		{token.Sym, "->"},
		{token.NatLit, "0xFF"},
		{token.Sym, ";"},
		{token.StringLit, `"hi"`},
		{token.Keyword, "where"},
		{token.FloatLit, "3.5"},
		{token.Op, "<+>"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("tok[%d] = %v %q, want %v %q", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	toks := tokenize(t, "a -- line\n{- block {- nested -} -} b")
	if len(toks) != 3 {
		t.Fatalf("tokens = %+v", toks)
	}
	if toks[0].Text != "a" || toks[1].Text != "b" {
		t.Errorf("tokens = %+v", toks)
	}
}

func TestTokenizeDocLine(t *testing.T) {
	toks := tokenize(t, "||| the docs\nf")
	if toks[0].Kind != token.DocLine || toks[0].Text != "||| the docs" {
		t.Errorf("tok = %+v", toks[0])
	}
	if toks[1].Kind != token.Ident {
		t.Errorf("tok = %+v", toks[1])
	}
}

func TestTokenizeSpans(t *testing.T) {
	toks := tokenize(t, "ab cd")
	sp := toks[1].Span
	if sp.Start.Col != 4 || sp.End.Col != 5 || sp.Start.Line != 1 {
		t.Errorf("span = %v", sp)
	}
	if sp.File != "tok.lg" {
		t.Errorf("file = %q", sp.File)
	}
}

func TestTokenizeInvalidProgresses(t *testing.T) {
	toks := tokenize(t, "a \x01 b")
	if len(toks) != 4 {
		t.Fatalf("tokens = %+v", toks)
	}
	if toks[1].Kind != token.Invalid {
		t.Errorf("tok = %+v", toks[1])
	}
}

func TestTokenizeCharAndUnterminatedString(t *testing.T) {
	toks := tokenize(t, "'x' \"open\n")
	if toks[0].Kind != token.CharLit || toks[0].Text != "'x'" {
		t.Errorf("tok = %+v", toks[0])
	}
	if toks[1].Kind != token.Invalid {
		t.Errorf("unterminated string must yield Invalid, got %+v", toks[1])
	}
}
