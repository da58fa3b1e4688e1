package parser

import (
	"testing"

	"ledge/internal/source"
)

func TestIdentSpanRoundTrip(t *testing.T) {
	st := testState(t, "  foo  ")
	v, err := Ident(st)
	if err != nil {
		t.Fatalf("Ident: %v", err)
	}
	if v != "foo" {
		t.Fatalf("v = %q", v)
	}
	// The span covers 'f' through the last 'o', both ends inclusive.
	want := source.Span{
		File:  "test.lg",
		Start: source.LineCol{Line: 1, Col: 3},
		End:   source.LineCol{Line: 1, Col: 5},
	}
	if st.LastTokenSpan() != want {
		t.Errorf("span = %v, want %v", st.LastTokenSpan(), want)
	}
}

func TestIdentMultiLineSpan(t *testing.T) {
	st := testState(t, "\n\n   name'2\n")
	v, err := Ident(st)
	if err != nil {
		t.Fatalf("Ident: %v", err)
	}
	if v != "name'2" {
		t.Fatalf("v = %q", v)
	}
	sp := st.LastTokenSpan()
	if sp.Start.Line != 3 || sp.Start.Col != 4 || sp.End.Col != 9 {
		t.Errorf("span = %v", sp)
	}
}

func TestIdentRejectsReservedAndWildcard(t *testing.T) {
	for _, src := range []string{"let", "where", "_"} {
		st := testState(t, src)
		if _, err := Ident(st); err == nil {
			t.Errorf("%q must not parse as an identifier", src)
		}
	}
}

func TestIdentConsultsSessionReservedSet(t *testing.T) {
	sess := NewSession(SessionOptions{ExtraReserved: []string{"custom"}})
	st := testStateWith(t, "custom", sess)
	if _, err := Ident(st); err == nil {
		t.Error("session-reserved word must be rejected")
	}

	st = testStateWith(t, "fresh", sess)
	if _, err := Ident(st); err != nil {
		t.Errorf("unreserved word rejected: %v", err)
	}

	sess.Reserve("fresh")
	st = testStateWith(t, "fresh", sess)
	if _, err := Ident(st); err == nil {
		t.Error("a mid-session reservation must take effect")
	}
}

func TestReservedRequiresBoundary(t *testing.T) {
	st := testState(t, "lets")
	if _, err := Reserved("let")(st); err == nil {
		t.Error("'let' must not match inside 'lets'")
	}
	st = testState(t, "let x")
	if _, err := Reserved("let")(st); err != nil {
		t.Errorf("'let x': %v", err)
	}
}

func TestSymbolOperatorBoundary(t *testing.T) {
	st := testState(t, "==> x")
	if _, err := Symbol("=")(st); err == nil {
		t.Error("'=' must not bite into '==>'")
	}
	st = testState(t, "= x")
	if _, err := Symbol("=")(st); err != nil {
		t.Errorf("'= x': %v", err)
	}
	// '(' is not an operator character, no boundary applies.
	st = testState(t, "((")
	if _, err := Symbol("(")(st); err != nil {
		t.Errorf("'((': %v", err)
	}
}

func TestOperatorRejectsReservedSpellings(t *testing.T) {
	for _, src := range []string{"->", ":", "=", "|", "**"} {
		st := testState(t, src+" x")
		if _, err := Operator(st); err == nil {
			t.Errorf("%q is reserved, must not parse as user operator", src)
		}
	}
	st := testState(t, "<+> x")
	op, err := Operator(st)
	if err != nil || op != "<+>" {
		t.Errorf("user operator: %q, %v", op, err)
	}
}

func TestNaturalBases(t *testing.T) {
	cases := []struct {
		src  string
		want uint64
	}{
		{"42", 42},
		{"0xFF", 255},
		{"0o17", 15},
		{"0b1010", 10},
		{"1_000_000", 1000000},
	}
	for _, tc := range cases {
		st := testState(t, tc.src)
		v, err := Natural(st)
		if err != nil {
			t.Errorf("Natural(%q): %v", tc.src, err)
			continue
		}
		if v != tc.want {
			t.Errorf("Natural(%q) = %d, want %d", tc.src, v, tc.want)
		}
	}
}

func TestFloatRequiresFractionOrExponent(t *testing.T) {
	st := testState(t, "42 ")
	if _, err := Float(st); err == nil {
		t.Error("a plain natural is not a float")
	}
	st = testState(t, "3.25")
	v, err := Float(st)
	if err != nil || v != 3.25 {
		t.Errorf("Float = %v, %v", v, err)
	}
	st = testState(t, "1e3")
	v, err = Float(st)
	if err != nil || v != 1000 {
		t.Errorf("Float = %v, %v", v, err)
	}
}

func TestStringLitEscapes(t *testing.T) {
	st := testState(t, `"a\nb\t\"q\" \x41"`)
	v, err := StringLit(st)
	if err != nil {
		t.Fatalf("StringLit: %v", err)
	}
	if v != "a\nb\t\"q\" A" {
		t.Errorf("v = %q", v)
	}
}

func TestStringLitUnterminated(t *testing.T) {
	st := testState(t, "\"no closing\nx")
	if _, err := StringLit(st); err == nil {
		t.Error("a string must close on its own line")
	}
}

func TestCharLit(t *testing.T) {
	st := testState(t, "'x' rest")
	v, err := CharLit(st)
	if err != nil || v != 'x' {
		t.Fatalf("CharLit: %v, %v", v, err)
	}
	st = testState(t, `'\n'`)
	v, err = CharLit(st)
	if err != nil || v != '\n' {
		t.Errorf("CharLit escape: %v, %v", v, err)
	}
}

func TestLiteralSpanViaLastTokenSpan(t *testing.T) {
	st := testState(t, `  "hi"`)
	if _, err := StringLit(st); err != nil {
		t.Fatalf("StringLit: %v", err)
	}
	sp := st.LastTokenSpan()
	if sp.Start.Col != 3 || sp.End.Col != 6 {
		t.Errorf("span = %v", sp)
	}
}

func TestIntegerSpanCoversSign(t *testing.T) {
	st := testState(t, "-42 rest")
	v, err := Integer(st)
	if err != nil || v != -42 {
		t.Fatalf("Integer = %v, %v", v, err)
	}
	sp := st.LastTokenSpan()
	if sp.Start.Col != 1 || sp.End.Col != 3 {
		t.Errorf("span = %v, want the sign covered", sp)
	}

	st = testState(t, "7")
	if v, err := Integer(st); err != nil || v != 7 {
		t.Fatalf("Integer = %v, %v", v, err)
	}
	if sp := st.LastTokenSpan(); sp.Start.Col != 1 || sp.End.Col != 1 {
		t.Errorf("span = %v", sp)
	}
}
