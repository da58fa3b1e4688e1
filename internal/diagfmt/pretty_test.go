package diagfmt

import (
	"strings"
	"testing"

	"ledge/internal/diag"
	"ledge/internal/source"
)

func diagBag(t *testing.T, d ...diag.Diagnostic) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(16)
	for _, item := range d {
		if !bag.Add(item) {
			t.Fatalf("bag dropped %+v", item)
		}
	}
	return bag
}

func span(file string, line, startCol, endCol uint32) source.Span {
	return source.Span{
		File:  file,
		Start: source.LineCol{Line: line, Col: startCol},
		End:   source.LineCol{Line: line, Col: endCol},
	}
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("bad.lg", []byte("foo : Nat\nfoo = ?\n"))

	bag := diagBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpected,
		Message:  "expected a term",
		Primary:  span("bad.lg", 2, 7, 7),
	})

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{})
	got := out.String()

	if !strings.Contains(got, "bad.lg:2:7: ERROR [SYN2001]: expected a term") {
		t.Errorf("missing header in:\n%s", got)
	}
	if !strings.Contains(got, "2 | foo = ?") {
		t.Errorf("missing source line in:\n%s", got)
	}
	// The caret sits under column 7 of the source line.
	lines := strings.Split(got, "\n")
	var caretLine string
	for i, l := range lines {
		if strings.Contains(l, "foo = ?") && i+1 < len(lines) {
			caretLine = lines[i+1]
		}
	}
	if idx := strings.Index(caretLine, "^"); idx < 0 {
		t.Errorf("no caret in:\n%s", got)
	} else {
		srcLine := "2 | foo = ?"
		if want := strings.Index(srcLine, "?"); idx != want {
			t.Errorf("caret at %d, want %d:\n%s", idx, want, got)
		}
	}
}

func TestPrettyMultiCharUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("w.lg", []byte("public\nx\n"))

	bag := diagBag(t, diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.AccDeprecatedPublic,
		Message:  "deprecated modifier",
		Primary:  span("w.lg", 1, 1, 6),
	})

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{})
	if !strings.Contains(out.String(), "^~~~~~") {
		t.Errorf("six-column span wants a six-wide underline:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "WARNING [ACC3001]") {
		t.Errorf("header:\n%s", out.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("n.lg", []byte("import A as X\nimport B as X\n"))

	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynShadowedAlias,
		Message:  "alias X shadows an earlier alias",
		Primary:  span("n.lg", 2, 13, 13),
		Notes: []diag.Note{
			{Span: span("n.lg", 1, 13, 13), Msg: "earlier alias declared here"},
		},
	}

	var out strings.Builder
	Pretty(&out, diagBag(t, d), fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(out.String(), "note: earlier alias declared here") {
		t.Errorf("notes missing:\n%s", out.String())
	}

	out.Reset()
	Pretty(&out, diagBag(t, d), fs, PrettyOpts{})
	if strings.Contains(out.String(), "note:") {
		t.Errorf("notes shown without ShowNotes:\n%s", out.String())
	}
}

func TestPrettyBasenamePath(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("pkg/deep/mod.lg", []byte("x\n"))

	bag := diagBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpected,
		Message:  "boom",
		Primary:  span("pkg/deep/mod.lg", 1, 1, 1),
	})

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(out.String(), "mod.lg:1:1:") {
		t.Errorf("basename mode:\n%s", out.String())
	}
}

func TestPrettyUnknownFileSkipsSnippet(t *testing.T) {
	fs := source.NewFileSet()
	bag := diagBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "cannot read file",
		Primary:  span("gone.lg", 1, 1, 1),
	})

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{})
	got := out.String()
	if !strings.Contains(got, "gone.lg:1:1: ERROR") {
		t.Errorf("header still expected:\n%s", got)
	}
	if strings.Contains(got, "|") {
		t.Errorf("no snippet without file content:\n%s", got)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("c.lg", []byte("one\ntwo\nthree\nfour\nfive\n"))

	bag := diagBag(t, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpected,
		Message:  "mid",
		Primary:  span("c.lg", 3, 1, 1),
	})

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{Context: 1})
	got := out.String()
	for _, want := range []string{"2 | two", "3 | three", "4 | four"} {
		if !strings.Contains(got, want) {
			t.Errorf("context line %q missing:\n%s", want, got)
		}
	}
	if strings.Contains(got, "| one") || strings.Contains(got, "| five") {
		t.Errorf("context window too wide:\n%s", got)
	}
}
