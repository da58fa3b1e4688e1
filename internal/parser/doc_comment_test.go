package parser

import (
	"reflect"
	"testing"

	"ledge/internal/ast"
)

func TestDocCommentMainLines(t *testing.T) {
	st := testState(t, "||| Reverses a list.\n||| Runs in linear time.\nreverse : a\n")
	doc, err := DocComment(st)
	if err != nil {
		t.Fatalf("DocComment: %v", err)
	}
	if doc.Text != "Reverses a list.\nRuns in linear time." {
		t.Errorf("text = %q", doc.Text)
	}
	if len(doc.Params) != 0 {
		t.Errorf("params = %v", doc.Params)
	}
	if len(st.indents) != 0 {
		t.Errorf("doc comment must balance its indent push: %v", st.indents)
	}
}

func TestDocCommentParams(t *testing.T) {
	src := "||| Zips two lists.\n" +
		"||| @xs the left list\n" +
		"||| continued left text\n" +
		"||| @ys the right list\n" +
		"zip : a\n"
	st := testState(t, src)
	doc, err := DocComment(st)
	if err != nil {
		t.Fatalf("DocComment: %v", err)
	}
	if doc.Text != "Zips two lists." {
		t.Errorf("text = %q", doc.Text)
	}
	want := []ast.ParamDoc{
		{Name: "xs", Text: "the left list\ncontinued left text"},
		{Name: "ys", Text: "the right list"},
	}
	if !reflect.DeepEqual(doc.Params, want) {
		t.Errorf("params = %v, want %v", doc.Params, want)
	}
}

func TestDocCommentAlignment(t *testing.T) {
	// The second marker is indented differently, so it is not part of
	// this doc block.
	st := testState(t, "||| first\n   ||| elsewhere\n")
	doc, err := DocComment(st)
	if err != nil {
		t.Fatalf("DocComment: %v", err)
	}
	if doc.Text != "first" {
		t.Errorf("text = %q", doc.Text)
	}
}

func TestDocCommentRequiresMainLine(t *testing.T) {
	st := testState(t, "||| @x no main line\n")
	if _, err := DocComment(st); err == nil {
		t.Error("a doc block must open with a plain line")
	}
	if len(st.indents) != 0 {
		t.Errorf("failed doc comment must balance its indent push: %v", st.indents)
	}
}

func TestDocCommentAttachesToDeclaration(t *testing.T) {
	sess := NewSession(SessionOptions{})
	decls, err := Run(Program, sess, "", "||| The unit.\none : Nat\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(decls) != 1 {
		t.Fatalf("decls = %d", len(decls))
	}
	if decls[0].Doc.Text != "The unit." {
		t.Errorf("doc = %q", decls[0].Doc.Text)
	}
}
