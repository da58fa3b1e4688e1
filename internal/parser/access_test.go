package parser

import (
	"testing"

	"ledge/internal/ast"
	"ledge/internal/diag"
)

func TestAccessibilityPublicExport(t *testing.T) {
	sess := NewSession(SessionOptions{})
	acc, err := Run(Accessibility, sess, "", "public export\nfoo : A\n")
	if err != nil {
		t.Fatalf("Accessibility: %v", err)
	}
	if acc != ast.AccPublic {
		t.Errorf("acc = %v, want public export", acc)
	}
	if len(sess.Warnings()) != 0 {
		t.Errorf("no deprecation expected, got %v", sess.Warnings())
	}
}

func TestAccessibilityBarePublicWarns(t *testing.T) {
	sess := NewSession(SessionOptions{})
	acc, err := Run(Accessibility, sess, "", "public\nfoo : A\n")
	if err != nil {
		t.Fatalf("Accessibility: %v", err)
	}
	if acc != ast.AccPublic {
		t.Errorf("acc = %v, want public", acc)
	}
	ws := sess.Warnings()
	if len(ws) != 1 {
		t.Fatalf("want exactly one deprecation warning, got %v", ws)
	}
	w := ws[0]
	if w.Code != diag.AccDeprecatedPublic {
		t.Errorf("code = %v", w.Code)
	}
	// The warning points at the 'public' keyword itself.
	if w.Span.Start.Line != 1 || w.Span.Start.Col != 1 || w.Span.End.Col != 6 {
		t.Errorf("span = %v", w.Span)
	}
}

func TestAccessibilityExportAndPrivate(t *testing.T) {
	sess := NewSession(SessionOptions{})
	acc, err := Run(Accessibility, sess, "", "export x")
	if err != nil || acc != ast.AccFrozen {
		t.Errorf("export: %v, %v", acc, err)
	}
	acc, err = Run(Accessibility, sess, "", "private x")
	if err != nil || acc != ast.AccPrivate {
		t.Errorf("private: %v, %v", acc, err)
	}
}

func TestAccessibilityAbstractDeprecated(t *testing.T) {
	sess := NewSession(SessionOptions{})
	acc, err := Run(Accessibility, sess, "", "abstract x")
	if err != nil || acc != ast.AccFrozen {
		t.Fatalf("abstract: %v, %v", acc, err)
	}
	ws := sess.Warnings()
	if len(ws) != 1 || ws[0].Code != diag.AccDeprecatedAbstract {
		t.Errorf("warnings = %v", ws)
	}
}

func TestAccessibilitySuppressedWarnings(t *testing.T) {
	sess := NewSession(SessionOptions{SuppressDeprecations: true})
	if _, err := Run(Accessibility, sess, "", "public\nx"); err != nil {
		t.Fatalf("Accessibility: %v", err)
	}
	if len(sess.Warnings()) != 0 {
		t.Errorf("suppressed session must not warn: %v", sess.Warnings())
	}
}

func TestAccessibilityOrDefault(t *testing.T) {
	sess := NewSession(SessionOptions{DefaultAcc: ast.AccPrivate})
	acc, err := Run(AccessibilityOrDefault, sess, "", "foo : A\n")
	if err != nil {
		t.Fatalf("AccessibilityOrDefault: %v", err)
	}
	if acc != ast.AccPrivate {
		t.Errorf("acc = %v, want the session default", acc)
	}
}

func TestAccDataFrozenHidesConstituents(t *testing.T) {
	sess := NewSession(SessionOptions{})
	sess.AccData(ast.AccFrozen, "Color", []string{"Red", "Green"})

	if acc, ok := sess.Accessibility("Color"); !ok || acc != ast.AccPublic {
		t.Errorf("frozen type stays public at its boundary: %v %v", acc, ok)
	}
	for _, c := range []string{"Red", "Green"} {
		if acc, ok := sess.Accessibility(c); !ok || acc != ast.AccPrivate {
			t.Errorf("constituent %s = %v %v, want private", c, acc, ok)
		}
	}
}

func TestAccDataUniformOtherwise(t *testing.T) {
	sess := NewSession(SessionOptions{})
	sess.AccData(ast.AccPublic, "Shape", []string{"Circle"})
	if acc, _ := sess.Accessibility("Shape"); acc != ast.AccPublic {
		t.Errorf("Shape = %v", acc)
	}
	if acc, _ := sess.Accessibility("Circle"); acc != ast.AccPublic {
		t.Errorf("Circle = %v", acc)
	}
}

func TestFlushWarningsDeduplicates(t *testing.T) {
	sess := NewSession(SessionOptions{})
	st := testStateWith(t, "public public", sess)
	sp := st.CurrentPosition()
	sess.RecordWarning(sp, false, diag.SynDeferredWarning, "dup")
	sess.RecordWarning(sp, false, diag.SynDeferredWarning, "dup")
	sess.RecordWarning(sp, false, diag.SynDeferredWarning, "other")

	bag := diag.NewBag(16)
	sess.FlushWarnings(diag.BagReporter{Bag: bag})
	if got := bag.Len(); got != 2 {
		t.Errorf("flushed %d, want 2 after dedup", got)
	}
	if len(sess.Warnings()) != 0 {
		t.Error("flush must clear the accumulator")
	}
}
