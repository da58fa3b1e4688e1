package ast

import (
	"testing"

	"ledge/internal/source"
)

func clauseDecl(fn string, line uint32) Decl {
	sp := source.Span{File: "t.lg", Start: source.LineCol{Line: line, Col: 1}, End: source.LineCol{Line: line, Col: 10}}
	var name Name
	if fn != "" {
		name = Unqualified(fn)
	}
	return Decl{
		Kind:   DeclClause,
		Span:   sp,
		Clause: &Clause{Name: name, Span: sp},
	}
}

func TestCollectGroupsConsecutiveClauses(t *testing.T) {
	in := []Decl{
		clauseDecl("f", 1),
		clauseDecl("f", 2),
		clauseDecl("g", 3),
	}
	out := Collect(in)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Kind != DeclDef || out[0].Name.Base != "f" || len(out[0].Clauses) != 2 {
		t.Errorf("first group wrong: %+v", out[0])
	}
	if out[0].Clauses[0].Span.Start.Line != 1 || out[0].Clauses[1].Span.Start.Line != 2 {
		t.Error("clause order not preserved")
	}
	if out[1].Kind != DeclDef || out[1].Name.Base != "g" || len(out[1].Clauses) != 1 {
		t.Errorf("second group wrong: %+v", out[1])
	}
}

func TestCollectIdempotent(t *testing.T) {
	in := []Decl{
		clauseDecl("f", 1),
		clauseDecl("f", 2),
	}
	once := Collect(in)
	twice := Collect(once)
	if len(twice) != len(once) {
		t.Fatalf("second pass changed length: %d vs %d", len(twice), len(once))
	}
	if twice[0].Kind != DeclDef || len(twice[0].Clauses) != 2 {
		t.Errorf("groups must pass through unchanged: %+v", twice[0])
	}
}

func TestCollectRecursesIntoContainers(t *testing.T) {
	ns := Decl{
		Kind:  DeclNamespace,
		Path:  "Inner",
		Decls: []Decl{clauseDecl("f", 2)},
	}
	out := Collect([]Decl{ns})
	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
	inner := out[0].Decls
	if len(inner) != 1 || inner[0].Kind != DeclDef || inner[0].Name.Base != "f" {
		t.Errorf("clause must be grouped inside the namespace, got %+v", inner)
	}
}

func TestCollectRecursesIntoWhereBlocks(t *testing.T) {
	cl := clauseDecl("f", 1)
	cl.Clause.Wheres = []Decl{clauseDecl("go", 2), clauseDecl("go", 3)}
	out := Collect([]Decl{cl})
	if len(out) != 1 || out[0].Kind != DeclDef {
		t.Fatalf("unexpected shape: %+v", out)
	}
	wh := out[0].Clauses[0].Wheres
	if len(wh) != 1 || wh[0].Kind != DeclDef || len(wh[0].Clauses) != 2 {
		t.Errorf("where clauses not grouped: %+v", wh)
	}
}

// Pins the inherited behavior: a run headed by an unnamed clause is
// dropped entirely rather than surfaced as an error.
func TestCollectDropsUnnamedRuns(t *testing.T) {
	in := []Decl{
		clauseDecl("f", 1),
		clauseDecl("", 2),
		clauseDecl("f", 3),
	}
	out := Collect(in)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2 (unnamed clause dropped): %+v", len(out), out)
	}
	if len(out[0].Clauses) != 1 || len(out[1].Clauses) != 1 {
		t.Errorf("named runs around the unnamed clause must stay separate: %+v", out)
	}
}

func TestCollectPassesThroughNonClauses(t *testing.T) {
	claim := Decl{Kind: DeclClaim, Name: Unqualified("f")}
	out := Collect([]Decl{claim, clauseDecl("f", 2)})
	if len(out) != 2 || out[0].Kind != DeclClaim || out[1].Kind != DeclDef {
		t.Errorf("unexpected shape: %+v", out)
	}
}
