package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ledge/internal/ast"
)

// DeclNodeOutput is one declaration subtree in JSON form.
type DeclNodeOutput struct {
	Kind     string           `json:"kind"`
	Name     string           `json:"name,omitempty"`
	Path     string           `json:"path,omitempty"`
	Alias    string           `json:"alias,omitempty"`
	Acc      string           `json:"accessibility,omitempty"`
	Doc      string           `json:"doc,omitempty"`
	Type     string           `json:"type,omitempty"`
	Clauses  int              `json:"clauses,omitempty"`
	Fixity   string           `json:"fixity,omitempty"`
	Level    int              `json:"level,omitempty"`
	Words    []string         `json:"words,omitempty"`
	Span     LocationJSON     `json:"span"`
	Children []DeclNodeOutput `json:"children,omitempty"`
}

// FormatDeclsPretty writes the declaration forest as an indented tree.
func FormatDeclsPretty(w io.Writer, decls []ast.Decl) error {
	fmt.Fprintf(w, "Program (%d declarations)\n", len(decls))
	writeDeclChildren(w, decls, "")
	return nil
}

func writeDeclChildren(w io.Writer, decls []ast.Decl, prefix string) {
	for i := range decls {
		connector, childPrefix := "├─ ", prefix+"│  "
		if i == len(decls)-1 {
			connector, childPrefix = "└─ ", prefix+"   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, declSummary(&decls[i]))
		writeDeclChildren(w, decls[i].Decls, childPrefix)
	}
}

// declSummary renders one declaration header line without its children.
func declSummary(d *ast.Decl) string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	switch d.Kind {
	case ast.DeclClaim:
		fmt.Fprintf(&b, " %s : %s", d.Name, termSummary(d.Type))
	case ast.DeclDef:
		fmt.Fprintf(&b, " %s (%d clauses)", d.Name, len(d.Clauses))
	case ast.DeclClause:
		if d.Clause != nil {
			fmt.Fprintf(&b, " %s", d.Clause.Name)
		}
	case ast.DeclData, ast.DeclInterface, ast.DeclImplementation:
		fmt.Fprintf(&b, " %s", d.Name)
	case ast.DeclNamespace:
		fmt.Fprintf(&b, " %s", d.Path)
	case ast.DeclImport:
		fmt.Fprintf(&b, " %s", d.Path)
		if d.Alias != "" {
			fmt.Fprintf(&b, " as %s", d.Alias)
		}
	case ast.DeclParameters:
		params := make([]string, len(d.Params))
		for i, p := range d.Params {
			params[i] = p.Name
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(params, ", "))
	case ast.DeclSyntax:
		fmt.Fprintf(&b, " %s", strings.Join(d.Operators, " "))
	case ast.DeclFixity:
		fmt.Fprintf(&b, " %s %d %s", d.Fixity, d.Precedence, strings.Join(d.Operators, ", "))
	}
	if d.Span.Start.Line != 0 {
		fmt.Fprintf(&b, " @ %d:%d", d.Span.Start.Line, d.Span.Start.Col)
	}
	return b.String()
}

// termSummary renders a term on one line, parenthesizing nested
// applications. Meant for tree labels, not for round-tripping source.
func termSummary(t *ast.Term) string {
	if t == nil {
		return "<none>"
	}
	switch t.Kind {
	case ast.TermRef:
		return t.Name.String()
	case ast.TermHole:
		return "_"
	case ast.TermLit:
		return litSummary(t.Lit)
	case ast.TermApp:
		parts := []string{atomSummary(t.Head)}
		for i := range t.Args {
			parts = append(parts, atomSummary(&t.Args[i]))
		}
		return strings.Join(parts, " ")
	case ast.TermOp:
		var b strings.Builder
		for i := range t.Args {
			if i > 0 {
				fmt.Fprintf(&b, " %s ", t.Ops[i-1])
			}
			b.WriteString(atomSummary(&t.Args[i]))
		}
		return b.String()
	case ast.TermLam:
		return fmt.Sprintf("\\%s => %s", strings.Join(t.Binders, " "), termSummary(t.Body))
	case ast.TermLet:
		return fmt.Sprintf("let %s = %s in %s", t.Name, termSummary(t.Value), termSummary(t.Body))
	case ast.TermDo:
		return fmt.Sprintf("do (%d statements)", len(t.Args))
	case ast.TermBind:
		return fmt.Sprintf("%s <- %s", t.Name, termSummary(t.Value))
	}
	return "<unknown>"
}

func atomSummary(t *ast.Term) string {
	if t == nil {
		return "<none>"
	}
	switch t.Kind {
	case ast.TermRef, ast.TermHole, ast.TermLit:
		return termSummary(t)
	default:
		return "(" + termSummary(t) + ")"
	}
}

func litSummary(l ast.Literal) string {
	switch l.Kind {
	case ast.LitNat:
		return strconv.FormatUint(l.Nat, 10)
	case ast.LitFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case ast.LitString:
		return strconv.Quote(l.Str)
	case ast.LitChar:
		return strconv.QuoteRune(l.Char)
	}
	return "<lit>"
}

// FormatDeclsJSON writes the declaration forest as an indented JSON tree.
func FormatDeclsJSON(w io.Writer, decls []ast.Decl, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDeclNodes(decls, opts))
}

// BuildDeclNodes assembles the JSON projection of a declaration forest.
func BuildDeclNodes(decls []ast.Decl, opts JSONOpts) []DeclNodeOutput {
	out := make([]DeclNodeOutput, 0, len(decls))
	for i := range decls {
		d := &decls[i]
		node := DeclNodeOutput{
			Kind:     d.Kind.String(),
			Span:     makeLocation(d.Span, opts.PathMode),
			Doc:      d.Doc.Text,
			Path:     d.Path,
			Alias:    d.Alias,
			Children: BuildDeclNodes(d.Decls, opts),
		}
		if !d.Name.IsZero() {
			node.Name = d.Name.String()
		}
		switch d.Kind {
		case ast.DeclClaim:
			node.Acc = d.Acc.String()
			node.Type = termSummary(d.Type)
		case ast.DeclDef:
			node.Clauses = len(d.Clauses)
		case ast.DeclData, ast.DeclInterface:
			node.Acc = d.Acc.String()
		case ast.DeclSyntax:
			node.Words = d.Operators
		case ast.DeclFixity:
			node.Fixity = d.Fixity
			node.Level = d.Precedence
			node.Words = d.Operators
		}
		out = append(out, node)
	}
	return out
}
