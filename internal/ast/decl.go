package ast

import (
	"ledge/internal/source"
)

// DeclKind discriminates the declaration union.
type DeclKind uint8

const (
	// DeclClaim is a type signature: `name : type`.
	DeclClaim DeclKind = iota
	// DeclClause is a single pattern clause as parsed; the clause
	// collector merges consecutive clauses into DeclDef groups.
	DeclClause
	// DeclDef is a clause group: a function name plus its ordered clauses.
	DeclDef
	DeclData
	DeclInterface
	DeclImplementation
	DeclNamespace
	DeclMutual
	DeclParameters
	DeclUsing
	DeclImport
	DeclSyntax
	DeclFixity
)

func (k DeclKind) String() string {
	switch k {
	case DeclClaim:
		return "claim"
	case DeclClause:
		return "clause"
	case DeclDef:
		return "def"
	case DeclData:
		return "data"
	case DeclInterface:
		return "interface"
	case DeclImplementation:
		return "implementation"
	case DeclNamespace:
		return "namespace"
	case DeclMutual:
		return "mutual"
	case DeclParameters:
		return "parameters"
	case DeclUsing:
		return "using"
	case DeclImport:
		return "import"
	case DeclSyntax:
		return "syntax"
	case DeclFixity:
		return "fixity"
	}
	return "unknown"
}

// Container reports whether the declaration kind owns a nested
// declaration list that the clause collector must recurse into.
func (k DeclKind) Container() bool {
	switch k {
	case DeclNamespace, DeclMutual, DeclParameters, DeclUsing,
		DeclInterface, DeclImplementation:
		return true
	default:
		return false
	}
}

// Decl is one declaration. Which fields are meaningful depends on Kind;
// the zero value of every other field is simply unused.
type Decl struct {
	Kind DeclKind
	Span source.Span
	Doc  DocString
	Acc  Accessibility

	// Name of the declared entity: claims, defs, data, interfaces,
	// implementations. For namespaces and imports Path is used instead.
	Name Name

	// Type is the claimed type (claims) or signature (data headers).
	Type *Term

	// Clause payload for DeclClause; Clauses for DeclDef groups.
	Clause  *Clause
	Clauses []Clause

	// Decls is the nested body of container kinds and the constructor
	// list of data declarations.
	Decls []Decl

	// Params carries parameters-block and interface parameter bindings.
	Params []Param

	// Path and Alias serve imports and namespace declarations.
	Path  string
	Alias string

	// Fixity payload.
	Fixity     string
	Precedence int
	Operators  []string
}

// Param is a single parameter binding: `name : type`.
type Param struct {
	Name string
	Type Term
	Span source.Span
}

// Clause is one pattern-matching clause of a function definition. The
// left-hand side is stored as a term; Name is the head function name
// when one could be resolved, and the zero Name otherwise.
type Clause struct {
	Name   Name
	Span   source.Span
	LHS    Term
	RHS    Term
	Wheres []Decl
}

// Unnamed reports whether the clause form carries no resolvable name.
func (c *Clause) Unnamed() bool {
	return c.Name.IsZero()
}

// DocString is a structured documentation comment: the main text plus
// ordered per-parameter blocks.
type DocString struct {
	Text   string
	Params []ParamDoc
}

// ParamDoc documents a single parameter of the declaration.
type ParamDoc struct {
	Name string
	Text string
}

// Empty reports whether the doc string carries no content.
func (d DocString) Empty() bool {
	return d.Text == "" && len(d.Params) == 0
}
