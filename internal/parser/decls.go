package parser

import (
	"ledge/internal/ast"
	"ledge/internal/diag"
	"ledge/internal/source"
)

// The reference declaration grammar built on the layout primitives.
// Containers (namespace, mutual, parameters, using, interface,
// implementation) hold layout blocks of nested declarations; simple
// declarations are Closed statements ended by a terminator.

// Decl parses one declaration, with an optional leading doc comment.
func Decl(st *State) (ast.Decl, error) {
	doc, _ := Optional(DocComment)(st)
	d, err := Or(
		importDecl,
		namespaceDecl,
		mutualDecl,
		parametersDecl,
		usingDecl,
		syntaxDecl,
		fixityDecl,
		accDecl,
	)(st)
	if err != nil {
		return d, err
	}
	if doc.Ok {
		d.Doc = doc.Value
	}
	return d, nil
}

// Program parses a whole source unit to end of input.
func Program(st *State) ([]ast.Decl, error) {
	decls, _ := Many(Decl)(st)
	if _, err := EndOfInput(st); err != nil {
		return nil, err
	}
	return decls, nil
}

// ParseProgram parses a file and regroups consecutive clauses into
// definitions.
func ParseProgram(sess *Session, f *source.File) ([]ast.Decl, error) {
	decls, err := RunFile(Program, sess, f)
	if err != nil {
		return nil, err
	}
	return ast.Collect(decls), nil
}

// accDecl parses the declaration forms that take a visibility modifier.
func accDecl(st *State) (ast.Decl, error) {
	acc, err := AccessibilityOrDefault(st)
	if err != nil {
		return ast.Decl{}, err
	}
	return Or(
		func(st *State) (ast.Decl, error) { return dataDecl(st, acc) },
		func(st *State) (ast.Decl, error) { return interfaceDecl(st, acc) },
		func(st *State) (ast.Decl, error) { return implementationDecl(st, acc) },
		Closed(func(st *State) (ast.Decl, error) {
			return Or(
				func(st *State) (ast.Decl, error) { return claimDecl(st, acc) },
				func(st *State) (ast.Decl, error) { return clauseDecl(st, acc) },
			)(st)
		}),
	)(st)
}

func claimDecl(st *State, acc ast.Accessibility) (ast.Decl, error) {
	n, err := QualifiedName(false, nil)(st)
	if err != nil {
		return ast.Decl{}, err
	}
	nameSpan := st.LastTokenSpan()
	if _, err := Symbol(":")(st); err != nil {
		return ast.Decl{}, err
	}
	ty, err := Term(st)
	if err != nil {
		return ast.Decl{}, err
	}
	st.sess.RecordHighlight(nameSpan, HLFunction)
	st.sess.access[n.String()] = acc
	return ast.Decl{
		Kind: ast.DeclClaim,
		Span: nameSpan.Cover(ty.Span),
		Acc:  acc,
		Name: n,
		Type: &ty,
	}, nil
}

func clauseDecl(st *State, acc ast.Accessibility) (ast.Decl, error) {
	lhs, err := appTerm(st)
	if err != nil {
		return ast.Decl{}, err
	}
	if _, err := Symbol("=")(st); err != nil {
		return ast.Decl{}, err
	}
	rhs, err := Term(st)
	if err != nil {
		return ast.Decl{}, err
	}
	wheres, _ := Optional(whereBlock)(st)

	name, _ := lhs.HeadName()
	span := lhs.Span.Cover(rhs.Span)
	cl := ast.Clause{Name: name, Span: span, LHS: lhs, RHS: rhs}
	if wheres.Ok {
		cl.Wheres = wheres.Value
	}
	return ast.Decl{Kind: ast.DeclClause, Span: span, Acc: acc, Name: name, Clause: &cl}, nil
}

func whereBlock(st *State) ([]ast.Decl, error) {
	if _, err := Reserved("where")(st); err != nil {
		return nil, err
	}
	return IndentedBlock1(Decl)(st)
}

func dataDecl(st *State, acc ast.Accessibility) (ast.Decl, error) {
	if _, err := Reserved("data")(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	name, err := Ident(st)
	if err != nil {
		return ast.Decl{}, err
	}
	nameSpan := st.LastTokenSpan()
	if _, err := Symbol(":")(st); err != nil {
		return ast.Decl{}, err
	}
	sig, err := Term(st)
	if err != nil {
		return ast.Decl{}, err
	}
	if _, err := Reserved("where")(st); err != nil {
		return ast.Decl{}, err
	}
	ctors, err := IndentedBlock(ctorClaim)(st)
	if err != nil {
		return ast.Decl{}, err
	}

	ctorNames := make([]string, len(ctors))
	for i, c := range ctors {
		ctorNames[i] = c.Name.String()
	}
	st.sess.RecordHighlight(nameSpan, HLData)
	st.sess.AccData(acc, name, ctorNames)

	span := open.Cover(st.LastTokenSpan())
	return ast.Decl{
		Kind:  ast.DeclData,
		Span:  span,
		Acc:   acc,
		Name:  ast.Unqualified(name),
		Type:  &sig,
		Decls: ctors,
	}, nil
}

func ctorClaim(st *State) (ast.Decl, error) {
	name, err := Ident(st)
	if err != nil {
		return ast.Decl{}, err
	}
	nameSpan := st.LastTokenSpan()
	if _, err := Symbol(":")(st); err != nil {
		return ast.Decl{}, err
	}
	ty, err := Term(st)
	if err != nil {
		return ast.Decl{}, err
	}
	st.sess.RecordHighlight(nameSpan, HLData)
	return ast.Decl{
		Kind: ast.DeclClaim,
		Span: nameSpan.Cover(ty.Span),
		Name: ast.Unqualified(name),
		Type: &ty,
	}, nil
}

func interfaceDecl(st *State, acc ast.Accessibility) (ast.Decl, error) {
	if _, err := Reserved("interface")(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	name, err := Ident(st)
	if err != nil {
		return ast.Decl{}, err
	}
	nameSpan := st.LastTokenSpan()
	params, _ := Many(Ident)(st)
	if _, err := Reserved("where")(st); err != nil {
		return ast.Decl{}, err
	}
	body, err := IndentedBlock(Decl)(st)
	if err != nil {
		return ast.Decl{}, err
	}

	var methods []string
	for _, d := range body {
		if d.Kind == ast.DeclClaim {
			methods = append(methods, d.Name.String())
		}
	}
	st.sess.RecordHighlight(nameSpan, HLType)
	st.sess.AccData(acc, name, methods)

	ps := make([]ast.Param, len(params))
	for i, p := range params {
		ps[i] = ast.Param{Name: p}
	}
	return ast.Decl{
		Kind:   ast.DeclInterface,
		Span:   open.Cover(st.LastTokenSpan()),
		Acc:    acc,
		Name:   ast.Unqualified(name),
		Params: ps,
		Decls:  body,
	}, nil
}

func implementationDecl(st *State, acc ast.Accessibility) (ast.Decl, error) {
	if _, err := Reserved("implementation")(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	head, err := appTerm(st)
	if err != nil {
		return ast.Decl{}, err
	}
	var body []ast.Decl
	wh, _ := Optional(func(st *State) ([]ast.Decl, error) {
		if _, err := Reserved("where")(st); err != nil {
			return nil, err
		}
		return IndentedBlock(Decl)(st)
	})(st)
	if wh.Ok {
		body = wh.Value
	}

	name, _ := head.HeadName()
	return ast.Decl{
		Kind:  ast.DeclImplementation,
		Span:  open.Cover(st.LastTokenSpan()),
		Acc:   acc,
		Name:  name,
		Type:  &head,
		Decls: body,
	}, nil
}

func namespaceDecl(st *State) (ast.Decl, error) {
	if _, err := Reserved("namespace")(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	path, err := Ident(st)
	if err != nil {
		return ast.Decl{}, err
	}
	st.sess.RecordHighlight(st.LastTokenSpan(), HLNamespace)
	body, err := IndentedBlock1(Decl)(st)
	if err != nil {
		return ast.Decl{}, err
	}
	return ast.Decl{
		Kind:  ast.DeclNamespace,
		Span:  open.Cover(st.LastTokenSpan()),
		Path:  path,
		Decls: body,
	}, nil
}

func mutualDecl(st *State) (ast.Decl, error) {
	if _, err := Reserved("mutual")(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	body, err := IndentedBlock1(Decl)(st)
	if err != nil {
		return ast.Decl{}, err
	}
	return ast.Decl{
		Kind:  ast.DeclMutual,
		Span:  open.Cover(st.LastTokenSpan()),
		Decls: body,
	}, nil
}

func parametersDecl(st *State) (ast.Decl, error) {
	return paramContainer(st, "parameters", ast.DeclParameters)
}

func usingDecl(st *State) (ast.Decl, error) {
	return paramContainer(st, "using", ast.DeclUsing)
}

func paramContainer(st *State, kw string, kind ast.DeclKind) (ast.Decl, error) {
	if _, err := Reserved(kw)(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	if _, err := Symbol("(")(st); err != nil {
		return ast.Decl{}, err
	}
	params, err := SepBy1(paramBinding, Symbol(","))(st)
	if err != nil {
		return ast.Decl{}, err
	}
	if _, err := Symbol(")")(st); err != nil {
		return ast.Decl{}, err
	}
	body, err := IndentedBlock1(Decl)(st)
	if err != nil {
		return ast.Decl{}, err
	}
	return ast.Decl{
		Kind:   kind,
		Span:   open.Cover(st.LastTokenSpan()),
		Params: params,
		Decls:  body,
	}, nil
}

func paramBinding(st *State) (ast.Param, error) {
	name, err := Ident(st)
	if err != nil {
		return ast.Param{}, err
	}
	nameSpan := st.LastTokenSpan()
	if _, err := Symbol(":")(st); err != nil {
		return ast.Param{}, err
	}
	ty, err := Term(st)
	if err != nil {
		return ast.Param{}, err
	}
	st.sess.RecordHighlight(nameSpan, HLBound)
	return ast.Param{Name: name, Type: ty, Span: nameSpan.Cover(ty.Span)}, nil
}

var importDecl = Closed(func(st *State) (ast.Decl, error) {
	if _, err := Reserved("import")(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	path, err := Ident(st)
	if err != nil {
		return ast.Decl{}, err
	}
	pathSpan := st.LastTokenSpan()
	st.sess.RecordHighlight(pathSpan, HLNamespace)

	d := ast.Decl{Kind: ast.DeclImport, Span: open.Cover(pathSpan), Path: path}
	alias, _ := Optional(func(st *State) (string, error) {
		if _, err := Reserved("as")(st); err != nil {
			return "", err
		}
		return Ident(st)
	})(st)
	if alias.Ok {
		d.Alias = alias.Value
		d.Span = d.Span.Cover(st.LastTokenSpan())
		if !st.sess.AddAlias(alias.Value, path) {
			st.sess.RecordWarning(st.LastTokenSpan(), false, diag.SynShadowedAlias,
				"alias '"+alias.Value+"' shadows an earlier import alias")
		}
	}
	return d, nil
})

// syntaxDecl reserves the rule's literal words for the rest of the
// session; '{name}' slots stay ordinary identifiers.
var syntaxDecl = Closed(func(st *State) (ast.Decl, error) {
	if _, err := Reserved("syntax")(st); err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	words, err := Many1(syntaxWord)(st)
	if err != nil {
		return ast.Decl{}, err
	}
	return ast.Decl{
		Kind:      ast.DeclSyntax,
		Span:      open.Cover(st.LastTokenSpan()),
		Operators: words,
	}, nil
})

func syntaxWord(st *State) (string, error) {
	return Or(
		func(st *State) (string, error) {
			if _, err := Symbol("{")(st); err != nil {
				return "", err
			}
			name, err := Ident(st)
			if err != nil {
				return "", err
			}
			if _, err := Symbol("}")(st); err != nil {
				return "", err
			}
			return "{" + name + "}", nil
		},
		func(st *State) (string, error) {
			// Raw scan: a rule may spell out an already-reserved word.
			word, err := Lexeme(identRaw)(st)
			if err != nil {
				return "", err
			}
			if word == "_" {
				return "", st.fail("syntax rule word")
			}
			if st.sess.IsReserved(word) {
				st.sess.RecordWarning(st.LastTokenSpan(), false, diag.SynReservedExtension,
					"syntax rule re-reserves '"+word+"'")
			}
			st.sess.Reserve(word)
			st.sess.RecordHighlight(st.LastTokenSpan(), HLKeyword)
			return word, nil
		},
	)(st)
}

var fixityDecl = Closed(func(st *State) (ast.Decl, error) {
	fix, err := Or(Reserved("infixl"), Reserved("infixr"), Reserved("infix"))(st)
	if err != nil {
		return ast.Decl{}, err
	}
	open := st.LastTokenSpan()
	prec, err := Natural(st)
	if err != nil {
		return ast.Decl{}, err
	}
	ops, err := SepBy1(Operator, Symbol(","))(st)
	if err != nil {
		return ast.Decl{}, err
	}
	return ast.Decl{
		Kind:       ast.DeclFixity,
		Span:       open.Cover(st.LastTokenSpan()),
		Fixity:     fix,
		Precedence: int(prec),
		Operators:  ops,
	}, nil
})
