package parser

import (
	"ledge/internal/ast"
)

// The reference expression grammar. It exists to exercise the layout
// and lexical primitives end to end: application bounded by NotEndApp,
// do blocks as layout blocks, let/in interacting with the block
// closers. Precedence is not resolved here; operator chains stay flat.

// Term parses one expression.
func Term(st *State) (ast.Term, error) {
	return Or(lambdaTerm, letTerm, doTerm, opTerm)(st)
}

// infixOp is a user operator, the function arrow, or the pair former.
// The arrows are reserved spellings but still occur infix in types.
func infixOp(st *State) (string, error) {
	return Or(Operator, Symbol("->"), Symbol("**"))(st)
}

// opTerm parses a flat chain of operator applications.
func opTerm(st *State) (ast.Term, error) {
	first, err := appTerm(st)
	if err != nil {
		return ast.Term{}, err
	}
	operands := []ast.Term{first}
	var ops []string
	for {
		m := st.save()
		if err := NotEndApp(st); err != nil {
			st.restore(m)
			break
		}
		op, err := infixOp(st)
		if err != nil {
			st.restore(m)
			break
		}
		rhs, err := appTerm(st)
		if err != nil {
			st.restore(m)
			break
		}
		ops = append(ops, op)
		operands = append(operands, rhs)
	}
	if len(ops) == 0 {
		return first, nil
	}
	span := first.Span
	for _, o := range operands[1:] {
		span = span.Cover(o.Span)
	}
	return ast.Term{Kind: ast.TermOp, Span: span, Args: operands, Ops: ops}, nil
}

// appTerm parses left-nested application. Each further argument must
// sit past the enclosing indent, so an unindented next line ends the
// argument list instead of being swallowed.
func appTerm(st *State) (ast.Term, error) {
	head, err := atomTerm(st)
	if err != nil {
		return ast.Term{}, err
	}
	args, _ := Many(func(st *State) (ast.Term, error) {
		if err := NotEndApp(st); err != nil {
			return ast.Term{}, err
		}
		return atomTerm(st)
	})(st)
	if len(args) == 0 {
		return head, nil
	}
	span := head.Span
	for _, a := range args {
		span = span.Cover(a.Span)
	}
	h := head
	return ast.Term{Kind: ast.TermApp, Span: span, Head: &h, Args: args}, nil
}

func atomTerm(st *State) (ast.Term, error) {
	return Or(holeTerm, litTerm, refTerm, parenTerm)(st)
}

func holeTerm(st *State) (ast.Term, error) {
	if _, err := Wildcard(st); err != nil {
		return ast.Term{}, err
	}
	return ast.Term{Kind: ast.TermHole, Span: st.LastTokenSpan()}, nil
}

func refTerm(st *State) (ast.Term, error) {
	n, err := QualifiedName(false, nil)(st)
	if err != nil {
		return ast.Term{}, err
	}
	return ast.Term{Kind: ast.TermRef, Span: st.LastTokenSpan(), Name: n}, nil
}

func litTerm(st *State) (ast.Term, error) {
	return Or(
		func(st *State) (ast.Term, error) {
			v, err := Float(st)
			if err != nil {
				return ast.Term{}, err
			}
			return litAt(st, ast.Literal{Kind: ast.LitFloat, Float: v}), nil
		},
		func(st *State) (ast.Term, error) {
			v, err := Natural(st)
			if err != nil {
				return ast.Term{}, err
			}
			return litAt(st, ast.Literal{Kind: ast.LitNat, Nat: v}), nil
		},
		func(st *State) (ast.Term, error) {
			v, err := StringLit(st)
			if err != nil {
				return ast.Term{}, err
			}
			return litAt(st, ast.Literal{Kind: ast.LitString, Str: v}), nil
		},
		func(st *State) (ast.Term, error) {
			v, err := CharLit(st)
			if err != nil {
				return ast.Term{}, err
			}
			return litAt(st, ast.Literal{Kind: ast.LitChar, Char: v}), nil
		},
	)(st)
}

func litAt(st *State, lit ast.Literal) ast.Term {
	return ast.Term{Kind: ast.TermLit, Span: st.LastTokenSpan(), Lit: lit}
}

func parenTerm(st *State) (ast.Term, error) {
	if _, err := Symbol("(")(st); err != nil {
		return ast.Term{}, err
	}
	open := st.LastTokenSpan()
	t, err := Term(st)
	if err != nil {
		return ast.Term{}, err
	}
	if _, err := Symbol(")")(st); err != nil {
		return ast.Term{}, err
	}
	t.Span = open.Cover(st.LastTokenSpan())
	return t, nil
}

func lambdaTerm(st *State) (ast.Term, error) {
	if _, err := Symbol("\\")(st); err != nil {
		return ast.Term{}, err
	}
	open := st.LastTokenSpan()
	binders, err := Many1(Ident)(st)
	if err != nil {
		return ast.Term{}, err
	}
	if _, err := Symbol("=>")(st); err != nil {
		return ast.Term{}, err
	}
	body, err := Term(st)
	if err != nil {
		return ast.Term{}, err
	}
	return ast.Term{
		Kind: ast.TermLam, Span: open.Cover(body.Span),
		Binders: binders, Body: &body,
	}, nil
}

func letTerm(st *State) (ast.Term, error) {
	if _, err := Reserved("let")(st); err != nil {
		return ast.Term{}, err
	}
	open := st.LastTokenSpan()
	name, err := Ident(st)
	if err != nil {
		return ast.Term{}, err
	}
	if _, err := Symbol("=")(st); err != nil {
		return ast.Term{}, err
	}
	val, err := Term(st)
	if err != nil {
		return ast.Term{}, err
	}
	if _, err := Reserved("in")(st); err != nil {
		return ast.Term{}, err
	}
	body, err := Term(st)
	if err != nil {
		return ast.Term{}, err
	}
	return ast.Term{
		Kind: ast.TermLet, Span: open.Cover(body.Span),
		Name: ast.Unqualified(name), Value: &val, Body: &body,
	}, nil
}

// doTerm parses a do block as a layout block, so statements align by
// indentation and an unindented line ends the block.
func doTerm(st *State) (ast.Term, error) {
	if _, err := Reserved("do")(st); err != nil {
		return ast.Term{}, err
	}
	open := st.LastTokenSpan()
	stmts, err := IndentedBlock1(doStmt)(st)
	if err != nil {
		return ast.Term{}, err
	}
	span := open
	for _, s := range stmts {
		span = span.Cover(s.Span)
	}
	return ast.Term{Kind: ast.TermDo, Span: span, Args: stmts}, nil
}

func doStmt(st *State) (ast.Term, error) {
	return Or(bindStmt, Term)(st)
}

func bindStmt(st *State) (ast.Term, error) {
	name, err := Ident(st)
	if err != nil {
		return ast.Term{}, err
	}
	nameSpan := st.LastTokenSpan()
	if _, err := Symbol("<-")(st); err != nil {
		return ast.Term{}, err
	}
	val, err := Term(st)
	if err != nil {
		return ast.Term{}, err
	}
	return ast.Term{
		Kind: ast.TermBind, Span: nameSpan.Cover(val.Span),
		Name: ast.Unqualified(name), Value: &val,
	}, nil
}
