package ast

// Collect regroups a flat declaration list: consecutive DeclClause
// declarations sharing one function name are merged into a single
// DeclDef carrying the clauses in source order. Collection recurses
// into every container declaration and into each clause's local
// where-block, each inner list collected independently.
//
// A run of clauses that starts with an unnamed clause is dropped
// entirely, matching the original front end; see the collector tests,
// which pin this behavior.
//
// Collect is idempotent: DeclDef groups pass through unchanged.
func Collect(decls []Decl) []Decl {
	out := make([]Decl, 0, len(decls))
	i := 0
	for i < len(decls) {
		d := decls[i]
		if d.Kind != DeclClause {
			out = append(out, collectInner(d))
			i++
			continue
		}

		// Start of a clause run. The run's name is the first clause's
		// name; unnamed runs are dropped without emitting.
		head := d.Clause
		name := head.Name
		span := d.Span
		var acc []Clause
		for i < len(decls) && decls[i].Kind == DeclClause {
			cl := decls[i].Clause
			if !cl.Name.Eq(name) {
				break
			}
			grouped := *cl
			grouped.Wheres = Collect(grouped.Wheres)
			acc = append(acc, grouped)
			span = span.Cover(decls[i].Span)
			i++
		}
		if name.IsZero() {
			continue
		}
		out = append(out, Decl{
			Kind:    DeclDef,
			Span:    span,
			Doc:     d.Doc,
			Acc:     d.Acc,
			Name:    name,
			Clauses: acc,
		})
	}
	return out
}

// collectInner recurses into the nested declaration list of container
// declarations; every other declaration passes through unchanged.
func collectInner(d Decl) Decl {
	if !d.Kind.Container() {
		return d
	}
	d.Decls = Collect(d.Decls)
	return d
}
