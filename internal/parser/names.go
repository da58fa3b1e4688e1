package parser

import (
	"slices"
	"strings"

	"ledge/internal/ast"
)

// Split is one candidate division of a dotted identifier into a
// namespace prefix and a base name, both in source spelling.
type Split struct {
	Space string // dotted namespace in source order, "" for none
	Base  string
}

// NamespaceSplits generates every valid split of a raw dotted
// identifier, in ascending namespace length. A split is valid when the
// base is nonempty and starts like an identifier and every namespace
// segment is a plain identifier. The no-split reading is not included;
// the resolver adds it when the raw text carries no dots.
func NamespaceSplits(raw string) []Split {
	var out []Split
	for i := 0; i < len(raw); i++ {
		if raw[i] != '.' {
			continue
		}
		space, base := raw[:i], raw[i+1:]
		if base == "" || !isIdentStart(base[0]) {
			continue
		}
		if !validSpacePath(space) {
			continue
		}
		out = append(out, Split{Space: space, Base: base})
	}
	return out
}

func validSpacePath(space string) bool {
	if space == "" {
		return false
	}
	for _, seg := range strings.Split(space, ".") {
		if seg == "" || !isIdentStart(seg[0]) {
			return false
		}
	}
	return true
}

// QualifiedName parses a possibly-namespaced identifier. The candidate
// readings are the namespace splits, shortest namespace first when
// ascend is set and longest first otherwise, then the whole raw text as
// a bare identifier as the final fallback. A candidate is rejected when
// its base name is reserved or appears in the caller's exclusion list;
// the first surviving candidate wins. The resolved name's namespace is
// then rewritten in full through the session's alias table.
func QualifiedName(ascend bool, bad []string) Parser[ast.Name] {
	return func(st *State) (ast.Name, error) {
		start := st.off
		raw, err := Ident(st)
		if err != nil {
			return ast.Name{}, err
		}

		splits := NamespaceSplits(raw)
		if !ascend {
			slices.Reverse(splits)
		}
		cands := append(splits, Split{Base: raw})

		for _, c := range cands {
			if st.sess.IsReserved(c.Base) || slices.Contains(bad, c.Base) {
				continue
			}
			n := ast.Unqualified(c.Base).InSpace(c.Space)
			if c.Space != "" {
				if to, ok := st.sess.Alias(c.Space); ok {
					n = n.InSpace(to)
				}
			}
			return n, nil
		}
		return ast.Name{}, st.failAt(start, "qualified name")
	}
}
