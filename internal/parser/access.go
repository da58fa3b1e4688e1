package parser

import (
	"ledge/internal/ast"
	"ledge/internal/diag"
)

// Accessibility parses a visibility modifier. "public export" is the
// modern spelling of Public; a bare "public" still parses as Public but
// records a deprecation warning, as does "abstract" for Frozen.
func Accessibility(st *State) (ast.Accessibility, error) {
	return Or(
		func(st *State) (ast.Accessibility, error) {
			if _, err := Reserved("public")(st); err != nil {
				return 0, err
			}
			kwSpan := st.LastTokenSpan()
			exp, _ := Optional(Reserved("export"))(st)
			if !exp.Ok {
				st.sess.RecordWarning(kwSpan, st.sess.SuppressDeprecations,
					diag.AccDeprecatedPublic,
					"'public' is deprecated, use 'public export' instead")
			}
			return ast.AccPublic, nil
		},
		func(st *State) (ast.Accessibility, error) {
			if _, err := Reserved("export")(st); err != nil {
				return 0, err
			}
			return ast.AccFrozen, nil
		},
		func(st *State) (ast.Accessibility, error) {
			if _, err := Reserved("abstract")(st); err != nil {
				return 0, err
			}
			st.sess.RecordWarning(st.LastTokenSpan(), st.sess.SuppressDeprecations,
				diag.AccDeprecatedAbstract,
				"'abstract' is deprecated, use 'export' instead")
			return ast.AccFrozen, nil
		},
		func(st *State) (ast.Accessibility, error) {
			if _, err := Reserved("private")(st); err != nil {
				return 0, err
			}
			return ast.AccPrivate, nil
		},
	)(st)
}

// AccessibilityOrDefault parses an optional visibility modifier,
// falling back to the session default.
func AccessibilityOrDefault(st *State) (ast.Accessibility, error) {
	acc, _ := Optional(Accessibility)(st)
	if acc.Ok {
		return acc.Value, nil
	}
	return st.sess.DefaultAcc, nil
}

// AccData records the visibility of a data or interface declaration
// and its constituents (constructors or methods). Frozen freezes the
// structure: the type name itself stays Public, usable at its boundary,
// while every constituent becomes Private. Any other level applies
// uniformly.
func (s *Session) AccData(acc ast.Accessibility, typeName string, constituents []string) {
	if acc == ast.AccFrozen {
		s.access[typeName] = ast.AccPublic
		for _, c := range constituents {
			s.access[c] = ast.AccPrivate
		}
		return
	}
	s.access[typeName] = acc
	for _, c := range constituents {
		s.access[c] = acc
	}
}
