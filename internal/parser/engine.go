package parser

import (
	"ledge/internal/source"
)

// Parser is a backtracking recognizer producing a T. A failing parser
// returns a *failure and may leave the state moved; combinators that
// need the pre-attempt state (Or, Many, Optional) snapshot and restore
// it themselves.
type Parser[T any] func(st *State) (T, error)

// Unit is the result of parsers run only for their effect.
type Unit = struct{}

// Or tries each alternative in order, restoring the state before every
// attempt. The error of the last alternative is returned when all fail;
// the session keeps the deepest failure for diagnostics regardless.
func Or[T any](alts ...Parser[T]) Parser[T] {
	return func(st *State) (T, error) {
		m := st.save()
		var zero T
		var err error
		for _, p := range alts {
			var v T
			if v, err = p(st); err == nil {
				return v, nil
			}
			st.restore(m)
		}
		return zero, err
	}
}

// Many applies p zero or more times, stopping at the first failure.
// Never fails.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(st *State) ([]T, error) {
		var out []T
		for {
			m := st.save()
			v, err := p(st)
			if err != nil {
				st.restore(m)
				return out, nil
			}
			out = append(out, v)
		}
	}
}

// Many1 applies p one or more times.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(st *State) ([]T, error) {
		first, err := p(st)
		if err != nil {
			return nil, err
		}
		rest, _ := Many(p)(st)
		return append([]T{first}, rest...), nil
	}
}

// Maybe is an optional parse result.
type Maybe[T any] struct {
	Value T
	Ok    bool
}

// Optional applies p, restoring the state when it fails. Never fails.
func Optional[T any](p Parser[T]) Parser[Maybe[T]] {
	return func(st *State) (Maybe[T], error) {
		m := st.save()
		v, err := p(st)
		if err != nil {
			st.restore(m)
			return Maybe[T]{}, nil
		}
		return Maybe[T]{Value: v, Ok: true}, nil
	}
}

// Label replaces the failure label of p with a higher-level one,
// anchored at the position where p started.
func Label[T any](p Parser[T], label string) Parser[T] {
	return func(st *State) (T, error) {
		start := st.off
		v, err := p(st)
		if err != nil {
			return v, st.failAt(start, label)
		}
		return v, nil
	}
}

// SepBy1 parses one or more p separated by sep.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(st *State) ([]T, error) {
		first, err := p(st)
		if err != nil {
			return nil, err
		}
		out := []T{first}
		for {
			m := st.save()
			if _, err := sep(st); err != nil {
				st.restore(m)
				return out, nil
			}
			v, err := p(st)
			if err != nil {
				st.restore(m)
				return out, nil
			}
			out = append(out, v)
		}
	}
}

// EndOfInput succeeds only at end of input.
func EndOfInput(st *State) (Unit, error) {
	if !st.atEOF() {
		return Unit{}, st.fail("end of input")
	}
	return Unit{}, nil
}

// Run parses a standalone source text under a fresh virtual file.
func Run[T any](p Parser[T], sess *Session, sourceName, sourceText string) (T, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(sourceName, []byte(sourceText))
	return RunFile(p, sess, fs.Get(id))
}

// RunFile parses the content of f with the given session. Leading
// inter-token space is consumed before the entry parser runs. On
// failure the result is a *ParseError describing the deepest failure
// position reached.
func RunFile[T any](p Parser[T], sess *Session, f *source.File) (T, error) {
	st := &State{file: f, sess: sess, lastSpan: source.NoSpan}
	skipSpace(st)
	v, err := p(st)
	if err != nil {
		var zero T
		return zero, newParseError(st)
	}
	return v, nil
}
