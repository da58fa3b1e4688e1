package ast

import "strings"

// Name is a possibly-qualified identifier. Space holds the namespace
// segments innermost first, so "Data.List.map" is stored as
// {Base: "map", Space: ["List", "Data"]}.
type Name struct {
	Base  string
	Space []string
}

// Unqualified builds a Name with an empty namespace.
func Unqualified(base string) Name {
	return Name{Base: base}
}

// IsZero reports whether n carries no name at all.
func (n Name) IsZero() bool {
	return n.Base == "" && len(n.Space) == 0
}

// Qualified reports whether n carries a namespace.
func (n Name) Qualified() bool {
	return len(n.Space) > 0
}

// SpacePath returns the namespace in source order, dot-joined.
func (n Name) SpacePath() string {
	if len(n.Space) == 0 {
		return ""
	}
	segs := make([]string, len(n.Space))
	for i, s := range n.Space {
		segs[len(n.Space)-1-i] = s
	}
	return strings.Join(segs, ".")
}

func (n Name) String() string {
	if len(n.Space) == 0 {
		return n.Base
	}
	return n.SpacePath() + "." + n.Base
}

// Eq reports whether two names are equal, namespace included.
func (n Name) Eq(other Name) bool {
	if n.Base != other.Base || len(n.Space) != len(other.Space) {
		return false
	}
	for i := range n.Space {
		if n.Space[i] != other.Space[i] {
			return false
		}
	}
	return true
}

// InSpace rewrites the namespace to the given source-order dotted path.
// An empty path clears the namespace.
func (n Name) InSpace(path string) Name {
	if path == "" {
		return Name{Base: n.Base}
	}
	segs := strings.Split(path, ".")
	space := make([]string, len(segs))
	for i, s := range segs {
		space[len(segs)-1-i] = s
	}
	return Name{Base: n.Base, Space: space}
}
