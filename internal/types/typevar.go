package types

import "github.com/zephyr-lang/zephyrc/internal/ast"

// TypeVar holds the source location that introduced it and a sorted
// candidate list of concrete types, per spec.md §3. A singleton candidate
// list denotes a resolved type; an empty one denotes an unsatisfiable
// constraint.
type TypeVar struct {
	Loc        ast.Pos
	Candidates []Type
}

// NewTypeVar creates a type variable with the given initial candidate set,
// copied and sorted into the total order.
func NewTypeVar(loc ast.Pos, candidates []Type) *TypeVar {
	cs := append([]Type(nil), candidates...)
	SortTypes(cs)
	return &TypeVar{Loc: loc, Candidates: cs}
}

// IsAnyPlaceholder reports whether tv is the polymorphic-literal
// placeholder `[Any]`, which the solver propagates rather than intersects
// (spec.md §4.2 Equality special case).
func (tv *TypeVar) IsAnyPlaceholder() bool {
	return len(tv.Candidates) == 1 && tv.Candidates[0].Kind == KAny
}

// IsSingleton reports whether tv has resolved to exactly one candidate.
func (tv *TypeVar) IsSingleton() bool {
	return len(tv.Candidates) == 1
}

// Concrete returns the resolved type if tv is a singleton.
func (tv *TypeVar) Concrete() (Type, bool) {
	if tv.IsSingleton() {
		return tv.Candidates[0], true
	}
	return Type{}, false
}

// intersect computes the sorted-list intersection of a and b, a linear
// merge since both are kept sorted (spec.md §9 "constraint solver data
// layout"). It does not mutate either input.
func intersect(a, b []Type) []Type {
	var out []Type
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case Less(a[i], b[j]):
			i++
		case Less(b[j], a[i]):
			j++
		default:
			if a[i].Equals(b[j]) {
				out = append(out, a[i])
			}
			i++
			j++
		}
	}
	return out
}

// Narrow replaces tv's candidates with their intersection against other,
// reporting whether the candidate set shrank (the solver's "progress"
// signal, spec.md §8).
func (tv *TypeVar) Narrow(other []Type) (progress bool) {
	before := len(tv.Candidates)
	tv.Candidates = intersect(tv.Candidates, other)
	return len(tv.Candidates) != before
}

func (tv *TypeVar) String() string {
	if tv.IsSingleton() {
		return tv.Candidates[0].String()
	}
	s := "{"
	for i, c := range tv.Candidates {
		if i > 0 {
			s += "|"
		}
		s += c.String()
	}
	return s + "}"
}
