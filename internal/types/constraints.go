package types

import (
	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

// TVarID addresses a TypeVar within a Store[TypeVar]. Declared as an alias
// (not a distinct defined type) so store.Store's generic methods apply
// directly; see DESIGN.md's internal/store entry.
type TVarID = store.ID

// Constraint is one of the three relations spec.md §3/§4.2 names. Each
// constraint kind implements Apply, which narrows candidate sets in the
// given store and reports whether it made progress, and Location, which the
// solver uses to attribute unsatisfiable/ambiguous diagnostics.
type Constraint interface {
	Apply(tvs *store.Store[*TypeVar]) (progress bool, err *UnsatisfiableError)
	Location() ast.Pos
	String() string
}

// Equality requires A and B to resolve to the same concrete type.
type Equality struct {
	A, B TVarID
	Loc  ast.Pos
}

func (c *Equality) Location() ast.Pos { return c.Loc }
func (c *Equality) String() string    { return "Equality" }

func (c *Equality) Apply(tvs *store.Store[*TypeVar]) (bool, *UnsatisfiableError) {
	a := tvs.MustGet(c.A)
	b := tvs.MustGet(c.B)

	// Polymorphic-literal placeholder propagation: `Any` on one side takes
	// on the other side's candidates wholesale, without an intersection
	// (spec.md §4.2).
	switch {
	case a.IsAnyPlaceholder() && !b.IsAnyPlaceholder():
		if sameCandidates(a.Candidates, b.Candidates) {
			return false, nil
		}
		a.Candidates = append([]Type(nil), b.Candidates...)
		return true, nil
	case b.IsAnyPlaceholder() && !a.IsAnyPlaceholder():
		if sameCandidates(b.Candidates, a.Candidates) {
			return false, nil
		}
		b.Candidates = append([]Type(nil), a.Candidates...)
		return true, nil
	}

	merged := intersect(a.Candidates, b.Candidates)
	progress := len(merged) != len(a.Candidates) || len(merged) != len(b.Candidates)
	a.Candidates = merged
	b.Candidates = append([]Type(nil), merged...)

	if len(merged) == 0 {
		return progress, &UnsatisfiableError{Loc: c.Loc}
	}
	return progress, nil
}

// Included requires a's candidate set to be a subset of b's, narrowing a
// only (used for literal-to-context narrowing, spec.md §4.2).
type Included struct {
	A, B TVarID
	Loc  ast.Pos
}

func (c *Included) Location() ast.Pos { return c.Loc }
func (c *Included) String() string    { return "Included" }

func (c *Included) Apply(tvs *store.Store[*TypeVar]) (bool, *UnsatisfiableError) {
	a := tvs.MustGet(c.A)
	b := tvs.MustGet(c.B)
	// Polymorphic-literal placeholder propagation, as in Equality: an `Any`
	// a takes on b's candidates instead of being intersected away.
	if a.IsAnyPlaceholder() && !b.IsAnyPlaceholder() {
		a.Candidates = append([]Type(nil), b.Candidates...)
		return true, nil
	}
	progress := a.Narrow(b.Candidates)
	if len(a.Candidates) == 0 {
		return progress, &UnsatisfiableError{Loc: c.Loc}
	}
	return progress, nil
}

// Return requires the unique return type of the function type at FunTV to
// equal the type at RetTV. Multi-return function types are a documented
// out-of-scope error (spec.md §4.2).
type Return struct {
	FunTV, RetTV TVarID
	Loc          ast.Pos
}

func (c *Return) Location() ast.Pos { return c.Loc }
func (c *Return) String() string    { return "Return" }

func (c *Return) Apply(tvs *store.Store[*TypeVar]) (bool, *UnsatisfiableError) {
	fn := tvs.MustGet(c.FunTV)
	ret := tvs.MustGet(c.RetTV)

	if !fn.IsSingleton() || fn.Candidates[0].Kind != KFun {
		// Function type not yet resolved; nothing to do this sweep.
		return false, nil
	}
	funTy := fn.Candidates[0]
	if len(funTy.Returns) != 1 {
		return false, &UnsatisfiableError{Loc: c.Loc, MultiReturn: true}
	}
	if ret.IsAnyPlaceholder() {
		ret.Candidates = []Type{funTy.Returns[0]}
		return true, nil
	}
	progress := ret.Narrow([]Type{funTy.Returns[0]})
	if len(ret.Candidates) == 0 {
		return progress, &UnsatisfiableError{Loc: c.Loc}
	}
	return progress, nil
}

// UnsatisfiableError is produced when a constraint's application empties a
// candidate set, or discovers a multi-return function type.
type UnsatisfiableError struct {
	Loc         ast.Pos
	MultiReturn bool
}

func (e *UnsatisfiableError) Error() string {
	if e.MultiReturn {
		return "multi-return function types are not supported"
	}
	return "unsatisfiable type constraint"
}

func sameCandidates(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
