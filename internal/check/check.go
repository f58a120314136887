// Package check implements spec.md §4.2's type checker driver: it runs the
// constraint solver to a fixed point over a resolve.ResolvedProgram, then
// the defaulting pass, and assembles a TypedProgram whose names and
// expressions carry concrete types instead of type variables.
//
// This package exists to avoid an import cycle: internal/types must not
// depend on internal/resolve (resolve depends on types for TypeVar,
// Constraint and TVarID), so the component that needs both — the checker
// "driver" spec.md §4.2 describes — lives here instead of in either.
// Grounded on the teacher's internal/eval_analysis package boundary, which
// plays the analogous role of sitting above two otherwise-cycle-prone
// packages.
package check

import (
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/resolve"
	"github.com/zephyr-lang/zephyrc/internal/store"
	"github.com/zephyr-lang/zephyrc/internal/types"
)

// TypedProgram is a ResolvedProgram whose type-variable store has been
// replaced by a concrete type store (spec.md §3 "Lifecycle and
// ownership": "the type checker consumes them, replaces the type-var store
// with a concrete type store").
type TypedProgram struct {
	Names *store.Store[*resolve.Name]
	Types *store.Store[types.Type]
	Funcs *store.Store[*resolve.ResolvedFunc]
	Order []resolve.FuncID
}

// Check runs the solver and the defaulting pass over prog, reporting
// TYP001 (unsatisfiable constraint, via the solver), TYP002 (ambiguous
// type, via defaulting), and TYP004 (non-function called) diagnostics to
// sink. It always returns a TypedProgram — even one built over partially
// unresolved types — so the caller can decide whether to proceed based on
// sink.FlushAndExitIfErr(), per spec.md §5's "error_handler may
// short-circuit the pipeline at every hand-off" model.
func Check(prog *resolve.ResolvedProgram, sink errors.Sink) *TypedProgram {
	solver := types.NewSolver(prog.TVars, prog.Constraints, sink)
	solver.Solve()

	checkCallTargetsAreFunctions(prog, sink)

	concrete := types.Default(prog.TVars, sink)

	return &TypedProgram{
		Names: prog.Names,
		Types: concrete,
		Funcs: prog.Funcs,
		Order: prog.Order,
	}
}

// checkCallTargetsAreFunctions reports TYP004 for any function whose own
// FuncTVar did not resolve to a KFun candidate set — this can only happen
// if a declared return/parameter annotation elsewhere conflicted with the
// function's own synthesized signature, since the resolver always seeds a
// function's FuncTVar as a singleton Fun(...) to begin with.
func checkCallTargetsAreFunctions(prog *resolve.ResolvedProgram, sink errors.Sink) {
	prog.Funcs.Each(func(_ resolve.FuncID, fn *resolve.ResolvedFunc) {
		tv, ok := prog.TVars.Get(fn.FuncTVar)
		if !ok {
			return
		}
		if t, ok := tv.Concrete(); ok && t.Kind != types.KFun {
			sink.Report(fn.Pos, errors.TYP004, "\""+fn.Ident+"\" is not callable as a function")
		}
	})
}
