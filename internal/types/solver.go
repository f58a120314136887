package types

import (
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

// Solver runs the fixed-point iteration described in spec.md §4.2: each
// sweep visits every constraint in emission order; the solver repeats
// sweeps until one makes no progress at all, then hands off to Default.
//
// Grounded on the teacher's internal/types/unification.go Unify loop (apply
// substitution, compare, recurse) for the "keep applying until stable"
// shape, adapted from unification to lattice-narrowing since Zephyr has no
// type variables that unify with each other directly — only with concrete
// candidate sets.
type Solver struct {
	TVars       *store.Store[*TypeVar]
	Constraints []Constraint
	Sink        errors.Sink
}

// NewSolver creates a solver over an existing type-variable store and the
// constraint list the resolver emitted.
func NewSolver(tvs *store.Store[*TypeVar], constraints []Constraint, sink errors.Sink) *Solver {
	return &Solver{TVars: tvs, Constraints: constraints, Sink: sink}
}

// Solve runs sweeps to fixed point, reporting each unsatisfiable constraint
// to the sink as it is discovered. It always completes every constraint in
// a sweep even after an unsatisfiable one is found (spec.md §7: "an error on
// one declaration does not stop others").
func (s *Solver) Solve() {
	for {
		progressThisSweep := false
		for _, c := range s.Constraints {
			progress, err := c.Apply(s.TVars)
			if progress {
				progressThisSweep = true
			}
			if err != nil {
				code := errors.TYP001
				if err.MultiReturn {
					code = errors.TYP005
				}
				s.Sink.Report(c.Location(), code, err.Error())
			}
		}
		if !progressThisSweep {
			return
		}
	}
}
