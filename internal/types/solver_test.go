package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

func TestSolveConvergesOnChainOfEqualities(t *testing.T) {
	s := store.New[*TypeVar](store.ModuleID(1))
	a := s.Add(NewTypeVar(ast.Pos{}, IntegerCandidates()))
	b := s.Add(NewTypeVar(ast.Pos{}, []Type{I64(), F64()}))
	c := s.Add(NewTypeVar(ast.Pos{}, []Type{I64()}))

	sink := errors.NewMemorySink(nil)
	solver := NewSolver(s, []Constraint{
		&Equality{A: a, B: b},
		&Equality{A: b, B: c},
	}, sink)
	solver.Solve()

	require.False(t, sink.HasErrors())
	assert.Equal(t, []Type{I64()}, s.MustGet(a).Candidates)
	assert.Equal(t, []Type{I64()}, s.MustGet(b).Candidates)
}

func TestSolveReportsUnsatisfiableAndKeepsGoing(t *testing.T) {
	s := store.New[*TypeVar](store.ModuleID(1))
	a := s.Add(NewTypeVar(ast.Pos{}, []Type{Bool()}))
	b := s.Add(NewTypeVar(ast.Pos{}, []Type{I32()}))
	c := s.Add(NewTypeVar(ast.Pos{}, IntegerCandidates()))
	d := s.Add(NewTypeVar(ast.Pos{}, []Type{I64()}))

	sink := errors.NewMemorySink(nil)
	solver := NewSolver(s, []Constraint{
		&Equality{A: a, B: b},
		&Equality{A: c, B: d},
	}, sink)
	solver.Solve()

	require.True(t, sink.HasErrors())
	assert.Equal(t, errors.TYP001, sink.Reports()[0].Code)
	// The second, satisfiable constraint still ran despite the first's failure.
	assert.Equal(t, []Type{I64()}, s.MustGet(c).Candidates)
}
