package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

func newTVStore(t *testing.T, vars ...*TypeVar) (*store.Store[*TypeVar], []store.ID) {
	t.Helper()
	s := store.New[*TypeVar](store.ModuleID(1))
	ids := make([]store.ID, len(vars))
	for i, v := range vars {
		ids[i] = s.Add(v)
	}
	return s, ids
}

func TestEqualityIntersectsCandidates(t *testing.T) {
	s, ids := newTVStore(t,
		NewTypeVar(ast.Pos{}, IntegerCandidates()),
		NewTypeVar(ast.Pos{}, []Type{I64(), F64()}),
	)
	c := &Equality{A: ids[0], B: ids[1]}
	progress, err := c.Apply(s)
	require.NoError(t, errOrNil(err))
	assert.True(t, progress)
	assert.Equal(t, []Type{I64()}, s.MustGet(ids[0]).Candidates)
	assert.Equal(t, []Type{I64()}, s.MustGet(ids[1]).Candidates)
}

func TestEqualityPropagatesAnyPlaceholder(t *testing.T) {
	s, ids := newTVStore(t,
		NewTypeVar(ast.Pos{}, []Type{Any()}),
		NewTypeVar(ast.Pos{}, []Type{Bool()}),
	)
	c := &Equality{A: ids[0], B: ids[1]}
	progress, err := c.Apply(s)
	require.NoError(t, errOrNil(err))
	assert.True(t, progress)
	assert.Equal(t, []Type{Bool()}, s.MustGet(ids[0]).Candidates)
}

func TestEqualityReportsUnsatisfiable(t *testing.T) {
	s, ids := newTVStore(t,
		NewTypeVar(ast.Pos{}, []Type{Bool()}),
		NewTypeVar(ast.Pos{}, []Type{I32()}),
	)
	c := &Equality{A: ids[0], B: ids[1]}
	_, err := c.Apply(s)
	require.Error(t, errOrNil(err))
}

func TestIncludedNarrowsOnlyA(t *testing.T) {
	s, ids := newTVStore(t,
		NewTypeVar(ast.Pos{}, IntegerCandidates()),
		NewTypeVar(ast.Pos{}, []Type{I32()}),
	)
	c := &Included{A: ids[0], B: ids[1]}
	progress, err := c.Apply(s)
	require.NoError(t, errOrNil(err))
	assert.True(t, progress)
	assert.Equal(t, []Type{I32()}, s.MustGet(ids[0]).Candidates)
	assert.Equal(t, []Type{I32()}, s.MustGet(ids[1]).Candidates)
}

func TestReturnRequiresSingletonFunType(t *testing.T) {
	s, ids := newTVStore(t,
		NewTypeVar(ast.Pos{}, IntegerCandidates()), // not yet a function type
		NewTypeVar(ast.Pos{}, []Type{Any()}),
	)
	c := &Return{FunTV: ids[0], RetTV: ids[1]}
	progress, err := c.Apply(s)
	require.NoError(t, errOrNil(err))
	assert.False(t, progress)
}

func TestReturnNarrowsRetFromFunReturns(t *testing.T) {
	fn := Fun([]Type{I32()}, []Type{I64()})
	s, ids := newTVStore(t,
		NewTypeVar(ast.Pos{}, []Type{fn}),
		NewTypeVar(ast.Pos{}, []Type{Any()}),
	)
	c := &Return{FunTV: ids[0], RetTV: ids[1]}
	progress, err := c.Apply(s)
	require.NoError(t, errOrNil(err))
	assert.True(t, progress)
	assert.Equal(t, []Type{I64()}, s.MustGet(ids[1]).Candidates)
}

func TestReturnRejectsMultiReturn(t *testing.T) {
	fn := Fun([]Type{I32()}, []Type{I64(), F64()})
	s, ids := newTVStore(t,
		NewTypeVar(ast.Pos{}, []Type{fn}),
		NewTypeVar(ast.Pos{}, []Type{Any()}),
	)
	c := &Return{FunTV: ids[0], RetTV: ids[1]}
	_, err := c.Apply(s)
	require.Error(t, errOrNil(err))
	assert.True(t, err.MultiReturn)
}

func errOrNil(err *UnsatisfiableError) error {
	if err == nil {
		return nil
	}
	return err
}
