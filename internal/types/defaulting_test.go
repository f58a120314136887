package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

func TestDefaultResolvesSingletonsUnchanged(t *testing.T) {
	s := store.New[*TypeVar](store.ModuleID(1))
	id := s.Add(NewTypeVar(ast.Pos{}, []Type{Bool()}))

	sink := errors.NewMemorySink(nil)
	out := Default(s, sink)

	require.False(t, sink.HasErrors())
	got, ok := out.Get(id)
	require.True(t, ok)
	assert.True(t, got.Equals(Bool()))
}

func TestDefaultAmbiguousIntegerBecomesI64(t *testing.T) {
	s := store.New[*TypeVar](store.ModuleID(1))
	id := s.Add(NewTypeVar(ast.Pos{}, IntegerCandidates()))

	sink := errors.NewMemorySink(nil)
	out := Default(s, sink)

	require.False(t, sink.HasErrors())
	got, ok := out.Get(id)
	require.True(t, ok)
	assert.True(t, got.Equals(I64()))
}

func TestDefaultAmbiguousFloatReportsTYP002(t *testing.T) {
	s := store.New[*TypeVar](store.ModuleID(1))
	id := s.Add(NewTypeVar(ast.Pos{}, FloatCandidates()))

	sink := errors.NewMemorySink(nil)
	out := Default(s, sink)

	require.True(t, sink.HasErrors())
	report := sink.Reports()[0]
	assert.Equal(t, errors.TYP002, report.Code)
	require.NotNil(t, report.Fix, "ambiguous defaulting should suggest declaring the lowest-sorted candidate")
	assert.Equal(t, "declare as f32", report.Fix.Suggestion)
	_, ok := out.Get(id)
	assert.False(t, ok)
}

func TestDefaultPreservesIDsAndCounterForFurtherFreshID(t *testing.T) {
	s := store.New[*TypeVar](store.ModuleID(1))
	id := s.Add(NewTypeVar(ast.Pos{}, []Type{I32()}))

	sink := errors.NewMemorySink(nil)
	out := Default(s, sink)

	next := out.FreshID()
	assert.NotEqual(t, id, next)
	assert.Equal(t, store.ModuleID(1), next.Module())
}
