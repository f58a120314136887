package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/zephyr-lang/zephyrc/internal/ast"
)

func TestNewTypeVarSortsCandidates(t *testing.T) {
	tv := NewTypeVar(ast.Pos{}, []Type{I64(), I32()})
	assert.Equal(t, []Type{I32(), I64()}, tv.Candidates)
}

func TestIsSingletonAndConcrete(t *testing.T) {
	tv := NewTypeVar(ast.Pos{}, []Type{I32()})
	assert.True(t, tv.IsSingleton())
	got, ok := tv.Concrete()
	assert.True(t, ok)
	assert.True(t, got.Equals(I32()))

	multi := NewTypeVar(ast.Pos{}, IntegerCandidates())
	assert.False(t, multi.IsSingleton())
	_, ok = multi.Concrete()
	assert.False(t, ok)
}

func TestIsAnyPlaceholder(t *testing.T) {
	tv := NewTypeVar(ast.Pos{}, []Type{Any()})
	assert.True(t, tv.IsAnyPlaceholder())

	tv2 := NewTypeVar(ast.Pos{}, []Type{I32()})
	assert.False(t, tv2.IsAnyPlaceholder())
}

func TestNarrowShrinksToIntersection(t *testing.T) {
	tv := NewTypeVar(ast.Pos{}, IntegerCandidates())
	progress := tv.Narrow([]Type{I64(), F64()})
	assert.True(t, progress)
	assert.Equal(t, []Type{I64()}, tv.Candidates)

	progress = tv.Narrow([]Type{I64()})
	assert.False(t, progress)
}

func TestTypeVarStringRendersSetOrSingleton(t *testing.T) {
	assert.Equal(t, "i32", NewTypeVar(ast.Pos{}, []Type{I32()}).String())
	assert.Equal(t, "{i32|i64}", NewTypeVar(ast.Pos{}, IntegerCandidates()).String())
}

// TestNarrowProducesExactCandidateSet uses cmp.Diff instead of assert.Equal
// so a regression in candidate ordering or a stray Fun param/return slice
// shows up as a structural diff rather than Go's default "not equal" dump,
// which is unreadable once Type grows nested Params/Returns slices.
func TestNarrowProducesExactCandidateSet(t *testing.T) {
	tv := NewTypeVar(ast.Pos{}, IntegerCandidates())
	tv.Narrow([]Type{I32(), I64(), F32()})

	want := []Type{I32(), I64()}
	if diff := cmp.Diff(want, tv.Candidates); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	fn := Fun([]Type{I32(), I64()}, []Type{Bool()})
	other := Fun([]Type{I32(), I64()}, []Type{Bool()})
	if diff := cmp.Diff(fn, other); diff != "" {
		t.Errorf("Fun types with identical params/returns should compare equal (-a +b):\n%s", diff)
	}
}
