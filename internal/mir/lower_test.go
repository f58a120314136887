package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/check"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/resolve"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

func lowerFile(t *testing.T, file *ast.File) (*Program, errors.Sink) {
	t.Helper()
	sink := errors.NewMemorySink(nil)
	prog := resolve.NewResolver(store.ModuleID(1), nil, sink).Resolve(file)
	require.False(t, sink.HasErrors())
	typed := check.Check(prog, sink)
	require.False(t, sink.HasErrors())
	return Lower(typed, sink), sink
}

func i32() *ast.DeclaredType { return &ast.DeclaredType{Name: "i32"} }

func TestLowerArithmeticExpression(t *testing.T) {
	file := &ast.File{Funcs: []*ast.FuncDecl{{
		Ident:      "add",
		Params:     []*ast.Param{{Name: "x", Type: i32()}, {Name: "y", Type: i32()}},
		ReturnType: []*ast.DeclaredType{i32()},
		Body: &ast.ZephyrBody{Block: &ast.Block{Stmts: []ast.Stmt{
			&ast.Return{Value: &ast.Binary{Left: &ast.Identifier{Name: "x"}, Op: ast.OpAdd, Right: &ast.Identifier{Name: "y"}}},
		}}},
		Visibility: ast.Public,
	}}}

	prog, sink := lowerFile(t, file)
	require.False(t, sink.HasErrors())
	require.Equal(t, 1, prog.Funcs.Len())

	fn := prog.Funcs.MustGet(prog.Order[0])
	require.Len(t, fn.Body.Stmts, 4) // Get x, Get y, Binop add, Control return

	_, ok := fn.Body.Stmts[0].(*Get)
	assert.True(t, ok)
	binop, ok := fn.Body.Stmts[2].(*Binop)
	require.True(t, ok)
	assert.Equal(t, Add, binop.Op)
	assert.Equal(t, I32, binop.Type)

	ctrl, ok := fn.Body.Stmts[3].(*Control)
	require.True(t, ok)
	assert.Equal(t, Return, ctrl.Op)
}

func TestLowerShortCircuitAnd(t *testing.T) {
	boolT := &ast.DeclaredType{Name: "bool"}
	file := &ast.File{Funcs: []*ast.FuncDecl{{
		Ident:      "f",
		Params:     []*ast.Param{{Name: "a", Type: boolT}, {Name: "b", Type: boolT}},
		ReturnType: []*ast.DeclaredType{boolT},
		Body: &ast.ZephyrBody{Block: &ast.Block{Stmts: []ast.Stmt{
			&ast.Return{Value: &ast.Binary{Left: &ast.Identifier{Name: "a"}, Op: ast.OpAnd, Right: &ast.Identifier{Name: "b"}}},
		}}},
		Visibility: ast.Public,
	}}}

	prog, sink := lowerFile(t, file)
	require.False(t, sink.HasErrors())
	fn := prog.Funcs.MustGet(prog.Order[0])

	// Get a, If{then: Get b, else: Const 0}, Control return
	require.Len(t, fn.Body.Stmts, 3)
	ifStmt, ok := fn.Body.Stmts[1].(*If)
	require.True(t, ok)
	require.Len(t, ifStmt.Then, 1)
	require.Len(t, ifStmt.Else, 1)
	c, ok := ifStmt.Else[0].(*Const)
	require.True(t, ok)
	assert.Equal(t, int32(0), c.Value)
}

func TestLowerUnaryMinusInteger(t *testing.T) {
	file := &ast.File{Funcs: []*ast.FuncDecl{{
		Ident:      "f",
		ReturnType: []*ast.DeclaredType{i32()},
		Body: &ast.ZephyrBody{Block: &ast.Block{Stmts: []ast.Stmt{
			&ast.Return{Value: &ast.Unary{Op: ast.OpNeg, Expr: &ast.Literal{Kind: ast.IntLit, Value: int64(5)}}},
		}}},
		Visibility: ast.Public,
	}}}

	prog, sink := lowerFile(t, file)
	require.False(t, sink.HasErrors())
	fn := prog.Funcs.MustGet(prog.Order[0])

	// Const 0, Const 5, Binop sub, Control return
	require.Len(t, fn.Body.Stmts, 4)
	c0, ok := fn.Body.Stmts[0].(*Const)
	require.True(t, ok)
	assert.Equal(t, int32(0), c0.Value)
	sub, ok := fn.Body.Stmts[2].(*Binop)
	require.True(t, ok)
	assert.Equal(t, Sub, sub.Op)
}

func TestLowerWhileLoopStructure(t *testing.T) {
	file := &ast.File{Funcs: []*ast.FuncDecl{{
		Ident: "f",
		Body: &ast.ZephyrBody{Block: &ast.Block{Stmts: []ast.Stmt{
			&ast.While{
				Cond: &ast.Literal{Kind: ast.BoolLit, Value: true},
				Body: &ast.Block{Stmts: []ast.Stmt{}},
			},
		}}},
		Visibility: ast.Public,
	}}}

	prog, sink := lowerFile(t, file)
	require.False(t, sink.HasErrors())
	fn := prog.Funcs.MustGet(prog.Order[0])

	require.Len(t, fn.Body.Stmts, 1)
	outer, ok := fn.Body.Stmts[0].(*Block)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 1)
	loop, ok := outer.Stmts[0].(*Loop)
	require.True(t, ok)

	last := loop.Stmts[len(loop.Stmts)-1]
	ctrl, ok := last.(*Control)
	require.True(t, ok)
	assert.Equal(t, Br, ctrl.Op)
	assert.Equal(t, loop.ID, ctrl.Target)
}

func TestLowerCallDirect(t *testing.T) {
	file := &ast.File{Funcs: []*ast.FuncDecl{
		{
			Ident:      "callee",
			Params:     []*ast.Param{{Name: "x", Type: i32()}},
			ReturnType: []*ast.DeclaredType{i32()},
			Body: &ast.ZephyrBody{Block: &ast.Block{Stmts: []ast.Stmt{
				&ast.Return{Value: &ast.Identifier{Name: "x"}},
			}}},
			Visibility: ast.Public,
		},
		{
			Ident:      "caller",
			ReturnType: []*ast.DeclaredType{i32()},
			Body: &ast.ZephyrBody{Block: &ast.Block{Stmts: []ast.Stmt{
				&ast.Return{Value: &ast.CallDirect{Callee: "callee", Args: []ast.Expr{&ast.Literal{Kind: ast.IntLit, Value: int64(3)}}}},
			}}},
			Visibility: ast.Public,
		},
	}}

	prog, sink := lowerFile(t, file)
	require.False(t, sink.HasErrors())
	require.Equal(t, 2, prog.Funcs.Len())

	caller := prog.Funcs.MustGet(prog.Order[1])
	require.Len(t, caller.Body.Stmts, 3) // Const 3, Call, Control return
	call, ok := caller.Body.Stmts[1].(*Call)
	require.True(t, ok)
	assert.Equal(t, prog.Order[0], call.Func)
}
