// Package resolve implements spec.md §4.1: the name resolver. It walks a
// parsed ast.File, binds every identifier occurrence to the name id of its
// declaration, and introduces a fresh type variable (plus the constraints
// that relate it to others) for every expression position, local,
// parameter and function signature.
//
// Grounded on the teacher's internal/elaborate/elaborate.go (lexical scope
// stack walked alongside the surface tree, fresh binder ids minted as
// declarations are visited) and internal/module/resolver.go's
// module-name→symbol namespace map idea, generalized to spec.md's simpler
// (no typeclasses, no ADTs) binding model.
package resolve

import (
	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/store"
	"github.com/zephyr-lang/zephyrc/internal/types"
)

// FuncID addresses a function declaration.
type FuncID = store.ID

// NameID addresses a bound occurrence: a parameter or a local. A function
// referenced as a value is a FunctionRef carrying its FuncID instead.
type NameID = store.ID

// Name is a bound occurrence: its source location and the type variable
// that stands for its type during inference (spec.md §3 "Names").
type Name struct {
	Source string
	Loc    ast.Pos
	TVar   store.ID // types.TVarID
}

// ResolvedFunc is one function after resolution: every reference rewritten
// to a NameID/FuncID, every expression position carrying a type variable.
type ResolvedFunc struct {
	ID         FuncID
	Ident      string
	Params     []NameID
	Locals     []NameID // let-bound names, in declaration order (params excluded)
	Body       Body
	Visibility ast.Visibility
	Exposed    bool
	FuncTVar   store.ID // the function's own Fun(params, [ret]) type variable
	ReturnTVar store.ID // the tv unified with the function's single return type
	Pos        ast.Pos
}

// Body is the resolved Zephyr(block) | Asm(stmts) variant, carried forward
// unchanged in the Asm case — the asm validator works over the surface asm
// AST directly (spec.md §4.3).
type Body interface{ bodyNode() }

type ZephyrBody struct{ Block *Block }

func (*ZephyrBody) bodyNode() {}

type AsmBody struct{ Stmts []ast.AsmStmt }

func (*AsmBody) bodyNode() {}

// Expr is a resolved expression: every node carries the type variable
// introduced for its position (spec.md §4.1, second bullet).
type Expr interface {
	Position() ast.Pos
	TVar() store.ID
	exprNode()
}

type base struct {
	Pos ast.Pos
	Tv  store.ID
}

func (b base) Position() ast.Pos { return b.Pos }
func (b base) TVar() store.ID    { return b.Tv }

type Literal struct {
	base
	Kind  ast.LiteralKind
	Value interface{}
}

func (*Literal) exprNode() {}

// Var references a previously bound name (parameter or local).
type Var struct {
	base
	Name NameID
}

func (*Var) exprNode() {}

type Binary struct {
	base
	Left, Right Expr
	Op          ast.BinOp
}

func (*Binary) exprNode() {}

type Unary struct {
	base
	Operand Expr
	Op      ast.UnOp
}

func (*Unary) exprNode() {}

// CallDirect calls a resolved function by id.
type CallDirect struct {
	base
	Callee FuncID
	Args   []Expr
}

func (*CallDirect) exprNode() {}

// CallIndirect is kept through resolution (spec.md §1: only its interface
// matters to core); the resolver reports UNS001 for it rather than
// silently dropping a grammatically valid program.
type CallIndirect struct {
	base
	Callee Expr
	Args   []Expr
}

func (*CallIndirect) exprNode() {}

// FunctionRef is a first-class reference to a function identifier,
// rejected by the resolver with UNS002 wherever it appears.
type FunctionRef struct {
	base
	Target FuncID
}

func (*FunctionRef) exprNode() {}

// Stmt is a resolved statement.
type Stmt interface {
	Position() ast.Pos
	stmtNode()
}

type Block struct {
	Stmts []Stmt
	Pos   ast.Pos
}

func (b *Block) Position() ast.Pos { return b.Pos }

type Let struct {
	Name  NameID
	Value Expr
	Pos   ast.Pos
}

func (l *Let) Position() ast.Pos { return l.Pos }
func (*Let) stmtNode()           {}

type Assign struct {
	Name  NameID
	Value Expr
	Pos   ast.Pos
}

func (a *Assign) Position() ast.Pos { return a.Pos }
func (*Assign) stmtNode()           {}

type ExprStmt struct {
	Value Expr
	Pos   ast.Pos
}

func (e *ExprStmt) Position() ast.Pos { return e.Pos }
func (*ExprStmt) stmtNode()           {}

type Return struct {
	Value Expr // nil for a bare return
	Pos   ast.Pos
}

func (r *Return) Position() ast.Pos { return r.Pos }
func (*Return) stmtNode()           {}

type If struct {
	Cond       Expr
	Then, Else *Block // Else nil if absent
	Pos        ast.Pos
}

func (i *If) Position() ast.Pos { return i.Pos }
func (*If) stmtNode()           {}

type While struct {
	Cond Expr
	Body *Block
	Pos  ast.Pos
}

func (w *While) Position() ast.Pos { return w.Pos }
func (*While) stmtNode()           {}

// ResolvedProgram is the resolver's full output: every declaration given a
// fresh id, every reference bound, every position carrying a type
// variable, and the accumulated constraint list the checker will solve
// (spec.md §3 "Lifecycle and ownership").
type ResolvedProgram struct {
	Names *store.Store[*Name]
	TVars *store.Store[*types.TypeVar]
	Funcs *store.Store[*ResolvedFunc]
	Order []FuncID // source declaration order, for deterministic iteration
	Constraints []types.Constraint
}
