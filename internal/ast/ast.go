// Package ast defines the input contract produced by the Zephyr scanner and
// parser (both out of core scope; see spec.md §1). Only the shapes that the
// resolver, type checker, asm validator and lowerer actually consume are
// represented here — a closed set of tagged variants, exhaustively switched
// on by every later pass (see DESIGN.md "tagged variants everywhere").
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Pos represents a position in the source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int // byte offset, used for stable id calculation
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Pos
	End   Pos
}

// Expr is a Zephyr expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a Zephyr statement.
type Stmt interface {
	Node
	stmtNode()
}

// AsmStmt is a single inline-assembly instruction, validated by
// internal/asmvalidate. internal/mir does not lower asm instructions: it
// skips asm-bodied functions.
type AsmStmt interface {
	Node
	asmStmtNode()
}

// Visibility controls whether a declaration crosses module boundaries.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// DeclaredType is the surface-syntax spelling of a type annotation: one of
// the six machine-shaped names, or absent (nil) for "infer me".
type DeclaredType struct {
	Name string // "unit" | "bool" | "i32" | "i64" | "f32" | "f64" | a function-type spelling
	Pos  Pos
}

func (d *DeclaredType) String() string { return d.Name }
func (d *DeclaredType) Position() Pos  { return d.Pos }

// Param is a function parameter: a name plus its declared type.
type Param struct {
	Name string
	Type *DeclaredType // never nil — parameters must be fully annotated
	Pos  Pos
}

// Local is a name introduced within a function body (by `let`), prior to
// resolution. The resolver assigns it a fresh name id.
type Local struct {
	Name string
	Type *DeclaredType // nil if the declaration omits it (inferred)
	Pos  Pos
}

// FuncBody is the closed Zephyr(block) | Asm(stmts) variant from spec §3.
type FuncBody interface {
	funcBodyNode()
}

// ZephyrBody is a function body written in the surface language.
type ZephyrBody struct {
	Block *Block
}

func (*ZephyrBody) funcBodyNode() {}

// AsmBody is a function body written entirely in inline assembly.
type AsmBody struct {
	Stmts []AsmStmt
}

func (*AsmBody) funcBodyNode() {}

// FuncDecl is a top-level function declaration.
type FuncDecl struct {
	Ident      string
	Params     []*Param
	ReturnType []*DeclaredType // spec allows a list; core rejects len > 1 (UNS — multi-return)
	Locals     []*Local
	Body       FuncBody
	Visibility Visibility
	Exposed    bool // reachable from the module's public surface (see iface)
	Pos        Pos
	Span       Span
}

func (f *FuncDecl) String() string {
	return fmt.Sprintf("fun %s(...)", f.Ident)
}
func (f *FuncDecl) Position() Pos { return f.Pos }
func (f *FuncDecl) stmtNode()     {}

// File is a single parsed Zephyr source file: the parser's complete output
// for one translation unit.
type File struct {
	Path  string
	Funcs []*FuncDecl
	Pos   Pos
}

func (f *File) String() string {
	parts := make([]string, len(f.Funcs))
	for i, fn := range f.Funcs {
		parts[i] = fn.String()
	}
	return strings.Join(parts, "\n")
}
func (f *File) Position() Pos { return f.Pos }

// Identifier is a reference to a previously declared name.
type Identifier struct {
	Name string
	Pos  Pos
}

func (i *Identifier) String() string { return i.Name }
func (i *Identifier) Position() Pos  { return i.Pos }
func (i *Identifier) exprNode()      {}

// LiteralKind tags the four surface literal forms named in spec §4.1.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	BoolLit
	StringLit
)

// Literal is a literal value occurrence.
type Literal struct {
	Kind  LiteralKind
	Value interface{} // int64 | float64 | bool | string, matching Kind
	Pos   Pos
}

func (l *Literal) String() string { return fmt.Sprintf("%v", l.Value) }
func (l *Literal) Position() Pos  { return l.Pos }
func (l *Literal) exprNode()      {}

// BinOp names a surface binary operator. The resolver does not interpret
// these; it only records constraints per spec §4.1. Operator dispatch to a
// concrete machine opcode happens later, in internal/mir.
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpRem BinOp = "%"

	OpEq BinOp = "=="
	OpNe BinOp = "!="
	OpLt BinOp = "<"
	OpLe BinOp = "<="
	OpGt BinOp = ">"
	OpGe BinOp = ">="

	OpAnd BinOp = "&&"
	OpOr  BinOp = "||"
)

// Binary is a binary operation, including comparisons and the short-circuit
// logical operators.
type Binary struct {
	Left  Expr
	Op    BinOp
	Right Expr
	Pos   Pos
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}
func (b *Binary) Position() Pos { return b.Pos }
func (b *Binary) exprNode()     {}

// UnOp names a surface unary operator.
type UnOp string

const (
	OpNeg UnOp = "-"
	OpNot UnOp = "!"
)

// Unary is a unary operation.
type Unary struct {
	Op   UnOp
	Expr Expr
	Pos  Pos
}

func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Op, u.Expr)
}
func (u *Unary) Position() Pos { return u.Pos }
func (u *Unary) exprNode()     {}

// CallDirect calls a statically known function by identifier.
type CallDirect struct {
	Callee string
	Args   []Expr
	Pos    Pos
}

func (c *CallDirect) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}
func (c *CallDirect) Position() Pos { return c.Pos }
func (c *CallDirect) exprNode()     {}

// CallIndirect calls through a function-valued expression. Spec §1/§4.4:
// documented unsupported — the node exists so the parser's grammar stays
// total, and the resolver always rejects it (UNS001).
type CallIndirect struct {
	Callee Expr
	Args   []Expr
	Pos    Pos
}

func (c *CallIndirect) String() string {
	return fmt.Sprintf("(*%s)(...)", c.Callee)
}
func (c *CallIndirect) Position() Pos { return c.Pos }
func (c *CallIndirect) exprNode()     {}

// FunctionRef is a bare reference to a function identifier used as a value
// (e.g. the callee position of a higher-order call before it is resolved to
// CallIndirect). Spec §1: no first-class functions at runtime — accepted in
// the grammar, rejected by the resolver (UNS002) wherever it appears
// (CallDirect names its callee by string, not by a FunctionRef).
type FunctionRef struct {
	Name string
	Pos  Pos
}

func (f *FunctionRef) String() string { return "&" + f.Name }
func (f *FunctionRef) Position() Pos  { return f.Pos }
func (f *FunctionRef) exprNode()      {}

// Block is a brace-delimited sequence of statements.
type Block struct {
	Stmts []Stmt
	Pos   Pos
}

func (b *Block) String() string {
	parts := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
func (b *Block) Position() Pos { return b.Pos }

// Let declares a new local, optionally with a declared type.
type Let struct {
	Name  string
	Type  *DeclaredType // nil if inferred
	Value Expr
	Pos   Pos
}

func (l *Let) String() string { return fmt.Sprintf("let %s = %s", l.Name, l.Value) }
func (l *Let) Position() Pos  { return l.Pos }
func (l *Let) stmtNode()      {}

// Assign assigns to an already-declared local.
type Assign struct {
	Name  string
	Value Expr
	Pos   Pos
}

func (a *Assign) String() string { return fmt.Sprintf("%s = %s", a.Name, a.Value) }
func (a *Assign) Position() Pos  { return a.Pos }
func (a *Assign) stmtNode()      {}

// ExprStmt evaluates an expression for its side effects and discards the
// result.
type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (e *ExprStmt) String() string { return e.Expr.String() + ";" }
func (e *ExprStmt) Position() Pos  { return e.Pos }
func (e *ExprStmt) stmtNode()      {}

// Return returns from the enclosing function, optionally with a value.
type Return struct {
	Value Expr // nil for a bare `return`
	Pos   Pos
}

func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}
func (r *Return) Position() Pos { return r.Pos }
func (r *Return) stmtNode()     {}

// If is a conditional statement with an optional else branch.
type If struct {
	Cond Expr
	Then *Block
	Else *Block // nil if there is no else branch
	Pos  Pos
}

func (i *If) String() string {
	if i.Else == nil {
		return fmt.Sprintf("if %s %s", i.Cond, i.Then)
	}
	return fmt.Sprintf("if %s %s else %s", i.Cond, i.Then, i.Else)
}
func (i *If) Position() Pos { return i.Pos }
func (i *If) stmtNode()     {}

// While is a structured loop.
type While struct {
	Cond Expr
	Body *Block
	Pos  Pos
}

func (w *While) String() string { return fmt.Sprintf("while %s %s", w.Cond, w.Body) }
func (w *While) Position() Pos  { return w.Pos }
func (w *While) stmtNode()      {}
