package mir

import (
	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/check"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/resolve"
	"github.com/zephyr-lang/zephyrc/internal/store"
	"github.com/zephyr-lang/zephyrc/internal/types"
)

// arithTable and relTable are the per-type operator dispatch matrices
// spec.md §4.4 describes, grounded on the teacher's internal/pipeline
// OperatorTable (operator → per-type builtin name map), generalized from
// builtin-name strings to MIR BinOp/RelOp constants.
var arithTable = map[ast.BinOp]BinOp{
	ast.OpAdd: Add,
	ast.OpSub: Sub,
	ast.OpMul: Mul,
	ast.OpDiv: Div,
	ast.OpRem: Rem, // integer-only; checked in binopMachType
}

var relTable = map[ast.BinOp]RelOp{
	ast.OpEq: Eq,
	ast.OpNe: Ne,
	ast.OpLt: Lt,
	ast.OpLe: Le,
	ast.OpGt: Gt,
	ast.OpGe: Ge,
}

// Lower lowers every function in prog into MIR, per spec.md §4.4. Diagnostics
// surface only for states the earlier passes should have already excluded
// (LOW001): by the time lowering runs, resolution and type checking have
// flushed the sink clean, so these are defensive, not user-facing.
func Lower(prog *check.TypedProgram, sink errors.Sink) *Program {
	funcs := store.New[*Func](prog.Funcs.Module())
	var order []store.ID

	prog.Funcs.Each(func(id resolve.FuncID, fn *resolve.ResolvedFunc) {
		body, ok := fn.Body.(*resolve.ZephyrBody)
		if !ok {
			return // asm bodies are validated, not lowered (spec.md §4.3/§4.4)
		}
		l := &lowerer{prog: prog, sink: sink, blockCounter: 0}
		mirFn := &Func{
			Name:   fn.Ident,
			Params: fn.Params,
			Locals: append(append([]Local{}, fn.Params...), fn.Locals...),
		}
		stmts := l.block(body.Block)
		mirFn.Body = &Block{ID: l.freshBlockID(), Stmts: stmts}
		funcs.Insert(id, mirFn)
		order = append(order, id)
	})

	return &Program{Funcs: funcs, Order: order}
}

type lowerer struct {
	prog         *check.TypedProgram
	sink         errors.Sink
	blockCounter uint32
}

func (l *lowerer) freshBlockID() BlockID {
	l.blockCounter++
	return store.NewID(l.prog.Funcs.Module(), l.blockCounter)
}

func (l *lowerer) machType(tv store.ID) MachType {
	t, ok := l.prog.Types.Get(tv)
	if !ok {
		l.sink.ReportInternal(ast.Pos{}, errors.LOW001, "lowering: type variable has no resolved type")
		return I32
	}
	switch t.Kind {
	case types.KI32, types.KBool:
		return I32
	case types.KI64:
		return I64
	case types.KF32:
		return F32
	case types.KF64:
		return F64
	default:
		l.sink.ReportInternal(ast.Pos{}, errors.LOW001, "lowering: non-machine type reached operator dispatch")
		return I32
	}
}

func (l *lowerer) block(b *resolve.Block) []Stmt {
	var out []Stmt
	for _, s := range b.Stmts {
		out = append(out, l.stmt(s)...)
	}
	return out
}

func (l *lowerer) stmt(s resolve.Stmt) []Stmt {
	switch s := s.(type) {
	case *resolve.Let:
		out := l.expr(s.Value)
		return append(out, &Set{Local: s.Name})

	case *resolve.Assign:
		out := l.expr(s.Value)
		return append(out, &Set{Local: s.Name})

	case *resolve.ExprStmt:
		out := l.expr(s.Value)
		return append(out, &Parametric{Op: Drop})

	case *resolve.Return:
		var out []Stmt
		if s.Value != nil {
			out = l.expr(s.Value)
		}
		return append(out, &Control{Op: Return})

	case *resolve.If:
		return l.lowerIf(s)

	case *resolve.While:
		return l.lowerWhile(s)
	}
	l.sink.ReportInternal(ast.Pos{}, errors.LOW001, "lowering: unrecognized statement node")
	return nil
}

// lowerIf implements spec.md §4.4's "If statement" rule: lower the
// condition (leaves I32 on stack), wrap then/else in a single structured
// If inside its own labeled Block.
func (l *lowerer) lowerIf(s *resolve.If) []Stmt {
	cond := l.expr(s.Cond)
	elseStmts := []Stmt{}
	if s.Else != nil {
		elseStmts = append(elseStmts, l.block(s.Else)...)
	}
	ifStmt := &If{ID: l.freshBlockID(), Then: l.block(s.Then), Else: elseStmts}
	out := append(cond, ifStmt)
	return []Stmt{&Block{ID: l.freshBlockID(), Stmts: out}}
}

// lowerWhile implements spec.md §4.4's "While loop" rule: an outer Block
// (the branch-out-of-loop target) containing a Loop (the back-edge
// target). The loop body inverts the condition and BrIfs out to the outer
// block when false, otherwise falls through to the body and branches back.
func (l *lowerer) lowerWhile(s *resolve.While) []Stmt {
	blockID := l.freshBlockID()
	loopID := l.freshBlockID()

	var loopStmts []Stmt
	loopStmts = append(loopStmts, l.expr(s.Cond)...)
	loopStmts = append(loopStmts,
		&Const{Type: I32, Value: int32(1)},
		&Binop{Type: I32, Op: Xor},
		&Control{Op: BrIf, Target: blockID},
	)
	loopStmts = append(loopStmts, l.block(s.Body)...)
	loopStmts = append(loopStmts, &Control{Op: Br, Target: loopID})

	loop := &Loop{ID: loopID, Stmts: loopStmts}
	return []Stmt{&Block{ID: blockID, Stmts: []Stmt{loop}}}
}

func (l *lowerer) expr(e resolve.Expr) []Stmt {
	switch e := e.(type) {
	case *resolve.Literal:
		return []Stmt{l.lowerLiteral(e)}

	case *resolve.Var:
		return []Stmt{&Get{Local: e.Name}}

	case *resolve.Binary:
		return l.lowerBinary(e)

	case *resolve.Unary:
		return l.lowerUnary(e)

	case *resolve.CallDirect:
		var out []Stmt
		for _, a := range e.Args {
			out = append(out, l.expr(a)...)
		}
		return append(out, &Call{Func: e.Callee})

	case *resolve.CallIndirect:
		l.sink.ReportInternal(e.Position(), errors.LOW001, "lowering: CallIndirect reached lowering (should have been rejected at resolution)")
		return nil

	case *resolve.FunctionRef:
		l.sink.ReportInternal(e.Position(), errors.LOW001, "lowering: FunctionRef reached lowering (should have been rejected at resolution)")
		return nil
	}
	l.sink.ReportInternal(ast.Pos{}, errors.LOW001, "lowering: unrecognized expression node")
	return nil
}

func (l *lowerer) lowerLiteral(e *resolve.Literal) Stmt {
	mt := l.machType(e.TVar())
	switch e.Kind {
	case ast.BoolLit:
		v := e.Value.(bool)
		if v {
			return &Const{Type: I32, Value: int32(1)}
		}
		return &Const{Type: I32, Value: int32(0)}
	case ast.IntLit:
		n := e.Value.(int64)
		if mt == I64 {
			return &Const{Type: I64, Value: n}
		}
		return &Const{Type: I32, Value: int32(n)}
	case ast.FloatLit:
		f := e.Value.(float64)
		if mt == F64 {
			return &Const{Type: F64, Value: f}
		}
		return &Const{Type: F32, Value: float32(f)}
	default:
		l.sink.ReportInternal(ast.Pos{}, errors.LOW001, "lowering: string literal reached machine const lowering")
		return &Const{Type: I32, Value: int32(0)}
	}
}

func (l *lowerer) lowerBinary(e *resolve.Binary) []Stmt {
	switch e.Op {
	case ast.OpAnd:
		left := l.expr(e.Left)
		then := l.expr(e.Right)
		els := []Stmt{&Const{Type: I32, Value: int32(0)}}
		return append(left, &If{ID: l.freshBlockID(), Then: then, Else: els})

	case ast.OpOr:
		left := l.expr(e.Left)
		then := []Stmt{&Const{Type: I32, Value: int32(1)}}
		els := l.expr(e.Right)
		return append(left, &If{ID: l.freshBlockID(), Then: then, Else: els})

	default:
		left := l.expr(e.Left)
		right := l.expr(e.Right)
		out := append(left, right...)
		mt := l.machType(e.Left.TVar())

		if relOp, ok := relTable[e.Op]; ok {
			return append(out, &Relop{Type: mt, Op: relOp})
		}
		if arithOp, ok := arithTable[e.Op]; ok {
			if e.Op == ast.OpRem && mt != I32 && mt != I64 {
				l.sink.ReportInternal(e.Position(), errors.LOW001, "lowering: remainder on non-integer type")
			}
			return append(out, &Binop{Type: mt, Op: arithOp})
		}
		l.sink.ReportInternal(e.Position(), errors.LOW001, "lowering: unrecognized binary operator")
		return out
	}
}

// lowerUnary implements spec.md §4.4's "Unary minus" rule: integer operands
// get `Const 0; operand; Sub`; float operands get `operand; FNeg` (modeled
// here as Unop{Neg} — the emitter maps it to the correct float opcode).
// Unary not emits `Const I32(1); operand; I32Xor`.
func (l *lowerer) lowerUnary(e *resolve.Unary) []Stmt {
	operand := l.expr(e.Operand)
	mt := l.machType(e.Operand.TVar())

	switch e.Op {
	case ast.OpNeg:
		if mt == F32 || mt == F64 {
			return append(operand, &Unop{Type: mt, Op: Neg})
		}
		out := []Stmt{&Const{Type: mt, Value: zeroFor(mt)}}
		out = append(out, operand...)
		return append(out, &Binop{Type: mt, Op: Sub})

	case ast.OpNot:
		out := []Stmt{&Const{Type: I32, Value: int32(1)}}
		out = append(out, operand...)
		return append(out, &Binop{Type: I32, Op: Xor})
	}
	l.sink.ReportInternal(e.Position(), errors.LOW001, "lowering: unrecognized unary operator")
	return operand
}

func zeroFor(mt MachType) interface{} {
	switch mt {
	case I64:
		return int64(0)
	case F32:
		return float32(0)
	case F64:
		return float64(0)
	default:
		return int32(0)
	}
}
