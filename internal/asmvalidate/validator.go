// Package asmvalidate implements spec.md §4.3: for every function whose
// body is inline assembly, check that each instruction is individually
// well-formed, that the function's declared return matches its signature,
// and that the virtual stack-height discipline holds at exit. It reports
// diagnostics; it never rewrites the instruction stream.
//
// Grounded on the teacher's internal/elaborate/verify.go (a closed-variant
// structural walk accumulating violations against a reference discipline —
// there, ANF; here, opcode/arity/stack-height), generalized from "reject
// and stop" to "accumulate and keep going" to match spec.md §7's
// one-error-does-not-stop-others rule, the way internal/errors.Sink is
// used by every other pass in this codebase.
package asmvalidate

import (
	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/check"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/resolve"
	"github.com/zephyr-lang/zephyrc/internal/types"
)

// arity is the fixed operand-count table for each recognized opcode
// (spec.md §4.3 "correct arity of operands").
var arity = map[ast.AsmOp]int{
	ast.AsmLocalGet: 1, // Local
	ast.AsmLocalSet: 1, // Local
	ast.AsmConst:    2, // Type, Literal
	ast.AsmBinop:    2, // Type, Operator
	ast.AsmRelop:    2, // Type, Operator
	ast.AsmUnop:     2, // Type, Operator
	ast.AsmDrop:     0,
	ast.AsmReturn:   0,
}

// stackEffect is the number of values each opcode pushes minus the number
// it pops, used to track stack height through the instruction sequence.
var stackEffect = map[ast.AsmOp]int{
	ast.AsmLocalGet: 1,
	ast.AsmLocalSet: -1,
	ast.AsmConst:    1,
	ast.AsmBinop:    -1, // pops 2, pushes 1
	ast.AsmRelop:    -1,
	ast.AsmUnop:     0, // pops 1, pushes 1
	ast.AsmDrop:     -1,
	ast.AsmReturn:   0, // checked separately against declared arity
}

// Validate walks every asm-bodied function in prog and reports violations
// to sink.
func Validate(prog *check.TypedProgram, sink errors.Sink) {
	prog.Funcs.Each(func(_ resolve.FuncID, fn *resolve.ResolvedFunc) {
		body, ok := fn.Body.(*resolve.AsmBody)
		if !ok {
			return
		}
		validateFunc(prog, fn, body, sink)
	})
}

func validateFunc(prog *check.TypedProgram, fn *resolve.ResolvedFunc, body *resolve.AsmBody, sink errors.Sink) {
	want := returnArity(prog, fn)
	wantType, checkType := declaredReturnType(prog, fn)
	height := 0
	var stack []string // value types in stack order; "" means not statically known (local.get)

	checkReturn := func(pos ast.Pos) {
		if height != want {
			sink.Report(pos, errors.ASM003, "stack height does not match declared return arity at \"return\"")
			return
		}
		if !checkType || want != 1 || len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top != "" && top != wantType {
			sink.Report(pos, errors.ASM004, "asm function declared to return \""+wantType+"\" but \"return\" leaves \""+top+"\" on the stack")
		}
	}

	for _, stmt := range body.Stmts {
		instr, ok := stmt.(*ast.AsmInstr)
		if !ok {
			sink.ReportInternal(fn.Pos, errors.LOW001, "unrecognized asm statement node")
			continue
		}

		n, known := arity[instr.Op]
		if !known {
			sink.Report(instr.Pos, errors.ASM001, "unknown opcode \""+string(instr.Op)+"\"")
			continue
		}
		if !operandShapeMatches(instr, n) {
			sink.Report(instr.Pos, errors.ASM002, "bad operand arity for \""+string(instr.Op)+"\"")
			continue
		}

		if instr.Op == ast.AsmReturn {
			checkReturn(instr.Pos)
			continue
		}

		stack = applyStackEffect(stack, instr)
		height += stackEffect[instr.Op]
		if height < 0 {
			sink.Report(instr.Pos, errors.ASM003, "stack underflow at \""+string(instr.Op)+"\"")
			height = 0
			stack = nil
		}
	}

	if height != want {
		sink.Report(fn.Pos, errors.ASM003, "stack height at function exit does not match declared return arity")
		return
	}
	if checkType && want == 1 && len(stack) > 0 {
		if top := stack[len(stack)-1]; top != "" && top != wantType {
			sink.Report(fn.Pos, errors.ASM004, "asm function declared to return \""+wantType+"\" but the value left on the stack at exit is \""+top+"\"")
		}
	}
}

// applyStackEffect tracks the virtual stack's value types alongside height
// (spec.md §4.3's "declared return matches the function signature's return
// types" check needs the *type* of the value reaching "return", not just a
// count). local.get pushes "" (unknown — asm locals carry no Type operand in
// this AST); const/unop/binop push their own Type operand; relop always
// produces a wasm i32 boolean regardless of the operand type it compares.
func applyStackEffect(stack []string, instr *ast.AsmInstr) []string {
	pop := func(n int) {
		if n > len(stack) {
			n = len(stack)
		}
		stack = stack[:len(stack)-n]
	}
	switch instr.Op {
	case ast.AsmLocalGet:
		stack = append(stack, "")
	case ast.AsmLocalSet:
		pop(1)
	case ast.AsmConst:
		stack = append(stack, instr.Type)
	case ast.AsmUnop:
		pop(1)
		stack = append(stack, instr.Type)
	case ast.AsmBinop:
		pop(2)
		stack = append(stack, instr.Type)
	case ast.AsmRelop:
		pop(2)
		stack = append(stack, "i32")
	case ast.AsmDrop:
		pop(1)
	}
	return stack
}

// declaredReturnType maps fn's resolved return type to the machine-type
// spelling an asm instruction's Type field uses. checkType is false for Unit
// (no value to check) and for non-numeric types asm has no spelling for.
func declaredReturnType(prog *check.TypedProgram, fn *resolve.ResolvedFunc) (wantType string, checkType bool) {
	t, ok := prog.Types.Get(fn.ReturnTVar)
	if !ok {
		return "", false
	}
	switch t.Kind {
	case types.KI32, types.KBool:
		return "i32", true
	case types.KI64:
		return "i64", true
	case types.KF32:
		return "f32", true
	case types.KF64:
		return "f64", true
	default:
		return "", false
	}
}

// operandShapeMatches checks the fixed fields an instruction of this opcode
// must carry, matching arity's count (spec.md §4.3 "correct arity of
// operands"). local.get/local.set carry a Local name; const carries a
// Type+Literal; binop/relop/unop carry a Type+Operator.
func operandShapeMatches(instr *ast.AsmInstr, want int) bool {
	switch instr.Op {
	case ast.AsmLocalGet, ast.AsmLocalSet:
		return want == 1 && instr.Local != ""
	case ast.AsmConst:
		return want == 2 && instr.Type != "" && instr.Literal != nil
	case ast.AsmBinop, ast.AsmRelop, ast.AsmUnop:
		return want == 2 && instr.Type != "" && instr.Operator != ""
	case ast.AsmDrop, ast.AsmReturn:
		return want == 0
	default:
		return false
	}
}

// returnArity reports the function's declared return slots: 0 for Unit, 1
// otherwise (spec.md has no multi-return asm functions; UNS003 already
// rejects those during resolution).
func returnArity(prog *check.TypedProgram, fn *resolve.ResolvedFunc) int {
	t, ok := prog.Types.Get(fn.ReturnTVar)
	if !ok || t.Kind == types.KUnit {
		return 0
	}
	return 1
}
