// Package pprint renders compiler IRs to deterministic JSON for the trace
// flag SPEC_FULL.md's CLI exposes ("-v names,types,constraints,typed-types,
// mir"). Grounded on the teacher's internal/ast/print.go: a recursive
// "simplify to map[string]interface{}, then json.MarshalIndent" style,
// adapted from the teacher's surface-AST golden-snapshot use case to this
// compiler's names/types/constraints/MIR stages.
package pprint

import (
	"encoding/json"
	"fmt"

	"github.com/zephyr-lang/zephyrc/internal/check"
	"github.com/zephyr-lang/zephyrc/internal/mir"
	"github.com/zephyr-lang/zephyrc/internal/resolve"
	"github.com/zephyr-lang/zephyrc/internal/store"
	"github.com/zephyr-lang/zephyrc/internal/types"
)

func marshal(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Names renders every bound occurrence (spec.md §3 "Names"): its id,
// source identifier, and the type variable standing for its type.
func Names(names *store.Store[*resolve.Name]) string {
	var out []map[string]interface{}
	names.Each(func(id store.ID, n *resolve.Name) {
		out = append(out, map[string]interface{}{
			"id":     id.String(),
			"source": n.Source,
			"tvar":   n.TVar.String(),
		})
	})
	return marshal(out)
}

// TypeVars renders the resolver's pre-solve type variable store: each
// variable's sorted candidate-kind list (spec.md §4.2 "sorted candidate
// list").
func TypeVars(tvs *store.Store[*types.TypeVar]) string {
	var out []map[string]interface{}
	tvs.Each(func(id store.ID, tv *types.TypeVar) {
		cands := make([]string, len(tv.Candidates))
		for i, c := range tv.Candidates {
			cands[i] = c.String()
		}
		out = append(out, map[string]interface{}{
			"id":         id.String(),
			"candidates": cands,
		})
	})
	return marshal(out)
}

// Constraints renders the accumulated constraint list the checker solves
// (spec.md §4.2).
func Constraints(cs []types.Constraint) string {
	out := make([]map[string]interface{}, len(cs))
	for i, c := range cs {
		out[i] = constraintMap(c)
	}
	return marshal(out)
}

func constraintMap(c types.Constraint) map[string]interface{} {
	switch c := c.(type) {
	case *types.Equality:
		return map[string]interface{}{"kind": "Equality", "a": c.A.String(), "b": c.B.String()}
	case *types.Included:
		return map[string]interface{}{"kind": "Included", "a": c.A.String(), "b": c.B.String()}
	case *types.Return:
		return map[string]interface{}{"kind": "Return", "funTV": c.FunTV.String(), "retTV": c.RetTV.String()}
	default:
		return map[string]interface{}{"kind": c.String()}
	}
}

// TypedTypes renders the post-solve, post-defaulting concrete type store
// (spec.md §4.2 "Defaulting pass").
func TypedTypes(ts *store.Store[types.Type]) string {
	var out []map[string]interface{}
	ts.Each(func(id store.ID, t types.Type) {
		out = append(out, map[string]interface{}{
			"id":   id.String(),
			"type": t.String(),
		})
	})
	return marshal(out)
}

// Program renders a TypedProgram's names and typed-types together, the
// shape the "-v names,typed-types" trace combination needs without forcing
// two separate driver calls.
func Program(prog *check.TypedProgram) string {
	return marshal(map[string]interface{}{
		"names":      json.RawMessage(Names(prog.Names)),
		"typedTypes": json.RawMessage(TypedTypes(prog.Types)),
	})
}

// MIR renders a lowered Program: one entry per function, its locals and
// its statement tree (spec.md §3 "MIR output contract").
func MIR(prog *mir.Program) string {
	var out []map[string]interface{}
	for _, id := range prog.Order {
		fn := prog.Funcs.MustGet(id)
		out = append(out, map[string]interface{}{
			"id":     id.String(),
			"name":   fn.Name,
			"params": idStrings(fn.Params),
			"locals": idStrings(fn.Locals),
			"body":   mirStmt(fn.Body),
		})
	}
	return marshal(out)
}

func idStrings(ids []mir.Local) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func mirStmts(stmts []mir.Stmt) []map[string]interface{} {
	out := make([]map[string]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = mirStmt(s)
	}
	return out
}

// mirStmt renders one MIR statement node. Every opcode field is already a
// human-readable string (mir.BinOp/RelOp/UnOp/ParametricOp/ControlOp are
// string-valued consts, e.g. mir.Neg == "neg") so this resolves spec.md
// §9's Open Question on unary-minus rendering for free: printing the
// opcode IS printing "neg".
func mirStmt(s mir.Stmt) map[string]interface{} {
	switch s := s.(type) {
	case *mir.Block:
		return map[string]interface{}{"op": "block", "id": s.ID.String(), "stmts": mirStmts(s.Stmts)}
	case *mir.Loop:
		return map[string]interface{}{"op": "loop", "id": s.ID.String(), "stmts": mirStmts(s.Stmts)}
	case *mir.If:
		return map[string]interface{}{"op": "if", "id": s.ID.String(), "then": mirStmts(s.Then), "else": mirStmts(s.Else)}
	case *mir.Get:
		return map[string]interface{}{"op": "get", "local": s.Local.String()}
	case *mir.Set:
		return map[string]interface{}{"op": "set", "local": s.Local.String()}
	case *mir.Const:
		return map[string]interface{}{"op": "const", "type": s.Type.String(), "value": s.Value}
	case *mir.Binop:
		return map[string]interface{}{"op": string(s.Op), "type": s.Type.String()}
	case *mir.Relop:
		return map[string]interface{}{"op": string(s.Op), "type": s.Type.String()}
	case *mir.Unop:
		return map[string]interface{}{"op": string(s.Op), "type": s.Type.String()}
	case *mir.Parametric:
		return map[string]interface{}{"op": string(s.Op)}
	case *mir.Control:
		m := map[string]interface{}{"op": string(s.Op)}
		if s.Op != mir.Return {
			m["target"] = s.Target.String()
		}
		return m
	case *mir.Call:
		return map[string]interface{}{"op": "call", "func": s.Func.String()}
	default:
		return map[string]interface{}{"op": "unknown"}
	}
}
