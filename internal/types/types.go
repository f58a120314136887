// Package types implements the data model for spec.md §3/§4.2: concrete
// machine types, type variables with sorted candidate lists, and the three
// constraint kinds the name resolver emits and the checker solves.
//
// This is a from-scratch lattice, not the teacher's Hindley-Milner engine:
// AILANG's internal/types solves row-polymorphic typeclass dictionaries,
// which Zephyr has no equivalent of (no generics, no first-class functions;
// spec.md §1 Non-goals). What is kept from the teacher is the *shape* — one
// file per concern, sweep/progress-driven solving — described in
// DESIGN.md's "internal/types" entry.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags a concrete type's variant. The declared order IS the total
// ordering spec.md §3 requires for sorted candidate-list intersection:
// lower Kind sorts first.
type Kind int

const (
	KAny  Kind = iota // placeholder during inference
	KBug              // poisoned, result of an earlier error
	KUnit
	KBool
	KI32
	KI64
	KF32
	KF64
	KFun
	// KStr is a fixed, opaque "struct" type assigned to string literals
	// (spec.md §4.1: "string → fixed struct id"). It is deliberately absent
	// from spec.md §3's concrete-type enum, which has no heap-backed types
	// at all (§1 Non-goals: no heap management); see DESIGN.md's Open
	// Question decision. It resolves immediately (never ambiguous) but the
	// lowerer refuses to emit machine code for it — there is no WebAssembly
	// instruction a string value could lower to without an allocator.
	KStr
)

func (k Kind) String() string {
	switch k {
	case KAny:
		return "any"
	case KBug:
		return "bug"
	case KUnit:
		return "unit"
	case KBool:
		return "bool"
	case KI32:
		return "i32"
	case KI64:
		return "i64"
	case KF32:
		return "f32"
	case KF64:
		return "f64"
	case KFun:
		return "fun"
	case KStr:
		return "str"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Type is a concrete type: one of the nine non-function kinds, or a
// function type carrying its parameter and return types. Zero value is Any.
type Type struct {
	Kind    Kind
	Params  []Type // KFun only
	Returns []Type // KFun only; spec.md §4.2 Return requires len == 1 to resolve
}

func Any() Type  { return Type{Kind: KAny} }
func Bug() Type  { return Type{Kind: KBug} }
func Unit() Type { return Type{Kind: KUnit} }
func Bool() Type { return Type{Kind: KBool} }
func I32() Type  { return Type{Kind: KI32} }
func I64() Type  { return Type{Kind: KI64} }
func F32() Type  { return Type{Kind: KF32} }
func F64() Type  { return Type{Kind: KF64} }
func Str() Type  { return Type{Kind: KStr} }

// Fun builds a function type.
func Fun(params, returns []Type) Type {
	return Type{Kind: KFun, Params: params, Returns: returns}
}

// IsNumeric reports whether t is one of the four machine numeric types.
func (t Type) IsNumeric() bool {
	switch t.Kind {
	case KI32, KI64, KF32, KF64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is I32 or I64.
func (t Type) IsInteger() bool {
	return t.Kind == KI32 || t.Kind == KI64
}

// IsFloat reports whether t is F32 or F64.
func (t Type) IsFloat() bool {
	return t.Kind == KF32 || t.Kind == KF64
}

func (t Type) String() string {
	switch t.Kind {
	case KFun:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		rets := make([]string, len(t.Returns))
		for i, r := range t.Returns {
			rets[i] = r.String()
		}
		return fmt.Sprintf("(%s) -> (%s)", strings.Join(params, ", "), strings.Join(rets, ", "))
	default:
		return t.Kind.String()
	}
}

// Equals reports structural equality.
func (t Type) Equals(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != KFun {
		return true
	}
	if len(t.Params) != len(o.Params) || len(t.Returns) != len(o.Returns) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	for i := range t.Returns {
		if !t.Returns[i].Equals(o.Returns[i]) {
			return false
		}
	}
	return true
}

// Less implements the total ordering over variants used to keep candidate
// lists sorted (spec.md §3). Ties within KFun break on String(), which is
// deterministic but otherwise arbitrary — two distinct function types are
// vanishingly rare in a single candidate list (Zephyr has no first-class
// functions), so this path is exercised mostly by defensive tests.
func Less(a, b Type) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Kind == KFun {
		return a.String() < b.String()
	}
	return false
}

// SortTypes sorts a candidate list in place per Less, and is used wherever
// a candidate list is constructed directly from a literal set.
func SortTypes(ts []Type) {
	sort.Slice(ts, func(i, j int) bool { return Less(ts[i], ts[j]) })
}

// IntegerCandidates is the canonical "integer" candidate set spec.md §4.2's
// defaulting pass recognizes as eligible for an I64 default.
func IntegerCandidates() []Type { return []Type{I32(), I64()} }

// FloatCandidates is the candidate set assigned to a float literal. Unlike
// integer literals, spec.md gives no defaulting rule for an ambiguous float
// literal: it remains an "ambiguous type" diagnostic (§4.2 defaulting pass,
// "any other non-singleton ... list").
func FloatCandidates() []Type { return []Type{F32(), F64()} }
