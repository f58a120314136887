// Package iface implements spec.md §4.5: after lowering, every function
// with the public visibility modifier appears in pub_decls keyed by its
// source identifier, carrying its function id and resolved signature. This
// is the only surface spec.md defines for cross-module name resolution on
// a subsequent compile — it is the producer side of internal/resolve's
// Namespace/Declaration consumer-side types.
//
// Grounded on the teacher's internal/iface/iface.go (Iface.Exports keyed by
// source name, schema string, deterministic digest), trimmed of ADT
// constructor and type exports — spec.md has no exported types, only
// exported functions.
package iface

import (
	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/check"
	"github.com/zephyr-lang/zephyrc/internal/resolve"
	"github.com/zephyr-lang/zephyrc/internal/store"
	"github.com/zephyr-lang/zephyrc/internal/types"
)

// Schema is the iface format version, mirroring internal/errors' versioned
// "zephyr.error/v1" schema string convention.
const Schema = "zephyr.iface/v1"

// Decl is one exported function: its producing-module id and resolved
// signature, exactly what spec.md §6's Namespace/Declaration consumer side
// needs to bind a cross-module call without re-resolving that module.
type Decl struct {
	ID        resolve.FuncID
	Signature types.Type // KFun
}

// Iface is a compiled module's public surface.
type Iface struct {
	Module  string
	Exports map[string]*Decl
	Schema  string
	Digest  string
}

// Export walks prog and builds the pub_decls surface: one entry per
// function whose Visibility is ast.Public (spec.md §4.5). moduleName
// identifies this module to downstream namespace maps (spec.md §6).
func Export(moduleName string, prog *check.TypedProgram) *Iface {
	iface := &Iface{Module: moduleName, Exports: make(map[string]*Decl), Schema: Schema}

	prog.Funcs.Each(func(id resolve.FuncID, fn *resolve.ResolvedFunc) {
		if fn.Visibility != ast.Public {
			return
		}
		sig, ok := signatureOf(prog, fn)
		if !ok {
			return
		}
		iface.Exports[fn.Ident] = &Decl{ID: id, Signature: sig}
	})

	iface.Digest = digest(iface)
	return iface
}

// signatureOf reads the function's Fun(params, returns) type back out of
// the concrete type store: FuncTVar was seeded as a singleton Fun(...) by
// the resolver and keeps that type through solving.
func signatureOf(prog *check.TypedProgram, fn *resolve.ResolvedFunc) (types.Type, bool) {
	t, ok := prog.Types.Get(fn.FuncTVar)
	if !ok || t.Kind != types.KFun {
		return types.Type{}, false
	}
	return t, true
}

// digest computes a deterministic hash over the export set, so two compiles
// of identical source produce an identical Iface.Digest (grounded on the
// teacher's Iface.Digest field). Built on store.Store.Digest (SPEC_FULL §12)
// rather than a bespoke sort-and-hash: each Decl is re-keyed into a
// throwaway Store under its own function id, which Digest then walks in
// ascending-id order, so the result never depends on Go's randomized
// iteration order over iface.Exports.
func digest(iface *Iface) string {
	// The throwaway store's own module id is irrelevant: Digest walks ids
	// already assigned via Insert, never mints a fresh one.
	byID := store.New[*Decl](store.ModuleID(0))
	for _, d := range iface.Exports {
		byID.Insert(d.ID, d)
	}
	return iface.Module + ":" + byID.Digest(func(d *Decl) string {
		return d.Signature.String()
	})
}

// ToNamespace adapts an Iface into the Namespace shape internal/resolve
// consumes for a subsequent compile (spec.md §6).
func ToNamespace(name string, iface *Iface) resolve.Namespace {
	symbols := make(map[string]*resolve.Declaration, len(iface.Exports))
	for symbol, d := range iface.Exports {
		symbols[symbol] = &resolve.Declaration{
			Kind:       resolve.DeclFunc,
			Visibility: ast.Public,
			Signature:  d.Signature,
			ID:         d.ID,
		}
	}
	return resolve.Namespace{name: symbols}
}
