// Package store implements the globally unique identifier scheme and the
// module-scoped Store[T] map described in spec.md §3: every entity of a
// given kind (function, local, type, type variable, struct, data) is
// addressed by a 64-bit id whose high 32 bits are a module id and whose low
// 32 bits are a per-store counter. This is the one piece of cross-pass
// identity preservation every later pass relies on (see DESIGN.md "Cross-
// pass identity preservation").
package store

import "fmt"

// ModuleID identifies the translation unit that minted an id. Two stores
// with the same ModuleID must never be merged (spec §3 invariant 2).
type ModuleID uint32

// ID is a 64-bit identifier: (ModuleID << 32) | counter. Callers name it
// per kind (FuncID, NameID, TVarID, ...) through type aliases; aliases are
// the same type as ID, so the compiler does not stop one kind's id from
// being passed where another's is expected.
type ID uint64

// NewID packs a module id and a per-store counter into a single ID.
func NewID(mod ModuleID, counter uint32) ID {
	return ID(uint64(mod)<<32 | uint64(counter))
}

// Module extracts the module id a given ID was minted under.
func (id ID) Module() ModuleID { return ModuleID(id >> 32) }

// Counter extracts the per-store counter component of an ID.
func (id ID) Counter() uint32 { return uint32(id) }

func (id ID) String() string {
	return fmt.Sprintf("%d.%d", id.Module(), id.Counter())
}
