// Package builtin registers the small set of identifiers the resolver and
// lowerer recognize without a user declaration (spec.md §4.1, §11 "builtin
// allocator"). Zephyr has exactly one: "@alloc".
//
// Grounded on the teacher's internal/builtins/register.go spec-table
// pattern (a name mapped to a fixed signature, looked up by the resolver
// rather than walked from a parsed declaration), trimmed from a dozen
// effectful registrations down to the one pure signature spec.md names.
package builtin

import "github.com/zephyr-lang/zephyrc/internal/types"

// Alloc is the identifier for Zephyr's single recognized allocator
// primitive: `(I32) -> I32`, taking a byte count and returning a pointer
// (spec.md §11).
const Alloc = "@alloc"

var registry = map[string]types.Type{
	Alloc: types.Fun([]types.Type{types.I32()}, []types.Type{types.I32()}),
}

// Lookup returns the fixed signature for a builtin identifier, if name
// names one.
func Lookup(name string) (types.Type, bool) {
	sig, ok := registry[name]
	return sig, ok
}
