// Package errors provides centralized error code definitions for Zephyr.
// All error codes follow a consistent taxonomy for AI-friendly error
// reporting (spec.md §7).
package errors

// Error code constants organized by phase. Each constant represents a
// specific error condition with structured reporting.
const (
	// ============================================================================
	// Name resolution errors (RES###) — spec.md §4.1, §7
	// ============================================================================

	// RES001 indicates a reference to an identifier with no declaration in scope.
	RES001 = "RES001"

	// RES002 indicates a second declaration of a name already bound in the
	// same scope.
	RES002 = "RES002"

	// RES003 indicates an import naming a module not present in the
	// namespace map.
	RES003 = "RES003"

	// RES004 indicates a reference to a declaration not marked public.
	RES004 = "RES004"

	// RES005 indicates a use of a name before its declaration, in a
	// position where the language requires declaration-first ordering.
	RES005 = "RES005"

	// ============================================================================
	// Type errors (TYP###) — spec.md §4.2, §7
	// ============================================================================

	// TYP001 indicates a constraint whose application emptied a candidate set.
	TYP001 = "TYP001"

	// TYP002 indicates a type variable the defaulting pass could not resolve
	// to a single candidate.
	TYP002 = "TYP002"

	// TYP003 indicates a call with the wrong number of arguments.
	TYP003 = "TYP003"

	// TYP004 indicates a call where the callee's type is not a function type.
	TYP004 = "TYP004"

	// TYP005 indicates a function type constraint resolved to more than one
	// return type.
	TYP005 = "TYP005"

	// ============================================================================
	// Asm validator errors (ASM###) — spec.md §4.3, §7
	// ============================================================================

	// ASM001 indicates an unrecognized inline-assembly opcode.
	ASM001 = "ASM001"

	// ASM002 indicates an operand count or shape mismatch for an opcode.
	ASM002 = "ASM002"

	// ASM003 indicates the virtual stack height at function exit does not
	// match the function's declared return arity.
	ASM003 = "ASM003"

	// ASM004 indicates an asm function's declared return type does not match
	// its enclosing signature.
	ASM004 = "ASM004"

	// ============================================================================
	// Lowering-internal errors (LOW###) — spec.md §4.4, §7
	// ============================================================================

	// LOW001 indicates a should-never-happen state reached only if an
	// earlier pass failed to reject invalid input (internal error, not a
	// user-facing diagnostic).
	LOW001 = "LOW001"

	// ============================================================================
	// Unsupported-but-documented gaps (UNS###) — spec.md §4.4, §7
	// ============================================================================

	// UNS001 indicates an indirect call, which this implementation documents
	// as unsupported rather than silently miscompiling.
	UNS001 = "UNS001"

	// UNS002 indicates a first-class function value used outside a direct
	// call's callee position.
	UNS002 = "UNS002"

	// UNS003 indicates a multi-return function signature.
	UNS003 = "UNS003"
)

// Info provides structured information about an error code.
type Info struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps error codes to their information.
var Registry = map[string]Info{
	RES001: {RES001, "resolve", "scope", "unknown identifier"},
	RES002: {RES002, "resolve", "scope", "duplicate declaration"},
	RES003: {RES003, "resolve", "module", "import not found"},
	RES004: {RES004, "resolve", "visibility", "visibility violation"},
	RES005: {RES005, "resolve", "scope", "use before declaration"},

	TYP001: {TYP001, "typecheck", "constraint", "unsatisfiable constraint"},
	TYP002: {TYP002, "typecheck", "defaulting", "ambiguous type"},
	TYP003: {TYP003, "typecheck", "call", "arity mismatch"},
	TYP004: {TYP004, "typecheck", "call", "non-function called"},
	TYP005: {TYP005, "typecheck", "function", "multi-return type"},

	ASM001: {ASM001, "asm", "opcode", "unknown opcode"},
	ASM002: {ASM002, "asm", "arity", "bad operand arity"},
	ASM003: {ASM003, "asm", "stack", "stack-balance violation"},
	ASM004: {ASM004, "asm", "signature", "signature mismatch"},

	LOW001: {LOW001, "lower", "internal", "internal error"},

	UNS001: {UNS001, "lower", "unsupported", "indirect call"},
	UNS002: {UNS002, "lower", "unsupported", "first-class function value"},
	UNS003: {UNS003, "lower", "unsupported", "multi-return function"},
}

// Lookup returns information about an error code.
func Lookup(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}
