package errors

import (
	"encoding/json"
	"errors"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/sid"
)

// Schema is the report format version every Report is tagged with, per
// spec.md §7.
const Schema = "zephyr.error/v1"

// Fix is a suggested remediation attached to a Report, e.g. "declare i as
// i32" for an ambiguous-defaulting diagnostic (internal/types/defaulting.go's
// TYP002 is the one diagnostic in this tree that constructs one).
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured error type for Zephyr
// All error builders should return *Report, which can be wrapped as ReportError
type Report struct {
	Schema  string         `json:"schema"`         // Always Schema
	Code    string         `json:"code"`           // Error code (RES001, TYP002, ASM003, etc. — see codes.go)
	Phase   string         `json:"phase"`          // Phase: "resolve", "typecheck", "asm", "lower", etc.
	Message string         `json:"message"`        // Human-readable message
	Span    *ast.Span      `json:"span,omitempty"` // Source location (optional)
	Data    map[string]any `json:"data,omitempty"` // Structured data (sorted keys)
	Fix     *Fix           `json:"fix,omitempty"`  // Suggested fix (optional)
}

// located builds a Report for a diagnostic tied to a source position,
// resolving its Phase from the code taxonomy (codes.go) and attaching a
// position-derived stable id to Data (SPEC_FULL §12) so a CLI or CI system
// diffing two runs can correlate the same report across an unrelated edit
// elsewhere in the file, rather than by list position. fix may be nil.
func located(loc ast.Pos, code, message string, fix *Fix) *Report {
	return &Report{
		Schema:  Schema,
		Code:    code,
		Phase:   phaseOf(code),
		Message: message,
		Span:    &ast.Span{Start: loc, End: loc},
		Data:    stableIDData(loc, code),
		Fix:     fix,
	}
}

// internalReport builds a Report for a should-never-happen condition (spec.md
// §7's "lowering internal" kind): no stable id, phase is always "internal"
// regardless of what codes.go says the code's phase normally is.
func internalReport(loc ast.Pos, code, message string) *Report {
	return &Report{
		Schema:  Schema,
		Code:    code,
		Phase:   "internal",
		Message: message,
		Span:    &ast.Span{Start: loc, End: loc},
	}
}

// noLoc builds a Report for a diagnostic with no associated source position
// (e.g. a missing module import named on the command line rather than in a
// source file).
func noLoc(code, message string) *Report {
	return &Report{
		Schema:  Schema,
		Code:    code,
		Phase:   phaseOf(code),
		Message: message,
	}
}

// stableIDData attaches a position-derived stable id to a diagnostic's Data
// map (spec.md §7's Data field). Grounded on the teacher's internal/sid (hash
// of canonical path, byte offsets and node kind) — here the "kind" is the
// diagnostic code itself, since a Report has no AST node to hash.
func stableIDData(loc ast.Pos, code string) map[string]any {
	if loc.File == "" && loc.Offset == 0 {
		return nil
	}
	id := sid.NewSID(loc.File, loc.Offset, loc.Offset, code, nil)
	return map[string]any{"stable_id": string(id)}
}

// phaseOf resolves a code's documented phase (codes.go's Registry), falling
// back to "unknown" for a code that was never registered.
func phaseOf(code string) string {
	if info, ok := Lookup(code); ok {
		return info.Phase
	}
	return "unknown"
}

// ReportError wraps a Report as an error
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
// Call sites should return errors.WrapReport(report) to preserve structure
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON (deterministic, sorted keys)
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewGeneric creates a generic error report for runtime errors
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  Schema,
		Code:    "RUNTIME",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
