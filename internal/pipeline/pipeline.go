// Package pipeline wires the four core passes (spec.md §5): resolve, check,
// validate-asm, lower. One call per pass, FlushAndExitIfErr checked between
// each so later passes never run over diagnosed-broken state.
//
// Grounded on the teacher's internal/pipeline/pipeline.go Config/Result
// shape (Mode/Dump*/Trace* fields, phased Run with per-phase timing),
// trimmed from its parse/elaborate/eval/link/REPL stages down to the four
// compile-only stages spec.md names, and from its eval-oriented Result
// (Value, EvalEnv, Instantiations) down to compile artifacts only — this
// pipeline never evaluates anything (spec.md §1 Non-goals: no interpreter).
package pipeline

import (
	"time"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/asmvalidate"
	"github.com/zephyr-lang/zephyrc/internal/check"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/iface"
	"github.com/zephyr-lang/zephyrc/internal/mir"
	"github.com/zephyr-lang/zephyrc/internal/pprint"
	"github.com/zephyr-lang/zephyrc/internal/resolve"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

// Config selects which intermediate representations Run renders into
// Result.Trace, mirroring the CLI's "-v names,types,constraints,typed-types,
// mir" flag (SPEC_FULL §11).
type Config struct {
	ModuleName string
	Module     store.ModuleID
	Namespace  resolve.Namespace // cross-module symbols visible to this compile (spec.md §6)

	DumpNames       bool
	DumpTypeVars    bool
	DumpConstraints bool
	DumpTypedTypes  bool
	DumpMIR         bool
}

// Result carries every pass's output plus optional trace dumps. Iface is
// nil if resolution or checking failed (spec.md §5: an aborted pipeline
// produces no interface).
type Result struct {
	Resolved     *resolve.ResolvedProgram
	Typed        *check.TypedProgram
	MIR          *mir.Program
	Iface        *iface.Iface
	Trace        map[string]string
	PhaseTimings map[string]time.Duration
	Aborted      bool // true if a pass reported diagnostics and later passes were skipped
}

// Run executes resolve → check → validate-asm → lower → export-iface over
// file, stopping after the first pass that leaves diagnostics in sink
// (spec.md §5's cooperative abort model — sink.FlushAndExitIfErr is
// advisory, Run is the one thing that actually stops).
func Run(cfg Config, file *ast.File, sink errors.Sink) *Result {
	res := &Result{Trace: map[string]string{}, PhaseTimings: map[string]time.Duration{}}

	start := time.Now()
	resolver := resolve.NewResolver(cfg.Module, cfg.Namespace, sink)
	res.Resolved = resolver.Resolve(file)
	res.PhaseTimings["resolve"] = time.Since(start)

	if cfg.DumpNames {
		res.Trace["names"] = pprint.Names(res.Resolved.Names)
	}
	if cfg.DumpTypeVars {
		res.Trace["types"] = pprint.TypeVars(res.Resolved.TVars)
	}
	if cfg.DumpConstraints {
		res.Trace["constraints"] = pprint.Constraints(res.Resolved.Constraints)
	}
	if sink.FlushAndExitIfErr() {
		res.Aborted = true
		return res
	}

	start = time.Now()
	res.Typed = check.Check(res.Resolved, sink)
	res.PhaseTimings["check"] = time.Since(start)

	if cfg.DumpTypedTypes {
		res.Trace["typed-types"] = pprint.TypedTypes(res.Typed.Types)
	}
	if sink.FlushAndExitIfErr() {
		res.Aborted = true
		return res
	}

	start = time.Now()
	asmvalidate.Validate(res.Typed, sink)
	res.PhaseTimings["asmvalidate"] = time.Since(start)
	if sink.FlushAndExitIfErr() {
		res.Aborted = true
		return res
	}

	start = time.Now()
	res.MIR = mir.Lower(res.Typed, sink)
	res.PhaseTimings["lower"] = time.Since(start)

	if cfg.DumpMIR {
		res.Trace["mir"] = pprint.MIR(res.MIR)
	}
	if sink.FlushAndExitIfErr() {
		res.Aborted = true
		return res
	}

	res.Iface = iface.Export(cfg.ModuleName, res.Typed)
	return res
}
