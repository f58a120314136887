package errors

import (
	"sort"

	"github.com/zephyr-lang/zephyrc/internal/ast"
)

// Sink is the error-sink collaborator described in spec.md §6/§7. Every
// pass holds one mutably; no component retains a reference beyond its own
// pass (spec.md §5). Core never formats diagnostics itself — Sink only
// accumulates structured Reports for a caller (the CLI) to render.
type Sink interface {
	Report(loc ast.Pos, code, message string)
	// ReportWithFix is Report plus a suggested remediation, for diagnostics
	// that can name one (internal/types/defaulting.go's TYP002 ambiguous
	// defaulting is the one caller today).
	ReportWithFix(loc ast.Pos, code, message string, fix *Fix)
	ReportInternal(loc ast.Pos, code, message string)
	ReportNoLoc(code, message string)
	FlushAndExitIfErr() bool // true if the pipeline must abort before the next pass
	GetFile(fileID string) (string, bool)
}

// MemorySink is the concrete Sink used by the pipeline driver: it
// accumulates Reports in memory and never itself exits the process —
// "exit" here means "signal the driver to stop", per spec.md §5's
// cooperative, abort-on-error cancellation model.
type MemorySink struct {
	reports []*Report
	files   map[string]string
}

// NewMemorySink creates an empty sink, optionally seeded with file contents
// for GetFile (used by diagnostic formatting outside core).
func NewMemorySink(files map[string]string) *MemorySink {
	if files == nil {
		files = map[string]string{}
	}
	return &MemorySink{files: files}
}

func (s *MemorySink) Report(loc ast.Pos, code, message string) {
	s.reports = append(s.reports, located(loc, code, message, nil))
}

func (s *MemorySink) ReportWithFix(loc ast.Pos, code, message string, fix *Fix) {
	s.reports = append(s.reports, located(loc, code, message, fix))
}

func (s *MemorySink) ReportInternal(loc ast.Pos, code, message string) {
	s.reports = append(s.reports, internalReport(loc, code, message))
}

func (s *MemorySink) ReportNoLoc(code, message string) {
	s.reports = append(s.reports, noLoc(code, message))
}

// FlushAndExitIfErr reports whether the sink holds any diagnostic, sorting
// accumulated reports by source position first so repeated runs over the
// same input produce byte-identical output (SPEC_FULL §12). The pipeline
// driver calls this between every pass (spec.md §5).
func (s *MemorySink) FlushAndExitIfErr() bool {
	sort.SliceStable(s.reports, func(i, j int) bool {
		return lessReport(s.reports[i], s.reports[j])
	})
	return len(s.reports) > 0
}

func (s *MemorySink) GetFile(fileID string) (string, bool) {
	src, ok := s.files[fileID]
	return src, ok
}

// Reports returns the accumulated diagnostics in their current order (call
// FlushAndExitIfErr first to sort them deterministically).
func (s *MemorySink) Reports() []*Report { return s.reports }

// HasErrors reports whether any diagnostic has been recorded, without
// sorting or mutating state.
func (s *MemorySink) HasErrors() bool { return len(s.reports) > 0 }

func lessReport(a, b *Report) bool {
	af, al, ac := spanKey(a)
	bf, bl, bc := spanKey(b)
	if af != bf {
		return af < bf
	}
	if al != bl {
		return al < bl
	}
	return ac < bc
}

func spanKey(r *Report) (file string, line, col int) {
	if r.Span == nil {
		return "", 0, 0
	}
	return r.Span.Start.File, r.Span.Start.Line, r.Span.Start.Column
}
