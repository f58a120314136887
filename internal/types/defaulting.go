package types

import (
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

// Default runs the post-fixed-point defaulting pass spec.md §4.2 describes:
// every type variable that is still a non-singleton integer candidate set
// ({I32, I64}) defaults to I64; any other non-singleton or empty candidate
// set is an ambiguous-type diagnostic (TYP002); singleton sets pass through
// as the resolved type.
//
// Grounded on the teacher's internal/types/defaulting.go Default-
// ing-as-last-resort-pass shape, simplified from numeric-class defaulting
// across a dozen numeric kinds down to Zephyr's single Int-ambiguity rule.
func Default(tvs *store.Store[*TypeVar], sink errors.Sink) *store.Store[Type] {
	return store.Transmute(tvs, func(tv *TypeVar) (Type, bool) {
		if t, ok := tv.Concrete(); ok {
			return t, true
		}
		if isIntegerCandidateSet(tv.Candidates) {
			return I64(), true
		}
		sink.ReportWithFix(tv.Loc, errors.TYP002, "ambiguous type: "+tv.String(), ambiguityFix(tv))
		return Type{}, false
	})
}

// ambiguityFix suggests declaring the variable as its lowest-sorted
// remaining candidate (report.go's Fix doc comment gives exactly this case,
// "declare i as i32", as its motivating example). An empty candidate set is
// unsatisfiable rather than ambiguous — there is nothing to suggest.
func ambiguityFix(tv *TypeVar) *errors.Fix {
	if len(tv.Candidates) == 0 {
		return nil
	}
	return &errors.Fix{
		Suggestion: "declare as " + tv.Candidates[0].String(),
		Confidence: 1 / float64(len(tv.Candidates)),
	}
}

func isIntegerCandidateSet(cands []Type) bool {
	ints := IntegerCandidates()
	if len(cands) != len(ints) {
		return false
	}
	for i := range cands {
		if !cands[i].Equals(ints[i]) {
			return false
		}
	}
	return true
}
