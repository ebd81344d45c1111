package rules

import (
	"fmt"
	"regexp/syntax"
)

// DefaultMaxPatternLength caps merchant-pattern length. Anything longer
// is rejected before the pattern is even parsed.
const DefaultMaxPatternLength = 200

// CheckPattern is the admission gate for user-supplied merchant
// patterns. It runs before any regex construction and rejects patterns
// that are oversized, unparseable, or statically flagged as vulnerable
// to catastrophic backtracking (nested quantifiers).
//
// Go's regexp engine is linear-time, so the nested-quantifier class
// cannot stall this process; the gate still rejects it so that the same
// rule set stays safe when evaluated by the dashboard's other runtimes,
// which use backtracking engines. Fail closed: a pattern that does not
// pass never runs against merchant text.
func CheckPattern(pattern string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = DefaultMaxPatternLength
	}
	if len(pattern) > maxLength {
		return fmt.Errorf("pattern length %d exceeds limit of %d characters", len(pattern), maxLength)
	}

	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if hasNestedQuantifier(parsed, false) {
		return fmt.Errorf("pattern contains nested quantifiers and could backtrack catastrophically")
	}

	return nil
}

// hasNestedQuantifier walks the parse tree looking for an unbounded
// repetition inside another repetition, e.g. (a+)+ or (a*)*.
func hasNestedQuantifier(re *syntax.Regexp, inRepeat bool) bool {
	repeats := isRepetition(re)
	if repeats && inRepeat {
		return true
	}
	for _, sub := range re.Sub {
		if hasNestedQuantifier(sub, inRepeat || repeats) {
			return true
		}
	}
	return false
}

func isRepetition(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus:
		return true
	case syntax.OpRepeat:
		// Counted repetition with no upper bound behaves like a star.
		return re.Max == -1 || re.Max > 1
	}
	return false
}
