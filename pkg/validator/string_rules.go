package validator

import (
	"math"

	"github.com/dmitrymomot/rulekit"
)

// MinLength passes strings, slices, arrays and maps with at least min elements.
// String length is counted in runes.
func MinLength(min int) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		n, ok := lengthOf(v)
		return ok && n >= min
	})
}

// MaxLength passes strings, slices, arrays and maps with at most max elements.
func MaxLength(max int) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		n, ok := lengthOf(v)
		return ok && n <= max
	})
}

// Length passes values with exactly n elements.
func Length(n int) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		l, ok := lengthOf(v)
		return ok && l == n
	})
}

// StringBetween passes strings whose rune count lies in [min, max].
// A negative max means no upper bound.
func StringBetween(min, max int) rulekit.Rule {
	if max < 0 {
		max = math.MaxInt
	}
	return rulekit.Immediate(func(v any, _ ...any) bool {
		if _, ok := v.(string); !ok {
			return false
		}
		n, _ := lengthOf(v)
		return n >= min && n <= max
	})
}
