package validator

import (
	"math"

	"github.com/dmitrymomot/rulekit"
)

// Min passes numbers greater than or equal to min.
func Min(min float64) rulekit.Rule {
	return NumberBetween(min, math.Inf(1))
}

// Max passes numbers less than or equal to max.
func Max(max float64) rulekit.Rule {
	return NumberBetween(math.Inf(-1), max)
}

// NumberBetween passes numbers in the closed interval [min, max].
// NaN never passes.
func NumberBetween(min, max float64) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		f, ok := floatOf(v)
		return ok && f >= min && f <= max
	})
}

// Integer passes numbers without a fractional part.
func Integer() rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		f, ok := floatOf(v)
		return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
	})
}
