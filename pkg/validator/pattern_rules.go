package validator

import (
	"regexp"

	"github.com/dmitrymomot/rulekit"
)

// MatchesRegex passes strings matched by re.
func MatchesRegex(re *regexp.Regexp) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	})
}

// Matches compiles expr and returns MatchesRegex for it.
// It panics if expr is not a valid regular expression.
func Matches(expr string) rulekit.Rule {
	return MatchesRegex(regexp.MustCompile(expr))
}

// DoesNotMatchRegex passes strings not matched by re. Non-strings fail.
func DoesNotMatchRegex(re *regexp.Regexp) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		s, ok := v.(string)
		return ok && !re.MatchString(s)
	})
}

// ContainsUppercase passes strings with at least one uppercase letter.
func ContainsUppercase() rulekit.Rule { return MatchesRegex(ContainsUppercasePattern) }

// ContainsLowercase passes strings with at least one lowercase letter.
func ContainsLowercase() rulekit.Rule { return MatchesRegex(ContainsLowercasePattern) }

// ContainsDigit passes strings with at least one digit.
func ContainsDigit() rulekit.Rule { return MatchesRegex(ContainsDigitPattern) }

// ContainsSymbol passes strings with at least one symbol character.
func ContainsSymbol() rulekit.Rule { return MatchesRegex(ContainsSymbolPattern) }
