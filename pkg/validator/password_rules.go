package validator

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/rulekit"
)

// MatchesBcrypt passes a plaintext string when it matches the bcrypt hash
// supplied as the first extra argument (string or []byte). It fails when no
// hash is supplied.
func MatchesBcrypt() rulekit.Rule {
	return rulekit.Immediate(func(v any, extra ...any) bool {
		password, ok := v.(string)
		if !ok || len(extra) == 0 {
			return false
		}

		var hash []byte
		switch h := extra[0].(type) {
		case string:
			hash = []byte(h)
		case []byte:
			hash = h
		default:
			return false
		}
		return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	})
}

// StrongPassword passes strings of at least minLength runes containing a
// lowercase letter, an uppercase letter, a digit and a symbol.
func StrongPassword(minLength int) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		n, _ := lengthOf(s)
		return n >= minLength &&
			ContainsLowercasePattern.MatchString(s) &&
			ContainsUppercasePattern.MatchString(s) &&
			ContainsDigitPattern.MatchString(s) &&
			ContainsSymbolPattern.MatchString(s)
	})
}
