package validator_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func passes(t *testing.T, rule rulekit.Rule, v any, extra ...any) bool {
	t.Helper()
	ok, err := rule.Run(context.Background(), v, extra...)
	return err == nil && ok
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name  string
		kind  validator.Kind
		value any
		want  bool
	}{
		{"string", validator.String, "text", true},
		{"string rejects number", validator.String, 10, false},
		{"int is number", validator.Number, 10, true},
		{"float is number", validator.Number, 3.5, true},
		{"json number is number", validator.Number, json.Number("12"), true},
		{"string is not number", validator.Number, "12", false},
		{"boolean", validator.Boolean, true, true},
		{"map is object", validator.Object, map[string]any{"a": 1}, true},
		{"struct is object", validator.Object, struct{ A int }{1}, true},
		{"slice is array", validator.Array, []any{1, 2}, true},
		{"nil is null", validator.Null, nil, true},
		{"nil is not object", validator.Object, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, passes(t, validator.IsType(tt.kind), tt.value))
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := validator.ParseKind(" String ")
	require.NoError(t, err)
	assert.Equal(t, validator.String, k)

	_, err = validator.ParseKind("function")
	assert.ErrorIs(t, err, validator.ErrUnknownKind)
}

func TestRequired(t *testing.T) {
	rule := validator.Required()
	assert.True(t, passes(t, rule, "x"))
	assert.True(t, passes(t, rule, 0))
	assert.False(t, passes(t, rule, "   "))
	assert.False(t, passes(t, rule, nil))
}

func TestLengthRules(t *testing.T) {
	t.Run("min length", func(t *testing.T) {
		rule := validator.MinLength(3)
		assert.True(t, passes(t, rule, "abc"))
		assert.True(t, passes(t, rule, "äöü"))
		assert.True(t, passes(t, rule, []int{1, 2, 3}))
		assert.False(t, passes(t, rule, "ab"))
		assert.False(t, passes(t, rule, 123))
		assert.False(t, passes(t, rule, nil))
	})

	t.Run("max length", func(t *testing.T) {
		rule := validator.MaxLength(2)
		assert.True(t, passes(t, rule, "ab"))
		assert.True(t, passes(t, rule, map[string]int{"a": 1}))
		assert.False(t, passes(t, rule, "abc"))
	})

	t.Run("exact length", func(t *testing.T) {
		assert.True(t, passes(t, validator.Length(2), []string{"a", "b"}))
		assert.False(t, passes(t, validator.Length(2), "a"))
	})

	t.Run("string between is inclusive", func(t *testing.T) {
		rule := validator.StringBetween(2, 4)
		assert.True(t, passes(t, rule, "ab"))
		assert.True(t, passes(t, rule, "abcd"))
		assert.False(t, passes(t, rule, "a"))
		assert.False(t, passes(t, rule, "abcde"))
		assert.False(t, passes(t, rule, []int{1, 2}))
	})

	t.Run("string between without upper bound", func(t *testing.T) {
		assert.True(t, passes(t, validator.StringBetween(1, -1), "a very long string"))
	})
}

func TestNumericRules(t *testing.T) {
	assert.True(t, passes(t, validator.Min(5), 5))
	assert.True(t, passes(t, validator.Min(5), 5.5))
	assert.False(t, passes(t, validator.Min(5), int8(4)))
	assert.False(t, passes(t, validator.Min(5), "10"))

	assert.True(t, passes(t, validator.Max(5), uint(5)))
	assert.False(t, passes(t, validator.Max(5), 6))

	between := validator.NumberBetween(1, 100)
	assert.True(t, passes(t, between, 1))
	assert.True(t, passes(t, between, 100.0))
	assert.True(t, passes(t, between, json.Number("50")))
	assert.False(t, passes(t, between, 0))
	assert.False(t, passes(t, between, nil))

	assert.True(t, passes(t, validator.Integer(), 4.0))
	assert.False(t, passes(t, validator.Integer(), 4.2))
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"email", "user@example.com", true},
		{"email", "user.name+tag@sub.example.org", true},
		{"email", "no-at-sign.example.com", false},
		{"url", "https://example.com/path?q=1", true},
		{"url", "example.com", true},
		{"url", "not a url", false},
		{"mysql_timestamp", "2024-01-02 03:04:05", true},
		{"mysql_timestamp", "2024-01-02T03:04:05", false},
		{"iso8601_datetime_strict", "2024-01-02T03:04:05Z", true},
		{"iso8601_datetime_strict", "2024-01-02T03:04:05.123+02:00", true},
		{"iso8601_datetime_strict", "2024-01-02T03:04", false},
		{"iso8601_datetime", "2024-01-02T03:04", true},
		{"iso8601_time", "23:59:59", true},
		{"iso8601_time", "24:00:00", false},
		{"contains_symbol", "abc!", true},
		{"contains_symbol", "abc 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.value, func(t *testing.T) {
			re, err := validator.Pattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, passes(t, validator.MatchesRegex(re), tt.value))
		})
	}

	t.Run("unknown pattern", func(t *testing.T) {
		_, err := validator.Pattern("phone")
		assert.ErrorIs(t, err, validator.ErrUnknownPattern)
	})

	t.Run("names are sorted", func(t *testing.T) {
		names := validator.PatternNames()
		assert.IsNonDecreasing(t, names)
		assert.Contains(t, names, "email")
	})

	t.Run("non-string fails", func(t *testing.T) {
		assert.False(t, passes(t, validator.Matches(`^\d+$`), 123))
		assert.False(t, passes(t, validator.DoesNotMatchRegex(validator.ContainsDigitPattern), 123))
	})

	t.Run("character classes", func(t *testing.T) {
		assert.True(t, passes(t, validator.ContainsUppercase(), "aB"))
		assert.False(t, passes(t, validator.ContainsLowercase(), "AB"))
		assert.True(t, passes(t, validator.ContainsDigit(), "a1"))
		assert.True(t, passes(t, validator.ContainsSymbol(), "a#"))
	})
}

func TestChoiceRules(t *testing.T) {
	oneOf := validator.OneOf("draft", "published", 1, 2)
	assert.True(t, passes(t, oneOf, "draft"))
	assert.True(t, passes(t, oneOf, float64(2)))
	assert.False(t, passes(t, oneOf, "archived"))
	assert.False(t, passes(t, oneOf, 3))

	noneOf := validator.NoneOf("admin", "root")
	assert.True(t, passes(t, noneOf, "alice"))
	assert.False(t, passes(t, noneOf, "root"))
}

func TestUUIDRules(t *testing.T) {
	v4 := uuid.New()

	assert.True(t, passes(t, validator.ValidUUID(), v4.String()))
	assert.True(t, passes(t, validator.ValidUUID(), v4))
	assert.False(t, passes(t, validator.ValidUUID(), "urn:uuid:"+v4.String()))
	assert.False(t, passes(t, validator.ValidUUID(), 42))

	assert.True(t, passes(t, validator.ValidUUIDVersion(4), v4.String()))
	assert.False(t, passes(t, validator.ValidUUIDVersion(7), v4.String()))

	assert.True(t, passes(t, validator.NonNilUUID(), v4.String()))
	assert.False(t, passes(t, validator.NonNilUUID(), uuid.Nil.String()))
}

func TestPasswordRules(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	rule := validator.MatchesBcrypt()
	assert.True(t, passes(t, rule, "s3cret!", hash))
	assert.True(t, passes(t, rule, "s3cret!", string(hash)))
	assert.False(t, passes(t, rule, "wrong", hash))
	assert.False(t, passes(t, rule, "s3cret!"))
	assert.False(t, passes(t, rule, "s3cret!", 42))

	strong := validator.StrongPassword(8)
	assert.True(t, passes(t, strong, "Passw0rd!"))
	assert.False(t, passes(t, strong, "Pw0!"))
	assert.False(t, passes(t, strong, "password1!"))
}

func TestMatchesBcryptThroughEngine(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	set := rulekit.NewRuleSet().Add("matches stored hash", validator.MatchesBcrypt())
	assert.Empty(t, rulekit.EvaluateSync(context.Background(), "s3cret!", set, hash))
	assert.Equal(t, []string{"matches stored hash"}, rulekit.EvaluateSync(context.Background(), "nope", set, hash))
}
