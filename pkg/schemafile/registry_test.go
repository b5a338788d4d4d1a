package schemafile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/schemafile"
)

func TestRegistry(t *testing.T) {
	reg := schemafile.NewRegistry()
	names := reg.Names()
	for _, want := range []string{"type", "pattern", "regex", "min", "max", "between", "lengthBetween", "oneOf", "uuid", "bcrypt", "redisMember", "rowExists"} {
		assert.Contains(t, names, want)
	}

	t.Run("custom builder", func(t *testing.T) {
		even := func(schemafile.Args) (rulekit.Rule, error) {
			return rulekit.Immediate(func(v any, _ ...any) bool {
				n, ok := v.(int)
				return ok && n%2 == 0
			}), nil
		}
		require.NoError(t, reg.Register("even", even))
		assert.ErrorIs(t, reg.Register("even", even), schemafile.ErrDuplicateRule)
		assert.ErrorIs(t, reg.Register("", even), schemafile.ErrInvalidArgs)

		rule, err := reg.Build("even", nil)
		require.NoError(t, err)
		ok, err := rule.Run(context.Background(), 4)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("between", func(t *testing.T) {
		rule, err := reg.Build("between", schemafile.Args{1, 10.5})
		require.NoError(t, err)
		for v, want := range map[any]bool{1: true, 10.5: true, 11: false, 0: false} {
			ok, _ := rule.Run(context.Background(), v)
			assert.Equal(t, want, ok, "%v", v)
		}
	})

	t.Run("uuid version", func(t *testing.T) {
		rule, err := reg.Build("uuid", schemafile.Args{4})
		require.NoError(t, err)
		ok, _ := rule.Run(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		assert.False(t, ok)
		ok, _ = rule.Run(context.Background(), "f47ac10b-58cc-4372-a567-0e02b2c3d479")
		assert.True(t, ok)

		_, err = reg.Build("uuid", schemafile.Args{1, 2})
		assert.ErrorIs(t, err, schemafile.ErrInvalidArgs)
	})

	t.Run("integer args", func(t *testing.T) {
		_, err := reg.Build("minLength", schemafile.Args{2.5})
		assert.ErrorIs(t, err, schemafile.ErrInvalidArgs)
	})

	t.Run("unknown pattern", func(t *testing.T) {
		_, err := reg.Build("pattern", schemafile.Args{"nope"})
		assert.Error(t, err)
	})
}

func TestDecodeDocument(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		obj, err := schemafile.DecodeDocument([]byte(` {"name": "alice", "age": 30, "tags": ["a"]}`))
		require.NoError(t, err)
		assert.Equal(t, "alice", obj["name"])
		assert.Equal(t, float64(30), obj["age"])
		assert.Equal(t, []any{"a"}, obj["tags"])
	})

	t.Run("yaml", func(t *testing.T) {
		obj, err := schemafile.DecodeDocument([]byte("name: alice\nage: 30\n"))
		require.NoError(t, err)
		assert.Equal(t, "alice", obj["name"])
		assert.Equal(t, 30, obj["age"])
	})

	t.Run("invalid", func(t *testing.T) {
		for _, src := range []string{"", "   ", "[1, 2]", "just text", "{broken"} {
			_, err := schemafile.DecodeDocument([]byte(src))
			assert.ErrorIs(t, err, schemafile.ErrInvalidDocument, "%q", src)
		}
	})
}
