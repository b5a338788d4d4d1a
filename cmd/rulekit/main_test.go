package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/config"
)

const testSchema = `
name: signup
strict: true
fields:
  username:
    rules:
      - {name: Must be a string, rule: type, args: [string]}
      - {name: Must be at least 3 characters, rule: minLength, args: [3]}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func cleanBackends(t *testing.T) {
	t.Helper()
	t.Setenv("REDIS_URL", "")
	t.Setenv("PG_CONN_URL", "")
	t.Setenv("APP_ENV", "test")
	config.ResetCache()
	t.Cleanup(config.ResetCache)
}

func TestCheckCommand(t *testing.T) {
	cleanBackends(t)
	dir := t.TempDir()
	schema := writeFile(t, dir, "signup.yaml", testSchema)

	t.Run("valid document", func(t *testing.T) {
		input := writeFile(t, dir, "ok.json", `{"username": "alice"}`)
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"check", "-schema", schema, "-input", input}, nil, &stdout, &stderr)
		require.Equal(t, exitOK, code, stderr.String())

		var body map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &body))
		assert.Equal(t, "signup", body["schema"])
		assert.Equal(t, true, body["valid"])
	})

	t.Run("invalid document from stdin", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		stdin := strings.NewReader("username: al\nadmin: true\n")
		code := run(context.Background(), []string{"check", "-schema", schema}, stdin, &stdout, &stderr)
		require.Equal(t, exitInvalid, code, stderr.String())

		var body struct {
			Valid  bool                `json:"valid"`
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &body))
		assert.False(t, body.Valid)
		assert.Equal(t, []string{"Must be at least 3 characters"}, body.Errors["username"])
		assert.Equal(t, []string{"Key not allowed"}, body.Errors["admin"])
	})

	t.Run("missing schema flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"check"}, nil, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
	})

	t.Run("broken schema", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.yaml", "name: x\nfields:\n  a:\n    rules: [{name: r, rule: nope}]\n")
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"check", "-schema", broken}, strings.NewReader("{}"), &stdout, &stderr)
		assert.Equal(t, exitError, code)
		assert.Contains(t, stderr.String(), "unknown rule")
	})

	t.Run("malformed input", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"check", "-schema", schema}, strings.NewReader("[1, 2]"), &stdout, &stderr)
		assert.Equal(t, exitError, code)
	})
}

func TestCheckCommandWithRedis(t *testing.T) {
	cleanBackends(t)
	mr := miniredis.RunT(t)
	_, err := mr.SAdd("usernames", "alice")
	require.NoError(t, err)
	t.Setenv("REDIS_URL", "redis://"+mr.Addr()+"/0")

	dir := t.TempDir()
	schema := writeFile(t, dir, "register.yaml", `
fields:
  username:
    rules:
      - {name: Username is taken, rule: redisNotMember, args: [usernames]}
`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"check", "-schema", schema}, strings.NewReader(`{"username": "alice"}`), &stdout, &stderr)
	require.Equal(t, exitInvalid, code, stderr.String())
	assert.Contains(t, stdout.String(), "Username is taken")

	stdout.Reset()
	code = run(context.Background(), []string{"check", "-schema", schema}, strings.NewReader(`{"username": "carol"}`), &stdout, &stderr)
	assert.Equal(t, exitOK, code, stderr.String())
}

func TestRulesAndUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitOK, run(context.Background(), []string{"rules"}, nil, &stdout, &stderr))
	assert.Contains(t, strings.Fields(stdout.String()), "lengthBetween")

	assert.Equal(t, exitUsage, run(context.Background(), nil, nil, &stdout, &stderr))
	assert.Equal(t, exitUsage, run(context.Background(), []string{"bogus"}, nil, &stdout, &stderr))
}
