package lookup_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/lookup"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRules(t *testing.T) {
	mr, client := setupRedis(t)
	_, err := mr.SAdd("usernames", "alice", "bob")
	require.NoError(t, err)
	require.NoError(t, mr.Set("plan:pro", "1"))
	_, err = mr.SAdd("ids", "42")
	require.NoError(t, err)

	ctx := context.Background()
	run := func(rule rulekit.Rule, v any) (bool, error) {
		require.True(t, rule.IsDeferred())
		return rule.Run(ctx, v)
	}

	t.Run("member", func(t *testing.T) {
		ok, err := run(lookup.Member(client, "usernames"), "alice")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = run(lookup.Member(client, "usernames"), "carol")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = run(lookup.Member(client, "ids"), 42)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not member", func(t *testing.T) {
		ok, err := run(lookup.NotMember(client, "usernames"), "carol")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = run(lookup.NotMember(client, "usernames"), "bob")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("key exists", func(t *testing.T) {
		ok, err := run(lookup.KeyExists(client, "plan:"), "pro")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = run(lookup.KeyExists(client, "plan:"), "enterprise")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := run(lookup.Member(client, "usernames"), nil)
		assert.ErrorIs(t, err, lookup.ErrUnsupportedValue)

		_, err = run(lookup.Member(client, "usernames"), map[string]any{})
		assert.ErrorIs(t, err, lookup.ErrUnsupportedValue)
	})
}

func TestRedisRulesInSchema(t *testing.T) {
	mr, client := setupRedis(t)
	_, err := mr.SAdd("usernames", "alice")
	require.NoError(t, err)

	schema := rulekit.Schema{
		"username": rulekit.Rules(rulekit.NewRuleSet().
			Immediate("is string", func(v any, _ ...any) bool { _, ok := v.(string); return ok }).
			Add("is free", lookup.NotMember(client, "usernames"))),
	}

	ctx := context.Background()
	out := rulekit.EvaluateSchema(ctx, rulekit.Object{"username": "alice"}, schema, rulekit.Options{})
	require.True(t, out.Deferred())
	assert.Equal(t, []string{"is free"}, out.Await()["username"].Errors)

	out = rulekit.EvaluateSchema(ctx, rulekit.Object{"username": "carol"}, schema, rulekit.Options{})
	assert.True(t, out.Await().Valid())

	// a store outage is a failed rule, not a failed evaluation
	mr.Close()
	out = rulekit.EvaluateSchema(ctx, rulekit.Object{"username": "carol"}, schema, rulekit.Options{})
	assert.Equal(t, []string{"is free"}, out.Await()["username"].Errors)
}

func TestConnectRedis(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := lookup.ConnectRedis(context.Background(), lookup.RedisConfig{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		assert.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := lookup.ConnectRedis(context.Background(), lookup.RedisConfig{
			ConnectionURL:  "not-a-url",
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, lookup.ErrFailedToParseRedisConnString)
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := lookup.ConnectRedis(context.Background(), lookup.RedisConfig{
			ConnectionURL:  "redis://" + addr + "/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, lookup.ErrRedisNotReady)
	})

	t.Run("last attempt does not wait and keeps the cause", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		start := time.Now()
		_, err := lookup.ConnectRedis(context.Background(), lookup.RedisConfig{
			ConnectionURL:  "redis://" + addr + "/0",
			RetryAttempts:  1,
			RetryInterval:  5 * time.Second,
			ConnectTimeout: 10 * time.Second,
		})
		require.ErrorIs(t, err, lookup.ErrRedisNotReady)
		assert.Less(t, time.Since(start), 4*time.Second)
		assert.NotEqual(t, lookup.ErrRedisNotReady.Error(), err.Error())
	})
}
