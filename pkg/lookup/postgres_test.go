package lookup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/lookup"
)

type fakeRow struct {
	exists bool
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.exists
	return nil
}

type fakeQuerier struct {
	rows  map[any]bool
	err   error
	query string
	args  []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.query = sql
	q.args = args
	if q.err != nil {
		return fakeRow{err: q.err}
	}
	return fakeRow{exists: q.rows[args[0]]}
}

func TestRowExists(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuerier{rows: map[any]bool{"acme": true}}

	rule := lookup.RowExists(q, "billing.teams", "slug")
	require.True(t, rule.IsDeferred())

	ok, err := rule.Run(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `SELECT EXISTS (SELECT 1 FROM "billing"."teams" WHERE "slug" = $1)`, q.query)
	assert.Equal(t, []any{"acme"}, q.args)

	ok, err = rule.Run(ctx, "globex")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRowAbsent(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuerier{rows: map[any]bool{"taken@example.com": true}}
	rule := lookup.RowAbsent(q, "users", "email")

	ok, err := rule.Run(ctx, "free@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rule.Run(ctx, "taken@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresRuleErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("query error", func(t *testing.T) {
		boom := errors.New("connection reset")
		ok, err := lookup.RowAbsent(&fakeQuerier{err: boom}, "users", "email").Run(ctx, "a@b.c")
		assert.ErrorIs(t, err, boom)
		assert.False(t, ok)
	})

	t.Run("nil value", func(t *testing.T) {
		q := &fakeQuerier{}
		_, err := lookup.RowExists(q, "users", "email").Run(ctx, nil)
		assert.ErrorIs(t, err, lookup.ErrUnsupportedValue)
		assert.Empty(t, q.query)
	})
}

func TestConnectPostgresInvalidConfig(t *testing.T) {
	_, err := lookup.ConnectPostgres(context.Background(), lookup.PostgresConfig{
		ConnectionString: "postgres://%zz",
	})
	assert.ErrorIs(t, err, lookup.ErrFailedToParsePostgresConfig)
}
