package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rulekit"
)

// PostgresConfig holds the PostgreSQL pool settings.
type PostgresConfig struct {
	ConnectionString string        `env:"PG_CONN_URL"`                          // ConnectionString of the database. Empty disables postgres rules.
	MaxConns         int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`    // MaxConns is the pool size.
	MinConns         int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"2"`     // MinConns is kept open while idle.
	MaxConnIdleTime  time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"`
}

// ConnectPostgres opens a pgx pool and pings it. Retries back off linearly:
// attempt n waits n*RetryInterval.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePostgresConfig, err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrPostgresNotReady, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrPostgresNotReady, lastErr)
}

// Querier is the subset of *pgxpool.Pool and pgx.Tx used by the rules.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RowExists passes values found in column of table. table may be schema
// qualified ("billing.plans"); both names are quoted as identifiers.
func RowExists(q Querier, table, column string) rulekit.Rule {
	query := existsQuery(table, column)
	return rulekit.Deferred(func(ctx context.Context, v any, _ ...any) (bool, error) {
		return queryExists(ctx, q, query, v)
	})
}

// RowAbsent passes values not present in column of table, e.g. an email
// address that is not registered yet.
func RowAbsent(q Querier, table, column string) rulekit.Rule {
	query := existsQuery(table, column)
	return rulekit.Deferred(func(ctx context.Context, v any, _ ...any) (bool, error) {
		exists, err := queryExists(ctx, q, query, v)
		if err != nil {
			return false, err
		}
		return !exists, nil
	})
}

func existsQuery(table, column string) string {
	return fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
		pgx.Identifier{column}.Sanitize(),
	)
}

func queryExists(ctx context.Context, q Querier, query string, v any) (bool, error) {
	if v == nil {
		return false, ErrUnsupportedValue
	}
	var exists bool
	if err := q.QueryRow(ctx, query, v).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
