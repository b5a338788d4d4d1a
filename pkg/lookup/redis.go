package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/rulekit"
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL"`                                // ConnectionURL in the form "redis://:password@localhost:6379/0". Empty disables redis rules.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`   // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // ConnectTimeout bounds the whole connection phase.
}

// ConnectRedis opens a client and pings it, retrying up to cfg.RetryAttempts times.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// Member passes values that are members of the Redis set stored at key.
func Member(client redis.Cmdable, key string) rulekit.Rule {
	return rulekit.Deferred(func(ctx context.Context, v any, _ ...any) (bool, error) {
		member, err := keyOf(v)
		if err != nil {
			return false, err
		}
		return client.SIsMember(ctx, key, member).Result()
	})
}

// NotMember passes values that are not members of the Redis set stored at
// key, e.g. usernames that are still free.
func NotMember(client redis.Cmdable, key string) rulekit.Rule {
	return rulekit.Deferred(func(ctx context.Context, v any, _ ...any) (bool, error) {
		member, err := keyOf(v)
		if err != nil {
			return false, err
		}
		taken, err := client.SIsMember(ctx, key, member).Result()
		if err != nil {
			return false, err
		}
		return !taken, nil
	})
}

// KeyExists passes values for which the key prefix+value exists.
func KeyExists(client redis.Cmdable, prefix string) rulekit.Rule {
	return rulekit.Deferred(func(ctx context.Context, v any, _ ...any) (bool, error) {
		k, err := keyOf(v)
		if err != nil {
			return false, err
		}
		n, err := client.Exists(ctx, prefix+k).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	})
}

func keyOf(v any) (string, error) {
	switch k := v.(type) {
	case nil:
		return "", ErrUnsupportedValue
	case string:
		return k, nil
	case fmt.Stringer:
		return k.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(k), nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}
