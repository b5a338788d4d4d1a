package lookup

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrFailedToParsePostgresConfig  = errors.New("failed to parse postgres config")
	ErrPostgresNotReady             = errors.New("failed to open postgres connection")
	ErrUnsupportedValue             = errors.New("lookup: value cannot be used as a lookup key")
)
