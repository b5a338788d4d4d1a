// Package config loads typed configuration from the environment.
//
// It wraps github.com/joho/godotenv for dotenv files and
// github.com/caarlos0/env/v11 for struct tag parsing. Parsed values are
// cached per type, so every component can call Load for its own config
// struct without re-reading the environment:
//
//	var cfg lookup.RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadEnv reads explicit dotenv files (later files override earlier ones,
// the real environment overrides both). ResetCache and Reload exist mostly
// for tests.
package config
