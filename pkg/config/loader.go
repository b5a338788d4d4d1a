package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	loaded = &cache{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// Load parses the process environment into v using `env` struct tags.
// The first call also reads ./.env when it exists. Each config type is
// parsed once; later calls for the same type copy the cached value.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	key := typeOf[T]()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Reload drops the cached value for T and parses the environment again.
func Reload[T any](v *T) error {
	loaded.mu.Lock()
	delete(loaded.values, typeOf[T]())
	loaded.mu.Unlock()
	return Load(v)
}

// LoadEnv reads the given dotenv files into the process environment. Later
// files override earlier ones; variables already set in the process win
// over all of them. Cached configs are dropped so the next Load sees the
// new values.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	values := make(map[string]string)
	for _, path := range paths {
		file, err := godotenv.Read(path)
		if err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		for k, val := range file {
			values[k] = val
		}
	}

	for k, val := range values {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	ResetCache()
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ResetCache forgets every parsed config.
func ResetCache() {
	loaded.mu.Lock()
	loaded.values = make(map[reflect.Type]any)
	loaded.mu.Unlock()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
