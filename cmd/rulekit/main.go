package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/api"
	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/lookup"
	"github.com/dmitrymomot/rulekit/pkg/metrics"
	"github.com/dmitrymomot/rulekit/pkg/schemafile"
)

type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Service   string `env:"SERVICE_NAME" envDefault:"rulekit"`
	LogLevel  string `env:"LOG_LEVEL"`
	SchemaDir string `env:"SCHEMA_DIR" envDefault:"./schemas"`
}

// exit codes
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
	exitError   = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "check":
		return checkCmd(ctx, args[1:], stdin, stdout, stderr)
	case "serve":
		return serveCmd(ctx, args[1:], stderr)
	case "rules":
		return rulesCmd(stdout)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "rulekit\n\nUsage:\n  rulekit check -schema signup.yaml [-input doc.json] [-extra value ...]\n  rulekit serve [-schemas ./schemas] [-env .env]\n  rulekit rules\n\nExit codes: 0 valid, 1 invalid document, 2 usage, 3 error.")
}

type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func checkCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var schemaPath, inputPath string
	var envFiles, extras stringList
	fs.StringVar(&schemaPath, "schema", "", "schema file (YAML)")
	fs.StringVar(&inputPath, "input", "-", "document to check (JSON or YAML), - for stdin")
	fs.Var(&envFiles, "env", "dotenv file to load, repeatable")
	fs.Var(&extras, "extra", "extra argument passed to every rule, repeatable")
	if err := fs.Parse(args); err != nil || schemaPath == "" {
		if err == nil {
			fs.Usage()
		}
		return exitUsage
	}

	if err := config.LoadEnv(envFiles...); err != nil {
		fmt.Fprintf(stderr, "load env: %v\n", err)
		return exitError
	}
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	log := newLogger(cfg, stderr)
	ctx = rulekit.WithLogger(ctx, log)

	reg, closeBackends, err := newRegistry(ctx, log)
	if err != nil {
		fmt.Fprintf(stderr, "lookup backends: %v\n", err)
		return exitError
	}
	defer closeBackends()

	def, err := schemafile.LoadFile(schemaPath, reg.Registry)
	if err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return exitError
	}

	data, err := readInput(inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "input: %v\n", err)
		return exitError
	}
	obj, err := schemafile.DecodeDocument(data)
	if err != nil {
		fmt.Fprintf(stderr, "input: %v\n", err)
		return exitError
	}

	extra := make([]any, 0, len(extras))
	for _, e := range extras {
		extra = append(extra, e)
	}
	result := rulekit.EvaluateSchema(ctx, obj, def.Schema, def.Options, extra...).Await()

	out, err := json.MarshalIndent(api.CheckResponse{
		Schema: def.Name,
		Valid:  result.Valid(),
		Errors: result,
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return exitError
	}
	fmt.Fprintln(stdout, string(out))

	if !result.Valid() {
		return exitInvalid
	}
	return exitOK
}

func serveCmd(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var schemaDir string
	var envFiles stringList
	fs.StringVar(&schemaDir, "schemas", "", "directory with schema files (defaults to SCHEMA_DIR)")
	fs.Var(&envFiles, "env", "dotenv file to load, repeatable")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if err := config.LoadEnv(envFiles...); err != nil {
		fmt.Fprintf(stderr, "load env: %v\n", err)
		return exitError
	}
	var (
		cfg       appConfig
		serverCfg httpserver.Config
		apiCfg    api.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&cfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&apiCfg) },
	} {
		if err := load(); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return exitError
		}
	}
	if schemaDir == "" {
		schemaDir = cfg.SchemaDir
	}

	log := newLogger(cfg, stderr)
	logger.SetAsDefault(log)

	reg, closeBackends, err := newRegistry(ctx, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect lookup backends", logger.Error(err))
		return exitError
	}
	defer closeBackends()

	catalog, err := schemafile.LoadDir(schemaDir, reg.Registry)
	if err != nil {
		log.ErrorContext(ctx, "failed to load schemas", slog.String("dir", schemaDir), logger.Error(err))
		return exitError
	}
	log.InfoContext(ctx, "schemas loaded", slog.Int("count", catalog.Len()), slog.Any("schemas", catalog.Names()))

	opts := []api.Option{
		api.WithLogger(log),
		api.WithConfig(apiCfg),
		api.WithMetrics(metrics.New(), prometheus.DefaultGatherer),
	}
	for name, check := range reg.checks {
		opts = append(opts, api.WithReadinessCheck(name, check))
	}

	srv := httpserver.New(serverCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, api.New(catalog, opts...).Routes()); err != nil {
		log.ErrorContext(ctx, "http server failed", logger.Error(err))
		return exitError
	}
	return exitOK
}

func rulesCmd(stdout io.Writer) int {
	for _, name := range schemafile.NewRegistry().Names() {
		fmt.Fprintln(stdout, name)
	}
	return exitOK
}

func newLogger(cfg appConfig, w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(w),
	)
}

// registry is a schemafile registry plus the readiness checks of the
// backends it was given.
type registry struct {
	*schemafile.Registry
	checks map[string]httpserver.Check
}

// newRegistry connects the lookup backends that are configured. Unset
// connection strings leave the matching rules disabled.
func newRegistry(ctx context.Context, log *slog.Logger) (*registry, func(), error) {
	reg := &registry{
		Registry: schemafile.NewRegistry(),
		checks:   make(map[string]httpserver.Check),
	}
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	var redisCfg lookup.RedisConfig
	var pgCfg lookup.PostgresConfig
	if err := errors.Join(config.Load(&redisCfg), config.Load(&pgCfg)); err != nil {
		return nil, nil, err
	}

	if redisCfg.ConnectionURL != "" {
		client, err := lookup.ConnectRedis(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		reg.UseRedis(client)
		reg.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.InfoContext(ctx, "redis lookups enabled")
	}

	if pgCfg.ConnectionString != "" {
		pool, err := lookup.ConnectPostgres(ctx, pgCfg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		reg.UsePostgres(pool)
		reg.checks["postgres"] = pool.Ping
		log.InfoContext(ctx, "postgres lookups enabled")
	}

	return reg, closeAll, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
