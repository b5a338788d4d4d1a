package schemafile

import (
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/lookup"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Builder turns the arguments of a rule entry into a Rule.
type Builder func(args Args) (rulekit.Rule, error)

// Registry maps rule names used in schema files to builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with every validator builder registered.
// Lookup builders (redisMember, rowExists, ...) are present but fail until
// UseRedis or UsePostgres provides a backend.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	for name, b := range builtins() {
		r.builders[name] = b
	}
	for _, name := range []string{"redisMember", "redisNotMember", "redisKeyExists", "rowExists", "rowAbsent"} {
		r.builders[name] = missingBackend(name)
	}
	return r
}

// Register adds a custom builder. Names must be unique.
func (r *Registry) Register(name string, b Builder) error {
	if name == "" || b == nil {
		return fmt.Errorf("%w: empty name or nil builder", ErrInvalidArgs)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builders[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, name)
	}
	r.builders[name] = b
	return nil
}

// UseRedis enables the redisMember, redisNotMember and redisKeyExists rules.
func (r *Registry) UseRedis(client redis.Cmdable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders["redisMember"] = func(args Args) (rulekit.Rule, error) {
		key, err := oneString(args)
		if err != nil {
			return rulekit.Rule{}, err
		}
		return lookup.Member(client, key), nil
	}
	r.builders["redisNotMember"] = func(args Args) (rulekit.Rule, error) {
		key, err := oneString(args)
		if err != nil {
			return rulekit.Rule{}, err
		}
		return lookup.NotMember(client, key), nil
	}
	r.builders["redisKeyExists"] = func(args Args) (rulekit.Rule, error) {
		prefix, err := oneString(args)
		if err != nil {
			return rulekit.Rule{}, err
		}
		return lookup.KeyExists(client, prefix), nil
	}
}

// UsePostgres enables the rowExists and rowAbsent rules.
func (r *Registry) UsePostgres(q lookup.Querier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders["rowExists"] = func(args Args) (rulekit.Rule, error) {
		table, column, err := twoStrings(args)
		if err != nil {
			return rulekit.Rule{}, err
		}
		return lookup.RowExists(q, table, column), nil
	}
	r.builders["rowAbsent"] = func(args Args) (rulekit.Rule, error) {
		table, column, err := twoStrings(args)
		if err != nil {
			return rulekit.Rule{}, err
		}
		return lookup.RowAbsent(q, table, column), nil
	}
}

// Build runs the builder registered under name.
func (r *Registry) Build(name string, args Args) (rulekit.Rule, error) {
	r.mu.RLock()
	b, ok := r.builders[name]
	r.mu.RUnlock()
	if !ok {
		return rulekit.Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	rule, err := b(args)
	if err != nil {
		return rulekit.Rule{}, fmt.Errorf("%s: %w", name, err)
	}
	return rule, nil
}

// Names lists the registered builders in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func missingBackend(name string) Builder {
	return func(Args) (rulekit.Rule, error) {
		return rulekit.Rule{}, fmt.Errorf("%w: %s", ErrNoLookupBackends, name)
	}
}

func builtins() map[string]Builder {
	noArgs := func(fn func() rulekit.Rule) Builder {
		return func(args Args) (rulekit.Rule, error) {
			if err := args.want(0); err != nil {
				return rulekit.Rule{}, err
			}
			return fn(), nil
		}
	}
	intArg := func(fn func(int) rulekit.Rule) Builder {
		return func(args Args) (rulekit.Rule, error) {
			if err := args.want(1); err != nil {
				return rulekit.Rule{}, err
			}
			n, err := args.Int(0)
			if err != nil {
				return rulekit.Rule{}, err
			}
			return fn(n), nil
		}
	}
	floatArg := func(fn func(float64) rulekit.Rule) Builder {
		return func(args Args) (rulekit.Rule, error) {
			if err := args.want(1); err != nil {
				return rulekit.Rule{}, err
			}
			n, err := args.Float(0)
			if err != nil {
				return rulekit.Rule{}, err
			}
			return fn(n), nil
		}
	}
	regexArg := func(fn func(*regexp.Regexp) rulekit.Rule) Builder {
		return func(args Args) (rulekit.Rule, error) {
			expr, err := oneString(args)
			if err != nil {
				return rulekit.Rule{}, err
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return rulekit.Rule{}, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
			}
			return fn(re), nil
		}
	}

	return map[string]Builder{
		"type": func(args Args) (rulekit.Rule, error) {
			name, err := oneString(args)
			if err != nil {
				return rulekit.Rule{}, err
			}
			kind, err := validator.ParseKind(name)
			if err != nil {
				return rulekit.Rule{}, err
			}
			return validator.IsType(kind), nil
		},
		"required": noArgs(validator.Required),
		"integer":  noArgs(validator.Integer),
		"pattern": func(args Args) (rulekit.Rule, error) {
			name, err := oneString(args)
			if err != nil {
				return rulekit.Rule{}, err
			}
			re, err := validator.Pattern(name)
			if err != nil {
				return rulekit.Rule{}, err
			}
			return validator.MatchesRegex(re), nil
		},
		"regex":     regexArg(validator.MatchesRegex),
		"notRegex":  regexArg(validator.DoesNotMatchRegex),
		"min":       floatArg(validator.Min),
		"max":       floatArg(validator.Max),
		"minLength": intArg(validator.MinLength),
		"maxLength": intArg(validator.MaxLength),
		"length":    intArg(validator.Length),
		"between": func(args Args) (rulekit.Rule, error) {
			if err := args.want(2); err != nil {
				return rulekit.Rule{}, err
			}
			lo, err := args.Float(0)
			if err != nil {
				return rulekit.Rule{}, err
			}
			hi, err := args.Float(1)
			if err != nil {
				return rulekit.Rule{}, err
			}
			return validator.NumberBetween(lo, hi), nil
		},
		"lengthBetween": func(args Args) (rulekit.Rule, error) {
			if err := args.want(2); err != nil {
				return rulekit.Rule{}, err
			}
			lo, err := args.Int(0)
			if err != nil {
				return rulekit.Rule{}, err
			}
			hi, err := args.Int(1)
			if err != nil {
				return rulekit.Rule{}, err
			}
			return validator.StringBetween(lo, hi), nil
		},
		"oneOf": func(args Args) (rulekit.Rule, error) {
			if len(args) == 0 {
				return rulekit.Rule{}, fmt.Errorf("%w: oneOf needs at least one option", ErrInvalidArgs)
			}
			return validator.OneOf(args...), nil
		},
		"noneOf": func(args Args) (rulekit.Rule, error) {
			return validator.NoneOf(args...), nil
		},
		"uuid": func(args Args) (rulekit.Rule, error) {
			switch len(args) {
			case 0:
				return validator.ValidUUID(), nil
			case 1:
				v, err := args.Int(0)
				if err != nil {
					return rulekit.Rule{}, err
				}
				return validator.ValidUUIDVersion(v), nil
			}
			return rulekit.Rule{}, fmt.Errorf("%w: uuid takes an optional version", ErrInvalidArgs)
		},
		"nonNilUUID":        noArgs(validator.NonNilUUID),
		"strongPassword":    intArg(validator.StrongPassword),
		"bcrypt":            noArgs(validator.MatchesBcrypt),
		"containsUppercase": noArgs(validator.ContainsUppercase),
		"containsLowercase": noArgs(validator.ContainsLowercase),
		"containsDigit":     noArgs(validator.ContainsDigit),
		"containsSymbol":    noArgs(validator.ContainsSymbol),
	}
}

func oneString(args Args) (string, error) {
	if err := args.want(1); err != nil {
		return "", err
	}
	return args.String(0)
}

func twoStrings(args Args) (string, string, error) {
	if err := args.want(2); err != nil {
		return "", "", err
	}
	a, err := args.String(0)
	if err != nil {
		return "", "", err
	}
	b, err := args.String(1)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}
