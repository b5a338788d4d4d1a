package schemafile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Definition is a named schema loaded from a file.
type Definition struct {
	Name    string
	Options rulekit.Options
	Schema  rulekit.Schema
	// Fields in declaration order.
	Fields []string
}

type document struct {
	Name   string    `yaml:"name"`
	Strict bool      `yaml:"strict"`
	Fields yaml.Node `yaml:"fields"`
}

type fieldDoc struct {
	Optional  bool       `yaml:"optional"`
	Normalize bool       `yaml:"normalize"`
	Rules     []ruleDoc  `yaml:"rules"`
	AnyOf     []rulesDoc `yaml:"anyOf"`
}

type rulesDoc struct {
	Rules []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	Name string    `yaml:"name"`
	Rule string    `yaml:"rule"`
	Args Args      `yaml:"args"`
	Any  []ruleDoc `yaml:"any"`
	Not  *ruleDoc  `yaml:"not"`
}

// Parse reads a schema definition. fallbackName is used when the document
// has no name of its own.
//
//	name: signup
//	strict: true
//	fields:
//	  username:
//	    rules:
//	      - {name: Must be a string, rule: type, args: [string]}
//	      - {name: Username is taken, rule: redisNotMember, args: [usernames]}
//	  contact:
//	    anyOf:
//	      - rules: [{name: Must be an email, rule: pattern, args: [email]}]
//	      - rules: [{name: Must be a phone number, rule: regex, args: ['^\+?[0-9]{7,15}$']}]
func Parse(data []byte, fallbackName string, reg *Registry) (*Definition, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidSchema, err)
	}

	def := &Definition{
		Name:    strings.TrimSpace(doc.Name),
		Options: rulekit.Options{Strict: doc.Strict},
		Schema:  make(rulekit.Schema),
	}
	if def.Name == "" {
		def.Name = fallbackName
	}
	if def.Name == "" {
		return nil, fmt.Errorf("%w: schema has no name", ErrInvalidSchema)
	}

	if doc.Fields.Kind == 0 {
		return def, nil
	}
	if doc.Fields.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: fields must be a mapping", ErrInvalidSchema, def.Name)
	}

	for i := 0; i+1 < len(doc.Fields.Content); i += 2 {
		key := doc.Fields.Content[i].Value
		var fd fieldDoc
		if err := doc.Fields.Content[i+1].Decode(&fd); err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidSchema, def.Name, key, err)
		}
		field, err := buildField(fd, reg)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Name, key, err)
		}
		if _, dup := def.Schema[key]; !dup {
			def.Fields = append(def.Fields, key)
		}
		def.Schema[key] = field
	}

	return def, nil
}

// LoadFile parses one schema file. The file name without extension is the
// fallback schema name.
func LoadFile(path string, reg *Registry) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	return Parse(data, strings.TrimSuffix(base, filepath.Ext(base)), reg)
}

// LoadDir parses every *.yaml and *.yml file in dir, sorted by file name.
func LoadDir(dir string, reg *Registry) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var defs []*Definition
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
		default:
			continue
		}
		def, err := LoadFile(filepath.Join(dir, e.Name()), reg)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return NewCatalog(defs...)
}

func buildField(fd fieldDoc, reg *Registry) (rulekit.Field, error) {
	switch {
	case len(fd.Rules) > 0 && len(fd.AnyOf) > 0:
		return rulekit.Field{}, fmt.Errorf("%w: rules and anyOf are exclusive", ErrInvalidSchema)
	case len(fd.AnyOf) > 0:
		alts := make([]*rulekit.RuleSet, 0, len(fd.AnyOf))
		for i, alt := range fd.AnyOf {
			set, err := buildSet(alt.Rules, fd, reg)
			if err != nil {
				return rulekit.Field{}, fmt.Errorf("anyOf[%d]: %w", i, err)
			}
			alts = append(alts, set)
		}
		return rulekit.AnyOf(alts...), nil
	}

	set, err := buildSet(fd.Rules, fd, reg)
	if err != nil {
		return rulekit.Field{}, err
	}
	return rulekit.Rules(set), nil
}

func buildSet(docs []ruleDoc, fd fieldDoc, reg *Registry) (*rulekit.RuleSet, error) {
	set := rulekit.NewRuleSet()
	for _, rd := range docs {
		if strings.TrimSpace(rd.Name) == "" {
			return nil, fmt.Errorf("%w: rule without a name", ErrInvalidSchema)
		}
		rule, err := buildRule(rd, reg)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", rd.Name, err)
		}
		set.Add(rd.Name, rule)
	}

	if fd.Normalize {
		set = validator.Normalized(set)
	}
	if fd.Optional {
		set = validator.AllowUndefined(set)
	}
	return set, nil
}

func buildRule(rd ruleDoc, reg *Registry) (rulekit.Rule, error) {
	forms := 0
	if rd.Rule != "" {
		forms++
	}
	if len(rd.Any) > 0 {
		forms++
	}
	if rd.Not != nil {
		forms++
	}
	if forms != 1 {
		return rulekit.Rule{}, fmt.Errorf("%w: exactly one of rule, any or not is required", ErrInvalidSchema)
	}

	switch {
	case rd.Not != nil:
		inner, err := buildRule(*rd.Not, reg)
		if err != nil {
			return rulekit.Rule{}, err
		}
		return validator.Not(inner), nil
	case len(rd.Any) > 0:
		members := make([]rulekit.Rule, 0, len(rd.Any))
		for _, m := range rd.Any {
			r, err := buildRule(m, reg)
			if err != nil {
				return rulekit.Rule{}, err
			}
			members = append(members, r)
		}
		return validator.AcceptAny(members...), nil
	}
	return reg.Build(rd.Rule, rd.Args)
}

// Catalog is a set of definitions addressable by name.
type Catalog struct {
	defs map[string]*Definition
}

// NewCatalog indexes defs by name. Names must be unique.
func NewCatalog(defs ...*Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if _, ok := c.defs[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSchema, d.Name)
		}
		c.defs[d.Name] = d
	}
	return c, nil
}

// Get returns the definition registered under name.
func (c *Catalog) Get(name string) (*Definition, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Names lists definition names in lexical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len reports the number of definitions.
func (c *Catalog) Len() int { return len(c.defs) }
