// Package validator provides ready-made rulekit rules for common checks on
// dynamically typed values: types, string and collection lengths, numeric
// ranges, regular expression patterns, choices, UUIDs and password hashes.
//
// Every exported builder returns a rulekit.Rule (or, for the rule set
// helpers, a *rulekit.RuleSet), so rules are attached under a name chosen
// by the caller:
//
//	rules := rulekit.NewRuleSet().
//	    Add("is string", validator.IsType(validator.String)).
//	    Add("is email", validator.MatchesRegex(validator.EmailPattern)).
//	    Add("short enough", validator.MaxLength(254))
//
// # Architecture
//
// Each source file groups a family of rules (`string_rules.go`,
// `numeric_rules.go`, `pattern_rules.go`, ...). Builders hold no global state
// and the returned rules are safe for concurrent use.
//
// Values are inspected the way they arrive from decoded JSON or YAML: numbers
// may be any Go integer or float kind or a json.Number, objects may be maps
// or structs, arrays may be slices or arrays. A value of the wrong type simply
// fails the rule.
//
// # Combinators
//
// AcceptAny passes when any of its rules passes and becomes a deferred rule
// when any member is deferred. AllowUndefined, Preprocess and Normalized wrap
// a whole rule set, keeping every rule's immediate or deferred nature.
package validator
