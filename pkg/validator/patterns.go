package validator

import (
	"fmt"
	"regexp"
	"sort"
)

// Commonly used patterns.
var (
	EmailPattern          = regexp.MustCompile(`^[\w.%+-]+@[\w.-]+\.[a-zA-Z]{1,}$`)
	MySQLTimestampPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2}) (\d{2}):(\d{2}):(\d{2})$`)
	URLPattern            = regexp.MustCompile(`(?i)^(https?://)?([^\s$.?#].[^\s]*)\.[a-z]{2,}(/[^ \t\r\n\v\f]*)?$`)

	// ISO8601DateTimeStrictPattern requires seconds and accepts an optional zone.
	ISO8601DateTimeStrictPattern = regexp.MustCompile(`^(\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:[0-5]\d(?:\.\d+)?(?:[+-][0-2]\d:[0-5]\d|Z)?)$`)
	ISO8601DateTimePattern       = regexp.MustCompile(`^(\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d(?::[0-5]\d(?:\.\d+)?)?)$`)
	ISO8601TimePattern           = regexp.MustCompile(`^(2[0-3]|[01][0-9]):([0-5][0-9]):([0-5][0-9])(Z|[+-](?:2[0-3]|[01][0-9]):([0-5][0-9]))?$`)

	ContainsLowercasePattern = regexp.MustCompile(`[a-z]`)
	ContainsUppercasePattern = regexp.MustCompile(`[A-Z]`)
	ContainsDigitPattern     = regexp.MustCompile(`\d`)
	ContainsSymbolPattern    = regexp.MustCompile(`[^\w\s]`)
)

var namedPatterns = map[string]*regexp.Regexp{
	"email":                   EmailPattern,
	"mysql_timestamp":         MySQLTimestampPattern,
	"url":                     URLPattern,
	"iso8601_datetime_strict": ISO8601DateTimeStrictPattern,
	"iso8601_datetime":        ISO8601DateTimePattern,
	"iso8601_time":            ISO8601TimePattern,
	"contains_lowercase":      ContainsLowercasePattern,
	"contains_uppercase":      ContainsUppercasePattern,
	"contains_digit":          ContainsDigitPattern,
	"contains_symbol":         ContainsSymbolPattern,
}

// Pattern returns a registered pattern by name, e.g. "email" or "iso8601_time".
func Pattern(name string) (*regexp.Regexp, error) {
	re, ok := namedPatterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return re, nil
}

// PatternNames lists the registered pattern names in alphabetical order.
func PatternNames() []string {
	names := make([]string, 0, len(namedPatterns))
	for name := range namedPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
