package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/rulekit"
)

// Kind is a coarse, JSON-like type of a value.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Boolean Kind = "boolean"
	Object  Kind = "object"
	Array   Kind = "array"
	Null    Kind = "null"
)

// ParseKind maps a type name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case String, Number, Boolean, Object, Array, Null:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// KindOf classifies v. It returns an empty Kind for values such as
// functions and channels.
func KindOf(v any) Kind {
	if v == nil {
		return Null
	}
	if _, ok := floatOf(v); ok {
		return Number
	}
	switch v.(type) {
	case string:
		return String
	case bool:
		return Boolean
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Null
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return Object
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	}
	return ""
}

// IsType passes values of the given kind.
func IsType(kind Kind) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		return KindOf(v) == kind
	})
}

// Required passes any non-nil value; strings must also contain a non-blank character.
func Required() rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return KindOf(v) != Null
	})
}
